// Package syntax implements lexical and syntactic analysis for the msk
// scripting language.
package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 2 classes of nodes: Expressions and Statements. All nodes
// implement the Node interface. Nodes are built once by the parser and are
// read-only afterwards.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Line() int // source line the node is attributed to
	aNode()    // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	line int
}

func (n *node) Line() int { return n.line }
func (n *node) aNode()    {}

// expr is embedded in all expression nodes.
type expr struct{ node }

func (*expr) aExpr() {}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// ----------------------------------------------------------------------------
// Expressions

// Literal is a number, string, true, false or nil.
type Literal struct {
	expr
	Value Token
}

// Grouping is a parenthesized expression: (X)
type Grouping struct {
	expr
	X Expr
}

// Unary is a prefix operation: Op X, with Op one of ! -
type Unary struct {
	expr
	Op Token
	X  Expr
}

// Binary is an arithmetic, comparison or equality operation: X Op Y
type Binary struct {
	expr
	X  Expr
	Op Token
	Y  Expr
}

// Logical is a short-circuit operation: X and Y, X or Y
type Logical struct {
	expr
	X  Expr
	Op Token
	Y  Expr
}

// Variable is a reference to a named binding.
type Variable struct {
	expr
	Name Token
}

// Assign stores Value into the binding Name: Name = Value
type Assign struct {
	expr
	Name  Token
	Value Expr
}

// Call is a function invocation: Callee(Args...)
// Paren is the closing parenthesis; its line is reported for call errors.
type Call struct {
	expr
	Callee Expr
	Paren  Token
	Args   []Expr
}

// ----------------------------------------------------------------------------
// Statements

// ExprStmt is an expression evaluated for its side effects.
type ExprStmt struct {
	stmt
	X Expr
}

// PrintStmt writes the display form of X to the output: print X;
type PrintStmt struct {
	stmt
	X Expr
}

// VarStmt declares a binding in the current scope: var Name [= Init];
type VarStmt struct {
	stmt
	Name Token
	Init Expr // nil if no initializer
}

// BlockStmt is a braced statement list with its own scope: { Stmts... }
type BlockStmt struct {
	stmt
	Stmts []Stmt
}

// IfStmt is: if (Cond) Then [else Else]
type IfStmt struct {
	stmt
	Cond Expr
	Then Stmt
	Else Stmt // nil if absent
}

// WhileStmt is: while (Cond) Body
type WhileStmt struct {
	stmt
	Cond Expr
	Body Stmt
}

// ForStmt is: for (Init; Cond; Incr) Body
// It is kept as its own node rather than rewritten into a while loop.
type ForStmt struct {
	stmt
	Init Stmt // nil, *VarStmt or *ExprStmt
	Cond Expr // nil means always true
	Incr Expr // nil if absent
	Body Stmt
}

// BranchStmt is a break or continue statement.
type BranchStmt struct {
	stmt
	Tok Token // Break or Continue
}

// FuncStmt declares a named function: fun Name(Params) Body
//
// Body is shared with every closure created from the declaration. The
// parser always produces a *BlockStmt; any other shape is rejected when the
// function is called.
type FuncStmt struct {
	stmt
	Name   Token
	Params []Token
	Body   Stmt
}

// ReturnStmt is: return [Result];
type ReturnStmt struct {
	stmt
	Keyword Token
	Result  Expr // nil for bare return
}
