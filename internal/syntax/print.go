package syntax

import (
	"fmt"
	"io"
	"strings"
)

// ExprString returns the parenthesized prefix rendering of x, e.g.
// "(* (- 123.0) (group 45.67))". Number literals with no fractional part
// keep a trailing ".0".
func ExprString(x Expr) string {
	var b strings.Builder
	writeExpr(&b, x)
	return b.String()
}

func writeExpr(b *strings.Builder, x Expr) {
	switch x := x.(type) {
	case nil:
		b.WriteString("<missing>")
	case *Literal:
		b.WriteString(literalString(x.Value))
	case *Grouping:
		parenthesize(b, "group", x.X)
	case *Unary:
		parenthesize(b, x.Op.Lexeme, x.X)
	case *Binary:
		parenthesize(b, x.Op.Lexeme, x.X, x.Y)
	case *Logical:
		parenthesize(b, x.Op.Lexeme, x.X, x.Y)
	case *Variable:
		b.WriteString(x.Name.Lexeme)
	case *Assign:
		parenthesize(b, "= "+x.Name.Lexeme, x.Value)
	case *Call:
		parenthesize(b, "call", append([]Expr{x.Callee}, x.Args...)...)
	default:
		fmt.Fprintf(b, "%T", x)
	}
}

func parenthesize(b *strings.Builder, name string, xs ...Expr) {
	b.WriteByte('(')
	b.WriteString(name)
	for _, x := range xs {
		b.WriteByte(' ')
		writeExpr(b, x)
	}
	b.WriteByte(')')
}

// literalString renders a literal token: numbers and strings by value,
// true, false and nil by lexeme.
func literalString(t Token) string {
	if t.Literal != nil {
		return FormatLiteral(t.Literal)
	}
	return t.Lexeme
}

// Fprint writes an indented textual representation of a program to w.
func Fprint(w io.Writer, stmts []Stmt) {
	p := &printer{w: w}
	for _, s := range stmts {
		p.print(s)
	}
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// field prints a labelled child one level deeper.
func (p *printer) field(label string, n Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(n)
	p.indent--
}

func (p *printer) print(n Node) {
	// A nil child appears only in trees parsed with errors.
	if n == nil {
		p.printf("<missing>\n")
		return
	}

	switch n := n.(type) {
	case *ExprStmt:
		p.printf("ExprStmt line %d\n", n.line)
		p.indent++
		p.print(n.X)
		p.indent--

	case *PrintStmt:
		p.printf("PrintStmt line %d\n", n.line)
		p.indent++
		p.print(n.X)
		p.indent--

	case *VarStmt:
		p.printf("VarStmt line %d\n", n.line)
		p.indent++
		p.printf("Name: %s\n", n.Name.Lexeme)
		if n.Init != nil {
			p.field("Init", n.Init)
		}
		p.indent--

	case *BlockStmt:
		p.printf("BlockStmt line %d\n", n.line)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *IfStmt:
		p.printf("IfStmt line %d\n", n.line)
		p.indent++
		p.field("Cond", n.Cond)
		p.field("Then", n.Then)
		if n.Else != nil {
			p.field("Else", n.Else)
		}
		p.indent--

	case *WhileStmt:
		p.printf("WhileStmt line %d\n", n.line)
		p.indent++
		p.field("Cond", n.Cond)
		p.field("Body", n.Body)
		p.indent--

	case *ForStmt:
		p.printf("ForStmt line %d\n", n.line)
		p.indent++
		if n.Init != nil {
			p.field("Init", n.Init)
		}
		if n.Cond != nil {
			p.field("Cond", n.Cond)
		}
		if n.Incr != nil {
			p.field("Incr", n.Incr)
		}
		p.field("Body", n.Body)
		p.indent--

	case *BranchStmt:
		p.printf("BranchStmt %s line %d\n", n.Tok.Lexeme, n.line)

	case *FuncStmt:
		p.printf("FuncStmt line %d\n", n.line)
		p.indent++
		p.printf("Name: %s\n", n.Name.Lexeme)
		if len(n.Params) > 0 {
			names := make([]string, len(n.Params))
			for i, param := range n.Params {
				names[i] = param.Lexeme
			}
			p.printf("Params: %s\n", strings.Join(names, ", "))
		}
		p.field("Body", n.Body)
		p.indent--

	case *ReturnStmt:
		p.printf("ReturnStmt line %d\n", n.line)
		if n.Result != nil {
			p.indent++
			p.print(n.Result)
			p.indent--
		}

	case Expr:
		p.printf("%s\n", ExprString(n))

	default:
		p.printf("%T\n", n)
	}
}
