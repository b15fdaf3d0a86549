package syntax

// Limits on parameter and argument counts.
const maxArgs = 255

// Parser performs syntax analysis on a token sequence.
//
// By default the parser does not resynchronize after a syntax error: the
// node being built is returned as is and parsing resumes at the current
// token, so one mistake may be followed by further errors. A tree parsed
// with errors must not be executed.
type Parser struct {
	errorList

	toks []Token
	cur  int   // index of tok in toks
	tok  Token // current token

	// Error handling
	sync      bool // resynchronize at statement boundaries after an error
	panicking bool // an error was reported and sync is pending
	maxErrors int  // abort after this many errors (0 = unlimited)
	abort     bool // set to true when the error limit is reached
}

// Option configures a Parser.
type Option func(*Parser)

// WithSynchronize enables statement-boundary error recovery. Errors that
// follow the first one in the same statement are suppressed.
func WithSynchronize(on bool) Option {
	return func(p *Parser) { p.sync = on }
}

// WithMaxErrors aborts parsing after n errors. Zero means no limit.
func WithMaxErrors(n int) Option {
	return func(p *Parser) { p.maxErrors = n }
}

// NewParser creates a Parser over toks. A missing trailing Eof token is
// supplied. The errh function is called for each syntax error.
func NewParser(toks []Token, errh ErrorHandler, opts ...Option) *Parser {
	if n := len(toks); n == 0 || toks[n-1].Kind != Eof {
		line := 1
		if n > 0 {
			line = toks[n-1].Line
		}
		toks = append(toks[:n:n], Token{Kind: Eof, Line: line})
	}

	p := &Parser{toks: toks}
	p.errh = errh
	for _, opt := range opts {
		opt(p)
	}
	p.tok = p.toks[0]
	return p
}

// ----------------------------------------------------------------------------
// Token navigation

// next advances to the next token. The parser never moves past Eof.
func (p *Parser) next() {
	if p.cur < len(p.toks)-1 {
		p.cur++
	}
	p.tok = p.toks[p.cur]
}

// atEnd reports whether the current token is Eof.
func (p *Parser) atEnd() bool {
	return p.tok.Kind == Eof
}

// got reports whether the current token is of kind tok.
// If so, it consumes the token and returns true.
func (p *Parser) got(tok TokenType) bool {
	if p.tok.Kind == tok {
		p.next()
		return true
	}
	return false
}

// want consumes and returns the current token if it is of kind tok.
// Otherwise it reports msg and returns the current token unconsumed.
func (p *Parser) want(tok TokenType, msg string) Token {
	t := p.tok
	if p.got(tok) {
		return t
	}
	p.syntaxError(msg)
	return t
}

// ----------------------------------------------------------------------------
// Error handling

// syntaxError reports a syntax error at the current token and marks the
// parser as needing synchronization.
func (p *Parser) syntaxError(msg string) {
	p.errorAt(p.tok, msg)
	if p.sync {
		p.panicking = true
	}
}

// errorAt reports a syntax error at tok without affecting recovery.
func (p *Parser) errorAt(tok Token, msg string) {
	if p.abort || p.panicking {
		return
	}
	where := " at '" + tok.Lexeme + "'"
	if tok.Kind == Eof {
		where = " at end"
	}
	p.report(&Error{Line: tok.Line, Where: where, Msg: msg})
	p.errorLimitCheck()
}

// errorLimitCheck aborts parsing if too many errors have occurred.
func (p *Parser) errorLimitCheck() {
	if p.maxErrors > 0 && p.errcnt >= p.maxErrors {
		p.abort = true
		p.cur = len(p.toks) - 1
		p.tok = p.toks[p.cur]
	}
}

// advance skips tokens until it finds a statement boundary.
// This is used for error recovery when synchronization is enabled.
func (p *Parser) advance() {
	for !p.atEnd() {
		switch p.tok.Kind {
		case Semicolon:
			p.next()
			return
		case Class, Fun, Var, For, If, While, Print, Return, Break, Continue:
			return
		}
		p.next()
	}
}

// ----------------------------------------------------------------------------
// Parsing entry points

// Parse parses a complete program. It returns the statements parsed and
// whether any syntax error was reported; with errors the statements are
// partial and must be discarded.
func (p *Parser) Parse() ([]Stmt, bool) {
	var stmts []Stmt
	for !p.atEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts, p.Errors() > 0
}

// ParseExpression parses a single expression spanning the whole input.
func (p *Parser) ParseExpression() (Expr, bool) {
	x := p.expr()
	if !p.atEnd() {
		p.syntaxError("Expect end of expression.")
	}
	return x, p.Errors() > 0
}

// ----------------------------------------------------------------------------
// Declarations

// declaration parses a declaration or statement. It always makes progress:
// if nothing was consumed the offending token is skipped.
func (p *Parser) declaration() Stmt {
	start := p.cur

	var s Stmt
	switch p.tok.Kind {
	case Fun:
		s = p.funcDecl()
	case Var:
		s = p.varDecl()
	default:
		s = p.stmt()
	}

	if p.panicking {
		p.advance()
		p.panicking = false
	}
	if p.cur == start && !p.atEnd() {
		p.next()
	}
	return s
}

// funcDecl parses: fun Name(Params) { Body }
func (p *Parser) funcDecl() *FuncStmt {
	d := &FuncStmt{}
	d.line = p.tok.Line

	p.next() // consume fun
	d.Name = p.want(Identifier, "Expect function name.")
	d.Params = p.paramList()
	d.Body = p.blockStmt("Expect '{' before function body.")

	return d
}

// paramList parses (p1, p2, ...)
func (p *Parser) paramList() []Token {
	p.want(LeftParen, "Expect '(' after function name.")

	var params []Token
	if p.tok.Kind != RightParen {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.tok, "Can't have more than 255 parameters.")
			}
			params = append(params, p.want(Identifier, "Expect parameter name."))
			if !p.got(Comma) {
				break
			}
		}
	}

	p.want(RightParen, "Expect ')' after parameters.")
	return params
}

// varDecl parses: var Name [= Init];
func (p *Parser) varDecl() *VarStmt {
	d := &VarStmt{}
	d.line = p.tok.Line

	p.next() // consume var
	d.Name = p.want(Identifier, "Expect variable name.")
	if p.got(Equal) {
		d.Init = p.expr()
	}
	p.want(Semicolon, "Expect ';' after variable declaration.")

	return d
}

// ----------------------------------------------------------------------------
// Statements

// stmt parses a statement.
func (p *Parser) stmt() Stmt {
	switch p.tok.Kind {
	case Print:
		return p.printStmt()

	case LeftBrace:
		return p.blockStmt("Expect '{'.")

	case If:
		return p.ifStmt()

	case While:
		return p.whileStmt()

	case For:
		return p.forStmt()

	case Return:
		return p.returnStmt()

	case Break, Continue:
		return p.branchStmt()

	default:
		return p.exprStmt()
	}
}

// printStmt parses: print X;
func (p *Parser) printStmt() Stmt {
	s := &PrintStmt{}
	s.line = p.tok.Line
	p.next()
	s.X = p.expr()
	p.want(Semicolon, "Expect ';' after value.")
	return s
}

// exprStmt parses: X;
func (p *Parser) exprStmt() *ExprStmt {
	s := &ExprStmt{}
	s.line = p.tok.Line
	s.X = p.expr()
	p.want(Semicolon, "Expect ';' after expression.")
	return s
}

// blockStmt parses { stmts... }; msg is reported if the '{' is missing.
func (p *Parser) blockStmt(msg string) *BlockStmt {
	b := &BlockStmt{}
	b.line = p.tok.Line

	p.want(LeftBrace, msg)

	for p.tok.Kind != RightBrace && !p.atEnd() {
		if s := p.declaration(); s != nil {
			b.Stmts = append(b.Stmts, s)
		}
	}

	p.want(RightBrace, "Expect '}' after block.")
	return b
}

// ifStmt parses: if (Cond) Then [else Else]
// An else binds to the nearest preceding if.
func (p *Parser) ifStmt() Stmt {
	s := &IfStmt{}
	s.line = p.tok.Line

	p.next() // consume if
	p.want(LeftParen, "Expect '(' after 'if'.")
	s.Cond = p.expr()
	p.want(RightParen, "Expect ')' after if condition.")

	s.Then = p.stmt()
	if p.got(Else) {
		s.Else = p.stmt()
	}

	return s
}

// whileStmt parses: while (Cond) Body
func (p *Parser) whileStmt() Stmt {
	s := &WhileStmt{}
	s.line = p.tok.Line

	p.next() // consume while
	p.want(LeftParen, "Expect '(' after 'while'.")
	s.Cond = p.expr()
	p.want(RightParen, "Expect ')' after condition.")
	s.Body = p.stmt()

	return s
}

// forStmt parses: for ([Init]; [Cond]; [Incr]) Body
func (p *Parser) forStmt() Stmt {
	s := &ForStmt{}
	s.line = p.tok.Line

	p.next() // consume for
	p.want(LeftParen, "Expect '(' after 'for'.")

	switch p.tok.Kind {
	case Semicolon:
		p.next()
	case Var:
		s.Init = p.varDecl()
	default:
		s.Init = p.exprStmt()
	}

	if p.tok.Kind != Semicolon {
		s.Cond = p.expr()
	}
	p.want(Semicolon, "Expect ';' after loop condition.")

	if p.tok.Kind != RightParen {
		s.Incr = p.expr()
	}
	p.want(RightParen, "Expect ')' after for clauses.")

	s.Body = p.stmt()
	return s
}

// returnStmt parses: return [Result];
func (p *Parser) returnStmt() Stmt {
	s := &ReturnStmt{Keyword: p.tok}
	s.line = p.tok.Line

	p.next() // consume return
	if p.tok.Kind != Semicolon {
		s.Result = p.expr()
	}
	p.want(Semicolon, "Expect ';' after return value.")

	return s
}

// branchStmt parses: break; or continue;
func (p *Parser) branchStmt() Stmt {
	s := &BranchStmt{Tok: p.tok}
	s.line = p.tok.Line
	p.next()
	p.want(Semicolon, "Expect ';' after '"+s.Tok.Lexeme+"'.")
	return s
}

// ----------------------------------------------------------------------------
// Expressions
//
// Every node takes its line from a token, never from a child expression:
// after an error a child may be nil.

// expr parses an expression.
func (p *Parser) expr() Expr {
	return p.assignment()
}

// assignment parses a right-associative assignment: Name = Value.
// Any left-hand side other than a variable is reported and the left side
// is returned unchanged.
func (p *Parser) assignment() Expr {
	x := p.binaryExpr(0)

	if p.tok.Kind == Equal {
		eq := p.tok
		p.next()
		value := p.assignment()

		if v, ok := x.(*Variable); ok {
			a := &Assign{Name: v.Name, Value: value}
			a.line = v.Name.Line
			return a
		}
		p.errorAt(eq, "Invalid assignment target.")
	}

	return x
}

// binaryExpr parses a binary expression with minimum precedence prec.
// Implements precedence climbing; all binary operators are left
// associative.
func (p *Parser) binaryExpr(prec int) Expr {
	x := p.unaryExpr()

	for {
		oprec := p.tok.Kind.Precedence()
		if oprec <= prec {
			return x
		}

		op := p.tok
		p.next() // consume operator

		// Parse right operand with higher precedence (left associative)
		y := p.binaryExpr(oprec)

		if op.Kind == And || op.Kind == Or {
			l := &Logical{X: x, Op: op, Y: y}
			l.line = op.Line
			x = l
		} else {
			b := &Binary{X: x, Op: op, Y: y}
			b.line = op.Line
			x = b
		}
	}
}

// unaryExpr parses a unary expression.
func (p *Parser) unaryExpr() Expr {
	switch p.tok.Kind {
	case Bang, Minus:
		u := &Unary{Op: p.tok}
		u.line = p.tok.Line
		p.next()
		u.X = p.unaryExpr()
		return u

	default:
		return p.callExpr()
	}
}

// callExpr parses a primary expression followed by any number of
// argument lists: f(a)(b, c)
func (p *Parser) callExpr() Expr {
	x := p.operand()

	for p.tok.Kind == LeftParen {
		p.next()
		call := &Call{Callee: x}
		if p.tok.Kind != RightParen {
			call.Args = p.exprList()
		}
		call.Paren = p.want(RightParen, "Expect ')' after arguments.")
		call.line = call.Paren.Line
		x = call
	}

	return x
}

// operand parses a literal, variable or parenthesized expression.
func (p *Parser) operand() Expr {
	switch p.tok.Kind {
	case False, True, Nil, Number, String:
		lit := &Literal{Value: p.tok}
		lit.line = p.tok.Line
		p.next()
		return lit

	case Identifier:
		v := &Variable{Name: p.tok}
		v.line = p.tok.Line
		p.next()
		return v

	case LeftParen:
		g := &Grouping{}
		g.line = p.tok.Line
		p.next()
		g.X = p.expr()
		p.want(RightParen, "Expect ')' after expression.")
		return g

	default:
		p.syntaxError("Expect expression.")
		return nil
	}
}

// exprList parses a comma-separated argument list.
func (p *Parser) exprList() []Expr {
	list := []Expr{p.expr()}
	for p.got(Comma) {
		if len(list) >= maxArgs {
			p.errorAt(p.tok, "Can't have more than 255 arguments.")
		}
		list = append(list, p.expr())
	}
	return list
}
