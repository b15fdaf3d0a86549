package syntax

import "strconv"

// Scanner performs lexical analysis on msk source code.
type Scanner struct {
	source    // embedded character reader
	errorList // diagnostics

	tok Token // current token
}

// NewScanner creates a new Scanner for src.
// The errh function is called for each lexical error; if nil, errors are
// only counted.
func NewScanner(src string, errh ErrorHandler) *Scanner {
	s := &Scanner{}
	s.errh = errh
	s.init(src)
	return s
}

// Scan converts src into a token sequence terminated by a single Eof token.
// Scanning never stops early: malformed input is reported through errh
// and skipped. The boolean result reports whether any error occurred.
func Scan(src string, errh ErrorHandler) ([]Token, bool) {
	s := NewScanner(src, errh)
	var toks []Token
	for {
		s.Next()
		tok := s.Token()
		toks = append(toks, tok)
		if tok.Kind == Eof {
			break
		}
	}
	return toks, s.Errors() > 0
}

// Token returns the current token.
func (s *Scanner) Token() Token {
	return s.tok
}

// Next advances to the next token. Once the end of input is reached,
// every call yields Eof again.
func (s *Scanner) Next() {
redo:
	s.skipWhitespace()
	s.mark()

	switch {
	case s.ch < 0:
		s.emit(Eof, nil)

	case isLetter(s.ch):
		s.scanIdent()

	case isDigit(s.ch):
		s.scanNumber()

	case s.ch == '"':
		if !s.scanString() {
			goto redo
		}

	default:
		if !s.scanOperator() {
			// comment or unexpected character
			goto redo
		}
	}
}

// emit sets the current token from the pending lexeme.
func (s *Scanner) emit(kind TokenType, lit any) {
	s.tok = Token{Kind: kind, Lexeme: s.lexeme(), Literal: lit, Line: s.line}
}

// error reports a lexical error on the current line.
func (s *Scanner) error(msg string) {
	s.report(&Error{Line: s.line, Msg: msg})
}

func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.ch) {
		s.nextch()
	}
}

// scanIdent scans an identifier or keyword.
func (s *Scanner) scanIdent() {
	for isLetter(s.ch) || isDigit(s.ch) {
		s.nextch()
	}
	s.emit(LookupKeyword(s.lexeme()), nil)
}

// scanNumber scans a number literal. A '.' belongs to the number only
// when a digit follows it, so "1." scans as NUMBER then DOT.
func (s *Scanner) scanNumber() {
	for isDigit(s.ch) {
		s.nextch()
	}
	if s.ch == '.' && isDigit(s.peek()) {
		s.nextch()
		for isDigit(s.ch) {
			s.nextch()
		}
	}

	// The lexeme is always well formed; on overflow ParseFloat yields +Inf.
	v, _ := strconv.ParseFloat(s.lexeme(), 64)
	s.emit(Number, v)
}

// scanString scans a string literal. Strings may span lines and have no
// escape sequences. It returns false, without producing a token, when the
// input ends before the closing quote.
func (s *Scanner) scanString() bool {
	s.nextch() // skip opening "
	for s.ch != '"' && s.ch >= 0 {
		s.nextch()
	}

	if s.ch < 0 {
		s.error("Unterminated string.")
		return false
	}

	s.nextch() // skip closing "
	lex := s.lexeme()
	s.emit(String, lex[1:len(lex)-1])
	return true
}

// scanOperator scans punctuation and operators.
// It returns false if no token was produced (a comment was skipped or the
// character was rejected).
func (s *Scanner) scanOperator() bool {
	ch := s.ch
	s.nextch()

	switch ch {
	case '(':
		s.emit(LeftParen, nil)
	case ')':
		s.emit(RightParen, nil)
	case '{':
		s.emit(LeftBrace, nil)
	case '}':
		s.emit(RightBrace, nil)
	case ',':
		s.emit(Comma, nil)
	case '.':
		s.emit(Dot, nil)
	case '-':
		s.emit(Minus, nil)
	case '+':
		s.emit(Plus, nil)
	case ';':
		s.emit(Semicolon, nil)
	case '*':
		s.emit(Star, nil)
	case '!':
		s.emit(s.pick('=', BangEqual, Bang), nil)
	case '=':
		s.emit(s.pick('=', EqualEqual, Equal), nil)
	case '<':
		s.emit(s.pick('=', LessEqual, Less), nil)
	case '>':
		s.emit(s.pick('=', GreaterEqual, Greater), nil)
	case '/':
		if s.ch == '/' {
			s.skipLineComment()
			return false
		}
		s.emit(Slash, nil)
	default:
		s.error("Unexpected character.")
		return false
	}
	return true
}

// pick consumes the current character and returns two if it equals next;
// otherwise it returns one.
func (s *Scanner) pick(next rune, two, one TokenType) TokenType {
	if s.ch == next {
		s.nextch()
		return two
	}
	return one
}

// skipLineComment skips a line comment up to, not including, the newline.
func (s *Scanner) skipLineComment() {
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}
