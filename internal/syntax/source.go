package syntax

import "unicode/utf8"

// source is a character reader with line tracking.
// The whole program text is held in memory.
type source struct {
	buf string

	line  int  // current line number (1-based)
	ch    rune // current character, -1 at end of input
	pos   int  // byte offset of ch
	next  int  // byte offset of the character after ch
	start int  // byte offset where the current lexeme begins
}

// init resets s to read buf and loads the first character.
func (s *source) init(buf string) {
	s.buf = buf
	s.line = 1
	s.ch = 0
	s.pos = 0
	s.next = 0
	s.start = 0
	s.nextch()
}

// nextch advances to the next character.
// The line counter moves when the newline itself is consumed, so a token
// is stamped with the line on which it ends.
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
	}
	s.pos = s.next
	if s.pos >= len(s.buf) {
		s.ch = -1
		return
	}
	r, w := utf8.DecodeRuneInString(s.buf[s.pos:])
	s.ch = r
	s.next = s.pos + w
}

// peek returns the character after ch without consuming anything.
func (s *source) peek() rune {
	if s.ch < 0 || s.next >= len(s.buf) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(s.buf[s.next:])
	return r
}

// lexeme returns the text scanned since the last call to mark.
func (s *source) lexeme() string {
	return s.buf[s.start:s.pos]
}

// mark records the start of a new lexeme at the current character.
func (s *source) mark() {
	s.start = s.pos
}

// isLetter reports whether r may start an identifier (a-z, A-Z or _).
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

// isDigit reports whether r is a decimal digit (0-9).
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isWhitespace reports whether r is skipped between tokens.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}
