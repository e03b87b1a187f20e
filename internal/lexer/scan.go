package lexer

import (
	"fmt"

	"github.com/tek-lang/tek/internal/token"
)

// lineScanner recognises lexemes from the first non-whitespace column of a
// single line to its end. It never looks past the line it was constructed
// for: strings and comments are single-line by contract.
type lineScanner struct {
	line      string
	lineIdx   int
	pos       int
	lastError string
}

func (s *lineScanner) pb(col int) token.Position {
	return token.Position{Line: s.lineIdx, Column: col}
}

func (s *lineScanner) span(start, end int) token.Span {
	return token.Span{Start: s.pb(start), End: s.pb(end)}
}

// next returns the next token. ok is false once the line is exhausted.
// When a '#' comment is encountered, it is returned via the comment
// pointer and nothing else is produced for the remainder of the line.
func (s *lineScanner) next() (tok token.Token, comment *token.Token, ok bool) {
	if s.pos >= len(s.line) {
		return token.Token{}, nil, false
	}

	ch := s.line[s.pos]

	switch {
	case ch == ' ' || ch == '\t':
		s.pos++
		return s.next()

	case ch == '#':
		c := token.Token{
			Kind:   token.COMMENT,
			Lexeme: s.line[s.pos:],
			Span:   s.span(s.pos, len(s.line)),
		}
		s.pos = len(s.line)
		return token.Token{}, &c, true

	case ch == '\'':
		return s.scanString(), nil, true

	case ch >= '0' && ch <= '9':
		return s.scanNumber(), nil, true

	case isIdentStart(ch):
		return s.scanWord(), nil, true

	default:
		if kind, isChar := token.CHAR_TOKENS[ch]; isChar {
			start := s.pos
			s.pos++
			return token.Token{Kind: kind, Lexeme: string(ch), Span: s.span(start, s.pos)}, nil, true
		}
		return s.scanOperator(ch)
	}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentCont(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// scanOperator handles bytes that may start a one- or two-character
// operator not already covered by CHAR_TOKENS: = == < <= > >= * ** /.
func (s *lineScanner) scanOperator(ch byte) (token.Token, *token.Token, bool) {
	start := s.pos
	next := byte(0)
	if s.pos+1 < len(s.line) {
		next = s.line[s.pos+1]
	}

	two := func(kind token.LexicalToken) (token.Token, *token.Token, bool) {
		s.pos += 2
		return token.Token{Kind: kind, Lexeme: s.line[start:s.pos], Span: s.span(start, s.pos)}, nil, true
	}
	one := func(kind token.LexicalToken) (token.Token, *token.Token, bool) {
		s.pos++
		return token.Token{Kind: kind, Lexeme: s.line[start:s.pos], Span: s.span(start, s.pos)}, nil, true
	}

	switch ch {
	case '=':
		if next == '=' {
			return two(token.EQ)
		}
		return one(token.ASSIGN)
	case '<':
		if next == '=' {
			return two(token.LTE)
		}
		return one(token.LT)
	case '>':
		if next == '=' {
			return two(token.GTE)
		}
		return one(token.GT)
	case '*':
		if next == '*' {
			return two(token.STARSTAR)
		}
		return one(token.STAR)
	case '/':
		return one(token.SLASH)
	case '!':
		if next == '=' {
			return two(token.NEQ)
		}
		s.pos++
		s.lastError = fmt.Sprintf("unexpected character %q", ch)
		return token.Token{Kind: token.ILLEGAL, Span: s.span(start, s.pos)}, nil, true
	default:
		s.pos++
		s.lastError = fmt.Sprintf("unexpected character %q", ch)
		return token.Token{Kind: token.ILLEGAL, Span: s.span(start, s.pos)}, nil, true
	}
}

func (s *lineScanner) scanNumber() token.Token {
	start := s.pos
	for s.pos < len(s.line) && (isDigit(s.line[s.pos]) || s.line[s.pos] == '_') {
		s.pos++
	}
	if s.pos < len(s.line) && s.line[s.pos] == '.' && s.pos+1 < len(s.line) && isDigit(s.line[s.pos+1]) {
		s.pos++
		for s.pos < len(s.line) && (isDigit(s.line[s.pos]) || s.line[s.pos] == '_') {
			s.pos++
		}
	}
	return token.Token{Kind: token.NUMBER, Lexeme: s.line[start:s.pos], Span: s.span(start, s.pos)}
}

func (s *lineScanner) scanString() token.Token {
	start := s.pos
	s.pos++ // opening quote
	for s.pos < len(s.line) {
		ch := s.line[s.pos]
		if ch == '\\' && s.pos+1 < len(s.line) {
			s.pos += 2
			continue
		}
		if ch == '\'' {
			s.pos++
			return token.Token{Kind: token.STRING, Lexeme: s.line[start:s.pos], Span: s.span(start, s.pos)}
		}
		s.pos++
	}
	// Unterminated: record, advance to line end, continue scanning.
	s.lastError = "unterminated string literal"
	tok := token.Token{Kind: token.ILLEGAL, Lexeme: s.line[start:s.pos], Span: s.span(start, s.pos)}
	return tok
}

// scanWord scans [A-Za-z_]\w* and, if the lexeme is "is", attempts the
// extended match for "is not" / "is less than" / "is greater than" before
// falling back to the plain "is" keyword.
func (s *lineScanner) scanWord() token.Token {
	start := s.pos
	s.pos++
	for s.pos < len(s.line) && isIdentCont(s.line[s.pos]) {
		s.pos++
	}
	word := s.line[start:s.pos]

	if word == "is" {
		if tok, ok := s.tryMultiWordComparison(start); ok {
			return tok
		}
	}

	kind, isKeyword := token.WORD_TOKENS[word]
	if !isKeyword {
		kind = token.IDENTIFIER
	}
	return token.Token{Kind: kind, Lexeme: word, Span: s.span(start, s.pos)}
}

// tryMultiWordComparison matches `is\s+(not|(less|greater)\s+than)`
// starting at start (the 'i' of "is"), consuming through the match on
// success and leaving s.pos untouched on failure.
func (s *lineScanner) tryMultiWordComparison(start int) (token.Token, bool) {
	savedPos := s.pos

	restore := func() (token.Token, bool) {
		s.pos = savedPos
		return token.Token{}, false
	}

	n, ok := s.skipHorizontalSpace(s.pos)
	if !ok {
		return restore()
	}
	cursor := n

	word, next := s.readWordAt(cursor)
	switch word {
	case "not":
		s.pos = next
		return token.Token{Kind: token.IS_NOT, Lexeme: s.line[start:s.pos], Span: s.span(start, s.pos)}, true

	case "less", "greater":
		m, ok := s.skipHorizontalSpace(next)
		if !ok {
			return restore()
		}
		word2, next2 := s.readWordAt(m)
		if word2 != "than" {
			return restore()
		}
		s.pos = next2
		kind := token.IS_LESS_THAN
		if word == "greater" {
			kind = token.IS_GREATER_THAN
		}
		return token.Token{Kind: kind, Lexeme: s.line[start:s.pos], Span: s.span(start, s.pos)}, true

	default:
		return restore()
	}
}

// skipHorizontalSpace requires at least one space/tab at pos and returns
// the index of the next non-space byte. ok is false if there is no
// horizontal whitespace at pos (the multi-word match requires separation).
func (s *lineScanner) skipHorizontalSpace(pos int) (int, bool) {
	if pos >= len(s.line) || (s.line[pos] != ' ' && s.line[pos] != '\t') {
		return pos, false
	}
	for pos < len(s.line) && (s.line[pos] == ' ' || s.line[pos] == '\t') {
		pos++
	}
	return pos, true
}

// readWordAt reads a [A-Za-z_]\w* word starting at pos, returning the word
// (empty if pos doesn't start an identifier) and the index after it.
func (s *lineScanner) readWordAt(pos int) (string, int) {
	if pos >= len(s.line) || !isIdentStart(s.line[pos]) {
		return "", pos
	}
	start := pos
	pos++
	for pos < len(s.line) && isIdentCont(s.line[pos]) {
		pos++
	}
	return s.line[start:pos], pos
}
