package spylang

import (
	"fmt"
	"strconv"
)

// Lexer scans SpyLang source into tokens. It is byte-oriented; source is
// expected to be UTF-8 but all syntax-significant characters are ASCII.
type Lexer struct {
	src    string
	start  int // start index of current token
	cur    int // current index
	line   int // 1-based
	col    int // 0-based column within line
	tokens []Token

	// precise token start position
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:  src,
		line: 1,
		col:  0,
	}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekN(n int) (byte, bool) {
	idx := l.cur + n
	if idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) rewindToStart() {
	// Rewind stays within the current token; line/col must move back with
	// cur or the dispatch byte gets counted twice.
	l.cur = l.start
	l.line = l.tokStartLine
	l.col = l.tokStartCol
}

func (l *Lexer) addToken(tt TokenType, lit interface{}) Token {
	lex := l.src[l.start:l.cur]
	tok := Token{
		Type:    tt,
		Lexeme:  lex,
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	return tok
}

func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\r', '\n', '\t':
			l.advance()
			l.start = l.cur
		default:
			return
		}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

func (l *Lexer) illegalErr(format string, args ...interface{}) *Error {
	return &Error{Kind: DiagIllegalChar, Msg: fmt.Sprintf(format, args...), Line: l.tokStartLine, Col: l.tokStartCol}
}

func (l *Lexer) expectedErr(format string, args ...interface{}) *Error {
	return &Error{Kind: DiagExpected, Msg: fmt.Sprintf(format, args...), Line: l.tokStartLine, Col: l.tokStartCol}
}

// scanString parses a double-quoted string literal with \n \t \\ \" escapes.
func (l *Lexer) scanString() (string, *Error) {
	// consume the opening quote
	l.advance()

	var out []byte
	for !l.isAtEnd() {
		ch, _ := l.advance()
		if ch == '"' {
			return string(out), nil
		}
		if ch == '\\' {
			esc, ok := l.advance()
			if !ok {
				return "", l.expectedErr("unfinished escape sequence in string")
			}
			switch esc {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case '\\':
				out = append(out, '\\')
			case '"':
				out = append(out, '"')
			default:
				return "", l.illegalErr("invalid escape sequence: \\%c", esc)
			}
			continue
		}
		if ch == '\n' {
			return "", l.expectedErr("string was not terminated before end of line")
		}
		out = append(out, ch)
	}
	return "", l.expectedErr("string was not terminated")
}

// scanIdentifier parses [A-Za-z_][A-Za-z0-9_]*
func (l *Lexer) scanIdentifier() string {
	for {
		b, ok := l.peek()
		if !ok || !isAlphaNum(b) {
			break
		}
		l.advance()
	}
	return l.src[l.start:l.cur]
}

// scanNumber parses an integer or float. A '.' is consumed only when the next
// byte is a digit, so "1..10" lexes as INT RANGE INT.
func (l *Lexer) scanNumber() (TokenType, interface{}, *Error) {
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}

	sawDot := false
	if b, ok := l.peek(); ok && b == '.' {
		if b2, ok2 := l.peekN(1); ok2 && isDigit(b2) {
			l.advance() // consume '.'
			sawDot = true
			for {
				b, ok := l.peek()
				if !ok || !isDigit(b) {
					break
				}
				l.advance()
			}
		}
	}

	lex := l.src[l.start:l.cur]
	if !sawDot {
		v, convErr := strconv.ParseInt(lex, 10, 64)
		if convErr != nil {
			return ILLEGAL, nil, l.illegalErr("invalid integer literal %q", lex)
		}
		return INT, v, nil
	}
	vf, convErr := strconv.ParseFloat(lex, 64)
	if convErr != nil {
		return ILLEGAL, nil, l.illegalErr("invalid float literal %q", lex)
	}
	return FLOAT, vf, nil
}

// ignoreUntilNewline eats until '\n' or EOF.
func (l *Lexer) ignoreUntilNewline() {
	for {
		b, ok := l.peek()
		if !ok || b == '\n' {
			return
		}
		l.advance()
	}
}

func (l *Lexer) scanToken() (Token, *Error) {
	for {
		l.skipWhitespace()
		l.tokStartLine = l.line
		l.tokStartCol = l.col
		l.start = l.cur

		if l.isAtEnd() {
			return l.addToken(EOF, nil), nil
		}

		ch, _ := l.advance()

		switch ch {
		case '(':
			return l.addToken(LROUND, "("), nil
		case ')':
			return l.addToken(RROUND, ")"), nil
		case '[':
			return l.addToken(LSQUARE, "["), nil
		case ']':
			return l.addToken(RSQUARE, "]"), nil
		case '{':
			return l.addToken(LCURLY, "{"), nil
		case '}':
			return l.addToken(RCURLY, "}"), nil
		case ',':
			return l.addToken(COMMA, ","), nil
		case ';':
			return l.addToken(SEMI, ";"), nil
		case '+':
			return l.addToken(PLUS, "+"), nil
		case '-':
			return l.addToken(MINUS, "-"), nil
		case '*':
			return l.addToken(MULT, "*"), nil
		case '/':
			return l.addToken(DIV, "/"), nil
		case '%':
			return l.addToken(MOD, "%"), nil
		case '=':
			if b, ok := l.peek(); ok && b == '=' {
				l.advance()
				return l.addToken(EQEQ, "=="), nil
			}
			return l.addToken(EQUALS, "="), nil
		case '!':
			if b, ok := l.peek(); ok && b == '=' {
				l.advance()
				return l.addToken(NOTEQ, "!="), nil
			}
			return Token{}, l.expectedErr("'=' (after '!')")
		case '<':
			if b, ok := l.peek(); ok && b == '=' {
				l.advance()
				return l.addToken(LESSEQ, "<="), nil
			}
			return l.addToken(LESS, "<"), nil
		case '>':
			if b, ok := l.peek(); ok && b == '=' {
				l.advance()
				return l.addToken(GREATEREQ, ">="), nil
			}
			return l.addToken(GREATER, ">"), nil
		case '.':
			if b, ok := l.peek(); ok && b == '.' {
				l.advance()
				return l.addToken(RANGE, ".."), nil
			}
			return Token{}, l.illegalErr("'.'")
		case '#':
			l.ignoreUntilNewline()
			continue
		case '"':
			l.rewindToStart()
			text, err := l.scanString()
			if err != nil {
				return Token{}, err
			}
			return l.addToken(STRING, text), nil
		}

		if isDigit(ch) {
			l.rewindToStart()
			tt, lit, err := l.scanNumber()
			if err != nil {
				return Token{}, err
			}
			return l.addToken(tt, lit), nil
		}

		if isAlpha(ch) {
			l.rewindToStart()
			lex := l.scanIdentifier()
			if tt, ok := keywords[lex]; ok {
				switch tt {
				case NULL:
					return l.addToken(NULL, nil), nil
				case BOOLEAN:
					return l.addToken(BOOLEAN, lex == "true"), nil
				default:
					return l.addToken(tt, lex), nil
				}
			}
			return l.addToken(IDENT, lex), nil
		}

		return Token{}, l.illegalErr("'%c'", ch)
	}
}

// Scan tokenizes the entire source and returns tokens (EOF included).
func (l *Lexer) Scan() ([]Token, *Error) {
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return l.tokens, nil
		}
	}
}
