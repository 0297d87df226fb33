// Package lexer turns golite source text into the token stream consumed by
// the parser.
package lexer

import (
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes golite source code
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // next reading position
	ch      byte // current byte; the first byte of a multi-byte rune
	line    int
	column  int
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.column++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// currentRune decodes the character starting at pos and its width in bytes.
// Invalid UTF-8 decodes as utf8.RuneError of width 1.
func (l *Lexer) currentRune() (rune, int) {
	if l.ch < utf8.RuneSelf {
		return rune(l.ch), 1
	}
	return utf8.DecodeRuneInString(l.input[l.pos:])
}

func (l *Lexer) peekRune() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

// advance skips width bytes. Columns count bytes.
func (l *Lexer) advance(width int) {
	for i := 0; i < width; i++ {
		l.readChar()
	}
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()
	l.skipComments()
	l.skipWhitespace()

	tok := Token{Line: l.line, Column: l.column, Offset: l.pos}

	switch l.ch {
	case 0:
		tok.Type = TokenEOF
		tok.Literal = ""
		tok.Offset = len(l.input)
	case '+':
		if l.peekChar() == '+' {
			tok = l.twoCharToken(tok, '+', TokenInc, TokenPlus)
		} else {
			tok = l.twoCharToken(tok, '=', TokenPlusAssign, TokenPlus)
		}
	case '-':
		if l.peekChar() == '-' {
			tok = l.twoCharToken(tok, '-', TokenDec, TokenMinus)
		} else {
			tok = l.twoCharToken(tok, '=', TokenMinusAssign, TokenMinus)
		}
	case '*':
		tok = l.newToken(tok, TokenStar)
	case '/':
		tok = l.newToken(tok, TokenSlash)
	case '%':
		tok = l.newToken(tok, TokenPercent)
	case '=':
		tok = l.twoCharToken(tok, '=', TokenEq, TokenAssign)
	case '!':
		tok = l.twoCharToken(tok, '=', TokenNe, TokenNot)
	case '<':
		tok = l.twoCharToken(tok, '=', TokenLe, TokenLt)
	case '>':
		tok = l.twoCharToken(tok, '=', TokenGe, TokenGt)
	case ':':
		tok = l.twoCharToken(tok, '=', TokenDefine, TokenColon)
	case '&':
		tok = l.twoCharToken(tok, '&', TokenAnd, TokenIllegal)
	case '|':
		tok = l.twoCharToken(tok, '|', TokenOr, TokenIllegal)
	case '(':
		tok = l.newToken(tok, TokenLParen)
	case ')':
		tok = l.newToken(tok, TokenRParen)
	case '{':
		tok = l.newToken(tok, TokenLBrace)
	case '}':
		tok = l.newToken(tok, TokenRBrace)
	case ';':
		tok = l.newToken(tok, TokenSemicolon)
	case ',':
		tok = l.newToken(tok, TokenComma)
	case '"':
		return l.readQuoted(tok, '"', TokenString)
	case '\'':
		return l.readQuoted(tok, '\'', TokenRune)
	default:
		r, width := l.currentRune()
		if isLetter(r) {
			tok.Literal = l.readIdentifier()
			tok.Type = LookupIdent(tok.Literal)
			if tok.Type == TokenIdent && l.ch == '.' && isLetter(l.peekRune()) {
				tok.Literal += l.readQualifier()
				tok.Type = TokenEmbedded
			}
			return tok
		} else if isDigit(l.ch) {
			tok.Literal, tok.Type = l.readNumber()
			return tok
		}
		// one ILLEGAL token per character, however many bytes it spans
		tok.Type = TokenIllegal
		tok.Literal = l.input[l.pos : l.pos+width]
		l.advance(width)
		return tok
	}

	l.readChar()
	return tok
}

// Tokenize scans the whole input, including the trailing EOF token.
func Tokenize(input string) []Token {
	l := New(input)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == TokenEOF {
			return toks
		}
	}
}

func (l *Lexer) newToken(tok Token, tokenType TokenType) Token {
	tok.Type = tokenType
	tok.Literal = string(l.ch)
	return tok
}

// twoCharToken emits long when the current character is followed by next,
// otherwise short.
func (l *Lexer) twoCharToken(tok Token, next byte, long, short TokenType) Token {
	if l.peekChar() == next {
		first := l.ch
		l.readChar()
		tok.Type = long
		tok.Literal = string([]byte{first, l.ch})
		return tok
	}
	return l.newToken(tok, short)
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipComments() {
	for l.ch == '/' {
		if l.peekChar() == '/' {
			// Single-line comment
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			l.skipWhitespace()
		} else if l.peekChar() == '*' {
			// Multi-line comment
			l.readChar() // consume /
			l.readChar() // consume *
			for {
				if l.ch == 0 {
					break
				}
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar() // consume *
					l.readChar() // consume /
					break
				}
				l.readChar()
			}
			l.skipWhitespace()
		} else {
			break
		}
	}
}

func (l *Lexer) readIdentifier() string {
	pos := l.pos
	for {
		r, width := l.currentRune()
		if !isLetter(r) && !isDigit(l.ch) {
			break
		}
		l.advance(width)
	}
	return l.input[pos:l.pos]
}

// readQualifier reads the ".name.name" tail of an embedded host reference.
func (l *Lexer) readQualifier() string {
	pos := l.pos
	for l.ch == '.' && isLetter(l.peekRune()) {
		l.readChar() // consume .
		l.readIdentifier()
	}
	return l.input[pos:l.pos]
}

func (l *Lexer) readNumber() (string, TokenType) {
	pos := l.pos
	typ := TokenInt
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		typ = TokenFloat
		l.readChar() // consume .
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[pos:l.pos], typ
}

// readQuoted reads a string or rune literal. The literal text excludes the
// quotes but keeps escape sequences verbatim. A literal left open at end of
// line or input is ILLEGAL.
func (l *Lexer) readQuoted(tok Token, quote byte, typ TokenType) Token {
	l.readChar() // consume opening quote
	pos := l.pos
	for l.ch != quote && l.ch != 0 && l.ch != '\n' {
		if l.ch == '\\' {
			l.readChar() // skip escape char
			if l.ch == 0 {
				break
			}
		}
		l.readChar()
	}
	if l.ch != quote {
		tok.Type = TokenIllegal
		tok.Literal = string(quote) + l.input[pos:l.pos]
		return tok
	}
	tok.Type = typ
	tok.Literal = l.input[pos:l.pos]
	l.readChar() // consume closing quote
	return tok
}

func isLetter(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
