package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenIllegal

	// Literals
	TokenIdent    // main, foo, x
	TokenInt      // 42
	TokenFloat    // 3.14
	TokenString   // "hello"
	TokenRune     // 'a'
	TokenBool     // true, false
	TokenEmbedded // fmt.Println

	// Keywords
	TokenVar      // var
	TokenIf       // if
	TokenElse     // else
	TokenWhile    // while
	TokenFor      // for
	TokenSwitch   // switch
	TokenCase     // case
	TokenDefault  // default
	TokenBreak    // break
	TokenContinue // continue
	TokenReturn   // return

	// Type keywords
	TokenInt_    // int
	TokenFloat64 // float64
	TokenString_ // string
	TokenBool_   // bool
	TokenRune_   // rune

	// Operators
	TokenPlus    // +
	TokenMinus   // -
	TokenStar    // *
	TokenSlash   // /
	TokenPercent // %
	TokenAssign  // =
	TokenDefine  // :=
	TokenEq      // ==
	TokenNe      // !=
	TokenLt      // <
	TokenLe      // <=
	TokenGt      // >
	TokenGe      // >=
	TokenAnd     // &&
	TokenOr      // ||
	TokenNot     // !
	TokenColon   // :

	// Compound assignment operators
	TokenPlusAssign  // +=
	TokenMinusAssign // -=
	TokenInc         // ++
	TokenDec         // --

	// Delimiters
	TokenLParen    // (
	TokenRParen    // )
	TokenLBrace    // {
	TokenRBrace    // }
	TokenSemicolon // ;
	TokenComma     // ,
)

var tokenNames = map[TokenType]string{
	TokenEOF:         "EOF",
	TokenIllegal:     "ILLEGAL",
	TokenIdent:       "IDENT",
	TokenInt:         "INT",
	TokenFloat:       "FLOAT",
	TokenString:      "STRING",
	TokenRune:        "RUNE",
	TokenBool:        "BOOL",
	TokenEmbedded:    "EMBEDDED",
	TokenVar:         "var",
	TokenIf:          "if",
	TokenElse:        "else",
	TokenWhile:       "while",
	TokenFor:         "for",
	TokenSwitch:      "switch",
	TokenCase:        "case",
	TokenDefault:     "default",
	TokenBreak:       "break",
	TokenContinue:    "continue",
	TokenReturn:      "return",
	TokenInt_:        "int",
	TokenFloat64:     "float64",
	TokenString_:     "string",
	TokenBool_:       "bool",
	TokenRune_:       "rune",
	TokenPlus:        "+",
	TokenMinus:       "-",
	TokenStar:        "*",
	TokenSlash:       "/",
	TokenPercent:     "%",
	TokenAssign:      "=",
	TokenDefine:      ":=",
	TokenEq:          "==",
	TokenNe:          "!=",
	TokenLt:          "<",
	TokenLe:          "<=",
	TokenGt:          ">",
	TokenGe:          ">=",
	TokenAnd:         "&&",
	TokenOr:          "||",
	TokenNot:         "!",
	TokenColon:       ":",
	TokenPlusAssign:  "+=",
	TokenMinusAssign: "-=",
	TokenInc:         "++",
	TokenDec:         "--",
	TokenLParen:      "(",
	TokenRParen:      ")",
	TokenLBrace:      "{",
	TokenRBrace:      "}",
	TokenSemicolon:   ";",
	TokenComma:       ",",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTypeKeyword reports whether t names one of the built-in types
func (t TokenType) IsTypeKeyword() bool {
	return t >= TokenInt_ && t <= TokenRune_
}

// Pos is a source position. Line and Column are 1-based, Offset is a byte
// offset into the input.
type Pos struct {
	Line   int
	Column int
	Offset int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
	Offset  int
}

// Pos returns the start position of the token
func (t Token) Pos() Pos {
	return Pos{Line: t.Line, Column: t.Column, Offset: t.Offset}
}

// Text returns the token as it should appear in a diagnostic
func (t Token) Text() string {
	switch t.Type {
	case TokenEOF:
		return "EOF"
	case TokenString:
		return `"` + t.Literal + `"`
	case TokenRune:
		return "'" + t.Literal + "'"
	}
	if t.Literal == "" {
		return t.Type.String()
	}
	return t.Literal
}

// keywords maps keyword strings to token types
var keywords = map[string]TokenType{
	"var":      TokenVar,
	"if":       TokenIf,
	"else":     TokenElse,
	"while":    TokenWhile,
	"for":      TokenFor,
	"switch":   TokenSwitch,
	"case":     TokenCase,
	"default":  TokenDefault,
	"break":    TokenBreak,
	"continue": TokenContinue,
	"return":   TokenReturn,
	"int":      TokenInt_,
	"float64":  TokenFloat64,
	"string":   TokenString_,
	"bool":     TokenBool_,
	"rune":     TokenRune_,
	"true":     TokenBool,
	"false":    TokenBool,
}

// LookupIdent returns the token type for an identifier (keyword or IDENT)
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdent
}
