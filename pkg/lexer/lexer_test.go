package lexer

import "testing"

type expectedToken struct {
	expectedType    TokenType
	expectedLiteral string
}

func checkTokens(t *testing.T, input string, tests []expectedToken) {
	t.Helper()
	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNextToken(t *testing.T) {
	input := `var x int = 42; y := x + 1; return y;`

	checkTokens(t, input, []expectedToken{
		{TokenVar, "var"},
		{TokenIdent, "x"},
		{TokenInt_, "int"},
		{TokenAssign, "="},
		{TokenInt, "42"},
		{TokenSemicolon, ";"},
		{TokenIdent, "y"},
		{TokenDefine, ":="},
		{TokenIdent, "x"},
		{TokenPlus, "+"},
		{TokenInt, "1"},
		{TokenSemicolon, ";"},
		{TokenReturn, "return"},
		{TokenIdent, "y"},
		{TokenSemicolon, ";"},
		{TokenEOF, ""},
	})
}

func TestOperators(t *testing.T) {
	input := `+ - * / % = := += -= ++ -- == != < <= > >= && || ! : & |`

	checkTokens(t, input, []expectedToken{
		{TokenPlus, "+"},
		{TokenMinus, "-"},
		{TokenStar, "*"},
		{TokenSlash, "/"},
		{TokenPercent, "%"},
		{TokenAssign, "="},
		{TokenDefine, ":="},
		{TokenPlusAssign, "+="},
		{TokenMinusAssign, "-="},
		{TokenInc, "++"},
		{TokenDec, "--"},
		{TokenEq, "=="},
		{TokenNe, "!="},
		{TokenLt, "<"},
		{TokenLe, "<="},
		{TokenGt, ">"},
		{TokenGe, ">="},
		{TokenAnd, "&&"},
		{TokenOr, "||"},
		{TokenNot, "!"},
		{TokenColon, ":"},
		{TokenIllegal, "&"},
		{TokenIllegal, "|"},
		{TokenEOF, ""},
	})
}

func TestLiterals(t *testing.T) {
	input := `42 3.14 "hi \"there\"" 'a' '\n' true false 7.`

	checkTokens(t, input, []expectedToken{
		{TokenInt, "42"},
		{TokenFloat, "3.14"},
		{TokenString, `hi \"there\"`},
		{TokenRune, "a"},
		{TokenRune, `\n`},
		{TokenBool, "true"},
		{TokenBool, "false"},
		{TokenInt, "7"},
		{TokenIllegal, "."},
		{TokenEOF, ""},
	})
}

func TestKeywordsAndTypes(t *testing.T) {
	input := `switch case default while for if else break continue int float64 string bool rune`

	checkTokens(t, input, []expectedToken{
		{TokenSwitch, "switch"},
		{TokenCase, "case"},
		{TokenDefault, "default"},
		{TokenWhile, "while"},
		{TokenFor, "for"},
		{TokenIf, "if"},
		{TokenElse, "else"},
		{TokenBreak, "break"},
		{TokenContinue, "continue"},
		{TokenInt_, "int"},
		{TokenFloat64, "float64"},
		{TokenString_, "string"},
		{TokenBool_, "bool"},
		{TokenRune_, "rune"},
		{TokenEOF, ""},
	})
}

func TestEmbedded(t *testing.T) {
	input := `fmt.Println(strconv.Atoi("1")) x.`

	checkTokens(t, input, []expectedToken{
		{TokenEmbedded, "fmt.Println"},
		{TokenLParen, "("},
		{TokenEmbedded, "strconv.Atoi"},
		{TokenLParen, "("},
		{TokenString, "1"},
		{TokenRParen, ")"},
		{TokenRParen, ")"},
		{TokenIdent, "x"},
		{TokenIllegal, "."},
		{TokenEOF, ""},
	})
}

func TestUnterminatedString(t *testing.T) {
	l := New("\"abc\nx")
	tok := l.NextToken()
	if tok.Type != TokenIllegal {
		t.Fatalf("expected ILLEGAL, got %s", tok.Type)
	}
	if tok.Literal != `"abc` {
		t.Errorf("literal wrong: got %q", tok.Literal)
	}
	if next := l.NextToken(); next.Type != TokenIdent || next.Line != 2 {
		t.Errorf("expected IDENT on line 2, got %s on line %d", next.Type, next.Line)
	}
}

func TestComments(t *testing.T) {
	input := `// line comment
x /* block
comment */ y`

	checkTokens(t, input, []expectedToken{
		{TokenIdent, "x"},
		{TokenIdent, "y"},
		{TokenEOF, ""},
	})
}

func TestPositions(t *testing.T) {
	input := "x := 1\n  y"
	toks := Tokenize(input)

	want := []Pos{
		{Line: 1, Column: 1, Offset: 0},
		{Line: 1, Column: 3, Offset: 2},
		{Line: 1, Column: 6, Offset: 5},
		{Line: 2, Column: 3, Offset: 9},
	}
	for i, p := range want {
		if got := toks[i].Pos(); got != p {
			t.Errorf("token %d (%q): expected %+v, got %+v", i, toks[i].Literal, p, got)
		}
	}
	if last := toks[len(toks)-1]; last.Type != TokenEOF || last.Offset != len(input) {
		t.Errorf("expected EOF at offset %d, got %s at %d", len(input), last.Type, last.Offset)
	}
}

func TestIncDecSplitting(t *testing.T) {
	checkTokens(t, "i++ +=1 - -x a---b", []expectedToken{
		{TokenIdent, "i"},
		{TokenInc, "++"},
		{TokenPlusAssign, "+="},
		{TokenInt, "1"},
		{TokenMinus, "-"},
		{TokenMinus, "-"},
		{TokenIdent, "x"},
		{TokenIdent, "a"},
		{TokenDec, "--"},
		{TokenMinus, "-"},
		{TokenIdent, "b"},
		{TokenEOF, ""},
	})
}

func TestNonASCII(t *testing.T) {
	checkTokens(t, "café := é © x", []expectedToken{
		{TokenIdent, "café"},
		{TokenDefine, ":="},
		{TokenIdent, "é"},
		{TokenIllegal, "©"},
		{TokenIdent, "x"},
		{TokenEOF, ""},
	})

	// columns count bytes
	toks := Tokenize("é©x")
	if toks[0].Type != TokenIdent || toks[0].Literal != "é" {
		t.Fatalf("expected identifier é, got %s %q", toks[0].Type, toks[0].Literal)
	}
	if toks[1].Type != TokenIllegal || toks[1].Column != 3 || toks[1].Offset != 2 {
		t.Errorf("expected ILLEGAL at column 3, got %s at %+v", toks[1].Type, toks[1].Pos())
	}
	if toks[2].Literal != "x" || toks[2].Column != 5 {
		t.Errorf("expected x at column 5, got %q at %+v", toks[2].Literal, toks[2].Pos())
	}
}

func TestInvalidUTF8(t *testing.T) {
	checkTokens(t, "a \xff b", []expectedToken{
		{TokenIdent, "a"},
		{TokenIllegal, "\xff"},
		{TokenIdent, "b"},
		{TokenEOF, ""},
	})
}
