package lexer

import "testing"

func TestSliceCursor(t *testing.T) {
	c := NewSliceCursor(Tokenize("a := 1"))

	if got := c.Peek(1).Type; got != TokenDefine {
		t.Fatalf("Peek(1): expected :=, got %s", got)
	}
	if got := c.Next().Literal; got != "a" {
		t.Fatalf("Next: expected a, got %q", got)
	}
	c.Next()
	c.Next()
	for i := 0; i < 3; i++ {
		if tok := c.Next(); tok.Type != TokenEOF {
			t.Fatalf("expected EOF after exhaustion, got %s", tok.Type)
		}
	}
	if got := c.Peek(5).Type; got != TokenEOF {
		t.Errorf("Peek past end: expected EOF, got %s", got)
	}
}

func TestSliceCursorAppendsEOF(t *testing.T) {
	toks := []Token{{Type: TokenIdent, Literal: "abc", Line: 1, Column: 1}}
	c := NewSliceCursor(toks)
	c.Next()
	eof := c.Peek(0)
	if eof.Type != TokenEOF {
		t.Fatalf("expected synthesized EOF, got %s", eof.Type)
	}
	if eof.Column != 4 {
		t.Errorf("expected EOF column 4, got %d", eof.Column)
	}
	if len(toks) != 1 {
		t.Errorf("caller's slice was modified")
	}
}

func TestStreamCursorMatchesTokenize(t *testing.T) {
	input := `if x >= 10 { fmt.Println("big"); } else { x += 1; }`
	want := Tokenize(input)
	c := NewCursor(New(input))

	if got := c.Peek(2).Type; got != want[2].Type {
		t.Fatalf("Peek(2): expected %s, got %s", want[2].Type, got)
	}
	for i, w := range want {
		got := c.Next()
		if got != w {
			t.Fatalf("token %d: expected %+v, got %+v", i, w, got)
		}
	}
	if tok := c.Next(); tok.Type != TokenEOF {
		t.Errorf("expected EOF after end, got %s", tok.Type)
	}
	if tok := c.Peek(3); tok.Type != TokenEOF {
		t.Errorf("expected EOF lookahead after end, got %s", tok.Type)
	}
}
