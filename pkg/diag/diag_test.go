package diag

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/raymyers/golite/pkg/parser"
)

func TestFromError(t *testing.T) {
	_, err := parser.ParseString("x := ;\nvar y foo;\n{")
	diags := FromError(err)
	if len(diags) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d: %+v", len(diags), diags)
	}

	want := []struct {
		kind      string
		line, col int
	}{
		{"unexpected_token", 1, 6},
		{"invalid_type", 2, 7},
		{"unterminated", 3, 2},
	}
	for i, w := range want {
		d := diags[i]
		if d.Kind != w.kind || d.Line != w.line || d.Column != w.col {
			t.Errorf("diag %d: expected %s at %d:%d, got %s at %d:%d", i, w.kind, w.line, w.col, d.Kind, d.Line, d.Column)
		}
	}
	if diags[0].Actual != ";" || len(diags[0].Expected) != 1 || diags[0].Expected[0] != "expression" {
		t.Errorf("unexpected details: %+v", diags[0])
	}
}

func TestFromErrorNonParser(t *testing.T) {
	if FromError(nil) != nil {
		t.Errorf("expected nil for nil error")
	}
	diags := FromError(errors.New("boom"))
	if len(diags) != 1 || diags[0].Kind != "error" || diags[0].Message != "boom" {
		t.Errorf("unexpected diagnostics: %+v", diags)
	}
}

func TestSortAndSummary(t *testing.T) {
	diags := []Diagnostic{
		{Kind: "b", Line: 3, Column: 1},
		{Kind: "a", Line: 1, Column: 9},
		{Kind: "a", Line: 1, Column: 2},
	}
	Sort(diags)
	if diags[0].Column != 2 || diags[1].Column != 9 || diags[2].Line != 3 {
		t.Errorf("unexpected order: %+v", diags)
	}
	sum := Summary(diags)
	if sum["a"] != 2 || sum["b"] != 1 {
		t.Errorf("unexpected summary: %v", sum)
	}
}

func TestRenderPlain(t *testing.T) {
	src := "x := 1\n\tvar y int = )\n"
	_, err := parser.ParseString(src)

	var buf bytes.Buffer
	r := NewRenderer("main.gl", src, false)
	if err := r.Render(&buf, FromError(err)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "main.gl:2:14: error: unexpected ')', expected expression\n" +
		"  \tvar y int = )\n" +
		"  \t            ^\n"
	if got := buf.String(); got != want {
		t.Errorf("expected:\n%q\ngot:\n%q", want, got)
	}
}

func TestRenderWithoutSource(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer("", "", true)
	if err := r.Render(&buf, []Diagnostic{{Message: "bad", Line: 4, Column: 2}}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<input>:4:2:") || !strings.Contains(out, "bad") {
		t.Errorf("unexpected output %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected a single line without source, got %q", out)
	}
}
