package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raymyers/golite/pkg/config"
	"gopkg.in/yaml.v3"
)

func TestVersion(t *testing.T) {
	if version == "" {
		t.Error("version should not be empty")
	}
}

func TestDebugFlagsExist(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)

	expectedFlags := []string{"dparse", "dtokens", "dast", "format", "color", "config", "max-errors", "max-depth"}
	for _, flagName := range expectedFlags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("expected flag --%s to exist", flagName)
		}
	}

	serve, _, err := cmd.Find([]string{"serve"})
	if err != nil || serve.Name() != "serve" {
		t.Fatalf("expected serve subcommand, got %v", err)
	}
	for _, flagName := range []string{"host", "port"} {
		if serve.Flags().Lookup(flagName) == nil {
			t.Errorf("expected serve flag --%s to exist", flagName)
		}
	}
}

// writeSource writes content to a fresh .gl file and returns its path
func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.gl")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

// execute runs the root command with flags reset and no ambient config
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetDebugFlags()
	t.Setenv(config.EnvVar, "")

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestNoArgsShowsHelp(t *testing.T) {
	out, _, err := execute(t)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out, "golite [file]") {
		t.Errorf("expected usage in output, got %q", out)
	}
}

func TestCheckValidFile(t *testing.T) {
	path := writeSource(t, "x := 1\nif x > 0 { fmt.Println(x) }\n")
	out, errOut, err := execute(t, path)
	if err != nil {
		t.Fatalf("expected no error, got %v (%s)", err, errOut)
	}
	if out != "" {
		t.Errorf("expected no stdout, got %q", out)
	}
	if !strings.Contains(errOut, "ok (2 declarations, ") {
		t.Errorf("expected summary, got %q", errOut)
	}
}

func TestDParseFlag(t *testing.T) {
	path := writeSource(t, "var x int = 1+2*3\nwhile x>0{x-=1}")
	out, errOut, err := execute(t, "--dparse", path)
	if err != nil {
		t.Fatalf("expected no error, got %v (%s)", err, errOut)
	}

	want := "var x int = 1 + 2 * 3;\nwhile x > 0 {\n  x -= 1;\n}\n"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestDParseCreatesOutputFile(t *testing.T) {
	path := writeSource(t, "return a || b && c;")
	out, _, err := execute(t, "--dparse", path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	outputPath := parsedOutputFilename(path)
	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("expected output file %s to exist: %v", outputPath, err)
	}
	if string(content) != out {
		t.Errorf("file content %q differs from stdout %q", content, out)
	}
	if !strings.HasSuffix(outputPath, "test.parsed.gl") {
		t.Errorf("unexpected output path %s", outputPath)
	}
}

func TestDParseFlagFileNotFound(t *testing.T) {
	_, errOut, err := execute(t, "--dparse", "nonexistent.gl")
	if err == nil {
		t.Error("expected error for nonexistent file, got nil")
	}
	if !strings.Contains(errOut, "error reading") {
		t.Errorf("expected read error in output, got %q", errOut)
	}
}

func TestParsedOutputFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"test.gl", "test.parsed.gl"},
		{"foo/bar.gl", "foo/bar.parsed.gl"},
		{"noext", "noext.parsed.gl"},
		{"prog.txt", "prog.txt.parsed.gl"},
	}

	for _, tt := range tests {
		got := parsedOutputFilename(tt.input)
		if got != tt.expected {
			t.Errorf("parsedOutputFilename(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestDTokensFlag(t *testing.T) {
	path := writeSource(t, "x := 1")
	out, _, err := execute(t, "--dtokens", path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, want := range []string{"1:1\tIDENT\tx\n", "1:3\t:=\t:=\n", "1:6\tINT\t1\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in token dump, got %q", want, out)
		}
	}
}

func TestDTokensIgnoresSyntaxErrors(t *testing.T) {
	path := writeSource(t, "x := ;")
	if _, _, err := execute(t, "--dtokens", path); err != nil {
		t.Errorf("token dump should not parse, got %v", err)
	}
}

func TestDASTJSON(t *testing.T) {
	path := writeSource(t, "f(1)")
	out, _, err := execute(t, "--dast", path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var tree map[string]any
	if err := json.Unmarshal([]byte(out), &tree); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if tree["kind"] != "Program" {
		t.Errorf("expected Program root, got %v", tree["kind"])
	}
	if !strings.Contains(out, `"Call"`) {
		t.Errorf("expected a Call node, got %s", out)
	}
}

func TestDASTYAML(t *testing.T) {
	path := writeSource(t, "x := 1")
	out, _, err := execute(t, "--dast", "--format", "yaml", path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var tree map[string]any
	if err := yaml.Unmarshal([]byte(out), &tree); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, out)
	}
	if tree["kind"] != "Program" {
		t.Errorf("expected Program root, got %v", tree["kind"])
	}
}

func TestDASTSExpr(t *testing.T) {
	path := writeSource(t, "a + b * c")
	out, _, err := execute(t, "--dast", "--format", "sexpr", path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := "(Program (ExprStmt (AddSub + (Ident a) (MulDivMod * (Ident b) (Ident c)))))\n"
	if out != want {
		t.Errorf("expected nested product, got %q", out)
	}
}

func TestFormatRejectsUnknown(t *testing.T) {
	var f outputFormat
	if err := f.Set("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
	if err := f.Set("yaml"); err != nil || f.String() != "yaml" {
		t.Errorf("expected yaml, got %q (%v)", f, err)
	}
	if f.Type() != "format" {
		t.Errorf("unexpected type name %q", f.Type())
	}
}

func TestSyntaxErrorsReported(t *testing.T) {
	path := writeSource(t, "x := 1\ny := (2 + ;\nz := 3\n")
	out, errOut, err := execute(t, "--color", "never", "--dparse", path)
	if err == nil {
		t.Fatal("expected error for invalid source")
	}
	if out != "" {
		t.Errorf("expected nothing on stdout, got %q", out)
	}

	want := path + ":2:11: error: unexpected ';', expected expression\n  y := (2 + ;\n            ^\n"
	if !strings.HasPrefix(errOut, want) {
		t.Errorf("expected diagnostic %q, got %q", want, errOut)
	}
	if _, statErr := os.Stat(parsedOutputFilename(path)); !os.IsNotExist(statErr) {
		t.Errorf("no output file should be written on failure")
	}
}

func TestMaxErrorsFlag(t *testing.T) {
	path := writeSource(t, "} } } } }")
	_, errOut, err := execute(t, "--color", "never", "--max-errors", "2", path)
	if err == nil || !strings.Contains(err.Error(), "3 errors") {
		t.Fatalf("expected three errors, got %v", err)
	}
	if !strings.Contains(errOut, "too many errors") {
		t.Errorf("expected too-many-errors diagnostic, got %q", errOut)
	}
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "golite.toml")
	if err := os.WriteFile(cfgPath, []byte("[parser]\nmax_depth = 4\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	path := writeSource(t, "x := ((((((1))))))")

	_, errOut, err := execute(t, "--color", "never", "--config", cfgPath, path)
	if err == nil {
		t.Fatal("expected nesting limit error")
	}
	if !strings.Contains(errOut, "nesting") {
		t.Errorf("expected nesting diagnostic, got %q", errOut)
	}

	_, _, err = execute(t, "--config", filepath.Join(dir, "missing.toml"), path)
	if err == nil {
		t.Error("expected error for missing config file")
	}
}

func resetDebugFlags() {
	dParse = false
	dTokens = false
	dAST = false
	astFormat = formatJSON
	colorMode = "auto"
	configPath = ""
	maxErrors = 0
	maxDepth = 0
	serveHost = ""
	servePort = 0
}

func TestNormalizeFlags(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "single dash dparse",
			input:    []string{"-dparse", "test.gl"},
			expected: []string{"--dparse", "test.gl"},
		},
		{
			name:     "double dash unchanged",
			input:    []string{"--dast", "test.gl"},
			expected: []string{"--dast", "test.gl"},
		},
		{
			name:     "multiple single dash flags",
			input:    []string{"-dtokens", "-dast", "test.gl"},
			expected: []string{"--dtokens", "--dast", "test.gl"},
		},
		{
			name:     "other flags unchanged",
			input:    []string{"-h", "--format", "yaml", "test.gl"},
			expected: []string{"-h", "--format", "yaml", "test.gl"},
		},
		{
			name:     "empty args",
			input:    []string{},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeFlags(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("len mismatch: got %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("arg[%d]: got %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}
