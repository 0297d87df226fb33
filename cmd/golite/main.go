package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/raymyers/golite/pkg/ast"
	"github.com/raymyers/golite/pkg/config"
	"github.com/raymyers/golite/pkg/diag"
	"github.com/raymyers/golite/pkg/lexer"
	"github.com/raymyers/golite/pkg/logging"
	"github.com/raymyers/golite/pkg/parser"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

var version = "0.1.0"

// Debug flags for dumping intermediate forms
var (
	dParse  bool
	dTokens bool
	dAST    bool
)

// General options
var (
	astFormat  = formatJSON
	colorMode  = "auto"
	configPath string
	maxErrors  int
	maxDepth   int
)

// outputFormat selects the encoding of --dast
type outputFormat string

const (
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
	formatSExpr outputFormat = "sexpr"
)

var _ pflag.Value = (*outputFormat)(nil)

func (f *outputFormat) String() string { return string(*f) }

func (f *outputFormat) Set(s string) error {
	switch outputFormat(s) {
	case formatJSON, formatYAML, formatSExpr:
		*f = outputFormat(s)
		return nil
	}
	return fmt.Errorf("must be one of json, yaml, sexpr")
}

func (f *outputFormat) Type() string { return "format" }

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	// Accept single-dash debug flags like -dparse
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// debugFlagNames lists the debug flags that also accept a single dash
var debugFlagNames = []string{"dparse", "dtokens", "dast"}

// normalizeFlags converts single-dash flags like -dparse to --dparse
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		for _, flagName := range debugFlagNames {
			if arg == "-"+flagName {
				result[i] = "--" + flagName
				break
			}
		}
		if result[i] == "" {
			result[i] = arg
		}
	}
	return result
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "golite [file]",
		Short: "golite parses golite programs and reports syntax errors",
		Long: `golite is the front end of the golite language. It scans and
parses a source file, reports every syntax error it finds, and can dump
the token stream, the syntax tree, or the canonical source.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Help()
				return nil
			}
			filename := args[0]

			cfg, err := loadConfig()
			if err != nil {
				fmt.Fprintf(errOut, "golite: %v\n", err)
				return err
			}
			logger, closeLog, err := logging.New(logging.Options{
				Level:  cfg.Log.Level,
				Writer: errOut,
				File:   cfg.Log.File,
			})
			if err != nil {
				fmt.Fprintf(errOut, "golite: %v\n", err)
				return err
			}
			defer closeLog()

			content, err := os.ReadFile(filename)
			if err != nil {
				fmt.Fprintf(errOut, "golite: error reading %s: %v\n", filename, err)
				return err
			}
			src := string(content)

			// Handle -dtokens: dump the token stream
			if dTokens {
				return doTokens(src, out)
			}

			program, err := parseSource(filename, src, cfg, logger, errOut)
			if err != nil {
				return err
			}

			// Handle -dparse: print canonical source
			if dParse {
				return doParse(filename, program, out, errOut)
			}

			// Handle -dast: dump the tree
			if dAST {
				return doAST(program, out)
			}

			fmt.Fprintf(errOut, "golite: %s: ok (%d declarations, %d nodes)\n",
				filename, len(program.Decls), ast.Count(program))
			return nil
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	// Add debug flags
	rootCmd.Flags().BoolVarP(&dParse, "dparse", "", false, "Dump canonical source after parsing")
	rootCmd.Flags().BoolVarP(&dTokens, "dtokens", "", false, "Dump the token stream")
	rootCmd.Flags().BoolVarP(&dAST, "dast", "", false, "Dump the syntax tree")
	rootCmd.Flags().Var(&astFormat, "format", "Tree format for --dast: json, yaml or sexpr")

	// Add general flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (TOML or YAML); defaults to $"+config.EnvVar)
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "Color diagnostics: auto, always or never")
	rootCmd.PersistentFlags().IntVar(&maxErrors, "max-errors", 0, "Stop after this many errors (overrides config)")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", 0, "Nesting limit (overrides config)")

	rootCmd.AddCommand(newServeCmd(out, errOut))

	return rootCmd
}

// loadConfig reads --config, then $GOLITE_CONFIG, then applies flag
// overrides.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}
	if maxErrors > 0 {
		cfg.Parser.MaxErrors = maxErrors
	}
	if maxDepth > 0 {
		cfg.Parser.MaxDepth = maxDepth
	}
	return cfg, nil
}

// parseSource parses src, rendering any diagnostics to errOut
func parseSource(filename, src string, cfg *config.Config, logger *slog.Logger, errOut io.Writer) (*ast.Program, error) {
	start := time.Now()
	program, err := parser.ParseString(src,
		parser.WithMaxDepth(cfg.Parser.MaxDepth),
		parser.WithMaxErrors(cfg.Parser.MaxErrors),
	)
	diags := diag.FromError(err)
	diag.Sort(diags)
	logger.Debug("parsed file",
		"file", filename,
		"decls", len(program.Decls),
		"errors", len(diags),
		"kinds", diag.Summary(diags),
		"duration", time.Since(start),
	)
	if err == nil {
		return program, nil
	}

	r := diag.NewRenderer(filename, src, useColor(errOut))
	r.Render(errOut, diags)
	return nil, fmt.Errorf("parsing failed with %d errors", len(diags))
}

func useColor(w io.Writer) bool {
	switch colorMode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// doTokens prints one token per line: position, kind, text
func doTokens(src string, out io.Writer) error {
	for _, tok := range lexer.Tokenize(src) {
		fmt.Fprintf(out, "%s\t%s\t%s\n", tok.Pos(), tok.Type, tok.Text())
	}
	return nil
}

// doParse writes the canonical source to a .parsed.gl file and stdout
func doParse(filename string, program *ast.Program, out, errOut io.Writer) error {
	outputFilename := parsedOutputFilename(filename)

	outFile, err := os.Create(outputFilename)
	if err != nil {
		fmt.Fprintf(errOut, "golite: error creating %s: %v\n", outputFilename, err)
		return err
	}
	defer outFile.Close()

	printer := ast.NewPrinter(outFile)
	printer.PrintProgram(program)

	// Also print to stdout for convenience
	printer = ast.NewPrinter(out)
	printer.PrintProgram(program)

	return nil
}

// parsedOutputFilename returns the output filename for -dparse:
// input.gl -> input.parsed.gl
func parsedOutputFilename(filename string) string {
	ext := ".gl"
	if strings.HasSuffix(filename, ext) {
		return filename[:len(filename)-len(ext)] + ".parsed.gl"
	}
	return filename + ".parsed.gl"
}

// doAST dumps the tree in the selected format
func doAST(program *ast.Program, out io.Writer) error {
	switch astFormat {
	case formatSExpr:
		fmt.Fprintln(out, ast.SExpr(program))
		return nil
	case formatYAML:
		data, err := yaml.Marshal(ast.Dump(program, true))
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	default:
		data, err := json.MarshalIndent(ast.Dump(program, true), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}
}
