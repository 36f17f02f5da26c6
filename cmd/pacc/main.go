// Command pacc is the CLI driver for the C front-end: tokenizer,
// preprocessor, and scoped-AST parser, selected by flag. It walks os.Args by
// hand (no flag-parsing framework), matching cmd/esbuild/main.go's own
// manual argv loop -- this spec's four flags don't need one.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/slaide/pacc-sub000/internal/ast"
	"github.com/slaide/pacc-sub000/internal/cparser"
	"github.com/slaide/pacc-sub000/internal/diag"
	"github.com/slaide/pacc-sub000/internal/lexer"
	"github.com/slaide/pacc-sub000/internal/preprocessor"
	"github.com/slaide/pacc-sub000/internal/printer"
	"github.com/slaide/pacc-sub000/internal/source"
	"github.com/slaide/pacc-sub000/internal/strjoin"
)

// options is the plain struct of fields spec.md §6's four flags map onto,
// following pkg/api.BuildOptions's "just a struct" idiom rather than a flag
// package.
type options struct {
	runPreprocessor bool
	runParser       bool
	dumpTokens      bool
	defines         []string
	includeDirs     []string
	inputPath       string
}

func parseArgs(args []string) (options, error) {
	var o options
	var positionals []string

	for _, arg := range args {
		switch {
		case arg == "-p" || arg == "--preprocessor":
			o.runPreprocessor = true
		case arg == "-a" || arg == "--parse-ast":
			o.runParser = true
		case arg == "--dump-tokens":
			o.dumpTokens = true
		case strings.HasPrefix(arg, "-D"):
			o.defines = append(o.defines, strings.TrimPrefix(arg, "-D"))
		case strings.HasPrefix(arg, "-I"):
			o.includeDirs = append(o.includeDirs, strings.TrimPrefix(arg, "-I"))
		case strings.HasPrefix(arg, "-"):
			return options{}, fmt.Errorf("unknown flag: %s", arg)
		default:
			positionals = append(positionals, arg)
		}
	}

	if len(positionals) == 0 {
		return options{}, fmt.Errorf("expected an input path")
	}
	if len(positionals) > 1 {
		return options{}, fmt.Errorf("unexpected extra positional argument: %s", positionals[1])
	}
	o.inputPath = positionals[0]
	return o, nil
}

func run(o options) (string, error) {
	loader := source.NewRealLoader()
	src, err := loader.Load(o.inputPath)
	if err != nil {
		return "", err
	}

	toks, err := lexer.Tokenize(src)
	if err != nil {
		return "", err
	}

	if o.runPreprocessor {
		pp := preprocessor.New(loader)
		for _, dir := range o.includeDirs {
			pp.AddIncludePath(dir)
		}
		for _, name := range o.defines {
			pp.Predefine(name)
		}
		toks, err = pp.Run(src)
		if err != nil {
			return "", err
		}
	}

	if o.dumpTokens {
		return lexer.Dump(toks), nil
	}

	if o.runParser {
		joined := strjoin.Join(toks)
		arena := ast.NewArena()
		p := cparser.New(arena)
		root, err := p.Parse(joined, src.Label)
		if err != nil {
			return "", err
		}
		return printer.ModuleAsString(arena, root), nil
	}

	return lexer.Dump(toks), nil
}

func reportAndExit(err error) {
	if de, ok := err.(*diag.Error); ok {
		fmt.Fprintln(os.Stderr, diag.Render(de, diag.UseColor()))
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(255) // observed as exit(-1) by a POSIX shell, per spec.md §6.
}

func main() {
	defer func() {
		// Category 6 (Internal) invariant violations panic rather than
		// return an error; recover them here the way cmd/esbuild recovers
		// at the bundler's outer driver, and report them like any other
		// fatal diagnostic.
		if r := recover(); r != nil {
			if de, ok := r.(*diag.Error); ok {
				reportAndExit(de)
			}
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			os.Exit(255)
		}
	}()

	o, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(255)
	}

	output, err := run(o)
	if err != nil {
		reportAndExit(err)
	}
	fmt.Print(output)
}
