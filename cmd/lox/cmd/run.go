package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cwbudde/golox/internal/cli"
	"github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/interp"
	"github.com/cwbudde/golox/internal/lexer"
	"github.com/cwbudde/golox/internal/parser"
	"github.com/cwbudde/golox/internal/resolver"
	"github.com/spf13/cobra"
)

var (
	evalExpr     string
	dumpAST      bool
	traceRun     bool
	prettyErrors bool
)

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Run a lox script",
	Long: `Execute a lox program from a file, an inline expression, or a REPL.

Examples:
  # Run a script file
  lox run script.lox

  # Evaluate an inline expression
  lox run -e "print 1 + 2;"

  # Start a REPL
  lox run

  # Dump the parsed AST before executing
  lox run --dump-ast script.lox`,
	Args: cobra.ArbitraryArgs,
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST before executing")
	runCmd.Flags().BoolVar(&traceRun, "trace", false, "print a trace banner before executing")
	runCmd.Flags().BoolVar(&prettyErrors, "pretty", false, "render errors with a source-line caret")
}

func runScript(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		return cli.Usage(fmt.Errorf("accepts at most 1 arg(script), received %d", len(args)))
	}

	log := cli.NewLogger(verbose)

	switch {
	case evalExpr != "":
		return runSource(evalExpr, "<eval>", log)
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return cli.Software(fmt.Errorf("failed to read file %s: %w", args[0], err))
		}
		return runSource(string(content), args[0], log)
	default:
		return runREPL(log)
	}
}

// runSource runs the scan → parse → resolve → interpret pipeline once
// over source. A bad CLI invocation exits 64; a scan, parse, or resolve
// failure exits 65; a runtime failure exits 70.
func runSource(source, filename string, log *cli.Logger) error {
	l := lexer.New(source)
	tokens, scanErrs := l.ScanTokens()
	if len(scanErrs) > 0 {
		for _, e := range scanErrs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return cli.DataErr(fmt.Errorf("scanning failed with %d error(s)", len(scanErrs)))
	}

	p := parser.New(tokens)
	program, parseErrs := p.Parse()
	if len(parseErrs) > 0 {
		printSourceErrors(parseErrs, source)
		return cli.DataErr(fmt.Errorf("parsing failed with %d error(s)", len(parseErrs)))
	}

	if dumpAST {
		fmt.Println(program.String())
	}

	res := resolver.New()
	locals, resolveErrs := res.Resolve(program)
	if len(resolveErrs) > 0 {
		printSourceErrors(resolveErrs, source)
		return cli.DataErr(fmt.Errorf("resolution failed with %d error(s)", len(resolveErrs)))
	}

	if traceRun {
		fmt.Fprintf(os.Stderr, "[trace] executing %s\n", filename)
	}
	log.Tracef("[trace] %s: %d top-level statement(s)\n", filename, len(program.Statements))

	interpreter := interp.New(os.Stdout)
	if err := interpreter.Interpret(program, locals); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return cli.Software(fmt.Errorf("execution failed"))
	}
	return nil
}

// runREPL reads a line at a time, running each through the same pipeline
// against one long-lived Interpreter so variables and functions persist
// across lines.
func runREPL(log *cli.Logger) error {
	interpreter := interp.New(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("lox REPL — Ctrl+D to exit")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return nil
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		l := lexer.New(line)
		tokens, scanErrs := l.ScanTokens()
		if len(scanErrs) > 0 {
			for _, e := range scanErrs {
				fmt.Fprintln(os.Stderr, e.Error())
			}
			continue
		}

		p := parser.New(tokens)
		program, parseErrs := p.Parse()
		if len(parseErrs) > 0 {
			printSourceErrors(parseErrs, line)
			continue
		}

		res := resolver.New()
		locals, resolveErrs := res.Resolve(program)
		if len(resolveErrs) > 0 {
			printSourceErrors(resolveErrs, line)
			continue
		}

		if err := interpreter.Interpret(program, locals); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
		}
	}
}

func printSourceErrors(errs []*errors.SourceError, source string) {
	for _, e := range errs {
		if prettyErrors {
			fmt.Fprintln(os.Stderr, e.Pretty(source))
		} else {
			fmt.Fprintln(os.Stderr, e.Error())
		}
	}
}
