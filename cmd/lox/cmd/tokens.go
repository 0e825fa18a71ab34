package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/golox/internal/lexer"
	"github.com/cwbudde/golox/internal/token"
	"github.com/spf13/cobra"
)

var (
	tokensEval     string
	tokensShowPos  bool
	tokensShowType bool
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [script]",
	Short: "Tokenize a lox file or expression",
	Long: `Scan a lox program and print the resulting tokens, one per line.

Examples:
  # Tokenize a script file
  lox tokens script.lox

  # Tokenize an inline expression
  lox tokens -e "var x = 1 + 2;"

  # Show token types and positions
  lox tokens --show-type --show-pos script.lox`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVarP(&tokensEval, "eval", "e", "", "tokenize inline code instead of reading from file")
	tokensCmd.Flags().BoolVar(&tokensShowPos, "show-pos", false, "show token positions (line:column)")
	tokensCmd.Flags().BoolVar(&tokensShowType, "show-type", false, "show token type names")
}

func runTokens(_ *cobra.Command, args []string) error {
	var source string
	switch {
	case tokensEval != "":
		source = tokensEval
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		source = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	toks, scanErrs := lexer.New(source).ScanTokens()
	for _, tok := range toks {
		printToken(tok)
	}
	for _, e := range scanErrs {
		fmt.Fprintln(os.Stderr, e.Error())
	}
	if len(scanErrs) > 0 {
		return fmt.Errorf("found %d scan error(s)", len(scanErrs))
	}
	return nil
}

func printToken(tok token.Token) {
	var out string
	if tokensShowType {
		out = fmt.Sprintf("[%-12s]", tok.Type)
	}
	if tok.Type == token.EOF {
		out += " EOF"
	} else {
		out += fmt.Sprintf(" %q", tok.Lexeme)
	}
	if tokensShowPos {
		out += fmt.Sprintf(" @%d:%d", tok.Line, tok.Column)
	}
	fmt.Println(out)
}
