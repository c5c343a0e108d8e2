package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsparse-go/jsparse/lexer"
	"github.com/jsparse-go/jsparse/token"
)

var (
	lexExpr      string
	lexShowPos   bool
	lexOnlyError bool
	lexJSON      bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize source and print the resulting tokens",
	Long: `Tokenize source code and print each token, one per line.

Examples:
  jsparse lex script.js
  jsparse lex -e "const x = 1 + 2;"
  jsparse lex --show-pos script.js`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexExpr, "eval", "e", "", "tokenize inline source instead of reading from a file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexOnlyError, "only-errors", false, "stop at the first lex error and print only that")
	lexCmd.Flags().BoolVar(&lexJSON, "json", false, "print the token stream as a JSON array")
}

func runLex(cmd *cobra.Command, args []string) error {
	input, err := readInput(lexExpr, args)
	if err != nil {
		return err
	}

	tokens, lerr := lexer.Tokenize(input)
	switch {
	case lexOnlyError:
	case lexJSON:
		out, jerr := json.MarshalIndent(tokens, "", "  ")
		if jerr != nil {
			return fmt.Errorf("encoding tokens as JSON: %w", jerr)
		}
		fmt.Println(string(out))
	default:
		for _, tok := range tokens {
			printToken(tok)
		}
	}
	if lerr != nil {
		fmt.Fprintln(os.Stderr, lerr.Format(input, useColor))
		if lexOnlyError {
			return fmt.Errorf("lexing failed")
		}
		return fmt.Errorf("lexing failed after %d token(s)", len(tokens))
	}
	return nil
}

func printToken(tok token.Token) {
	if lexShowPos {
		fmt.Printf("%-14s %-12q @%s\n", tok.Type, tok.Literal, tok.Loc.Start)
		return
	}
	fmt.Printf("%-14s %q\n", tok.Type, tok.Literal)
}
