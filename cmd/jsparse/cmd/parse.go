package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsparse-go/jsparse/ast"
	"github.com/jsparse-go/jsparse/parser"
)

var (
	parseExpr    string
	parseDumpAST bool
	parseJSON    bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse source code and display the AST",
	Long: `Parse source code and display the resulting Abstract Syntax Tree.

If no file is provided, reads from stdin. Use -e to parse a single snippet
given on the command line directly.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseExpr, "eval", "e", "", "parse inline source instead of reading from a file")
	parseCmd.Flags().BoolVar(&parseDumpAST, "ast", false, "dump the full AST structure (default)")
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "dump the AST as an ESTree-shaped JSON tree")
}

func runParse(cmd *cobra.Command, args []string) error {
	input, err := readInput(parseExpr, args)
	if err != nil {
		return err
	}

	program, perr := parser.ParseProgram(input)
	if perr != nil {
		fmt.Fprintln(os.Stderr, perr.Format(input, useColor))
		return fmt.Errorf("parsing failed")
	}

	if parseJSON {
		out, err := json.MarshalIndent(ast.ToJSON(program), "", "  ")
		if err != nil {
			return fmt.Errorf("encoding AST as JSON: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Println("Abstract Syntax Tree:")
	fmt.Println("=====================")
	fmt.Print(ast.Dump(program))
	return nil
}

func readInput(expr string, args []string) (string, error) {
	switch {
	case expr != "":
		return expr, nil
	case len(args) == 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("error reading file: %w", err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("error reading stdin: %w", err)
		}
		return string(data), nil
	}
}
