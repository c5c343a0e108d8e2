package cmd

import (
	"errors"
	"io"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jsparse-go/jsparse/ast"
	"github.com/jsparse-go/jsparse/parser"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive read-parse-print loop",
	Long: `Start an interactive session: each line is parsed as a standalone
program and its AST is printed. Parse errors are reported without exiting
the session. Type '.exit' or press Ctrl+D to quit.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

var (
	errColor  = color.New(color.FgRed)
	okColor   = color.New(color.FgCyan)
	baseColor = color.New(color.FgGreen)
)

func runRepl(cmd *cobra.Command, args []string) error {
	rl, err := readline.New("jsparse> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	baseColor.Fprintln(rl.Stdout(), "jsparse repl — type '.exit' or Ctrl+D to quit")

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			return nil
		}
		if line == "" {
			continue
		}
		if line == ".exit" {
			return nil
		}
		rl.SaveHistory(line)
		evalLine(rl.Stdout(), line)
	}
}

func evalLine(w io.Writer, line string) {
	program, perr := parser.ParseProgram(line)
	if perr != nil {
		errColor.Fprintln(w, perr.Format(line, true))
		return
	}
	okColor.Fprint(w, ast.Dump(program))
}
