// Command jsparse exposes the lexer and parser as a standalone CLI: lex,
// parse, and repl subcommands, grounded on the teacher's cmd/dwscript
// entrypoint.
package main

import (
	"os"

	"github.com/jsparse-go/jsparse/cmd/jsparse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
