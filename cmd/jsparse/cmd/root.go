package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	useColor bool
)

var rootCmd = &cobra.Command{
	Use:   "jsparse",
	Short: "A hand-written parser for an ES5-plus-arrows-plus-templates JavaScript subset",
	Long: `jsparse lexes and parses a JavaScript subset — ES5 expressions and
statements, plus arrow functions, destructuring, and template literals — into
an ESTree-shaped AST.

This is a from-scratch recursive-descent/Pratt parser, not a wrapper around
an existing JS engine: no type checking, no bytecode, no evaluation.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&useColor, "color", "c", false, "colorize diagnostic output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
