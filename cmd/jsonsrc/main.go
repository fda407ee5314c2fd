package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jsonsrc",
	Short: "JSON checker with precise source locations",
	Long: `jsonsrc parses JSON (strict RFC 8259 by default, with opt-in
relaxations) and reports the first syntax error as file:line:col with a
caret-annotated snippet of the offending line.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(replCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
