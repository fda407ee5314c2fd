package main

import (
	"fmt"
	"os"

	"github.com/DAIOS-AI/jsonsrc"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	checkRelaxed         bool
	checkAllowInfNaN     bool
	checkAllowPlusSign   bool
	checkAllowSingleQuot bool
	checkAllowLeadingDot bool
	checkTabSize         int
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Parse JSON files and report the first syntax error",
	Long: `Parse each file (or standard input when no files are given) under the
selected grammar options. The first violation is reported with its
file:line:col location and a caret snippet, and the command exits 1.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkRelaxed, "relaxed", false, "Enable every grammar relaxation")
	checkCmd.Flags().BoolVar(&checkAllowInfNaN, "allow-infinity-and-nan", false, "Accept Infinity, -Infinity and NaN")
	checkCmd.Flags().BoolVar(&checkAllowPlusSign, "allow-plus-sign", false, "Accept a leading '+' on numbers")
	checkCmd.Flags().BoolVar(&checkAllowSingleQuot, "allow-single-quotes", false, "Accept single-quoted strings")
	checkCmd.Flags().BoolVar(&checkAllowLeadingDot, "allow-leading-dot", false, "Accept numbers starting with '.'")
	checkCmd.Flags().IntVar(&checkTabSize, "tab-size", jsonsrc.DefaultTabSize, "Tab width for reported columns")
}

func checkOptions() jsonsrc.ParseOptions {
	if checkRelaxed {
		return jsonsrc.RelaxedOptions()
	}
	opts := jsonsrc.DefaultOptions()
	opts.AllowInfinityAndNaN = checkAllowInfNaN
	opts.AllowExplicitPlusSignInMantissa = checkAllowPlusSign
	opts.AllowSingleQuoteStrings = checkAllowSingleQuot
	opts.AllowNumberToStartWithDot = checkAllowLeadingDot
	return opts
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts := checkOptions()

	sources := make([]*jsonsrc.Source, 0, len(args))
	if len(args) == 0 {
		src, err := jsonsrc.LoadStdin()
		if err != nil {
			reportError(err)
			return err
		}
		sources = append(sources, src)
	}
	for _, path := range args {
		src, err := jsonsrc.LoadFile(path)
		if err != nil {
			reportError(err)
			return err
		}
		sources = append(sources, src)
	}

	for _, src := range sources {
		v, err := jsonsrc.Parse(src, opts)
		if err != nil {
			reportError(jsonsrc.WrapErrorWithSnippetTab(err, checkTabSize))
			return err
		}
		fmt.Printf("%s: ok (%s)\n", src.FileName, summarize(v))
	}
	return nil
}

func reportError(err error) {
	red := color.New(color.FgRed)
	// fatih/color auto-detects stdout; we write to stderr, so gate on
	// that stream explicitly.
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		red.DisableColor()
	}
	red.Fprintln(os.Stderr, err.Error())
}

func summarize(v jsonsrc.Value) string {
	switch v := v.(type) {
	case *jsonsrc.Object:
		return fmt.Sprintf("object with %d members", v.Len())
	case *jsonsrc.Array:
		return fmt.Sprintf("array with %d elements", len(v.Elements))
	case *jsonsrc.String:
		return fmt.Sprintf("string %q", v.Value)
	case *jsonsrc.Number:
		return fmt.Sprintf("number %v", v.Value)
	case *jsonsrc.Boolean:
		return fmt.Sprintf("boolean %v", v.Value)
	default:
		return v.Kind()
	}
}
