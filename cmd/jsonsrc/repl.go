package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/DAIOS-AI/jsonsrc"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	historyFile = ".jsonsrc_history"
	promptMain  = "json> "
	promptCont  = "....> "
)

var replRelaxed bool

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively parse JSON expressions",
	Long: `Read JSON values from the terminal and report the parsed shape, or a
located error. Input that ends mid-value keeps prompting for
continuation lines. When stdin is not a terminal the input is checked
non-interactively instead.`,
	RunE: runRepl,
}

func init() {
	replCmd.Flags().BoolVar(&replRelaxed, "relaxed", false, "Enable every grammar relaxation")
}

func replOptions() jsonsrc.ParseOptions {
	if replRelaxed {
		return jsonsrc.RelaxedOptions()
	}
	return jsonsrc.DefaultOptions()
}

func runRepl(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		// Piped input: behave like `check` on stdin.
		src, err := jsonsrc.LoadStdin()
		if err != nil {
			reportError(err)
			return err
		}
		v, err := jsonsrc.Parse(src, replOptions())
		if err != nil {
			reportError(jsonsrc.WrapErrorWithSnippet(err))
			return err
		}
		fmt.Println(summarize(v))
		return nil
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	opts := replOptions()
	for {
		text, ok := readByParseProbe(ln, opts)
		if !ok {
			fmt.Println()
			return nil
		}
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}
		if trimmed == ":quit" {
			return nil
		}

		v, err := jsonsrc.ParseString("repl", text, opts)
		if err != nil {
			reportError(jsonsrc.WrapErrorWithSnippet(err))
			continue
		}
		fmt.Println(summarize(v))
		ln.AppendHistory(strings.ReplaceAll(text, "\n", " "))
	}
}

// readByParseProbe accumulates lines until the text parses, or fails
// with a non-incomplete error (which the caller then reports with the
// full accumulated input).
func readByParseProbe(ln *liner.State, opts jsonsrc.ParseOptions) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(promptMain)
		} else {
			line, err = ln.Prompt(promptCont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		text := b.String()
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, ":") {
			return text, true
		}
		_, perr := jsonsrc.ParseString("repl", text, opts)
		if perr == nil || !jsonsrc.IsIncomplete(perr) {
			return text, true
		}
	}
}
