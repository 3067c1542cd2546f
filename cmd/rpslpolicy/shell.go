package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/SichangHe/parse-rpsl-policy/pkg/cli"
	"github.com/SichangHe/parse-rpsl-policy/pkg/mpimport/parser"
)

var shellFlags struct {
	history string
	format  string
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive mp-import parser",
	Long: `Start an interactive prompt that parses each entered line as an mp-import
value. Lines starting with ':' are shell commands; type :help for a list.

Examples:
  rpslpolicy shell
  rpslpolicy shell --format json --history ~/.rpslpolicy_history`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)

	shellCmd.Flags().StringVar(&shellFlags.history, "history", "", "history file (none when empty)")
	shellCmd.Flags().StringVar(&shellFlags.format, "format", "text", "initial output format: text, json, yaml")
}

var errQuit = errors.New("quit")

// shell holds the state of an interactive session.
type shell struct {
	parser  *parser.Parser
	format  cli.OutputFormat
	summary bool
	out     io.Writer
}

func runShell(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(shellFlags.format)
	if err != nil {
		return err
	}
	a, err := setup()
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "mp-import> ",
		HistoryFile:     shellFlags.history,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem(":help"),
			readline.PcItem(":format", readline.PcItem("text"), readline.PcItem("json"), readline.PcItem("yaml")),
			readline.PcItem(":summary"),
			readline.PcItem(":quit"),
		),
	})
	if err != nil {
		return fmt.Errorf("readline init: %w", err)
	}
	defer rl.Close()

	sh := &shell{parser: a.parser(), format: format, out: rl.Stdout()}
	fmt.Fprintln(sh.out, "rpslpolicy shell. Enter an mp-import value, or :help.")

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := sh.handle(line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintln(rl.Stderr(), err)
		}
	}
}

// handle runs one input line. Parse failures are printed, not returned;
// the returned error is for shell commands and output failures.
func (s *shell) handle(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if strings.HasPrefix(line, ":") {
		return s.command(strings.Fields(line[1:]))
	}

	doc, err := parseLine(s.parser, line)
	if err != nil {
		_, werr := fmt.Fprint(s.out, err.Error())
		return werr
	}

	formatter := cli.NewFormatter(s.format)
	switch {
	case s.summary:
		return formatter.FormatTo(s.out, summarize(doc))
	case s.format == cli.FormatText:
		return formatter.FormatTo(s.out, treeText{doc})
	default:
		return formatter.FormatTo(s.out, doc.ToMap())
	}
}

func (s *shell) command(fields []string) error {
	if len(fields) == 0 {
		return fmt.Errorf("empty command, try :help")
	}
	switch fields[0] {
	case "q", "quit", "exit":
		return errQuit
	case "h", "help":
		_, err := fmt.Fprint(s.out, `:format text|json|yaml  set the output format
:summary                toggle summary output
:quit                   leave the shell
`)
		return err
	case "format":
		if len(fields) != 2 {
			return fmt.Errorf("usage: :format text|json|yaml")
		}
		f, err := cli.ParseFormat(fields[1])
		if err != nil {
			return err
		}
		s.format = f
		return nil
	case "summary":
		s.summary = !s.summary
		_, err := fmt.Fprintf(s.out, "summary %s\n", onOff(s.summary))
		return err
	default:
		return fmt.Errorf("unknown command :%s, try :help", fields[0])
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
