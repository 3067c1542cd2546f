package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SichangHe/parse-rpsl-policy/pkg/cli"
)

var (
	// Global flags
	cfgFile   string
	verbose   bool
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "rpslpolicy",
	Short: "Parse RPSL mp-import policies and track them across IRR dumps",
	Long: `rpslpolicy parses the mp-import and import attributes of RPSL aut-num
objects (RFC 2622, RFC 4012) into syntax trees.

It can:
  - parse single attribute values and explain why they do not parse
  - lint IRR dumps from files, directories or git repositories
  - store parse results of dumps as runs in SQLite and query or diff them
  - watch a dump directory and re-import on change, exporting Prometheus metrics

Configuration is read from --config (YAML) and RPSLPOLICY_* environment
variables; without a config file the defaults apply.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) || exitErr.Err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	return cli.ExitCode(err)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults apply when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "override log format (text, json)")
}
