package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SichangHe/parse-rpsl-policy/pkg/cli"
	"github.com/SichangHe/parse-rpsl-policy/pkg/mpimport/ast"
	"github.com/SichangHe/parse-rpsl-policy/pkg/mpimport/parser"
)

var parseFlags struct {
	stdin   bool
	format  string
	summary bool
	source  string
}

var parseCmd = &cobra.Command{
	Use:   "parse [value...]",
	Short: "Parse one mp-import attribute value",
	Long: `Parse one mp-import (or import) attribute value and print its syntax tree.

The arguments are joined with spaces, so the value does not have to be quoted
unless it contains shell metacharacters such as ';'. On failure the error is
printed with the offending position marked and the exit status is 1.

Examples:
  rpslpolicy parse 'afi ipv6.unicast from AS1 accept ANY'
  rpslpolicy parse 'protocol BGP4 into OSPF afi ipv6 from AS1 action pref=1; accept AS1'
  rpslpolicy parse 'afi ipv6 { from AS1 accept AS1; from AS2 accept AS2; } except afi ipv6.unicast from AS3 accept ANY'
  rpslpolicy parse --format json 'from AS1 accept ANY'
  echo 'from AS1 accept ANY' | rpslpolicy parse --stdin --summary`,
	RunE: parseValue,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVar(&parseFlags.stdin, "stdin", false, "read the value from standard input")
	parseCmd.Flags().StringVar(&parseFlags.format, "format", "text", "output format: text, json, yaml")
	parseCmd.Flags().BoolVar(&parseFlags.summary, "summary", false, "print peerings, address families, actions and filters instead of the tree")
	parseCmd.Flags().StringVar(&parseFlags.source, "name", "", "name of the input shown in error locations")
}

func parseValue(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(parseFlags.format)
	if err != nil {
		return err
	}

	value, err := readValue(cmd.InOrStdin(), args, parseFlags.stdin)
	if err != nil {
		return err
	}

	a, err := setup()
	if err != nil {
		return err
	}

	doc, err := a.parser().ParseNamed(value, parseFlags.source)
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), err.Error())
		return &cli.ExitError{Code: 1}
	}

	out := cmd.OutOrStdout()
	if parseFlags.summary {
		return cli.NewFormatter(format).FormatTo(out, summarize(doc))
	}
	if format == cli.FormatText {
		return cli.NewFormatter(format).FormatTo(out, treeText{doc})
	}
	return cli.NewFormatter(format).FormatTo(out, doc.ToMap())
}

// readValue returns the attribute value from args or, with fromStdin,
// from r. Line breaks are kept; the parser treats them as whitespace.
func readValue(r io.Reader, args []string, fromStdin bool) (string, error) {
	if fromStdin {
		if len(args) > 0 {
			return "", cli.NewConfigError("stdin", "--stdin cannot be combined with arguments")
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	if len(args) == 0 {
		return "", cli.NewConfigError("value", "no value given (pass it as arguments or use --stdin)")
	}
	return strings.Join(args, " "), nil
}

// treeText renders a document as its normalized text followed by the
// indented tree.
type treeText struct {
	doc *ast.Document
}

func (t treeText) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintln(w, t.doc.String()); err != nil {
		return err
	}
	return writeTree(w, t.doc.ToMap(), 1)
}

func writeTree(w io.Writer, node any, depth int) error {
	indent := strings.Repeat("  ", depth)
	switch n := node.(type) {
	case map[string]any:
		for _, key := range treeKeys(n) {
			switch child := n[key].(type) {
			case string:
				if _, err := fmt.Fprintf(w, "%s%s: %s\n", indent, key, child); err != nil {
					return err
				}
			default:
				if _, err := fmt.Fprintf(w, "%s%s:\n", indent, key); err != nil {
					return err
				}
				if err := writeTree(w, child, depth+1); err != nil {
					return err
				}
			}
		}
	case []any:
		for _, item := range n {
			if s, ok := item.(string); ok {
				if _, err := fmt.Fprintf(w, "%s- %s\n", indent, s); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(w, "%s-\n", indent); err != nil {
				return err
			}
			if err := writeTree(w, item, depth+1); err != nil {
				return err
			}
		}
	default:
		return errors.New("unexpected tree node")
	}
	return nil
}

// treeOrder is the order keys appear in the attribute syntax.
var treeOrder = []string{
	ast.KeyProtocol1, ast.KeyProtocol2, ast.KeyAfiList,
	ast.KeyImportFactors, ast.KeyFrom, ast.KeyMPPeering, ast.KeyActions, ast.KeyMPFilter,
	ast.KeyExcept, ast.KeyRefine,
}

func treeKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for _, k := range treeOrder {
		if _, ok := m[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// Summary lists the parts of a policy without its structure.
type Summary struct {
	Protocol     string     `json:"protocol,omitempty" yaml:"protocol,omitempty"`
	IntoProtocol string     `json:"into_protocol,omitempty" yaml:"into_protocol,omitempty"`
	Peerings     []string   `json:"peerings" yaml:"peerings"`
	AfiLists     [][]string `json:"afi_lists,omitempty" yaml:"afi_lists,omitempty"`
	Actions      []string   `json:"actions,omitempty" yaml:"actions,omitempty"`
	Filters      []string   `json:"filters" yaml:"filters"`
}

func summarize(doc *ast.Document) *Summary {
	s := &Summary{
		Protocol:     doc.Protocol,
		IntoProtocol: doc.IntoProtocol,
		AfiLists:     ast.AfiLists(doc),
		Actions:      ast.Actions(doc),
		Filters:      ast.Filters(doc),
	}
	for _, p := range ast.Peerings(doc) {
		s.Peerings = append(s.Peerings, strings.Join(p.ASSpec, " "))
	}
	return s
}

// WriteText implements cli.TextWriter.
func (s *Summary) WriteText(w io.Writer) error {
	var sb strings.Builder
	if s.Protocol != "" {
		fmt.Fprintf(&sb, "protocol: %s\n", s.Protocol)
	}
	if s.IntoProtocol != "" {
		fmt.Fprintf(&sb, "into:     %s\n", s.IntoProtocol)
	}
	for _, afis := range s.AfiLists {
		fmt.Fprintf(&sb, "afi:      %s\n", strings.Join(afis, ", "))
	}
	for _, p := range s.Peerings {
		fmt.Fprintf(&sb, "peering:  %s\n", p)
	}
	for _, a := range s.Actions {
		fmt.Fprintf(&sb, "action:   %s\n", a)
	}
	for _, f := range s.Filters {
		fmt.Fprintf(&sb, "filter:   %s\n", f)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// parseLine parses one value with p, for the shell.
func parseLine(p *parser.Parser, line string) (*ast.Document, error) {
	return p.ParseNamed(line, "shell")
}
