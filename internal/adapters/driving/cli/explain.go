package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/querytrans/internal/core/domain"
)

var explainFormat string

var explainCmd = &cobra.Command{
	Use:   "explain [query]",
	Short: "Show how a query is parsed and expanded",
	Long: `Prints the parsed tree, the expanded tree and the rewritten query.

Formats:
  text - indented trees (default)
  json - JSON document
  yaml - YAML document`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().StringVarP(&explainFormat, "format", "f", "text", "output format: text, json or yaml")
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	exp, err := queryService.Explain(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	switch explainFormat {
	case "json":
		return printJSON(cmd, exp)
	case "yaml":
		return printYAML(cmd, exp)
	case "text":
		cmd.Printf("Input:  %s\n", exp.Input)
		cmd.Println("Parsed:")
		printTree(cmd, exp.Parsed, 1)
		cmd.Println("Expanded:")
		printTree(cmd, exp.Expanded, 1)
		cmd.Printf("Output: %s\n", exp.Output)
		return nil
	default:
		return fmt.Errorf("unknown format %q (use text, json or yaml)", explainFormat)
	}
}

func printTree(cmd *cobra.Command, n domain.NodeView, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.Kind == domain.NodeKindTerm {
		cmd.Printf("%s%s %q\n", indent, n.Kind, n.Text)
		return
	}
	cmd.Printf("%s%s\n", indent, n.Kind)
	for _, c := range n.Children {
		printTree(cmd, c, depth+1)
	}
}

func printYAML(cmd *cobra.Command, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Print(string(data))
	return nil
}
