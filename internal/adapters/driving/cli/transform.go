package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var transformJSON bool

var transformCmd = &cobra.Command{
	Use:   "transform [query]",
	Short: "Rewrite a search query",
	Long: `Rewrites a search query so every term also matches its spellings under
the configured conversion schemes.

With no argument, one query is read per line from standard input and the
queries are rewritten concurrently. Output keeps the input order.

Examples:
  querytrans transform '头发 -简体'
  querytrans transform < queries.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTransform,
}

func init() {
	transformCmd.Flags().BoolVar(&transformJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(transformCmd)
}

// transformOutput is one line of JSON output.
type transformOutput struct {
	Input  string `json:"input"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

func runTransform(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	if len(args) == 1 {
		out, err := queryService.Transform(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if transformJSON {
			return printJSON(cmd, transformOutput{Input: args[0], Output: out})
		}
		cmd.Println(out)
		return nil
	}

	inputs, err := readLines(cmd)
	if err != nil {
		return err
	}

	results, err := queryService.TransformBatch(cmd.Context(), inputs)
	if err != nil {
		return fmt.Errorf("transform failed: %w", err)
	}

	failed := 0
	outputs := make([]transformOutput, len(results))
	for i, r := range results {
		outputs[i] = transformOutput{Input: r.Input, Output: r.Output}
		if r.Err != nil {
			failed++
			outputs[i].Error = r.Err.Error()
		}
	}

	if transformJSON {
		if err := printJSON(cmd, outputs); err != nil {
			return err
		}
	} else {
		for _, o := range outputs {
			if o.Error != "" {
				cmd.PrintErrf("%s: %s\n", o.Input, o.Error)
				cmd.Println()
				continue
			}
			cmd.Println(o.Output)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d queries failed", failed, len(results))
	}
	return nil
}

// readLines reads non-blank lines from the command's input.
func readLines(cmd *cobra.Command) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(cmd.InOrStdin())
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return lines, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
