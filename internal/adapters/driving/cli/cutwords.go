package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/querytrans/internal/core/domain"
)

var (
	cutwordsDump   string
	cutwordsGroup  int64
	cutwordsAfter  int64
	cutwordsUser   int64
	cutwordsFormat string
	cutwordsTop    int
)

var cutwordsCmd = &cobra.Command{
	Use:   "cutwords",
	Short: "Count the words of a chat group's messages",
	Long: `Segments every archived message of a group into words and prints how
often each word occurs, most frequent first.

Bot commands and their replies are skipped, as are attachments, stop words
and function words. Messages are read from the archive built by
"messages import", or straight from a dump file with --dump.

Formats:
  text - message total on the first line, then "word count" lines (default)
  json - JSON report
  yaml - YAML report`,
	Args: cobra.NoArgs,
	RunE: runCutwords,
}

func init() {
	cutwordsCmd.Flags().StringVar(&cutwordsDump, "dump", "", "read messages from a .jsonl or .jsonl.zst dump")
	cutwordsCmd.Flags().Int64VarP(&cutwordsGroup, "group", "g", 0, "chat group id (required)")
	cutwordsCmd.Flags().Int64Var(&cutwordsAfter, "after", 0, "only messages sent after this unix time")
	cutwordsCmd.Flags().Int64VarP(&cutwordsUser, "user", "u", 0, "only messages from this sender")
	cutwordsCmd.Flags().StringVarP(&cutwordsFormat, "format", "f", "text", "output format: text, json or yaml")
	cutwordsCmd.Flags().IntVarP(&cutwordsTop, "top", "n", 0, "print only the most frequent words (0 = all)")
	_ = cutwordsCmd.MarkFlagRequired("group")
	rootCmd.AddCommand(cutwordsCmd)
}

// progressReporter is implemented by word count services that report
// how many messages they have read.
type progressReporter interface {
	SetProgress(fn func(messages int))
}

func runCutwords(cmd *cobra.Command, _ []string) error {
	if wordCountService == nil {
		return errors.New("word count service not configured")
	}
	switch cutwordsFormat {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q (use text, json or yaml)", cutwordsFormat)
	}

	filter := domain.MessageFilter{GroupID: cutwordsGroup, UserID: cutwordsUser}
	if cutwordsAfter > 0 {
		filter.After = time.Unix(cutwordsAfter, 0)
	}

	if bar := newCountBar(cmd, filter); bar != nil {
		if p, ok := wordCountService.(progressReporter); ok {
			p.SetProgress(func(n int) { _ = bar.Set(n) })
			defer func() {
				p.SetProgress(nil)
				_ = bar.Finish()
				fmt.Fprintln(os.Stderr)
			}()
		}
	}

	var report *domain.WordCountReport
	var err error
	if cutwordsDump != "" {
		report, err = wordCountService.CountDump(cmd.Context(), cutwordsDump, filter)
	} else {
		report, err = wordCountService.Count(cmd.Context(), filter)
	}
	if err != nil {
		return fmt.Errorf("word count failed: %w", err)
	}

	if cutwordsTop > 0 && len(report.Words) > cutwordsTop {
		report.Words = report.Words[:cutwordsTop]
	}

	switch cutwordsFormat {
	case "json":
		return printJSON(cmd, report)
	case "yaml":
		return printYAML(cmd, report)
	default:
		cmd.Println(report.Messages)
		for _, w := range report.Words {
			cmd.Printf("%s %d\n", w.Word, w.Count)
		}
		return nil
	}
}

// newCountBar returns a progress bar on stderr, or nil when stderr is not
// a terminal. The archived message count of the group bounds the total.
func newCountBar(cmd *cobra.Command, filter domain.MessageFilter) *progressbar.ProgressBar {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}

	total := -1
	if cutwordsDump == "" && messageService != nil {
		if n, err := messageService.Count(cmd.Context(), filter.GroupID); err == nil && n > 0 {
			total = n
		}
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("counting"),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
