package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var messagesGroup int64

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Manage the message archive",
	Long:  `Import chat message dumps into the local archive read by cutwords.`,
}

var messagesImportCmd = &cobra.Command{
	Use:   "import [dump]",
	Short: "Import a message dump",
	Long: `Imports a JSON Lines dump into the archive. Each line is an object with
msgid, group_id, from_user, created_at (unix seconds) and text. Files
ending in .zst are read as zstd streams. Messages already archived are
replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: runMessagesImport,
}

var messagesCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Count archived messages",
	Args:  cobra.NoArgs,
	RunE:  runMessagesCount,
}

func init() {
	messagesCountCmd.Flags().Int64VarP(&messagesGroup, "group", "g", 0, "chat group id (0 = all groups)")
	messagesCmd.AddCommand(messagesImportCmd)
	messagesCmd.AddCommand(messagesCountCmd)
	rootCmd.AddCommand(messagesCmd)
}

func runMessagesImport(cmd *cobra.Command, args []string) error {
	if messageService == nil {
		return errors.New("message service not configured")
	}

	n, err := messageService.Import(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported %d messages from %s\n", n, args[0])
	return nil
}

func runMessagesCount(cmd *cobra.Command, _ []string) error {
	if messageService == nil {
		return errors.New("message service not configured")
	}

	n, err := messageService.Count(cmd.Context(), messagesGroup)
	if err != nil {
		return fmt.Errorf("count failed: %w", err)
	}

	cmd.Println(n)
	return nil
}
