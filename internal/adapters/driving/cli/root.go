// Package cli provides the cobra command tree for querytrans.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/querytrans/internal/core/ports/driving"
	"github.com/custodia-labs/querytrans/internal/logger"
)

// version is set by SetVersion from the build.
var version = "dev"

// Services injected by the composition root.
var (
	queryService     driving.QueryService
	wordCountService driving.WordCountService
	messageService   driving.MessageService
	settingsService  driving.SettingsService
)

var (
	verbose   bool
	configDir string

	bootstrap func(ctx context.Context, configDir string) (Services, func(), error)
	cleanup   func()
)

var rootCmd = &cobra.Command{
	Use:   "querytrans",
	Short: "Rewrite search queries across Chinese orthographies",
	Long: `querytrans rewrites search queries so every term also matches its
Simplified and Traditional Chinese spellings, and counts the words of
archived chat messages.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if verbose {
			logger.SetVerbose(true)
		}
		if bootstrap == nil {
			return nil
		}
		s, done, err := bootstrap(cmd.Context(), configDir)
		if err != nil {
			return err
		}
		SetServices(s)
		cleanup = done
		return nil
	},
}

// Services holds the driving ports the commands use.
type Services struct {
	Query     driving.QueryService
	WordCount driving.WordCountService
	Messages  driving.MessageService
	Settings  driving.SettingsService
}

// SetServices injects the services used by every command.
func SetServices(s Services) {
	queryService = s.Query
	wordCountService = s.WordCount
	messageService = s.Messages
	settingsService = s.Settings
}

// SetBootstrap registers the function that builds the services once flags
// are parsed. The returned func releases them after the command.
func SetBootstrap(fn func(ctx context.Context, configDir string) (Services, func(), error)) {
	bootstrap = fn
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command and releases the services it used.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	err := rootCmd.ExecuteContext(ctx)
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.querytrans)")
}
