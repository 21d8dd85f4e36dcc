// Package cli provides the askpaper command-line interface.
// Commands are thin shells over the driving ports; all business logic
// lives in the core services.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/askpaper/askpaper-cli/internal/core/ports/driving"
	"github.com/askpaper/askpaper-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected by the composition root before Execute.
var (
	documentService driving.DocumentService
	chatService     driving.ChatService
)

// verbose enables debug logging to stderr.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "askpaper",
	Short: "Ask questions about your documents",
	Long: `askpaper ingests your documents, indexes them for similarity
search and answers questions about them with cited sources.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging to stderr")
}

// SetServices injects the driving services. Must be called before
// Execute.
func SetServices(doc driving.DocumentService, chat driving.ChatService) {
	documentService = doc
	chatService = chat
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
