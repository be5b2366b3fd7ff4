package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/quiz-results/internal/config"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// now is replaced in tests
var now = time.Now

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "quiz-results",
		Short: "Relay quiz results to a Telegram chat",
		Long: `A service and CLI that receives quiz results, validates them and
posts a formatted summary to a Telegram chat through the Bot API.

Credentials are read from TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")

	load := func() (*config.Config, error) {
		return config.Load(configPath)
	}

	cmd.AddCommand(
		newServeCmd(load),
		newSendCmd(load),
		newPreviewCmd(load),
	)

	return cmd
}

type configLoader func() (*config.Config, error)

func parseFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", s)
	}
	return format, nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
