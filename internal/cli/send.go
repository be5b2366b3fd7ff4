package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/quiz-results/internal/config"
	"github.com/pfrederiksen/quiz-results/internal/notifier"
	"github.com/pfrederiksen/quiz-results/internal/submission"
	"github.com/pfrederiksen/quiz-results/internal/telegram"
)

func newSendCmd(load configLoader) *cobra.Command {
	var (
		input      submissionFlags
		flagDryRun bool
		flagFormat string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one quiz result to Telegram",
		Example: `  quiz-results send --student Alice --score 95 --correct 19 --total 20 --time 125
  echo '{"student":"Bob","score":72}' | quiz-results send -f - --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(flagFormat)
			if err != nil {
				return err
			}

			sub, err := input.build(cmd)
			if err != nil {
				return err
			}

			cfg, err := load()
			if err != nil {
				return err
			}

			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			sentAt := now().In(loc)
			message := telegram.FormatResult(sub, sentAt)

			// JSON output stays parseable, so the dry-run copy goes to stderr
			dryRunOut := cmd.OutOrStdout()
			if format == FormatJSON {
				dryRunOut = cmd.ErrOrStderr()
			}

			n, err := newNotifier(cfg, flagDryRun, dryRunOut)
			if err != nil {
				return err
			}

			if err := n.Notify(cmd.Context(), message); err != nil {
				return fmt.Errorf("sending notification: %w", err)
			}

			return WriteOutput(cmd.OutOrStdout(), newSendResult(sub, message, sentAt, flagDryRun), format)
		},
	}

	input.register(cmd)
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the message instead of sending it")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")

	return cmd
}

func newNotifier(cfg *config.Config, dryRun bool, out io.Writer) (notifier.Notifier, error) {
	if dryRun {
		return notifier.NewDryRunNotifier(out), nil
	}

	if !cfg.Telegram.HasCredentials() {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set (or use --dry-run)")
	}

	client, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID,
		telegram.WithBaseURL(cfg.Telegram.APIURL),
		telegram.WithTimeout(cfg.Telegram.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("creating telegram client: %w", err)
	}
	return client, nil
}

func newSendResult(sub *submission.Submission, message string, sentAt time.Time, dryRun bool) *SendResult {
	plain, err := telegram.PlainText(message)
	if err != nil {
		plain = message
	}
	return &SendResult{
		SentAt:  sentAt,
		Student: sub.Student.String(),
		Score:   sub.Score.String(),
		DryRun:  dryRun,
		Message: plain,
		Length:  len(message),
	}
}
