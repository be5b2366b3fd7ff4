package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/quiz-results/internal/telegram"
)

func newPreviewCmd(load configLoader) *cobra.Command {
	var (
		input     submissionFlags
		flagPlain bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the message a quiz result would produce",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			message := telegram.FormatResult(sub, now().In(loc))
			if flagPlain {
				if message, err = telegram.PlainText(message); err != nil {
					return fmt.Errorf("stripping markup: %w", err)
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	}

	input.register(cmd)
	cmd.Flags().BoolVar(&flagPlain, "plain", false, "Strip the HTML markup")

	return cmd
}
