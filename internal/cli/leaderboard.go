package cli

import (
	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Leaderboard commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.Leaderboard()
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.AddCommand(newLeaderboardMeCmd())

	return cmd
}

func newLeaderboardMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show your best score and rank",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.MyStanding()
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
