package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameRestartCmd())
	cmd.AddCommand(newGameHitCmd())
	cmd.AddCommand(newGameStateCmd())
	cmd.AddCommand(newGameStopCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start a new round",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.StartGame()
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameRestartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Restart the round, discarding the current one",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.RestartGame()
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameHitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hit <slot>",
		Short: "Whack the given grid slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid slot: %w", err)
			}

			result, err := client.Hit(slot)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show the current round state",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.GameState()
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Abandon the current round",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.StopGame(); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Round abandoned")
			return nil
		},
	}
}
