package main

import (
	"fmt"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-trainer/internal"
)

const defaultConfigPath = "./config.yml"

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "tictactoe",
		Short:        "Tic-tac-toe that learns from the games it plays",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to the config file")

	rootCmd.AddCommand(
		newServeCmd(&configPath),
		newTrainCmd(&configPath),
	)

	return rootCmd
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the game over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			conf := initConfig(*configPath)

			if err := app.RunApp(initLogger(conf), conf); err != nil {
				return fmt.Errorf("app run failed: %w", err)
			}

			return nil
		},
	}
}

func newTrainCmd(configPath *string) *cobra.Command {
	var games int

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Play games against itself and store what was learned",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := initConfig(*configPath)

			if !cmd.Flags().Changed("games") {
				games = conf.Game.TrainingGames
			}

			if games <= 0 {
				return fmt.Errorf("number of games must be positive, got %d", games)
			}

			if err := app.RunTraining(initLogger(conf), conf, games); err != nil {
				return fmt.Errorf("training failed: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&games, "games", "g", 0, "number of games to play (default from config)")

	return cmd
}
