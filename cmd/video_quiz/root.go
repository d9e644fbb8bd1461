package main

import (
	"fmt"

	"video-quiz/internal/bootstrap"
	"video-quiz/internal/config"
	"video-quiz/internal/logger"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "video_quiz",
	Short:         "Summarize YouTube videos and quiz yourself on them",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(quizCmd)
}

// setup loads configuration, initializes logging and builds the services.
func setup(cmd *cobra.Command) (*config.Config, *bootstrap.Services, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Logger.Level = "debug"
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("initialize logger: %w", err)
	}

	services, err := bootstrap.New(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, services, nil
}
