package main

import (
	"fmt"

	"video-quiz/internal/domain"
	"video-quiz/internal/logger"
	"video-quiz/internal/validation"

	"github.com/spf13/cobra"
)

var processCmd = &cobra.Command{
	Use:   "process <youtube-url>",
	Short: "Download, transcribe and summarize a video",
	Args:  cobra.ExactArgs(1),
	RunE:  runProcess,
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, services, err := setup(cmd)
	if err != nil {
		return err
	}
	defer services.Close()
	defer logger.Sync()

	videoID, errs := validation.NewValidator(cfg.Quiz.MaxCount).ValidateVideoURL(args[0])
	if len(errs) > 0 {
		return errs
	}

	result, err := services.Video.Process(cmd.Context(), domain.VideoRequest{URL: validation.CanonicalVideoURL(videoID), VideoID: videoID})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Video:        %s\n", result.VideoID)
	fmt.Fprintf(out, "Process time: %.2fs (cached: %t)\n", result.ProcessTime, result.Cached)
	fmt.Fprintf(out, "Transcript:   %s\n", cfg.TranscriptionPath())
	fmt.Fprintf(out, "Summary:      %s\n\n", cfg.SummaryPath())
	fmt.Fprintln(out, result.Summary)
	return nil
}
