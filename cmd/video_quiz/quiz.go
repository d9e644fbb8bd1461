package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"video-quiz/internal/domain"
	"video-quiz/internal/logger"
	"video-quiz/internal/validation"

	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate a quiz from a summary and print it as JSON",
	RunE:  runQuiz,
}

func init() {
	quizCmd.Flags().String("summary-file", "", "Summary to quiz on (defaults to the last processed summary)")
	quizCmd.Flags().Int("count", 0, "Number of questions (defaults to quiz.question_count)")
}

func runQuiz(cmd *cobra.Command, _ []string) error {
	cfg, services, err := setup(cmd)
	if err != nil {
		return err
	}
	defer services.Close()
	defer logger.Sync()

	var summary string
	if path, _ := cmd.Flags().GetString("summary-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read summary: %w", err)
		}
		summary = string(data)
	} else {
		summary, err = services.Artifacts.LoadText(cfg.Artifacts.SummaryFile)
		if err != nil {
			return fmt.Errorf("no summary found, run process first: %w", err)
		}
	}
	if strings.TrimSpace(summary) == "" {
		return domain.NewInvalidInputError("No valid summary found.")
	}

	count, _ := cmd.Flags().GetInt("count")
	if count == 0 {
		count = cfg.Quiz.QuestionCount
	}
	if errs := validation.NewValidator(cfg.Quiz.MaxCount).ValidateCount(count); len(errs) > 0 {
		return errs
	}

	questions := services.Generator.Generate(cmd.Context(), summary, count)
	if len(questions) == 0 {
		return domain.NewNoQuestionsGeneratedError()
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(questions)
}
