package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-guide/internal/assessment"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check assessment answers against the question catalogue",
	Long:  "Check assessment answers against the question catalogue. Exits with status 1 when the answers are not valid.",
	Run: func(cmd *cobra.Command, _ []string) {
		logger, config := setup()

		catalogue, err := loadCatalogue(config)
		if err != nil {
			logger.Fatal("loading question catalogue", zap.Error(err))
		}

		answers, err := readAnswers(cmd.Flag("answers").Value.String())
		if err != nil {
			logger.Fatal("reading answers", zap.Error(err))
		}

		result := assessment.ValidateAnswers(catalogue, answers)
		if err := printJSON(result); err != nil {
			logger.Fatal("printing validation result", zap.Error(err))
		}

		if !result.Valid {
			logger.Info("answers are not valid", zap.Int("errors", len(result.Errors)))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("answers", "a", "", "a JSON file with a list of {questionId, answer} objects")
	validateCmd.MarkFlagRequired("answers")
}
