package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print the assessment questions",
	Run: func(_ *cobra.Command, _ []string) {
		logger, config := setup()

		catalogue, err := loadCatalogue(config)
		if err != nil {
			logger.Fatal("loading question catalogue", zap.Error(err))
		}

		if err := printJSON(catalogue.Questions()); err != nil {
			logger.Fatal("printing questions", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(questionsCmd)
}
