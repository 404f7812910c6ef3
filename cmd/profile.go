package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-guide/internal/assessment"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Build a student profile from assessment answers",
	Run: func(cmd *cobra.Command, _ []string) {
		logger, config := setup()

		profile, _ := buildProfile(cmd, config, logger)

		if err := printJSON(profile); err != nil {
			logger.Fatal("printing profile", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)

	addAnswerFlags(profileCmd)
}

func addAnswerFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("answers", "a", "", "a JSON file with a list of {questionId, answer} objects")
	cmd.Flags().StringP("zip", "z", "", "the student's zip code")
	cmd.MarkFlagRequired("answers")
}

// buildProfile reads the answers named by the command flags and returns the
// generated profile together with the answers.
func buildProfile(cmd *cobra.Command, config *Config, logger *zap.Logger) (*assessment.Profile, []assessment.Answer) {
	catalogue, err := loadCatalogue(config)
	if err != nil {
		logger.Fatal("loading question catalogue", zap.Error(err))
	}

	answers, err := readAnswers(cmd.Flag("answers").Value.String())
	if err != nil {
		logger.Fatal("reading answers", zap.Error(err))
	}

	if result := assessment.ValidateAnswers(catalogue, answers); !result.Valid {
		logger.Warn("answers did not pass validation; building the profile anyway",
			zap.Strings("errors", result.Errors),
		)
	}

	profile := assessment.GenerateProfile(catalogue, answers, cmd.Flag("zip").Value.String())
	logger.Debug("profile generated",
		zap.Strings("interests", profile.Interests),
		zap.Strings("skills", profile.Skills),
	)

	return profile, answers
}
