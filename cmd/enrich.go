package cmd

import (
	"context"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-guide/internal/career"
	"github.com/spigell/career-guide/internal/insights"
	"github.com/spigell/career-guide/internal/jobsearch"
)

const PromptExit = "Exit"

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Explain the top career matches for a student",
	Long: "Build a profile from assessment answers and add AI-written insights to the first five " +
		"career matches. Matches that the AI cannot explain get template insights.",
	Run: func(cmd *cobra.Command, _ []string) {
		enrich(cmd)
	},
}

func init() {
	rootCmd.AddCommand(enrichCmd)

	addAnswerFlags(enrichCmd)
	enrichCmd.Flags().StringP("matches", "m", "", "a JSON file with the ranked list of {career, matchScore} objects")
	enrichCmd.Flags().BoolP("pick", "p", false, "choose an enriched career interactively and search real jobs for it")
	enrichCmd.Flags().Int("limit", 10, "how many jobs to look up for a picked career")
	enrichCmd.Flags().Int("radius", 25, "search radius in miles for a picked career")
	enrichCmd.MarkFlagRequired("matches")
}

func enrich(cmd *cobra.Command) {
	ctx := context.Background()

	logger, config := setup()
	logger.Info("starting the career-guide", zap.String("version", version))

	profile, answers := buildProfile(cmd, config, logger)

	var matches []career.Match
	if err := readJSONFile(cmd.Flag("matches").Value.String(), &matches); err != nil {
		logger.Fatal("reading career matches", zap.Error(err))
	}

	enricher := insights.New(newCaller(ctx, config.AI, logger), logger,
		insights.WithConcurrency(config.AI.Concurrency),
		insights.WithMaxLogLength(config.AI.MaxLogLength),
	)

	enhanced := enricher.GetEnhancedMatches(ctx, profile, answers, matches)
	if err := printJSON(enhanced); err != nil {
		logger.Fatal("printing enriched matches", zap.Error(err))
	}

	pick, _ := cmd.Flags().GetBool("pick")
	if !pick || len(enhanced) == 0 {
		return
	}

	jobs, closeCache := newJobsClient(ctx, config.Jobs, logger)
	defer closeCache()

	limit, _ := cmd.Flags().GetInt("limit")
	radius, _ := cmd.Flags().GetInt("radius")

	if err := pickCareers(ctx, jobs, enhanced, jobsearch.SearchParams{
		ZipCode:     profile.ZipCode,
		RadiusMiles: radius,
		Limit:       limit,
	}, logger); err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}
}

// pickCareers lets the user look up jobs for enriched careers until they exit.
func pickCareers(ctx context.Context, jobs *jobsearch.Client, enhanced []career.EnhancedMatch, params jobsearch.SearchParams, logger *zap.Logger) error {
	items := make([]string, 0, len(enhanced)+1)
	for _, m := range enhanced {
		items = append(items, fmt.Sprintf("%s (%s, %.0f%%)", m.Career.Title, m.Career.Sector, m.MatchScore))
	}
	items = append(items, PromptExit)

	for {
		careerPrompt := promptui.Select{
			Label: "Choose a career to search jobs for and press ENTER",
			Items: items,
		}

		idx, selected, err := careerPrompt.Run()
		if err != nil {
			return err
		}
		if selected == PromptExit {
			logger.Info("exiting", zap.String("reason", "got exit from prompt"))
			return nil
		}

		params.CareerTitle = enhanced[idx].Career.Title
		listings := jobs.SearchJobs(ctx, params)

		logger.Info("found jobs", zap.String("career", params.CareerTitle), zap.Int("count", len(listings)))
		if err := printJSON(listings); err != nil {
			return err
		}
	}
}
