package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-guide/internal/jobsearch"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Search real job postings for a career",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := context.Background()
		logger, config := setup()

		jobs, closeCache := newJobsClient(ctx, config.Jobs, logger)
		defer closeCache()

		flags := cmd.Flags()
		keywords, _ := flags.GetString("keywords")
		title, _ := flags.GetString("title")
		zip, _ := flags.GetString("zip")
		radius, _ := flags.GetInt("radius")
		limit, _ := flags.GetInt("limit")

		listings := jobs.SearchJobs(ctx, jobsearch.SearchParams{
			Keywords:    keywords,
			CareerTitle: title,
			ZipCode:     zip,
			RadiusMiles: radius,
			Limit:       limit,
		})

		logger.Info("found jobs", zap.Int("count", len(listings)))
		if err := printJSON(listings); err != nil {
			logger.Fatal("printing jobs", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)

	jobsCmd.Flags().StringP("keywords", "k", "", "free-text search terms")
	jobsCmd.Flags().StringP("title", "t", "", "a career title to search for")
	jobsCmd.Flags().StringP("zip", "z", "", "zip code to search around")
	jobsCmd.Flags().Int("radius", 25, "search radius in miles")
	jobsCmd.Flags().IntP("limit", "l", 20, "maximum number of jobs to return")
}
