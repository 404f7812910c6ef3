package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/career-guide/internal/ai"
	"github.com/spigell/career-guide/internal/ai/gemini"
	"github.com/spigell/career-guide/internal/assessment"
	"github.com/spigell/career-guide/internal/jobsearch"
	"github.com/spigell/career-guide/internal/logger"
	"github.com/spigell/career-guide/internal/secrets"
)

const redisConnectTimeout = 3 * time.Second

// stdout is where command results go; logs are written to stderr.
var stdout io.Writer = os.Stdout

// setup builds the logger and loads the configuration for a command.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	return logger, config
}

func loadCatalogue(config *Config) (*assessment.Catalogue, error) {
	if path := strings.TrimSpace(config.CatalogueFile); path != "" {
		return assessment.LoadCatalogue(path)
	}
	return assessment.DefaultCatalogue()
}

// newCaller returns nil when AI is disabled or no api key is configured, so
// enrichment falls back to template insights.
func newCaller(ctx context.Context, config *AIConfig, logger *zap.Logger) ai.Caller {
	if !config.Enabled {
		logger.Info("AI insights are disabled; using fallback insights")
		return nil
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  config.Gemini.APIKeyFile,
		Value: config.Gemini.APIKey,
	})
	if err != nil {
		logger.Warn("AI insights are unavailable; using fallback insights",
			zap.Error(err),
			zap.String("hint", "set ai.gemini.api-key (GEMINI_API_KEY) or ai.gemini.api-key-file (GEMINI_API_KEY_FILE)"),
		)
		return nil
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, config.Gemini.Model, config.Timeout, logger)
	if err != nil {
		logger.Warn("creating gemini client; using fallback insights", zap.Error(err))
		return nil
	}

	return generator
}

// newJobsClient builds the job search client. The returned function releases
// the page cache, if any.
func newJobsClient(ctx context.Context, config *JobsConfig, logger *zap.Logger) (*jobsearch.Client, func()) {
	appKey, err := secrets.Optional(secrets.Source{
		Name:  "adzuna app key",
		File:  config.AppKeyFile,
		Value: config.AppKey,
	})
	if err != nil {
		logger.Warn("loading adzuna app key", zap.Error(err))
	}

	cfg := jobsearch.Config{
		Enabled:           jobsearch.Affirmative(config.Enabled),
		AppID:             config.AppID,
		AppKey:            appKey,
		Country:           config.Country,
		Timeout:           config.Timeout,
		RequestsPerSecond: config.RequestsPerSecond,
	}

	var opts []jobsearch.Option
	closeCache := func() {}

	if redisURL := strings.TrimSpace(config.RedisURL); redisURL != "" {
		connectCtx, cancel := context.WithTimeout(ctx, redisConnectTimeout)
		cache, err := jobsearch.NewRedisCache(connectCtx, redisURL)
		cancel()

		if err != nil {
			logger.Warn("job page cache disabled", zap.Error(err))
		} else {
			opts = append(opts, jobsearch.WithCache(cache, config.CacheTTL))
			closeCache = func() {
				if err := cache.Close(); err != nil {
					logger.Debug("closing job page cache", zap.Error(err))
				}
			}
		}
	}

	return jobsearch.New(cfg, logger, opts...), closeCache
}

func readJSONFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

func readAnswers(path string) ([]assessment.Answer, error) {
	var answers []assessment.Answer
	if err := readJSONFile(path, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

func printJSON(v any) error {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, string(pretty))
	return err
}
