package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "career-guide"
)

type Config struct {
	CatalogueFile string      `mapstructure:"catalogue-file"`
	AI            *AIConfig   `mapstructure:"ai"`
	Jobs          *JobsConfig `mapstructure:"jobs"`
}

type AIConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Concurrency  int           `mapstructure:"concurrency"`
	MaxLogLength int           `mapstructure:"max-log-length"`
	Gemini       *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

type JobsConfig struct {
	// Enabled is a boolean-like string such as "true", "1", "yes" or "on".
	Enabled           string        `mapstructure:"enabled"`
	AppID             string        `mapstructure:"app-id"`
	AppKey            string        `mapstructure:"app-key"`
	AppKeyFile        string        `mapstructure:"app-key-file"`
	Country           string        `mapstructure:"country"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests-per-second"`
	RedisURL          string        `mapstructure:"redis-url"`
	CacheTTL          time.Duration `mapstructure:"cache-ttl"`
}

var envBindings = map[string]string{
	"jobs.enabled":           "USE_REAL_JOBS",
	"jobs.app-id":            "ADZUNA_APP_ID",
	"jobs.app-key":           "ADZUNA_APP_KEY",
	"jobs.country":           "ADZUNA_COUNTRY",
	"jobs.redis-url":         "REDIS_URL",
	"ai.gemini.api-key":      "GEMINI_API_KEY",
	"ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "career-guide turns a career assessment into a profile, explains career matches and finds real jobs for them",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetDefault("ai.enabled", true)
	viper.SetDefault("ai.timeout", 30*time.Second)
	viper.SetDefault("ai.concurrency", 5)
	viper.SetDefault("ai.max-log-length", 200)
	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("jobs.enabled", "false")
	viper.SetDefault("jobs.country", "us")
	viper.SetDefault("jobs.timeout", 10*time.Second)
	viper.SetDefault("jobs.cache-ttl", 15*time.Minute)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is career-guide.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("catalogue-file", "", "a JSON or YAML question catalogue replacing the built-in one")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("catalogue-file", rootCmd.PersistentFlags().Lookup("catalogue-file"))
}

func initConfig() {
	// Config is not needed to print the version.
	if versionCmd.CalledAs() != "" {
		return
	}

	// A missing .env file is normal.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// An explicit config must be readable; the default one is optional.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}
	if config.Jobs == nil {
		config.Jobs = &JobsConfig{}
	}

	return config, nil
}
