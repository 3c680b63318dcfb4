package cmd

import (
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/akarpov/jobtrack/internal/catalog"
	"github.com/akarpov/jobtrack/internal/logger"
	"github.com/akarpov/jobtrack/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const app = "jobtrack"

type Config struct {
	StateFile   string    `mapstructure:"state-file"`
	CatalogFile string    `mapstructure:"catalog-file"`
	AI          *AIConfig `mapstructure:"ai"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobtrack is a personal job-application tracker with preference matching and a daily digest",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobtrack.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("state-file", "", "path to the state database (default is ~/.jobtrack/state.db)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("state-file", rootCmd.PersistentFlags().Lookup("state-file"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The tool works with defaults alone; only a present-but-broken
	// config file is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}
	return config, nil
}

// newLogger builds the shared logger or aborts; nothing works without it.
func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

// openKV opens the state database, creating its directory on first run.
func openKV(config *Config) (store.KV, error) {
	path := config.StateFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			path = app + ".db"
		} else {
			path = filepath.Join(home, "."+app, "state.db")
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	return store.OpenSQLite(path)
}

// loadCatalog returns the configured job dataset, falling back to the
// embedded one.
func loadCatalog(config *Config) (*catalog.Catalog, error) {
	if config.CatalogFile != "" {
		return catalog.LoadFile(config.CatalogFile)
	}
	return catalog.Default()
}
