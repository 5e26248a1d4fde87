package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/rewrite-engine/internal/engine"
	"github.com/jonathan/rewrite-engine/internal/lexicon"
)

const app = "rewrite_engine"

var (
	cfgFile string
	verbose bool

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "Evidence-anchored resume rewrite engine",
		Long: "Rewrites weak resume text using only facts the candidate supplied, " +
			"proving every new claim is traceable to evidence before releasing it.",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default rewrite_engine.yaml in cwd)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(app)
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("REWRITE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("engine.max-retries", engine.DefaultMaxRetries)
	viper.SetDefault("engine.max-concurrent", engine.DefaultMaxConcurrent)

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; flags, env and defaults cover everything.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

// newLogger builds the CLI logger; verbose mode switches to the development
// config with debug level enabled.
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// engineConfig assembles the engine configuration from viper.
func engineConfig() engine.Config {
	cfg := engine.DefaultConfig()
	if v := viper.GetInt("engine.max-retries"); v >= 0 {
		cfg.MaxRetries = v
	}
	if v := viper.GetInt("engine.max-concurrent"); v > 0 {
		cfg.MaxConcurrent = v
	}
	return cfg
}

// loadLexicon returns the embedded lexicon, or a custom one when configured.
func loadLexicon() (*lexicon.Lexicon, error) {
	if path := viper.GetString("lexicon.path"); path != "" {
		return lexicon.LoadFrom(path)
	}
	return lexicon.Load()
}
