// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the md2ipynb CLI, which turns
// markdown lecture notes with fenced Python code into Jupyter notebooks.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/md2ipynb/internal/logging"
	"github.com/pdiddy/md2ipynb/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured from --log-level and --log-format before any
// subcommand runs.
var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// rootCmd is the base command for the md2ipynb CLI.
var rootCmd = &cobra.Command{
	Use:   "md2ipynb",
	Short: "Convert markdown notes with fenced code into Jupyter notebooks",
	Long: `md2ipynb converts a markdown document into an nbformat 4 notebook. Prose
becomes markdown cells; every fenced block tagged with the configured language
(python by default) becomes a code cell, numbered in document order.

Use convert to produce notebooks, inspect to see how a document is split into
blocks, and history to list conversions recorded in the local log.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(os.Stderr, viper.GetString("log.level"), logging.Format(viper.GetString("log.format")))
		if err != nil {
			return err
		}
		logger = l
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug("using config file", "path", f)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./md2ipynb.yaml or ~/.config/md2ipynb/md2ipynb.yaml)")
	flags.String("lang", types.DefaultLang, "fence language tag that opens a code cell")
	flags.String("log-level", "info", "log level: debug, info, warn, or error")
	flags.String("log-format", "text", "log format: text or json")

	mustBind("lang", flags.Lookup("lang"))
	mustBind("log.level", flags.Lookup("log-level"))
	mustBind("log.format", flags.Lookup("log-format"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("md2ipynb")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "md2ipynb"))
		}
	}

	viper.SetEnvPrefix("MD2IPYNB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for k, v := range configKeys {
		viper.SetDefault(k, v)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "Error reading config file:", err)
			os.Exit(1)
		}
	}
}

// configKeys lists the settings that may come only from the config file or
// the environment. Registering them lets AutomaticEnv see nested keys.
var configKeys = map[string]any{
	"kernel.display_name": types.DefaultKernelDisplayName,
	"kernel.name":         types.DefaultKernelName,
	"kernel.language":     types.DefaultKernelLanguage,
	"kernel.version":      types.DefaultKernelVersion,
	"history.path":        types.DefaultHistoryPath,
}

// conversionConfig assembles the conversion settings from flags, the
// environment, and the config file.
func conversionConfig() (types.ConversionConfig, error) {
	var cfg types.ConversionConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg.WithDefaults(), nil
}

// mustBind binds a viper key to a flag. Binding only fails for a nil flag,
// which is a programming error.
func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding %s: %v", key, err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
