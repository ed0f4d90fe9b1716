// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the rich-context CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/rich-context/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the rich-context CLI.
var rootCmd = &cobra.Command{
	Use:   "rich-context",
	Short: "Neighborhood queries and link views over a research knowledge graph",
	Long: `rich-context loads a linked-data corpus of providers, datasets, publications,
authors, journals, and topics into a weighted graph, ranks every entity by
centrality, and answers bounded-radius neighborhood queries.

Run precompute once to build the state artifact; query, graph, links, export,
and download then work from that artifact.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(logging.Config{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
			Output: os.Stderr,
		})
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./rich-context.yaml or ~/.config/rich-context/config.yaml)")
	flags.String("corpus", defaultCorpus, "JSON-LD corpus path or http(s) URL")
	flags.String("artifact", defaultArtifact, "precomputed state artifact")
	flags.String("cache-dir", defaultCacheDir, "directory for the query cache")
	flags.String("cache-backend", "badger", "query cache backend: badger, sqlite, or memory")
	flags.String("algorithm", "eigenvector", "centrality algorithm: eigenvector or pagerank")
	flags.String("log-level", "info", "log level: trace, debug, info, warn, error")
	flags.String("log-format", "console", "log format: console or json")

	bind := map[string]string{
		"corpus":            "corpus",
		"artifact":          "artifact",
		"cache.dir":         "cache-dir",
		"cache.backend":     "cache-backend",
		"ranking.algorithm": "algorithm",
		"log.level":         "log-level",
		"log.format":        "log-format",
	}
	for key, flag := range bind {
		bindFlag(key, flags.Lookup(flag))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("rich-context")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "rich-context"))
		}
	}

	viper.SetEnvPrefix("RICH_CONTEXT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
