// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/pdiddy/rich-context/internal/neighborhood"
	"github.com/pdiddy/rich-context/internal/querycache"
)

var graphCmd = &cobra.Command{
	Use:   "graph <token>",
	Short: "Print the cached diagram of a previous query",
	Args:  cobra.ExactArgs(1),
	RunE:  runGraph,
}

func runGraph(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()

	cache, err := querycache.Open(cfg.Cache)
	if err != nil {
		return err
	}
	defer cache.Close()

	// Diagrams never touch the engine, so no snapshot is loaded.
	svc := neighborhood.NewService(nil, cache)
	d, ok, err := svc.Diagram(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no diagram for token %s", args[0])
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
