// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rich-context/internal/codec"
	"github.com/pdiddy/rich-context/internal/links"
)

var precomputeCmd = &cobra.Command{
	Use:   "precompute",
	Short: "Build the state artifact from the corpus",
	Long: `Precompute loads the corpus, builds and ranks the graph, estimates
co-occurrence, renders the link view of every entity, and writes the result
to the artifact file. With --links it also exports the link views.`,
	RunE: runPrecompute,
}

func runPrecompute(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()
	ctx := cmd.Context()

	snap, payloads, err := buildSnapshot(ctx, cfg, os.Stdout)
	if err != nil {
		return err
	}

	h, err := codec.Save(cfg.Artifact, snap, payloads)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "wrote %s: %d nodes, %d edges, %d link views (format v%d, %s)\n",
		cfg.Artifact, h.Nodes, h.Edges, len(payloads), h.FormatVersion, h.Algorithm)

	export, _ := cmd.Flags().GetBool("links")
	if export {
		if err := links.NewRecommender(snap).ExportFile(cfg.Links); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "exported links to %s\n", cfg.Links)
	}
	return nil
}

func init() {
	precomputeCmd.Flags().Bool("links", false, "also export link views to the links file")
	precomputeCmd.Flags().Int("workers", links.DefaultWorkers, "parallel link renderers")
	bindFlag("workers", precomputeCmd.Flags().Lookup("workers"))

	rootCmd.AddCommand(precomputeCmd)
}
