// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/pdiddy/rich-context/internal/links"
	"github.com/pdiddy/rich-context/pkg/types"
)

// --- links ---

var linksCmd = &cobra.Command{
	Use:   "links [index]",
	Short: "Print the link view of an entity",
	Long: `Links prints the one-hop recommendation view of the entity at index, or of
the entity named by --id. Without --context the pre-rendered view from the
artifact is printed; with --context the view is rendered live and dataset
publications are ordered by co-occurrence with that entity.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLinks,
}

func runLinks(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()
	id, _ := cmd.Flags().GetString("id")
	contextID, _ := cmd.Flags().GetString("context")

	if id == "" && len(args) == 0 {
		return fmt.Errorf("an index argument or --id is required")
	}

	snap, payloads, err := loadSnapshot(cmd.Context(), cfg, os.Stderr)
	if err != nil {
		return err
	}
	rec := links.NewRecommender(snap)

	var index int
	if id != "" {
		pos, ok := snap.Store.Index.Position(id)
		if !ok {
			return fmt.Errorf("%w: %s", links.ErrNotFound, id)
		}
		index = pos
	} else {
		index, err = strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[0], err)
		}
	}

	var opts []links.Option
	if contextID != "" {
		pos, ok := snap.Store.Index.Position(contextID)
		if !ok {
			return fmt.Errorf("%w: context %s", links.ErrNotFound, contextID)
		}
		opts = append(opts, links.WithContext(pos))
	} else if raw, ok := payloads.Lookup(snap, index); ok {
		return printIndented(raw)
	}

	view, ok := rec.View(index, opts...)
	if !ok {
		return fmt.Errorf("%w: index %d", links.ErrNotFound, index)
	}
	return printView(view)
}

func printView(view types.LinkView) error {
	data, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return printIndented(data)
}

func printIndented(raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// --- export ---

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the link view of every entity to the links file",
	Long: `Export writes every link view, sorted by entity id, to the links file.
A .yaml or .yml extension selects YAML; anything else is JSON.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()
	snap, _, err := loadSnapshot(cmd.Context(), cfg, os.Stderr)
	if err != nil {
		return err
	}
	rec := links.NewRecommender(snap)
	if err := rec.ExportFile(cfg.Links); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "exported %d link views to %s\n", len(rec.Entries()), cfg.Links)
	return nil
}

// --- download ---

var downloadCmd = &cobra.Command{
	Use:   "download <dataset-id>",
	Short: "Write a CSV of the publications citing a dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runDownload,
}

func runDownload(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()
	out, _ := cmd.Flags().GetString("output")

	snap, _, err := loadSnapshot(cmd.Context(), cfg, os.Stderr)
	if err != nil {
		return err
	}
	data, name, err := links.Download(snap.Store, args[0])
	if err != nil {
		return err
	}
	if out == "" {
		out = name + ".csv"
	}
	if out == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Fprintf(os.Stdout, "wrote %s\n", out)
	return nil
}

func init() {
	linksCmd.Flags().String("id", "", "entity id instead of an index")
	linksCmd.Flags().String("context", "", "entity id to order publications against")

	exportCmd.Flags().String("links", defaultLinks, "links export file (.json, .yaml)")
	bindFlag("links", exportCmd.Flags().Lookup("links"))

	downloadCmd.Flags().StringP("output", "o", "", "output file (default: <title stem>.csv, - for stdout)")

	rootCmd.AddCommand(linksCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(downloadCmd)
}
