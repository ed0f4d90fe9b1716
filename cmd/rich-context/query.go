// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/pdiddy/rich-context/internal/neighborhood"
	"github.com/pdiddy/rich-context/internal/querycache"
	"github.com/pdiddy/rich-context/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query <radius> <entity title>",
	Short: "Rank the neighborhood of an entity",
	Long: `Query finds the entity whose title matches (case-insensitive) and lists
every visible entity within radius hops, grouped by kind and sorted by
proximity, co-occurrence, and impact. The radius is clamped to 1..10; a
non-numeric radius means 2.

The diagram of a matched query is cached under the printed token; fetch it
with the graph command.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()
	ctx := cmd.Context()
	asJSON, _ := cmd.Flags().GetBool("json")
	rerank, _ := cmd.Flags().GetString("rerank")

	snap, _, err := loadSnapshot(ctx, cfg, os.Stderr)
	if err != nil {
		return err
	}

	var opts []neighborhood.Option
	if rerank != "" {
		pos, ok := snap.Store.Index.Position(rerank)
		if !ok {
			return fmt.Errorf("rerank context %q not found", rerank)
		}
		opts = append(opts, neighborhood.WithRerank(pos))
	}

	cache, err := querycache.Open(cfg.Cache)
	if err != nil {
		return err
	}
	defer cache.Close()

	svc := neighborhood.NewService(neighborhood.NewEngine(snap), cache)
	entity := strings.Join(args[1:], " ")
	hood, err := svc.Query(ctx, entity, args[0], opts...)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(hood)
	}
	if hood.Len() == 0 {
		fmt.Fprintf(os.Stdout, "no entity titled %q\n", entity)
		return nil
	}
	printNeighborhood(os.Stdout, hood)
	return nil
}

func printNeighborhood(w io.Writer, hood types.Neighborhood) {
	groups := []struct {
		name    string
		entries []types.NeighborEntry
	}{
		{"Providers", hood.Providers},
		{"Datasets", hood.Datasets},
		{"Publications", hood.Publications},
		{"Journals", hood.Journals},
		{"Authors", hood.Authors},
		{"Topics", hood.Topics},
	}
	for _, g := range groups {
		if len(g.entries) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s (%d)\n", g.name, len(g.entries))
		for _, e := range g.entries {
			if !e.Shown {
				continue
			}
			line := fmt.Sprintf("  [%d] %s  impact=%s prox=%d count=%d",
				e.Index, e.Title, e.Impact, e.Rank.Proximity, e.Rank.Count)
			if e.Detail != "" {
				line += "  " + e.Detail
			}
			fmt.Fprintln(w, line)
		}
	}
	fmt.Fprintf(w, "token: %s (%s ms)\n", hood.Token, hood.Elapsed)
}

func init() {
	queryCmd.Flags().Bool("json", false, "print the neighborhood as JSON")
	queryCmd.Flags().String("rerank", "", "entity id to rank co-occurrence against (default: the matched entity)")

	rootCmd.AddCommand(queryCmd)
}
