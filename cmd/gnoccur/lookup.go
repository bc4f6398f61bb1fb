package main

import (
	"context"
	"fmt"

	"github.com/gnames/gnoccur/internal/ioapi"
	"github.com/gnames/gnoccur/pkg/taxon"
	"github.com/spf13/cobra"
)

var (
	lookupRank    string
	lookupDataset string
	lookupLimit   int
	lookupBest    bool
)

func getLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <name>",
		Short: "Look up taxon records for a name at a rank",
		Long: `Look up canonical taxon records for a scientific name.
Authorship is stripped before the query, so verbatim names from
publications work as-is. Only records at the requested rank are
returned.

Examples:
  gnoccur lookup "Puma concolor" --rank SPECIES
  gnoccur lookup "Felidae" --rank FAMILY --best
  gnoccur lookup "Parus major Linnaeus, 1758"`,
		Args: cobra.ExactArgs(1),
		RunE: runLookup,
	}

	cmd.Flags().StringVar(&lookupRank, "rank", "SPECIES",
		"backbone rank of the name (SPECIES, GENUS, FAMILY...)")
	cmd.Flags().StringVar(&lookupDataset, "dataset", "",
		"restrict the lookup to one checklist dataset")
	cmd.Flags().IntVar(&lookupLimit, "limit", 20,
		"maximum number of records to return")
	cmd.Flags().BoolVar(&lookupBest, "best", false,
		"return only the best match")

	return cmd
}

func runLookup(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := ioapi.New(cfg)
	defer client.Close()

	rank, ok := taxon.ParseRank(lookupRank)
	if !ok {
		return fmt.Errorf("unknown rank %q", lookupRank)
	}

	if lookupBest {
		rec, err := client.LookupBest(ctx, args[0], rank, lookupDataset)
		if err != nil {
			return fmt.Errorf("lookup failed: %w", err)
		}
		return printJSON(rec)
	}

	recs, err := client.Lookup(ctx, args[0], rank, lookupDataset, lookupLimit)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}
	return printJSON(recs)
}
