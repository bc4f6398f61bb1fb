package main

import (
	"context"
	"fmt"

	"github.com/gnames/gnoccur/internal/ioapi"
	"github.com/gnames/gnoccur/pkg/occurrence"
	"github.com/spf13/cobra"
)

var (
	searchTaxonKeys []int
	searchCountry   string
	searchHasCoord  string
	searchLimit     int
	searchOffset    int
	searchByKeys    bool
	searchDropNoGeo bool
	searchBBox      bool
)

func getSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search occurrence records",
		Long: `Search occurrence records for one or more taxa. With
--by-keys the query is partitioned and fetched concurrently, one
result list per taxon key. With --bbox the records' geographic
bounding box is printed instead of the records.

Examples:
  gnoccur search --taxon-key 2435099 --limit 50
  gnoccur search --taxon-key 2435099 --taxon-key 5219404 --by-keys
  gnoccur search --taxon-key 2435099 --drop-missing-coordinates --bbox`,
		RunE: runSearch,
	}

	cmd.Flags().IntSliceVar(&searchTaxonKeys, "taxon-key", nil,
		"backbone taxon key (repeatable)")
	cmd.Flags().StringVar(&searchCountry, "country", "",
		"two-letter country code")
	cmd.Flags().StringVar(&searchHasCoord, "has-coordinate", "",
		"filter by coordinate presence (true/false)")
	cmd.Flags().IntVar(&searchLimit, "limit", 20,
		"maximum number of records per taxon")
	cmd.Flags().IntVar(&searchOffset, "offset", 0,
		"number of records to skip")
	cmd.Flags().BoolVar(&searchByKeys, "by-keys", false,
		"partition the query and group results per taxon key")
	cmd.Flags().BoolVar(&searchDropNoGeo, "drop-missing-coordinates",
		false, "discard records without coordinates")
	cmd.Flags().BoolVar(&searchBBox, "bbox", false,
		"print the records' bounding box instead of the records")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := ioapi.New(cfg)
	defer client.Close()

	q, err := buildQuery(
		searchTaxonKeys, searchCountry, searchHasCoord,
		searchLimit, searchOffset,
	)
	if err != nil {
		return err
	}

	if searchByKeys {
		byKey, err := client.SearchByKeys(ctx, q)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		return printJSON(byKey)
	}

	recs, err := client.Search(ctx, q)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	rs := occurrence.NewRecordSet(recs)
	if searchDropNoGeo {
		rs = rs.DropMissingCoordinates()
	}

	if searchBBox {
		bbox, err := rs.BoundingBox()
		if err != nil {
			return fmt.Errorf("cannot compute bounding box: %w", err)
		}
		return printJSON(bbox)
	}

	return printJSON(rs.Records())
}
