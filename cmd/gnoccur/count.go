package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gnames/gnoccur/internal/ioapi"
	"github.com/gnames/gnoccur/pkg/occurrence"
	"github.com/spf13/cobra"
)

var (
	countTaxonKeys []int
	countCountry   string
	countHasCoord  string
)

func getCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count occurrence records matching a query",
		Long: `Count occurrence records without retrieving them. Counts
routinely reach into the millions; check the count before a search
or a bulk download.

Examples:
  gnoccur count --taxon-key 2435099
  gnoccur count --taxon-key 2435099 --country US --has-coordinate true`,
		RunE: runCount,
	}

	cmd.Flags().IntSliceVar(&countTaxonKeys, "taxon-key", nil,
		"backbone taxon key (repeatable; counts are summed)")
	cmd.Flags().StringVar(&countCountry, "country", "",
		"two-letter country code")
	cmd.Flags().StringVar(&countHasCoord, "has-coordinate", "",
		"filter by coordinate presence (true/false)")

	return cmd
}

func runCount(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := ioapi.New(cfg)
	defer client.Close()

	q, err := buildQuery(countTaxonKeys, countCountry, countHasCoord, 0, 0)
	if err != nil {
		return err
	}

	n, err := client.Count(ctx, q)
	if err != nil {
		return fmt.Errorf("count failed: %w", err)
	}

	fmt.Println(n)
	return nil
}

// buildQuery assembles an occurrence query from command flags.
func buildQuery(
	keys []int, country, hasCoord string, limit, offset int,
) (occurrence.Query, error) {
	q := occurrence.Query{
		TaxonKeys: keys,
		Country:   country,
		Limit:     limit,
		Offset:    offset,
	}
	if hasCoord != "" {
		b, err := strconv.ParseBool(hasCoord)
		if err != nil {
			return q, fmt.Errorf(
				"--has-coordinate takes true or false, got %q", hasCoord,
			)
		}
		q.HasCoordinate = &b
	}
	return q, nil
}
