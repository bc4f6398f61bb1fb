package main

import (
	"context"
	"fmt"

	"github.com/gnames/gnoccur/internal/ioapi"
	"github.com/spf13/cobra"
)

func getSuggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest <name>",
		Short: "Suggest backbone names for a free-text query",
		Long: `Suggest candidate backbone names for a partial or misspelled
taxon name. Matches arrive in the service's relevance order and
include the backbone key needed by other commands.

Examples:
  gnoccur suggest "Puma"
  gnoccur suggest "Parus mjor"`,
		Args: cobra.ExactArgs(1),
		RunE: runSuggest,
	}

	return cmd
}

func runSuggest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := ioapi.New(cfg)
	defer client.Close()

	matches, err := client.Suggest(ctx, args[0])
	if err != nil {
		return fmt.Errorf("suggestion failed: %w", err)
	}

	return printJSON(matches)
}
