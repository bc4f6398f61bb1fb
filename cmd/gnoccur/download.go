package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnoccur/internal/ioapi"
	"github.com/gnames/gnoccur/internal/ioarchive"
	"github.com/gnames/gnoccur/internal/iostore"
	"github.com/gnames/gnoccur/pkg/config"
	"github.com/gnames/gnoccur/pkg/download"
	"github.com/spf13/cobra"
)

var (
	dlTaxonKeys []int
	dlCountry   string
	dlHasCoord  string
	dlWait      bool
	dlMaxRows   int
)

func getDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Manage asynchronous bulk download jobs",
		Long: `Manage bulk occurrence downloads. The service compiles an
export server-side over minutes to hours; submission returns a
request key used to poll, fetch and cite the result. Submissions
require account credentials (download.* settings).

Fetched archives land in ~/.cache/gnoccur/downloads and are
recorded in a local registry, so past downloads stay citable
offline.`,
	}

	cmd.AddCommand(getDlSubmitCmd())
	cmd.AddCommand(getDlStatusCmd())
	cmd.AddCommand(getDlWaitCmd())
	cmd.AddCommand(getDlFetchCmd())
	cmd.AddCommand(getDlCiteCmd())
	cmd.AddCommand(getDlListCmd())
	cmd.AddCommand(getDlLoadCmd())

	return cmd
}

func getDlSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a bulk download job",
		Long: `Submit an export job for all records matching the query.
At least one filter is required; the service refuses unbounded
downloads of the whole index.

Examples:
  gnoccur download submit --taxon-key 2435099 --country US
  gnoccur download submit --taxon-key 2435099 --wait`,
		RunE: runDlSubmit,
	}

	cmd.Flags().IntSliceVar(&dlTaxonKeys, "taxon-key", nil,
		"backbone taxon key (repeatable)")
	cmd.Flags().StringVar(&dlCountry, "country", "",
		"two-letter country code")
	cmd.Flags().StringVar(&dlHasCoord, "has-coordinate", "",
		"filter by coordinate presence (true/false)")
	cmd.Flags().BoolVar(&dlWait, "wait", false,
		"block until the job reaches a terminal status")

	return cmd
}

func runDlSubmit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := ioapi.New(cfg)
	defer client.Close()

	q, err := buildQuery(dlTaxonKeys, dlCountry, dlHasCoord, 0, 0)
	if err != nil {
		return err
	}

	job, err := client.Submit(ctx, q)
	if err != nil {
		return fmt.Errorf("submission failed: %w", err)
	}
	fmt.Printf("Download submitted, key: %s\n", job.Key)

	if dlWait {
		return waitAndReport(ctx, client, job)
	}

	fmt.Println("Check progress with 'gnoccur download status " +
		job.Key + "'")
	return nil
}

func getDlStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <key>",
		Short: "Show the current state of a download job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client := ioapi.New(cfg)
			defer client.Close()

			job, err := client.Poll(ctx, download.Job{Key: args[0]})
			if err != nil {
				return fmt.Errorf("status check failed: %w", err)
			}
			return printJSON(job)
		},
	}
}

func getDlWaitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wait <key>",
		Short: "Block until a download job finishes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client := ioapi.New(cfg)
			defer client.Close()

			return waitAndReport(
				ctx, client, download.Job{Key: args[0]},
			)
		},
	}
}

func waitAndReport(
	ctx context.Context, client *ioapi.Client, job download.Job,
) error {
	start := time.Now()
	fmt.Printf("Waiting for download %s...\n", job.Key)

	res, err := client.Wait(ctx, job)
	if err != nil {
		return fmt.Errorf("wait failed: %w", err)
	}

	fmt.Printf("Download %s finished in %s, %d records\n",
		res.Key,
		gnfmt.TimeString(time.Since(start).Seconds()),
		res.TotalRecords,
	)
	return printJSON(res)
}

func getDlFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <key>",
		Short: "Fetch a finished download's archive",
		Long: `Fetch the compressed archive of a finished download job and
record it in the local registry. Jobs that are not finished are
refused; an already-fetched archive is not transferred again.`,
		Args: cobra.ExactArgs(1),
		RunE: runDlFetch,
	}
}

func runDlFetch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := ioapi.New(cfg)
	defer client.Close()

	job, err := client.Poll(ctx, download.Job{Key: args[0]})
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	path, err := client.FetchArchive(ctx, job, config.DownloadDir(homeDir))
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}

	store, err := iostore.New(config.RegistryFilePath(homeDir))
	if err != nil {
		return err
	}
	defer store.Close()

	err = store.Save(iostore.Archive{
		Key:         job.Key,
		DOI:         job.DOI,
		Path:        path,
		Size:        size,
		RecordCount: job.TotalRecords,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Archive saved to %s\n", path)
	return nil
}

func getDlCiteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cite <key>",
		Short: "Print the citation for a download",
		Long: `Print the canonical citation string for a download's DOI.
Fetched downloads are cited from the local registry without a
network round trip.`,
		Args: cobra.ExactArgs(1),
		RunE: runDlCite,
	}
}

func runDlCite(cmd *cobra.Command, args []string) error {
	key := args[0]
	job := download.Job{Key: key}

	store, err := iostore.New(config.RegistryFilePath(homeDir))
	if err != nil {
		return err
	}
	arch, found, err := store.Get(key)
	store.Close()
	if err != nil {
		return err
	}

	if found {
		job.DOI = arch.DOI
	} else {
		client := ioapi.New(cfg)
		defer client.Close()
		job, err = client.Poll(context.Background(), job)
		if err != nil {
			return fmt.Errorf("status check failed: %w", err)
		}
	}

	citation, err := job.Citation()
	if err != nil {
		return fmt.Errorf("citation failed: %w", err)
	}
	fmt.Println(citation)
	return nil
}

func getDlListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List fetched downloads from the local registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := iostore.New(config.RegistryFilePath(homeDir))
			if err != nil {
				return err
			}
			defer store.Close()

			archives, err := store.List()
			if err != nil {
				return err
			}
			return printJSON(archives)
		},
	}
}

func getDlLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <key>",
		Short: "Load records from a fetched archive",
		Long: `Load occurrence records from a fetched archive and print
them as JSON. The archive must have been fetched first; the path
comes from the local registry.

Examples:
  gnoccur download load 0001234-240216155721649
  gnoccur download load 0001234-240216155721649 --max-rows 100`,
		Args: cobra.ExactArgs(1),
		RunE: runDlLoad,
	}

	cmd.Flags().IntVar(&dlMaxRows, "max-rows", 0,
		"stop after this many records (0 loads all)")

	return cmd
}

func runDlLoad(cmd *cobra.Command, args []string) error {
	key := args[0]

	store, err := iostore.New(config.RegistryFilePath(homeDir))
	if err != nil {
		return err
	}
	arch, found, err := store.Get(key)
	store.Close()
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf(
			"download %s is not in the registry; fetch it first", key,
		)
	}

	rs, skipped, err := ioarchive.Load(arch.Path, "", dlMaxRows)
	if err != nil {
		return fmt.Errorf("cannot load archive: %w", err)
	}
	if skipped > 0 {
		fmt.Fprintf(os.Stderr, "Skipped %d malformed rows\n", skipped)
	}

	return printJSON(rs.Records())
}
