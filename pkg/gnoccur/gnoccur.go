// Package gnoccur defines the capability interfaces of the occurrence
// service client. The HTTP implementation lives in internal/ioapi; tests
// substitute fakes returning canned records, so nothing downstream touches
// the network.
package gnoccur

import (
	"context"

	"github.com/gnames/gnoccur/pkg/download"
	"github.com/gnames/gnoccur/pkg/occurrence"
	"github.com/gnames/gnoccur/pkg/taxon"
)

// NameResolver turns a free-text taxon name into candidate matches with
// assigned ranks. Match ordering follows the service's relevance ranking
// and is display-only; it must not be relied on for correctness.
type NameResolver interface {
	// Suggest performs one request and returns zero or more candidate
	// matches for the query string. It does not retry on transport
	// failure; retry policy belongs to the caller.
	Suggest(ctx context.Context, q string) ([]taxon.Match, error)
}

// Taxonomy fetches canonical taxon records from the backbone.
type Taxonomy interface {
	// Lookup returns taxon records matching name and rank, bounded by
	// limit. An empty datasetID means the default backbone; otherwise
	// the lookup is restricted to the given checklist. Unknown ranks
	// and empty names are rejected before any request is made.
	Lookup(
		ctx context.Context,
		name string, rank taxon.Rank, datasetID string, limit int,
	) ([]taxon.Record, error)

	// LookupBest returns the single best match for name and rank.
	// With several matches the service's ranking decides; callers
	// wanting determinism pass limit=1 semantics implicitly here and
	// accept service-defined precedence.
	LookupBest(
		ctx context.Context,
		name string, rank taxon.Rank, datasetID string,
	) (taxon.Record, error)
}

// OccurrenceSearcher is the synchronous, immediately-bounded search path.
// Counting before bulk retrieval is the intended usage: Count is a cheap
// metadata-only probe, while Search transfers full records.
type OccurrenceSearcher interface {
	// Count returns the number of records matching the query without
	// retrieving them.
	Count(ctx context.Context, q occurrence.Query) (int64, error)

	// Search returns at most q.Limit records for a single taxon key.
	Search(ctx context.Context, q occurrence.Query) ([]occurrence.Record, error)

	// SearchByKeys partitions a multi-key query and returns one page of
	// records per taxon key. Pages are fetched concurrently with a
	// bounded worker group; the result map is keyed by taxon key.
	SearchByKeys(
		ctx context.Context, q occurrence.Query,
	) (map[int][]occurrence.Record, error)
}

// DownloadManager drives the asynchronous bulk-export state machine:
// Submit → Poll (at the caller's cadence) → FetchArchive once SUCCEEDED.
type DownloadManager interface {
	// Submit creates an export job for the query using the configured
	// credentials and returns it in PENDING state.
	Submit(ctx context.Context, q occurrence.Query) (download.Job, error)

	// Poll fetches the job's current state. The returned Job is a new
	// snapshot; the argument is not mutated.
	Poll(ctx context.Context, job download.Job) (download.Job, error)

	// Wait polls with exponential backoff until the job reaches a
	// terminal status or the context is done, returning the final
	// snapshot. FAILED jobs are returned with an error and are never
	// resubmitted.
	Wait(ctx context.Context, job download.Job) (download.Job, error)

	// FetchArchive downloads the job's compressed archive into destDir
	// and returns the local path. It refuses jobs that are not
	// SUCCEEDED without touching the filesystem. The archive is
	// immutable and keyed by the job's request identifier.
	FetchArchive(
		ctx context.Context, job download.Job, destDir string,
	) (string, error)
}
