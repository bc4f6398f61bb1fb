package ioapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"sync"

	"github.com/gnames/gnoccur/pkg/occurrence"
	"golang.org/x/sync/errgroup"
)

// maxPageSize is the service's cap on a single search page.
const maxPageSize = 300

// occSearchResponse is the paged envelope of the occurrence search
// endpoint.
type occSearchResponse struct {
	Offset       int                 `json:"offset"`
	Limit        int                 `json:"limit"`
	Count        int64               `json:"count"`
	EndOfRecords bool                `json:"endOfRecords"`
	Results      []occurrence.Record `json:"results"`
}

// Count returns the number of records matching the query without
// retrieving them. Counting before bulk retrieval is the intended usage:
// occurrence counts reach into the millions and blind retrieval is both
// slow and wasteful. With several taxon keys the per-key counts are
// summed.
func (c *Client) Count(
	ctx context.Context, q occurrence.Query,
) (int64, error) {
	keys := q.TaxonKeys
	if len(keys) == 0 {
		keys = []int{0}
	}

	var res int64
	for _, key := range keys {
		vals := queryValues(q)
		if key != 0 {
			vals.Set("taxonKey", strconv.Itoa(key))
		}
		u := fmt.Sprintf("%s/occurrence/count?%s",
			c.cfg.API.BaseURL, vals.Encode())

		// The count endpoint returns a bare integer body.
		var n int64
		if err := c.doGet(ctx, u, &n); err != nil {
			return 0, err
		}
		res += n
	}
	return res, nil
}

// Search returns at most q.Limit records. Several taxon keys are sent as
// one combined filter; use SearchByKeys for per-key partitioning.
func (c *Client) Search(
	ctx context.Context, q occurrence.Query,
) ([]occurrence.Record, error) {
	if q.Limit < 0 {
		q.Limit = 0
	}
	limit := q.Limit
	if limit > maxPageSize {
		limit = maxPageSize
	}

	vals := queryValues(q)
	vals.Set("limit", strconv.Itoa(limit))
	if q.Offset > 0 {
		vals.Set("offset", strconv.Itoa(q.Offset))
	}
	u := fmt.Sprintf("%s/occurrence/search?%s",
		c.cfg.API.BaseURL, vals.Encode())

	var resp occSearchResponse
	if err := c.doGet(ctx, u, &resp); err != nil {
		return nil, err
	}

	res := resp.Results
	// The limit contract holds even if the service overshoots.
	if len(res) > q.Limit {
		res = res[:q.Limit]
	}
	slog.Debug("Occurrence search",
		"taxon_keys", q.TaxonKeys,
		"records", len(res),
		"total", resp.Count,
	)
	return res, nil
}

// SearchByKeys partitions a multi-key query and fetches one page per
// taxon key concurrently. The worker group is bounded by cfg.JobsNumber.
// Results merge into a fresh map keyed by taxon key; input and output
// values are never mutated after construction.
func (c *Client) SearchByKeys(
	ctx context.Context, q occurrence.Query,
) (map[int][]occurrence.Record, error) {
	res := make(map[int][]occurrence.Record, len(q.TaxonKeys))
	if len(q.TaxonKeys) == 0 {
		return res, nil
	}

	jobs := c.cfg.JobsNumber
	if jobs < 1 {
		jobs = 1
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for _, key := range q.TaxonKeys {
		g.Go(func() error {
			perKey := q
			perKey.TaxonKeys = []int{key}
			records, err := c.Search(ctx, perKey)
			if err != nil {
				return err
			}
			mu.Lock()
			res[key] = records
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// queryValues translates a Query into the service's URL parameters.
func queryValues(q occurrence.Query) url.Values {
	vals := url.Values{}
	for _, key := range q.TaxonKeys {
		vals.Add("taxonKey", strconv.Itoa(key))
	}
	if q.Country != "" {
		vals.Set("country", q.Country)
	}
	if q.HasCoordinate != nil {
		vals.Set("hasCoordinate", strconv.FormatBool(*q.HasCoordinate))
	}
	return vals
}
