package ioapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/gnames/gnoccur/pkg/taxon"
	"github.com/gnames/gnuuid"
	"github.com/patrickmn/go-cache"
)

// Suggest returns candidate matches for a free-text name. The ordering
// follows the service's relevance ranking; it is display-only.
func (c *Client) Suggest(
	ctx context.Context, q string,
) ([]taxon.Match, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, EmptyNameError()
	}

	if res, ok := c.fromCache("suggest", q); ok {
		return res.([]taxon.Match), nil
	}

	vals := url.Values{}
	vals.Set("q", q)
	u := fmt.Sprintf("%s/species/suggest?%s",
		c.cfg.API.BaseURL, vals.Encode())

	var res []taxon.Match
	if err := c.doGet(ctx, u, &res); err != nil {
		return nil, err
	}

	c.toCache(res, "suggest", q)
	slog.Debug("Name suggestion", "query", q, "matches", len(res))
	return res, nil
}

// speciesSearchResponse is the paged envelope of the species search
// endpoint.
type speciesSearchResponse struct {
	Offset       int            `json:"offset"`
	Limit        int            `json:"limit"`
	EndOfRecords bool           `json:"endOfRecords"`
	Results      []taxon.Record `json:"results"`
}

// Lookup fetches canonical taxon records for a name at a rank, bounded by
// limit. The query name is canonicalized first (authorship stripped), the
// gnames-native treatment of messy input. With several matches the
// service's internal ranking decides the order; ties are the service's
// responsibility, not this client's.
func (c *Client) Lookup(
	ctx context.Context,
	name string, rank taxon.Rank, datasetID string, limit int,
) ([]taxon.Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, EmptyNameError()
	}
	if !rank.IsValid() {
		return nil, BadRankError(rank)
	}
	if limit <= 0 {
		limit = 20
	}

	canonical := c.parser.Canonical(name)

	cacheKey := fmt.Sprintf("%s|%s|%s|%d", canonical, rank, datasetID, limit)
	if res, ok := c.fromCache("lookup", cacheKey); ok {
		return res.([]taxon.Record), nil
	}

	vals := url.Values{}
	vals.Set("q", canonical)
	vals.Set("rank", rank.String())
	vals.Set("limit", strconv.Itoa(limit))
	if datasetID != "" {
		vals.Set("datasetKey", datasetID)
	}
	u := fmt.Sprintf("%s/species/search?%s",
		c.cfg.API.BaseURL, vals.Encode())

	var resp speciesSearchResponse
	err := c.doGet(ctx, u, &resp)
	if errors.Is(err, errNotFound) {
		return nil, TaxonNotFoundError(name, rank)
	}
	if err != nil {
		return nil, err
	}

	// The service matches rank fuzzily; enforce it strictly here so a
	// SPECIES lookup never yields a GENUS record.
	var res []taxon.Record
	for _, r := range resp.Results {
		if r.Rank == rank {
			res = append(res, r)
		}
	}
	if len(res) == 0 {
		return nil, TaxonNotFoundError(name, rank)
	}

	c.toCache(res, "lookup", cacheKey)
	slog.Debug("Taxon lookup",
		"name", canonical, "rank", rank, "records", len(res))
	return res, nil
}

// LookupBest returns the single best match for name and rank, following
// the service's ranking order. Callers wanting determinism accept
// service-defined precedence.
func (c *Client) LookupBest(
	ctx context.Context,
	name string, rank taxon.Rank, datasetID string,
) (taxon.Record, error) {
	res, err := c.Lookup(ctx, name, rank, datasetID, 1)
	if err != nil {
		return taxon.Record{}, err
	}
	return res[0], nil
}

// fromCache retrieves a cached response. Cache keys are UUIDv5 digests of
// the request fingerprint, stable across sessions.
func (c *Client) fromCache(kind, fingerprint string) (any, bool) {
	if c.cache == nil {
		return nil, false
	}
	key := gnuuid.New(kind + "|" + fingerprint).String()
	return c.cache.Get(key)
}

func (c *Client) toCache(val any, kind, fingerprint string) {
	if c.cache == nil {
		return
	}
	key := gnuuid.New(kind + "|" + fingerprint).String()
	c.cache.Set(key, val, cache.DefaultExpiration)
}
