package ioapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnoccur/pkg/config"
	"github.com/gnames/gnoccur/pkg/errcode"
	"github.com/gnames/gnoccur/pkg/taxon"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(
		"GET", "https://api.gbif.org/v1/species/suggest",
		httpmock.NewStringResponder(200, `[
			{"canonicalName": "Puma concolor", "rank": "SPECIES",
			 "key": 2435099, "kingdom": "Animalia"},
			{"canonicalName": "Puma", "rank": "GENUS",
			 "key": 2435098, "kingdom": "Animalia"}
		]`),
	)

	res, err := c.Suggest(ctxTest(), "Puma")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "Puma concolor", res[0].Name)
	assert.Equal(t, taxon.RankSpecies, res[0].Rank)
	assert.Equal(t, 2435099, res[0].Key)
	assert.Equal(t, "Animalia", res[0].Kingdom)
}

func TestSuggestEmptyName(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Suggest(ctxTest(), "  ")
	require.Error(t, err)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.EmptyNameError, gnErr.Code)
}

func speciesSearchBody() string {
	return `{
		"offset": 0, "limit": 20, "endOfRecords": true,
		"results": [
			{"key": 2435099, "scientificName":
			 "Puma concolor (Linnaeus, 1771)",
			 "canonicalName": "Puma concolor", "rank": "SPECIES",
			 "kingdomKey": 1, "genusKey": 2435098},
			{"key": 2435098, "scientificName": "Puma Jardine, 1834",
			 "canonicalName": "Puma", "rank": "GENUS", "kingdomKey": 1}
		]
	}`
}

func TestLookup(t *testing.T) {
	c := newTestClient(t)

	var gotQuery string
	httpmock.RegisterResponder(
		"GET", "https://api.gbif.org/v1/species/search",
		func(req *http.Request) (*http.Response, error) {
			gotQuery = req.URL.Query().Get("q")
			return httpmock.NewStringResponse(
				200, speciesSearchBody(),
			), nil
		},
	)

	res, err := c.Lookup(
		ctxTest(), "Puma concolor (Linnaeus, 1771)",
		taxon.RankSpecies, "", 20,
	)
	require.NoError(t, err)

	// Authorship is stripped before the name goes on the wire.
	assert.Equal(t, "Puma concolor", gotQuery)

	// The rank filter is strict: the GENUS record never leaks through.
	require.Len(t, res, 1)
	assert.Equal(t, 2435099, res[0].Key)
	assert.Equal(t, taxon.RankSpecies, res[0].Rank)
}

func TestLookupValidation(t *testing.T) {
	c := newTestClient(t)

	tests := []struct {
		msg  string
		name string
		rank taxon.Rank
		code gn.ErrorCode
	}{
		{"empty name", "", taxon.RankSpecies, errcode.EmptyNameError},
		{"bad rank", "Puma", taxon.Rank("SUBSPACE"), errcode.BadRankError},
	}

	for _, v := range tests {
		_, err := c.Lookup(ctxTest(), v.name, v.rank, "", 10)
		require.Error(t, err, v.msg)
		var gnErr *gn.Error
		require.ErrorAs(t, err, &gnErr, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
	}
}

func TestLookupNotFound(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(
		"GET", "https://api.gbif.org/v1/species/search",
		httpmock.NewStringResponder(200, `{
			"offset": 0, "limit": 20, "endOfRecords": true, "results": []
		}`),
	)

	_, err := c.Lookup(ctxTest(), "Nullius nomen", taxon.RankSpecies, "", 10)
	require.Error(t, err)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.TaxonNotFoundError, gnErr.Code)
}

func TestLookupCached(t *testing.T) {
	c := newTestClient(t, config.OptAPICacheTTL(time.Minute))

	httpmock.RegisterResponder(
		"GET", "https://api.gbif.org/v1/species/search",
		httpmock.NewStringResponder(200, speciesSearchBody()),
	)

	for i := 0; i < 3; i++ {
		res, err := c.Lookup(
			ctxTest(), "Puma concolor", taxon.RankSpecies, "", 20,
		)
		require.NoError(t, err)
		require.Len(t, res, 1)
	}

	// One request served three identical lookups.
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestLookupBest(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(
		"GET", "https://api.gbif.org/v1/species/search",
		httpmock.NewStringResponder(200, speciesSearchBody()),
	)

	res, err := c.LookupBest(ctxTest(), "Puma concolor", taxon.RankSpecies, "")
	require.NoError(t, err)
	assert.Equal(t, 2435099, res.Key)
}
