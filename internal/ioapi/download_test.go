package ioapi

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnoccur/pkg/config"
	"github.com/gnames/gnoccur/pkg/download"
	"github.com/gnames/gnoccur/pkg/errcode"
	"github.com/gnames/gnoccur/pkg/occurrence"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func credOpts() []config.Option {
	return []config.Option{
		config.OptDownloadUser("gnuser"),
		config.OptDownloadPassword("secret"),
		config.OptDownloadEmail("gnuser@example.org"),
	}
}

func TestSubmit(t *testing.T) {
	c := newTestClient(t, credOpts()...)

	var gotUser, gotPass string
	var gotAuth bool
	httpmock.RegisterResponder(
		"POST", "https://api.gbif.org/v1/occurrence/download/request",
		func(req *http.Request) (*http.Response, error) {
			gotUser, gotPass, gotAuth = req.BasicAuth()
			// The service answers with the bare request key.
			return httpmock.NewStringResponse(
				201, "0001234-240216155721649\n",
			), nil
		},
	)

	q := occurrence.Query{TaxonKeys: []int{2480946}, Country: "IS"}
	job, err := c.Submit(ctxTest(), q)
	require.NoError(t, err)

	assert.Equal(t, "0001234-240216155721649", job.Key)
	assert.Equal(t, download.StatusPending, job.Status)
	assert.True(t, gotAuth)
	assert.Equal(t, "gnuser", gotUser)
	assert.Equal(t, "secret", gotPass)
}

func TestSubmitMissingCredentials(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Submit(
		ctxTest(), occurrence.Query{TaxonKeys: []int{2480946}},
	)
	require.Error(t, err)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.MissingCredentialsError, gnErr.Code)
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

func TestSubmitEmptyQuery(t *testing.T) {
	c := newTestClient(t, credOpts()...)

	_, err := c.Submit(ctxTest(), occurrence.Query{})
	require.Error(t, err)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.DownloadSubmitError, gnErr.Code)
}

func TestBuildPredicate(t *testing.T) {
	hasCoord := true
	tests := []struct {
		msg      string
		q        occurrence.Query
		wantType string
		wantLen  int
	}{
		{
			"single key",
			occurrence.Query{TaxonKeys: []int{5}},
			"equals", 0,
		},
		{
			"several keys",
			occurrence.Query{TaxonKeys: []int{5, 6, 7}},
			"in", 0,
		},
		{
			"combined filters",
			occurrence.Query{
				TaxonKeys:     []int{5},
				Country:       "NO",
				HasCoordinate: &hasCoord,
			},
			"and", 3,
		},
	}

	for _, v := range tests {
		pred, err := buildPredicate(v.q)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.wantType, pred.Type, v.msg)
		assert.Len(t, pred.Predicates, v.wantLen, v.msg)
	}
}

func pollBody(status string) string {
	return fmt.Sprintf(`{
		"key": "0001234-240216155721649",
		"doi": "10.15468/dl.abc123",
		"status": %q,
		"downloadLink": "https://api.gbif.org/v1/occurrence/download/request/0001234-240216155721649.zip",
		"totalRecords": 42
	}`, status)
}

func TestPoll(t *testing.T) {
	tests := []struct {
		msg    string
		remote string
		want   download.Status
	}{
		{"preparing maps to pending", "PREPARING", download.StatusPending},
		{"suspended maps to pending", "SUSPENDED", download.StatusPending},
		{"running", "RUNNING", download.StatusRunning},
		{"succeeded", "SUCCEEDED", download.StatusSucceeded},
		{"killed maps to failed", "KILLED", download.StatusFailed},
	}

	for _, v := range tests {
		c := newTestClient(t)
		httpmock.RegisterResponder(
			"GET",
			"https://api.gbif.org/v1/occurrence/download/0001234-240216155721649",
			httpmock.NewStringResponder(200, pollBody(v.remote)),
		)

		job := download.Job{Key: "0001234-240216155721649"}
		res, err := c.Poll(ctxTest(), job)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.want, res.Status, v.msg)
		assert.Equal(t, "10.15468/dl.abc123", res.DOI, v.msg)
		assert.Equal(t, int64(42), res.TotalRecords, v.msg)

		// Poll returns a fresh snapshot; the argument is untouched.
		assert.Empty(t, job.Status, v.msg)
	}
}

func TestPollUnknownStatus(t *testing.T) {
	c := newTestClient(t)
	httpmock.RegisterResponder(
		"GET", "https://api.gbif.org/v1/occurrence/download/0001234-x",
		httpmock.NewStringResponder(200, pollBody("IMPLODED")),
	)

	_, err := c.Poll(ctxTest(), download.Job{Key: "0001234-x"})
	require.Error(t, err)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.ResponseParseError, gnErr.Code)
}

func TestPollNotFound(t *testing.T) {
	c := newTestClient(t)
	httpmock.RegisterResponder(
		"GET", "https://api.gbif.org/v1/occurrence/download/0009999-x",
		httpmock.NewStringResponder(404, "not found"),
	)

	_, err := c.Poll(ctxTest(), download.Job{Key: "0009999-x"})
	require.Error(t, err)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.DownloadNotFoundError, gnErr.Code)
}

func TestWait(t *testing.T) {
	c := newTestClient(t)

	statuses := []string{"RUNNING", "SUCCEEDED"}
	var calls int
	httpmock.RegisterResponder(
		"GET",
		"https://api.gbif.org/v1/occurrence/download/0001234-240216155721649",
		func(req *http.Request) (*http.Response, error) {
			status := statuses[min(calls, len(statuses)-1)]
			calls++
			return httpmock.NewStringResponse(200, pollBody(status)), nil
		},
	)

	job := download.Job{
		Key:    "0001234-240216155721649",
		Status: download.StatusPending,
	}
	res, err := c.Wait(ctxTest(), job)
	require.NoError(t, err)
	assert.Equal(t, download.StatusSucceeded, res.Status)
	assert.GreaterOrEqual(t, calls, 2)
}

func TestWaitFailed(t *testing.T) {
	c := newTestClient(t)
	httpmock.RegisterResponder(
		"GET",
		"https://api.gbif.org/v1/occurrence/download/0001234-240216155721649",
		httpmock.NewStringResponder(200, pollBody("FAILED")),
	)

	job := download.Job{
		Key:    "0001234-240216155721649",
		Status: download.StatusPending,
	}
	res, err := c.Wait(ctxTest(), job)
	require.Error(t, err)
	assert.Equal(t, download.StatusFailed, res.Status)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.DownloadFailedError, gnErr.Code)
}

func TestFetchArchive(t *testing.T) {
	c := newTestClient(t)

	archiveURL := "https://api.gbif.org/v1/occurrence/download/request/0001234-x"
	payload := []byte("PK\x03\x04 pretend zip payload")
	httpmock.RegisterResponder(
		"GET", archiveURL,
		httpmock.NewBytesResponder(200, payload),
	)

	destDir := filepath.Join(t.TempDir(), "downloads")
	job := download.Job{
		Key:    "0001234-x",
		Status: download.StatusSucceeded,
		Link:   archiveURL,
	}

	path, err := c.FetchArchive(ctxTest(), job, destDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(destDir, "0001234-x.zip"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	// A fetched archive is immutable; a second call is a no-op.
	path2, err := c.FetchArchive(ctxTest(), job, destDir)
	require.NoError(t, err)
	assert.Equal(t, path, path2)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestFetchArchiveNotReady(t *testing.T) {
	c := newTestClient(t)

	destDir := filepath.Join(t.TempDir(), "downloads")
	job := download.Job{Key: "0001234-x", Status: download.StatusRunning}

	_, err := c.FetchArchive(ctxTest(), job, destDir)
	require.Error(t, err)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.DownloadNotReadyError, gnErr.Code)

	// Nothing was written before the refusal.
	_, statErr := os.Stat(destDir)
	assert.True(t, os.IsNotExist(statErr))
}
