package ioapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gnames/gnoccur/internal/ioarchive"
	"github.com/gnames/gnoccur/pkg/download"
	"github.com/gnames/gnoccur/pkg/occurrence"
)

// predicate is the service's download filter tree.
type predicate struct {
	Type       string      `json:"type"`
	Key        string      `json:"key,omitempty"`
	Value      string      `json:"value,omitempty"`
	Values     []string    `json:"values,omitempty"`
	Predicates []predicate `json:"predicates,omitempty"`
}

// downloadRequest is the submission payload. Credentials travel in the
// basic-auth header, not in the body.
type downloadRequest struct {
	Creator               string    `json:"creator"`
	NotificationAddresses []string  `json:"notificationAddresses,omitempty"`
	SendNotification      bool      `json:"sendNotification"`
	Format                string    `json:"format"`
	Predicate             predicate `json:"predicate"`
}

// downloadStatusResponse is the job snapshot returned by the service.
type downloadStatusResponse struct {
	Key          string `json:"key"`
	DOI          string `json:"doi"`
	Status       string `json:"status"`
	DownloadLink string `json:"downloadLink"`
	TotalRecords int64  `json:"totalRecords"`
}

// Submit creates an asynchronous export job for the query. The configured
// credentials are read at submission time and never logged. The returned
// job starts PENDING; the export is compiled server-side over minutes.
func (c *Client) Submit(
	ctx context.Context, q occurrence.Query,
) (download.Job, error) {
	var job download.Job

	creds := c.cfg.Download
	if creds.User == "" || creds.Password == "" {
		return job, MissingCredentialsError()
	}

	pred, err := buildPredicate(q)
	if err != nil {
		return job, err
	}

	payload := downloadRequest{
		Creator:          creds.User,
		SendNotification: creds.Email != "",
		Format:           "SIMPLE_CSV",
		Predicate:        pred,
	}
	if creds.Email != "" {
		payload.NotificationAddresses = []string{creds.Email}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return job, DownloadSubmitError(err)
	}

	u := c.cfg.API.BaseURL + "/occurrence/download/request"
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, u, bytes.NewReader(body),
	)
	if err != nil {
		return job, TransientNetworkError(u, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.cfg.API.UserAgent)
	req.SetBasicAuth(creds.User, creds.Password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return job, TransientNetworkError(u, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return job, TransientNetworkError(u, err)
	}
	if resp.StatusCode >= 400 {
		return job, DownloadSubmitError(
			httpStatusError(resp.StatusCode, respBody),
		)
	}

	// The response body is the bare request key.
	key := strings.TrimSpace(string(respBody))
	job = download.Job{Key: key, Status: download.StatusPending}

	slog.Info("Download submitted", "key", key)
	return job, nil
}

// Poll fetches the job's current state and returns a new snapshot; the
// argument is not mutated. The caller chooses the polling cadence.
func (c *Client) Poll(
	ctx context.Context, job download.Job,
) (download.Job, error) {
	u := fmt.Sprintf("%s/occurrence/download/%s",
		c.cfg.API.BaseURL, job.Key)

	var resp downloadStatusResponse
	err := c.doGet(ctx, u, &resp)
	if errors.Is(err, errNotFound) {
		return job, DownloadNotFoundError(job.Key)
	}
	if err != nil {
		return job, err
	}

	status, ok := download.ParseStatus(resp.Status)
	if !ok {
		return job, ResponseParseError(
			u, fmt.Errorf("unknown download status %q", resp.Status),
		)
	}

	res := download.Job{
		Key:          job.Key,
		Status:       status,
		DOI:          resp.DOI,
		TotalRecords: resp.TotalRecords,
		Link:         resp.DownloadLink,
	}
	slog.Debug("Download polled", "key", res.Key, "status", res.Status)
	return res, nil
}

// Wait polls with exponential backoff until the job reaches a terminal
// status or the context is done. Transport errors stop the wait; FAILED
// jobs are returned with an error and are never resubmitted.
func (c *Client) Wait(
	ctx context.Context, job download.Job,
) (download.Job, error) {
	res := job

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = time.Minute
	bo.MaxElapsedTime = 0 // wait until the context gives up

	op := func() error {
		j, err := c.Poll(ctx, res)
		if err != nil {
			return backoff.Permanent(err)
		}
		res = j
		if j.Status.IsTerminal() {
			return nil
		}
		return fmt.Errorf("download %s still %s", j.Key, j.Status)
	}

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return res, err
	}
	if res.Status == download.StatusFailed {
		return res, download.FailedError(res)
	}
	return res, nil
}

// FetchArchive downloads the job's compressed archive into destDir and
// returns the local path. Jobs that are not SUCCEEDED are refused before
// any filesystem write. The archive is immutable and keyed by the job's
// request identifier for reproducibility.
func (c *Client) FetchArchive(
	ctx context.Context, job download.Job, destDir string,
) (string, error) {
	if !job.Ready() {
		return "", download.NotReadyError(job)
	}

	u := job.Link
	if u == "" {
		u = fmt.Sprintf("%s/occurrence/download/request/%s",
			c.cfg.API.BaseURL, job.Key)
	}

	return ioarchive.Fetch(ctx, c.httpClient, u, destDir, job.Key)
}

// buildPredicate translates a Query into the service's predicate tree.
// At least one filter is required; an unbounded download of the whole
// index is a caller mistake.
func buildPredicate(q occurrence.Query) (predicate, error) {
	var parts []predicate

	switch len(q.TaxonKeys) {
	case 0:
	case 1:
		parts = append(parts, predicate{
			Type:  "equals",
			Key:   "TAXON_KEY",
			Value: strconv.Itoa(q.TaxonKeys[0]),
		})
	default:
		values := make([]string, len(q.TaxonKeys))
		for i, k := range q.TaxonKeys {
			values[i] = strconv.Itoa(k)
		}
		parts = append(parts, predicate{
			Type:   "in",
			Key:    "TAXON_KEY",
			Values: values,
		})
	}

	if q.Country != "" {
		parts = append(parts, predicate{
			Type:  "equals",
			Key:   "COUNTRY",
			Value: q.Country,
		})
	}
	if q.HasCoordinate != nil {
		parts = append(parts, predicate{
			Type:  "equals",
			Key:   "HAS_COORDINATE",
			Value: strconv.FormatBool(*q.HasCoordinate),
		})
	}

	switch len(parts) {
	case 0:
		return predicate{}, DownloadSubmitError(
			fmt.Errorf("query has no predicates"),
		)
	case 1:
		return parts[0], nil
	default:
		return predicate{Type: "and", Predicates: parts}, nil
	}
}
