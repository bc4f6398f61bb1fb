// Package ioarchive fetches compressed occurrence archives and loads
// their embedded tab-separated tables into RecordSets.
package ioarchive

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnsys"
	"github.com/google/uuid"
)

// Fetch downloads the archive at url into destDir under "<key>.zip" and
// returns the local path. An already-fetched archive is returned as-is:
// archives are immutable and keyed by the request identifier. The file
// appears atomically; partial downloads never land under the final name.
func Fetch(
	ctx context.Context,
	client *http.Client,
	url, destDir, key string,
) (string, error) {
	if err := gnsys.MakeDir(destDir); err != nil {
		return "", FetchError(url, err)
	}

	dest := filepath.Join(destDir, key+".zip")
	if _, err := os.Stat(dest); err == nil {
		slog.Info("Archive already fetched", "path", dest)
		return dest, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", FetchError(url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", FetchError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", FetchStatusError(url, resp.StatusCode)
	}

	tmp := filepath.Join(destDir, "tmp-"+uuid.NewString())
	file, err := os.Create(tmp)
	if err != nil {
		return "", FetchError(url, err)
	}

	var reader io.Reader = resp.Body
	var bar *pb.ProgressBar
	if resp.ContentLength > 0 {
		bar = newProgressBar(resp.ContentLength, "Fetching archive")
		reader = bar.NewProxyReader(resp.Body)
	}

	size, err := io.Copy(file, reader)
	if bar != nil {
		bar.Finish()
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp)
		return "", FetchError(url, err)
	}

	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return "", FetchError(url, err)
	}

	slog.Info("Archive fetched",
		"path", dest,
		"size", humanize.Bytes(uint64(size)),
	)
	return dest, nil
}

// newProgressBar creates a progress bar with consistent settings.
func newProgressBar(total int64, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start64(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
