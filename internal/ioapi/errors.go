package ioapi

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnoccur/pkg/errcode"
	"github.com/gnames/gnoccur/pkg/taxon"
)

// errNotFound is an internal sentinel; callers wrap it with context about
// what was missing before it leaves the package.
var errNotFound = errors.New("not found")

func httpStatusError(code int, body []byte) error {
	preview := string(body)
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}
	return fmt.Errorf("unexpected status %d: %s", code, preview)
}

// EmptyNameError rejects empty query names before any request is made.
func EmptyNameError() error {
	return &gn.Error{
		Code: errcode.EmptyNameError,
		Msg:  "The taxon name cannot be empty.",
		Err:  fmt.Errorf("empty taxon name"),
	}
}

// BadRankError rejects ranks outside the backbone vocabulary.
func BadRankError(rank taxon.Rank) error {
	return &gn.Error{
		Code: errcode.BadRankError,
		Msg: `Unknown rank <em>%s</em>.

Valid ranks follow the backbone vocabulary (SPECIES, GENUS, FAMILY...).`,
		Vars: []any{rank},
		Err:  fmt.Errorf("unknown rank %q", rank),
	}
}

// TaxonNotFoundError is returned when no record matches name and rank.
func TaxonNotFoundError(name string, rank taxon.Rank) error {
	return &gn.Error{
		Code: errcode.TaxonNotFoundError,
		Msg: `No taxon matched <em>%s</em> at rank <em>%s</em>.

Try the suggest command first to find candidate names and ranks.`,
		Vars: []any{name, rank},
		Err:  fmt.Errorf("no match for %q at rank %s", name, rank),
	}
}

// QuotaExceededError signals that the remote limit for unauthenticated
// requests was surpassed.
func QuotaExceededError(url string) error {
	return &gn.Error{
		Code: errcode.QuotaExceededError,
		Msg: `The service refused the request: too many requests.

Slow down the request rate, or authenticate to raise the quota.`,
		Err: fmt.Errorf("quota exceeded for %s", url),
	}
}

// TransientNetworkError surfaces transport failures and server-side
// errors. The client does not retry; retry policy belongs to the caller.
func TransientNetworkError(url string, err error) error {
	return &gn.Error{
		Code: errcode.TransientNetworkError,
		Msg: `Cannot reach the occurrence service.

Check network connectivity and try again.`,
		Err: fmt.Errorf("request to %s failed: %w", url, err),
	}
}

// ResponseParseError signals a response body the client cannot decode.
func ResponseParseError(url string, err error) error {
	return &gn.Error{
		Code: errcode.ResponseParseError,
		Msg:  "The service returned a response this client cannot parse.",
		Err:  fmt.Errorf("cannot parse response from %s: %w", url, err),
	}
}

// MissingCredentialsError rejects download submissions without account
// settings.
func MissingCredentialsError() error {
	return &gn.Error{
		Code: errcode.MissingCredentialsError,
		Msg: `Bulk downloads require account credentials.

Set <em>download.user</em>, <em>download.password</em> and
<em>download.email</em> in the configuration file, or use the
GNOCCUR_DOWNLOAD_* environment variables.`,
		Err: fmt.Errorf("download credentials are not configured"),
	}
}

// DownloadSubmitError signals a rejected download submission.
func DownloadSubmitError(err error) error {
	return &gn.Error{
		Code: errcode.DownloadSubmitError,
		Msg: `The service rejected the download request.

Check the credentials and the query predicates.`,
		Err: fmt.Errorf("download submission failed: %w", err),
	}
}

// DownloadNotFoundError is returned when polling an unknown request key.
func DownloadNotFoundError(key string) error {
	return &gn.Error{
		Code: errcode.DownloadNotFoundError,
		Msg:  "The service knows no download with key <em>%s</em>.",
		Vars: []any{key},
		Err:  fmt.Errorf("download %s not found", key),
	}
}
