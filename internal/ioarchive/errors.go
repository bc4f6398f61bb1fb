package ioarchive

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnoccur/pkg/errcode"
)

// FetchError signals a failed archive transfer or a filesystem problem
// while landing it.
func FetchError(url string, err error) error {
	return &gn.Error{
		Code: errcode.ArchiveFetchError,
		Msg: `Cannot fetch the archive.

Check network connectivity and free disk space, then try again.`,
		Err: fmt.Errorf("cannot fetch archive from %s: %w", url, err),
	}
}

// FetchStatusError signals that the service refused to serve the archive.
func FetchStatusError(url string, code int) error {
	return &gn.Error{
		Code: errcode.ArchiveFetchError,
		Msg: `The service refused to serve the archive (status <em>%d</em>).

The download may have expired; resubmit it if necessary.`,
		Vars: []any{code},
		Err:  fmt.Errorf("archive fetch from %s: status %d", url, code),
	}
}

// OpenError signals an unreadable or corrupt archive file.
func OpenError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ArchiveOpenError,
		Msg: `Cannot open the archive <em>%s</em>.

The file may be truncated; delete it and fetch the archive again.`,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot open archive %s: %w", path, err),
	}
}

// EntryError signals a missing or unreadable table inside the archive.
func EntryError(path, entry string, err error) error {
	return &gn.Error{
		Code: errcode.ArchiveEntryError,
		Msg:  "Cannot read the occurrence table in <em>%s</em>.",
		Vars: []any{path},
		Err: fmt.Errorf(
			"cannot read entry %q in archive %s: %w", entry, path, err,
		),
	}
}
