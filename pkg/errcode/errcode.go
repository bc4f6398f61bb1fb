package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Taxonomy errors
	TaxonNotFoundError
	BadRankError
	EmptyNameError

	// Search errors
	QuotaExceededError
	TransientNetworkError
	ResponseParseError

	// Download errors
	DownloadSubmitError
	DownloadNotFoundError
	DownloadNotReadyError
	DownloadFailedError
	MissingDOIError
	MissingCredentialsError
	ArchiveFetchError

	// RecordSet errors
	EmptyRecordSetError
	ArchiveOpenError
	ArchiveEntryError

	// Registry errors
	StoreOpenError
	StoreQueryError
)
