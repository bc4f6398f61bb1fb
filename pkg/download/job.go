// Package download models the asynchronous bulk-export job of the
// occurrence service: submit, poll until a terminal status, fetch the
// archive, cite it by DOI. Bulk exports are compiled server-side over
// minutes, unlike the synchronous bounded search path; the two paths are
// not interchangeable.
package download

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnoccur/pkg/errcode"
)

// Status is the local view of a job's lifecycle. Allowed transitions are
// PENDING→RUNNING→{SUCCEEDED, FAILED}; both SUCCEEDED and FAILED are
// terminal.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusRunning   Status = "RUNNING"
	StatusSucceeded Status = "SUCCEEDED"
	StatusFailed    Status = "FAILED"
)

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// CanTransition reports whether moving to next is an allowed lifecycle
// step. Repolling the same status is allowed.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusPending:
		return next == StatusRunning || next.IsTerminal()
	case StatusRunning:
		return next.IsTerminal()
	default:
		return false
	}
}

// ParseStatus normalizes the remote service's status vocabulary to the
// local one. PREPARING and SUSPENDED map to PENDING; KILLED and CANCELLED
// map to FAILED. Unknown values are reported as false.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PREPARING", "SUSPENDED", "PENDING":
		return StatusPending, true
	case "RUNNING":
		return StatusRunning, true
	case "SUCCEEDED":
		return StatusSucceeded, true
	case "FAILED", "KILLED", "CANCELLED":
		return StatusFailed, true
	default:
		return "", false
	}
}

// Job is an asynchronous export job. A Job value is a snapshot: polling
// returns a new Job rather than mutating the old one.
type Job struct {
	// Key is the service-assigned request identifier. The fetched
	// archive is keyed by it for reproducibility.
	Key string `json:"key"`

	Status Status `json:"status"`

	// DOI is the persistent citation identifier, empty until the
	// service assigns one.
	DOI string `json:"doi,omitempty"`

	// TotalRecords is reported by the service once known.
	TotalRecords int64 `json:"totalRecords,omitempty"`

	// Link is the archive location, available once SUCCEEDED.
	Link string `json:"downloadLink,omitempty"`
}

// Ready reports whether the archive can be fetched.
func (j Job) Ready() bool {
	return j.Status == StatusSucceeded
}

// NotReadyError signals an archive request before the job SUCCEEDED.
func NotReadyError(j Job) error {
	return &gn.Error{
		Code: errcode.DownloadNotReadyError,
		Msg: `Download <em>%s</em> is not ready yet (status %s).

Poll the job until it reaches SUCCEEDED before fetching the archive.`,
		Vars: []any{j.Key, j.Status},
		Err: fmt.Errorf("archive of %s requested in status %s",
			j.Key, j.Status),
	}
}

// FailedError surfaces a job-level FAILED status. The job is not
// resubmitted automatically.
func FailedError(j Job) error {
	return &gn.Error{
		Code: errcode.DownloadFailedError,
		Msg: `Download <em>%s</em> failed on the server side.

Resubmit the request to try again.`,
		Vars: []any{j.Key},
		Err:  fmt.Errorf("download %s failed", j.Key),
	}
}
