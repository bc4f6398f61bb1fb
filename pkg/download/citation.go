package download

import (
	"fmt"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnoccur/pkg/errcode"
)

// Citation composes a deterministic citation string embedding the job's DOI
// and the current UTC date. It returns the MissingDOIError while the
// service has not assigned a DOI yet (e.g. the job is still PENDING).
func (j Job) Citation() (string, error) {
	return j.CitationAt(time.Now().UTC())
}

// CitationAt is Citation with an explicit clock, used by callers that need
// a reproducible date in the string.
func (j Job) CitationAt(t time.Time) (string, error) {
	if j.DOI == "" {
		return "", missingDOIError(j)
	}
	res := fmt.Sprintf(
		"GBIF Occurrence Download https://doi.org/%s accessed via GBIF.org on %s",
		j.DOI, t.Format("2006-01-02"),
	)
	return res, nil
}

func missingDOIError(j Job) error {
	return &gn.Error{
		Code: errcode.MissingDOIError,
		Msg: `Download <em>%s</em> has no DOI assigned yet (status %s).

A DOI appears after the service registers the download;
poll the job and try again.`,
		Vars: []any{j.Key, j.Status},
		Err:  fmt.Errorf("citation of %s without DOI", j.Key),
	}
}
