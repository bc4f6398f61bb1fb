// Package occurrence defines occurrence records, search queries and the
// RecordSet container used for local data shaping. All values are immutable
// once constructed; derived views are always new values.
package occurrence

// Record is a single observed or collected instance of a taxon at a place
// and time. A record missing either coordinate is unusable for mapping and
// must be filtered out before geometric operations.
type Record struct {
	// Key is the service's identifier of the occurrence event.
	Key int64 `json:"key"`

	// TaxonKey is the backbone identifier the occurrence is attached to.
	TaxonKey int `json:"taxonKey"`

	// Species is the interpreted species name.
	Species string `json:"species"`

	// ScientificName is the verbatim scientific name of the record.
	ScientificName string `json:"scientificName,omitempty"`

	// Country is the two-letter country code of the record.
	Country string `json:"countryCode,omitempty"`

	// EventDate is the verbatim date of the occurrence event.
	EventDate string `json:"eventDate,omitempty"`

	// Coordinates are nil when the record carries none.
	DecimalLatitude  *float64 `json:"decimalLatitude,omitempty"`
	DecimalLongitude *float64 `json:"decimalLongitude,omitempty"`

	// Extra keeps additional columns from archive tables that have no
	// dedicated field.
	Extra map[string]string `json:"-"`
}

// HasCoordinates reports whether both coordinates are present.
func (r *Record) HasCoordinates() bool {
	return r.DecimalLatitude != nil && r.DecimalLongitude != nil
}

// Query describes an occurrence search. The COUNT versus DATA return modes
// of the service are expressed as the separate Count and Search client
// methods instead of a field.
type Query struct {
	// TaxonKeys restricts results to the given backbone identifiers.
	// With more than one key, SearchByKeys partitions results per key.
	TaxonKeys []int

	// Country restricts results to a two-letter country code.
	Country string

	// HasCoordinate, when set, restricts results to records with (true)
	// or without (false) coordinates. Nil leaves the filter out.
	HasCoordinate *bool

	// Limit bounds the number of returned records. The service caps a
	// single page at 300 rows.
	Limit int

	// Offset skips that many records from the start of the result.
	Offset int
}
