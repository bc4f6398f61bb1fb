package occurrence

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnoccur/pkg/errcode"
)

// BBox is an axis-aligned bounding box over decimal coordinates.
type BBox struct {
	MinLon float64 `json:"minLon"`
	MaxLon float64 `json:"maxLon"`
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
}

// RecordSet owns an ordered sequence of occurrence records. It never
// mutates in place: filtering returns a new RecordSet so the original stays
// retrievable for audit.
type RecordSet struct {
	records []Record
}

// NewRecordSet creates a RecordSet over the given rows. The slice is copied.
func NewRecordSet(rows []Record) *RecordSet {
	records := make([]Record, len(rows))
	copy(records, rows)
	return &RecordSet{records: records}
}

// Len returns the number of records.
func (rs *RecordSet) Len() int {
	return len(rs.records)
}

// Records returns a copy of the underlying rows in their original order.
func (rs *RecordSet) Records() []Record {
	res := make([]Record, len(rs.records))
	copy(res, rs.records)
	return res
}

// DropMissingCoordinates returns a new RecordSet holding only records with
// both coordinates present. The receiver is left untouched. The operation
// is idempotent.
func (rs *RecordSet) DropMissingCoordinates() *RecordSet {
	var rows []Record
	for i := range rs.records {
		if rs.records[i].HasCoordinates() {
			rows = append(rows, rs.records[i])
		}
	}
	return &RecordSet{records: rows}
}

// BoundingBox computes the bounding box over records with valid coordinates.
// Records without coordinates are ignored. When no record carries
// coordinates the EmptyRecordSetError is returned.
func (rs *RecordSet) BoundingBox() (BBox, error) {
	var res BBox
	var found bool
	for i := range rs.records {
		r := &rs.records[i]
		if !r.HasCoordinates() {
			continue
		}
		lon, lat := *r.DecimalLongitude, *r.DecimalLatitude
		if !found {
			res = BBox{MinLon: lon, MaxLon: lon, MinLat: lat, MaxLat: lat}
			found = true
			continue
		}
		if lon < res.MinLon {
			res.MinLon = lon
		}
		if lon > res.MaxLon {
			res.MaxLon = lon
		}
		if lat < res.MinLat {
			res.MinLat = lat
		}
		if lat > res.MaxLat {
			res.MaxLat = lat
		}
	}
	if !found {
		return BBox{}, emptySetError()
	}
	return res, nil
}

func emptySetError() error {
	return &gn.Error{
		Code: errcode.EmptyRecordSetError,
		Msg: "Cannot compute a bounding box: " +
			"no record has both coordinates.",
		Err: fmt.Errorf("bounding box over empty record set"),
	}
}
