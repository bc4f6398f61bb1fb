// Package taxon defines the backbone-taxonomy entities shared by the
// resolver and lookup clients. All values are immutable once constructed.
package taxon

// Match is one candidate returned by name suggestion. Matches are ephemeral:
// their ordering follows the service's relevance ranking and is not stable
// across calls, so they are only good for picking a rank (and possibly a
// key) for a follow-up lookup.
type Match struct {
	// Name is the canonical name of the candidate.
	Name string `json:"canonicalName"`

	// Rank is the candidate's rank in the backbone.
	Rank Rank `json:"rank"`

	// Key is the backbone identifier suggested for the candidate.
	// Zero means the service returned no key.
	Key int `json:"key"`

	// Kingdom gives coarse context for disambiguation in displays.
	Kingdom string `json:"kingdom,omitempty"`
}

// VernacularName is a common name in a given language.
type VernacularName struct {
	Language string `json:"language"`
	Name     string `json:"vernacularName"`
}

// Record is a canonical taxon fetched from the backbone. Key is the only
// stable join identifier across sessions; names are not unique and must not
// be used as identifiers beyond a single lookup.
type Record struct {
	// Key is the stable backbone identifier.
	Key int `json:"key"`

	// Name is the full scientific name.
	Name string `json:"scientificName"`

	// CanonicalName is the name without authorship.
	CanonicalName string `json:"canonicalName"`

	Rank Rank `json:"rank"`

	// ParentKey is the identifier of the direct parent, zero at the root.
	ParentKey int `json:"parentKey"`

	// Ancestor keys, zero when the backbone has no such ancestor.
	KingdomKey int `json:"kingdomKey"`
	PhylumKey  int `json:"phylumKey"`
	ClassKey   int `json:"classKey"`
	OrderKey   int `json:"orderKey"`
	FamilyKey  int `json:"familyKey"`
	GenusKey   int `json:"genusKey"`

	// VernacularNames keeps the service's ordering.
	VernacularNames []VernacularName `json:"vernacularNames,omitempty"`
}

// Vernaculars returns the record's vernacular names, optionally filtered by
// language code ("eng", "swe"). It reads from the already-fetched record and
// performs no network request. Empty language returns all names in service
// order.
func (r *Record) Vernaculars(language string) []VernacularName {
	if language == "" {
		res := make([]VernacularName, len(r.VernacularNames))
		copy(res, r.VernacularNames)
		return res
	}
	var res []VernacularName
	for _, v := range r.VernacularNames {
		if v.Language == language {
			res = append(res, v)
		}
	}
	return res
}

// Classification returns the record's ancestor keys from kingdom down to
// genus, skipping ranks the backbone left empty.
func (r *Record) Classification() map[Rank]int {
	res := make(map[Rank]int, 6)
	pairs := []struct {
		rank Rank
		key  int
	}{
		{RankKingdom, r.KingdomKey},
		{RankPhylum, r.PhylumKey},
		{RankClass, r.ClassKey},
		{RankOrder, r.OrderKey},
		{RankFamily, r.FamilyKey},
		{RankGenus, r.GenusKey},
	}
	for _, p := range pairs {
		if p.key != 0 {
			res[p.rank] = p.key
		}
	}
	return res
}
