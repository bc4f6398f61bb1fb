package taxon

import (
	"strings"
)

// Rank is a hierarchical level in the backbone taxonomy. Values mirror the
// remote service's rank vocabulary; the client rejects anything outside it.
type Rank string

const (
	RankDomain           Rank = "DOMAIN"
	RankSuperkingdom     Rank = "SUPERKINGDOM"
	RankKingdom          Rank = "KINGDOM"
	RankSubkingdom       Rank = "SUBKINGDOM"
	RankInfrakingdom     Rank = "INFRAKINGDOM"
	RankSuperphylum      Rank = "SUPERPHYLUM"
	RankPhylum           Rank = "PHYLUM"
	RankSubphylum        Rank = "SUBPHYLUM"
	RankInfraphylum      Rank = "INFRAPHYLUM"
	RankSuperclass       Rank = "SUPERCLASS"
	RankClass            Rank = "CLASS"
	RankSubclass         Rank = "SUBCLASS"
	RankInfraclass       Rank = "INFRACLASS"
	RankParvclass        Rank = "PARVCLASS"
	RankSuperorder       Rank = "SUPERORDER"
	RankOrder            Rank = "ORDER"
	RankSuborder         Rank = "SUBORDER"
	RankInfraorder       Rank = "INFRAORDER"
	RankParvorder        Rank = "PARVORDER"
	RankSuperfamily      Rank = "SUPERFAMILY"
	RankFamily           Rank = "FAMILY"
	RankSubfamily        Rank = "SUBFAMILY"
	RankTribe            Rank = "TRIBE"
	RankSubtribe         Rank = "SUBTRIBE"
	RankGenus            Rank = "GENUS"
	RankSubgenus         Rank = "SUBGENUS"
	RankSection          Rank = "SECTION"
	RankSubsection       Rank = "SUBSECTION"
	RankSeries           Rank = "SERIES"
	RankSubseries        Rank = "SUBSERIES"
	RankSpeciesAggregate Rank = "SPECIES_AGGREGATE"
	RankSpecies          Rank = "SPECIES"
	RankSubspecies       Rank = "SUBSPECIES"
	RankVariety          Rank = "VARIETY"
	RankSubvariety       Rank = "SUBVARIETY"
	RankForm             Rank = "FORM"
	RankSubform          Rank = "SUBFORM"
	RankUnranked         Rank = "UNRANKED"
)

// ranks holds the complete vocabulary in hierarchical order, highest first.
var ranks = []Rank{
	RankDomain, RankSuperkingdom, RankKingdom, RankSubkingdom,
	RankInfrakingdom, RankSuperphylum, RankPhylum, RankSubphylum,
	RankInfraphylum, RankSuperclass, RankClass, RankSubclass,
	RankInfraclass, RankParvclass, RankSuperorder, RankOrder,
	RankSuborder, RankInfraorder, RankParvorder, RankSuperfamily,
	RankFamily, RankSubfamily, RankTribe, RankSubtribe,
	RankGenus, RankSubgenus, RankSection, RankSubsection,
	RankSeries, RankSubseries, RankSpeciesAggregate, RankSpecies,
	RankSubspecies, RankVariety, RankSubvariety, RankForm,
	RankSubform, RankUnranked,
}

var rankSet = func() map[Rank]struct{} {
	res := make(map[Rank]struct{}, len(ranks))
	for _, r := range ranks {
		res[r] = struct{}{}
	}
	return res
}()

// Ranks returns the complete rank vocabulary, highest rank first.
// The returned slice is a copy.
func Ranks() []Rank {
	res := make([]Rank, len(ranks))
	copy(res, ranks)
	return res
}

// ParseRank normalizes a free-form rank string ("species", "Species",
// "SPECIES") to its vocabulary value. The second return value is false for
// ranks outside the vocabulary.
func ParseRank(s string) (Rank, bool) {
	r := Rank(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := rankSet[r]
	return r, ok
}

// String implements fmt.Stringer.
func (r Rank) String() string {
	return string(r)
}

// IsValid reports whether the rank belongs to the vocabulary.
func (r Rank) IsValid() bool {
	_, ok := rankSet[r]
	return ok
}
