package wrapped

// Duo merge bounds. The bounded alternate-and-append policy applies
// uniformly to all four facets: the initiating user contributes up to
// DuoCountA items per facet, the partner up to DuoCountB.
const (
	DuoCountA = 3
	DuoCountB = 2
)

// Interleave merges two lists by the alternate-and-append rule: a is
// truncated to countA items and b to countB, then the result alternates
// a[0], b[0], a[1], b[1], ... and continues with whichever list still has
// remaining items once the shorter is exhausted.
func Interleave[T any](a, b []T, countA, countB int) []T {
	a = Truncate(a, countA)
	b = Truncate(b, countB)

	merged := make([]T, 0, len(a)+len(b))
	for i := 0; i < len(a) || i < len(b); i++ {
		if i < len(a) {
			merged = append(merged, a[i])
		}
		if i < len(b) {
			merged = append(merged, b[i])
		}
	}
	return merged
}

// MergeFacets combines two users' facet sets for the same window into one
// joint set, applying the bounded interleave rule to tracks, artists,
// genres, and quirky artists alike.
func MergeFacets(a, b FacetSet) FacetSet {
	return FacetSet{
		Tracks:  Interleave(a.Tracks, b.Tracks, DuoCountA, DuoCountB),
		Artists: Interleave(a.Artists, b.Artists, DuoCountA, DuoCountB),
		Genres:  Interleave(a.Genres, b.Genres, DuoCountA, DuoCountB),
		Quirky:  Interleave(a.Quirky, b.Quirky, DuoCountA, DuoCountB),
	}
}
