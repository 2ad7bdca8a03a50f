package wrapped

import "sort"

// Derivation limits.
const (
	// TopItemLimit is the number of favorites requested per facet.
	TopItemLimit = 20

	// TopGenreLimit caps the derived genre list.
	TopGenreLimit = 5

	// QuirkyLimit caps the derived quirky-artist list.
	QuirkyLimit = 5
)

// DeriveFacets assembles a FacetSet from fetched favorites, computing the
// genre and quirky-artist facets from the artist list. The two derived lists
// are always functions of the same artist list.
func DeriveFacets(tracks []Track, artists []Artist) FacetSet {
	return FacetSet{
		Tracks:  tracks,
		Artists: artists,
		Genres:  TopGenres(artists),
		Quirky:  QuirkiestArtists(artists),
	}
}

// TopGenres flattens the genre lists of the given artists, counts frequency,
// and returns genres ordered by descending count, capped at TopGenreLimit.
// Ties are broken by first-seen order across the flattened lists.
func TopGenres(artists []Artist) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var order []string

	pos := 0
	for _, a := range artists {
		for _, g := range a.Genres {
			if _, ok := counts[g]; !ok {
				firstSeen[g] = pos
				order = append(order, g)
			}
			counts[g]++
			pos++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		ci, cj := counts[order[i]], counts[order[j]]
		if ci != cj {
			return ci > cj
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	if len(order) > TopGenreLimit {
		order = order[:TopGenreLimit]
	}
	return order
}

// QuirkiestArtists selects the outliers of a top-artist list: artists whose
// popularity falls below the mean popularity of the list. Selected artists
// are ordered by ascending popularity, ties broken by original list order,
// capped at QuirkyLimit. An empty input yields an empty result.
func QuirkiestArtists(artists []Artist) []Artist {
	if len(artists) == 0 {
		return nil
	}

	total := 0
	for _, a := range artists {
		total += a.Popularity
	}
	mean := float64(total) / float64(len(artists))

	var quirky []Artist
	for _, a := range artists {
		if float64(a.Popularity) < mean {
			quirky = append(quirky, a)
		}
	}

	sort.SliceStable(quirky, func(i, j int) bool {
		return quirky[i].Popularity < quirky[j].Popularity
	})

	if len(quirky) > QuirkyLimit {
		quirky = quirky[:QuirkyLimit]
	}
	return quirky
}

// Truncate returns at most n leading elements of list, safely handling
// shorter inputs.
func Truncate[T any](list []T, n int) []T {
	if len(list) <= n {
		return list
	}
	return list[:n]
}
