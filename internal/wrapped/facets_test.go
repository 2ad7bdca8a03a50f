package wrapped

import (
	"reflect"
	"testing"
)

func artistWithGenres(id string, genres ...string) Artist {
	return Artist{ID: id, Name: id, Genres: genres}
}

func TestTopGenres(t *testing.T) {
	tests := []struct {
		name    string
		artists []Artist
		want    []string
	}{
		{
			name:    "empty input",
			artists: nil,
			want:    nil,
		},
		{
			name: "ordered by frequency",
			artists: []Artist{
				artistWithGenres("a", "indie", "rock"),
				artistWithGenres("b", "rock", "pop"),
				artistWithGenres("c", "rock"),
			},
			want: []string{"rock", "indie", "pop"},
		},
		{
			name: "ties broken by first seen",
			artists: []Artist{
				artistWithGenres("a", "jazz", "soul"),
				artistWithGenres("b", "soul", "jazz"),
			},
			want: []string{"jazz", "soul"},
		},
		{
			name: "capped at five",
			artists: []Artist{
				artistWithGenres("a", "g1", "g2", "g3"),
				artistWithGenres("b", "g4", "g5", "g6", "g7"),
			},
			want: []string{"g1", "g2", "g3", "g4", "g5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopGenres(tt.artists)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TopGenres() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTopGenresCountsNonIncreasing(t *testing.T) {
	artists := []Artist{
		artistWithGenres("a", "rock", "pop", "indie"),
		artistWithGenres("b", "pop", "indie"),
		artistWithGenres("c", "indie"),
		artistWithGenres("d", "indie", "rock", "folk"),
	}

	counts := make(map[string]int)
	for _, a := range artists {
		for _, g := range a.Genres {
			counts[g]++
		}
	}

	got := TopGenres(artists)
	if len(got) > TopGenreLimit {
		t.Fatalf("got %d genres, limit is %d", len(got), TopGenreLimit)
	}
	for i := 1; i < len(got); i++ {
		if counts[got[i]] > counts[got[i-1]] {
			t.Errorf("counts increase at %d: %q(%d) after %q(%d)",
				i, got[i], counts[got[i]], got[i-1], counts[got[i-1]])
		}
	}
}

func TestQuirkiestArtists(t *testing.T) {
	tests := []struct {
		name    string
		artists []Artist
		wantIDs []string
	}{
		{
			name:    "empty input",
			artists: nil,
			wantIDs: nil,
		},
		{
			name: "single artist never below mean",
			artists: []Artist{
				{ID: "only", Popularity: 40},
			},
			wantIDs: nil,
		},
		{
			name: "outliers selected below mean",
			artists: []Artist{
				{ID: "mainstream", Popularity: 90},
				{ID: "niche", Popularity: 10},
				{ID: "mid", Popularity: 50},
			},
			// mean = 50; only popularity 10 is strictly below
			wantIDs: []string{"niche"},
		},
		{
			name: "ordered by ascending popularity",
			artists: []Artist{
				{ID: "a", Popularity: 80},
				{ID: "b", Popularity: 30},
				{ID: "c", Popularity: 10},
				{ID: "d", Popularity: 90},
			},
			// mean = 52.5
			wantIDs: []string{"c", "b"},
		},
		{
			name: "ties keep original order",
			artists: []Artist{
				{ID: "first", Popularity: 5},
				{ID: "second", Popularity: 5},
				{ID: "big", Popularity: 95},
			},
			wantIDs: []string{"first", "second"},
		},
		{
			name: "capped at five",
			artists: []Artist{
				{ID: "p1", Popularity: 1},
				{ID: "p2", Popularity: 2},
				{ID: "p3", Popularity: 3},
				{ID: "p4", Popularity: 4},
				{ID: "p5", Popularity: 5},
				{ID: "p6", Popularity: 6},
				{ID: "big", Popularity: 100},
			},
			wantIDs: []string{"p1", "p2", "p3", "p4", "p5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuirkiestArtists(tt.artists)
			ids := make([]string, len(got))
			for i, a := range got {
				ids[i] = a.ID
			}
			if !reflect.DeepEqual(ids, tt.wantIDs) && !(len(ids) == 0 && len(tt.wantIDs) == 0) {
				t.Errorf("QuirkiestArtists() = %v, want %v", ids, tt.wantIDs)
			}
		})
	}
}

func TestQuirkiestArtistsNeverRanksPopularFirst(t *testing.T) {
	artists := []Artist{
		{ID: "top", Popularity: 100},
		{ID: "bottom", Popularity: 0},
		{ID: "mid", Popularity: 40},
	}

	got := QuirkiestArtists(artists)
	for i, a := range got {
		if a.ID == "top" {
			for _, later := range got[i+1:] {
				if later.Popularity < a.Popularity {
					t.Fatalf("popularity-100 artist ranked ahead of popularity-%d artist", later.Popularity)
				}
			}
		}
	}
	if len(got) == 0 || got[0].ID != "bottom" {
		t.Errorf("expected popularity-0 artist first, got %+v", got)
	}
}

func TestDeriveFacets(t *testing.T) {
	tracks := []Track{{ID: "t1", Name: "Song"}}
	artists := []Artist{
		{ID: "a1", Popularity: 90, Genres: []string{"pop"}},
		{ID: "a2", Popularity: 10, Genres: []string{"noise", "pop"}},
	}

	fs := DeriveFacets(tracks, artists)

	if len(fs.Tracks) != 1 || fs.Tracks[0].ID != "t1" {
		t.Errorf("tracks not carried through: %+v", fs.Tracks)
	}
	if want := []string{"pop", "noise"}; !reflect.DeepEqual(fs.Genres, want) {
		t.Errorf("Genres = %v, want %v", fs.Genres, want)
	}
	if len(fs.Quirky) != 1 || fs.Quirky[0].ID != "a2" {
		t.Errorf("Quirky = %+v, want only a2", fs.Quirky)
	}
}

func TestTruncate(t *testing.T) {
	list := []int{1, 2, 3}

	if got := Truncate(list, 5); len(got) != 3 {
		t.Errorf("Truncate short list changed length: %v", got)
	}
	if got := Truncate(list, 2); len(got) != 2 || got[1] != 2 {
		t.Errorf("Truncate(list, 2) = %v", got)
	}
	if got := Truncate([]int{}, 5); len(got) != 0 {
		t.Errorf("Truncate empty = %v", got)
	}
}
