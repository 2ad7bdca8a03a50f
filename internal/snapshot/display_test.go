package snapshot

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/YixiongHao/spotify-wrapper/internal/wrapped"
)

func storedWrapped(snaps *fakeSnapshotStore, trackCount int) *wrapped.WrappedSnapshot {
	snap := &wrapped.WrappedSnapshot{
		ID:          uuid.New(),
		OwnerID:     "u1",
		OwnerName:   "Alice",
		Window:      wrapped.Short,
		Description: "desc",
	}
	for i := 0; i < trackCount; i++ {
		snap.Facets.Tracks = append(snap.Facets.Tracks, wrapped.Track{ID: string(rune('a' + i)), Name: "Track"})
	}
	snap.Facets.Artists = []wrapped.Artist{{ID: "a1", Name: "Alpha"}, {ID: "a2", Name: "Beta"}}
	snap.Facets.Genres = []string{"g1", "g2", "g3", "g4", "g5", "g6", "g7"}
	snaps.wrappedSnaps[snap.ID] = snap
	return snap
}

func TestViewTruncatesToFive(t *testing.T) {
	snaps := newFakeSnapshotStore()
	snap := storedWrapped(snaps, 9)
	svc := New(newFakeProfileStore(), snaps, nil, nil)

	v, err := svc.View(context.Background(), snap.ID, false, false)
	if err != nil {
		t.Fatalf("View: %v", err)
	}

	if len(v.Tracks) != DisplayLimit {
		t.Errorf("tracks shown = %d, want %d", len(v.Tracks), DisplayLimit)
	}
	if len(v.Genres) != DisplayLimit {
		t.Errorf("genres shown = %d, want %d", len(v.Genres), DisplayLimit)
	}
	if len(v.Artists) != 2 {
		t.Errorf("short artist list padded: %+v", v.Artists)
	}
	if v.Description != "desc" || v.OwnerName != "Alice" || v.IsDuo {
		t.Errorf("view header = %+v", v)
	}
}

func TestViewShortListsAreSafe(t *testing.T) {
	snaps := newFakeSnapshotStore()
	snap := storedWrapped(snaps, 2)
	svc := New(newFakeProfileStore(), snaps, nil, nil)

	v, err := svc.View(context.Background(), snap.ID, false, false)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if len(v.Tracks) != 2 {
		t.Errorf("tracks shown = %d, want 2", len(v.Tracks))
	}
}

func TestViewWithBlurbs(t *testing.T) {
	snaps := newFakeSnapshotStore()
	snap := storedWrapped(snaps, 1)
	gen := &fakeDescriber{}
	svc := New(newFakeProfileStore(), snaps, gen, nil)

	v, err := svc.View(context.Background(), snap.ID, false, true)
	if err != nil {
		t.Fatalf("View: %v", err)
	}

	for i, a := range v.Artists {
		if a.Blurb == "" {
			t.Errorf("artist %d has no blurb", i)
		}
	}
	for i, tr := range v.Tracks {
		if tr.Blurb == "" {
			t.Errorf("track %d has no blurb", i)
		}
	}
}

func TestViewBlurbFailureLeavesBlurbEmpty(t *testing.T) {
	snaps := newFakeSnapshotStore()
	snap := storedWrapped(snaps, 1)
	gen := &fakeDescriber{err: errors.New("quota exceeded")}
	svc := New(newFakeProfileStore(), snaps, gen, nil)

	v, err := svc.View(context.Background(), snap.ID, false, true)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	for _, a := range v.Artists {
		if a.Blurb != "" {
			t.Errorf("blurb set despite generator failure: %q", a.Blurb)
		}
	}
}

func TestViewDuoPairwiseBlurbs(t *testing.T) {
	snaps := newFakeSnapshotStore()
	snap := &wrapped.DuoSnapshot{
		ID:          uuid.New(),
		OwnerName:   "Alice",
		PartnerName: "Bob",
		Window:      wrapped.Short,
		Facets: wrapped.FacetSet{
			Artists: []wrapped.Artist{
				{ID: "a1", Name: "Alpha"},
				{ID: "b1", Name: "Gamma"},
				{ID: "a2", Name: "Beta"},
			},
		},
	}
	snaps.duoSnaps[snap.ID] = snap
	gen := &fakeDescriber{}
	svc := New(newFakeProfileStore(), snaps, gen, nil)

	v, err := svc.View(context.Background(), snap.ID, true, true)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if !v.IsDuo || v.PartnerName != "Bob" {
		t.Errorf("view header = %+v", v)
	}

	// Comparison lands on the first of each adjacent pair; the trailing
	// unpaired item gets none.
	if v.Artists[0].Blurb == "" {
		t.Error("pair lead missing comparison blurb")
	}
	if v.Artists[1].Blurb != "" {
		t.Error("pair second should have no blurb")
	}
	if v.Artists[2].Blurb != "" {
		t.Error("unpaired trailing item should have no blurb")
	}
}

func TestViewUnknownSnapshot(t *testing.T) {
	svc := New(newFakeProfileStore(), newFakeSnapshotStore(), nil, nil)

	_, err := svc.View(context.Background(), uuid.New(), false, false)
	if !errors.Is(err, wrapped.ErrSnapshotNotFound) {
		t.Errorf("error = %v, want ErrSnapshotNotFound", err)
	}
	_, err = svc.View(context.Background(), uuid.New(), true, false)
	if !errors.Is(err, wrapped.ErrSnapshotNotFound) {
		t.Errorf("duo error = %v, want ErrSnapshotNotFound", err)
	}
}
