package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/YixiongHao/spotify-wrapper/internal/db"
	"github.com/YixiongHao/spotify-wrapper/internal/wrapped"
)

// DisplayLimit caps every list in a snapshot view.
const DisplayLimit = 5

// ItemView is one displayed track or artist, optionally annotated with a
// generated blurb.
type ItemView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Blurb string `json:"blurb,omitempty"`
}

// View is the display shape of a stored snapshot: every list truncated to
// DisplayLimit, with optional per-item commentary.
type View struct {
	SnapshotID  uuid.UUID      `json:"snapshot_id"`
	IsDuo       bool           `json:"is_duo"`
	Window      wrapped.Window `json:"window"`
	OwnerName   string         `json:"owner_name"`
	PartnerName string         `json:"partner_name,omitempty"`
	Description string         `json:"description"`
	Tracks      []ItemView     `json:"tracks"`
	Artists     []ItemView     `json:"artists"`
	Genres      []string       `json:"genres"`
	Quirky      []ItemView     `json:"quirky"`
}

// View fetches a stored snapshot and formats it for display. With blurbs
// enabled, each displayed artist and track gets one generated line; in duo
// mode adjacent items get a pairwise comparison line on the first of each
// pair instead. Blurb generation failures leave the blurb empty.
func (s *Service) View(ctx context.Context, id uuid.UUID, isDuo, withBlurbs bool) (*View, error) {
	var v *View
	if isDuo {
		snap, err := s.snapshots.GetDuo(ctx, id)
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", wrapped.ErrSnapshotNotFound, id)
		}
		if err != nil {
			return nil, fmt.Errorf("loading duo snapshot: %w", err)
		}
		v = &View{
			SnapshotID:  snap.ID,
			IsDuo:       true,
			Window:      snap.Window,
			OwnerName:   snap.OwnerName,
			PartnerName: snap.PartnerName,
			Description: snap.Description,
			Tracks:      trackViews(snap.Facets.Tracks),
			Artists:     artistViews(snap.Facets.Artists),
			Genres:      wrapped.Truncate(snap.Facets.Genres, DisplayLimit),
			Quirky:      artistViews(snap.Facets.Quirky),
		}
	} else {
		snap, err := s.snapshots.GetWrapped(ctx, id)
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", wrapped.ErrSnapshotNotFound, id)
		}
		if err != nil {
			return nil, fmt.Errorf("loading wrapped snapshot: %w", err)
		}
		v = &View{
			SnapshotID:  snap.ID,
			Window:      snap.Window,
			OwnerName:   snap.OwnerName,
			Description: snap.Description,
			Tracks:      trackViews(snap.Facets.Tracks),
			Artists:     artistViews(snap.Facets.Artists),
			Genres:      wrapped.Truncate(snap.Facets.Genres, DisplayLimit),
			Quirky:      artistViews(snap.Facets.Quirky),
		}
	}

	if withBlurbs && s.gen != nil {
		s.annotate(ctx, v)
	}
	return v, nil
}

func trackViews(tracks []wrapped.Track) []ItemView {
	tracks = wrapped.Truncate(tracks, DisplayLimit)
	views := make([]ItemView, len(tracks))
	for i, t := range tracks {
		views[i] = ItemView{ID: t.ID, Name: t.Name}
	}
	return views
}

func artistViews(artists []wrapped.Artist) []ItemView {
	artists = wrapped.Truncate(artists, DisplayLimit)
	views := make([]ItemView, len(artists))
	for i, a := range artists {
		views[i] = ItemView{ID: a.ID, Name: a.Name}
	}
	return views
}

// annotate fills in per-item blurbs on the artist and track lists.
func (s *Service) annotate(ctx context.Context, v *View) {
	if v.IsDuo {
		s.annotatePairwise(ctx, v.Artists, "artists")
		s.annotatePairwise(ctx, v.Tracks, "songs")
		return
	}

	for i := range v.Artists {
		v.Artists[i].Blurb = s.itemBlurb(ctx, fmt.Sprintf("Say one interesting thing about the artist %s.", v.Artists[i].Name))
	}
	for i := range v.Tracks {
		v.Tracks[i].Blurb = s.itemBlurb(ctx, fmt.Sprintf("Say one interesting thing about the song %s.", v.Tracks[i].Name))
	}
}

// annotatePairwise writes a comparison blurb on the first item of each
// adjacent pair; in a duo view adjacent items come from different
// participants by construction of the merge rule.
func (s *Service) annotatePairwise(ctx context.Context, items []ItemView, kind string) {
	for i := 0; i+1 < len(items); i += 2 {
		items[i].Blurb = s.itemBlurb(ctx, fmt.Sprintf("Compare the %s %s and %s in one sentence.",
			kind, items[i].Name, items[i+1].Name))
	}
}

// itemBlurb generates one line, degrading to empty on failure.
func (s *Service) itemBlurb(ctx context.Context, topic string) string {
	text, err := s.gen.Describe(ctx, topic)
	if err != nil {
		s.logger.Warn("item blurb generation failed", "err", err)
		return ""
	}
	return text
}
