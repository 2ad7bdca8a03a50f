// Package refresh implements the profile aggregator: it pulls a user's top
// tracks and artists for every window, derives the secondary facets, and
// upserts the resulting profile.
package refresh

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/YixiongHao/spotify-wrapper/internal/wrapped"
)

// TopFetcher abstracts the music-data provider for testing.
type TopFetcher interface {
	Identity(ctx context.Context) (wrapped.Identity, error)
	TopTracks(ctx context.Context, w wrapped.Window) ([]wrapped.Track, error)
	TopArtists(ctx context.Context, w wrapped.Window) ([]wrapped.Artist, error)
}

// ProfileStore abstracts profile persistence.
type ProfileStore interface {
	Upsert(ctx context.Context, p *wrapped.Profile) error
}

// Service aggregates provider data into profiles.
type Service struct {
	profiles ProfileStore
	logger   *log.Logger
}

// New creates a refresh service.
func New(profiles ProfileStore, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{profiles: profiles, logger: logger}
}

// Result is the outcome of a refresh. Degraded lists the facets whose
// provider call failed; their lists are empty in the profile but the rest of
// the refresh still committed.
type Result struct {
	Profile  *wrapped.Profile
	Degraded []*wrapped.UpstreamError
}

// Refresh fetches the user's favorites for all three windows from src,
// derives genres and quirky artists per window, and upserts the profile.
// A failed facet fetch leaves that facet empty and is reported in
// Result.Degraded; only an identity fetch failure or a store failure aborts
// the whole refresh.
func (s *Service) Refresh(ctx context.Context, src TopFetcher) (*Result, error) {
	identity, err := src.Identity(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching identity: %w", err)
	}

	profile := &wrapped.Profile{Identity: identity}
	var degraded []*wrapped.UpstreamError

	for _, w := range wrapped.Windows() {
		tracks, err := src.TopTracks(ctx, w)
		if err != nil {
			tracks = nil
			degraded = append(degraded, &wrapped.UpstreamError{Facet: "tracks", Window: w, Err: err})
			s.logger.Warn("top tracks fetch failed", "user", identity.ID, "window", w.String(), "err", err)
		}

		artists, err := src.TopArtists(ctx, w)
		if err != nil {
			artists = nil
			degraded = append(degraded, &wrapped.UpstreamError{Facet: "artists", Window: w, Err: err})
			s.logger.Warn("top artists fetch failed", "user", identity.ID, "window", w.String(), "err", err)
		}

		profile.Facets[w] = wrapped.DeriveFacets(tracks, artists)
	}

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("storing profile: %w", err)
	}

	return &Result{Profile: profile, Degraded: degraded}, nil
}
