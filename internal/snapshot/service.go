// Package snapshot assembles, stores, and displays wrapped and duo
// summaries built from aggregated profiles.
package snapshot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/YixiongHao/spotify-wrapper/internal/wrapped"
)

// PlaceholderDescription replaces a generated description when the text
// generator is unavailable or fails. Generation is an enrichment; its
// failure never fails a build.
const PlaceholderDescription = "We couldn't write this one up. Your taste speaks for itself."

// RecommendationSlots is the fixed size of the recommendation placeholder
// list on a wrapped snapshot.
const RecommendationSlots = 5

// promptArtistCount bounds how many artist names seed a description prompt.
const promptArtistCount = 5

// ProfileStore abstracts profile reads and history writes.
type ProfileStore interface {
	Get(ctx context.Context, id string) (*wrapped.Profile, error)
	GetByDisplayName(ctx context.Context, name string) (*wrapped.Profile, error)
	AppendHistory(ctx context.Context, profileID string, entry wrapped.HistoryEntry) error
	History(ctx context.Context, profileID string) ([]wrapped.HistoryEntry, error)
}

// SnapshotStore abstracts snapshot persistence.
type SnapshotStore interface {
	CreateWrapped(ctx context.Context, s *wrapped.WrappedSnapshot) error
	CreateDuo(ctx context.Context, s *wrapped.DuoSnapshot) error
	GetWrapped(ctx context.Context, id uuid.UUID) (*wrapped.WrappedSnapshot, error)
	GetDuo(ctx context.Context, id uuid.UUID) (*wrapped.DuoSnapshot, error)
}

// Describer abstracts the text generator.
type Describer interface {
	Describe(ctx context.Context, topic string) (string, error)
}

// Service builds, records, and displays snapshots.
type Service struct {
	profiles  ProfileStore
	snapshots SnapshotStore
	gen       Describer // nil disables generation; placeholders are used
	logger    *log.Logger
}

// New creates a snapshot service. gen may be nil when no text-generation
// credential is configured.
func New(profiles ProfileStore, snapshots SnapshotStore, gen Describer, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		profiles:  profiles,
		snapshots: snapshots,
		gen:       gen,
		logger:    logger,
	}
}

// BuildWrapped assembles an immutable snapshot of one profile's facets for
// the given window, stores it, and appends a reference to the owner's
// history log.
func (s *Service) BuildWrapped(ctx context.Context, profileID string, window wrapped.Window) (*wrapped.WrappedSnapshot, error) {
	if !window.Valid() {
		return nil, wrapped.ErrInvalidWindow
	}

	profile, err := s.profiles.Get(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	facets := profile.Facets[window]
	snap := &wrapped.WrappedSnapshot{
		ID:              uuid.New(),
		OwnerID:         profile.ID,
		OwnerName:       profile.DisplayName,
		Window:          window,
		Facets:          facets,
		Description:     s.describe(ctx, favoritesPrompt(profile.DisplayName, facets.Artists)),
		Recommendations: make([]string, RecommendationSlots),
		CreatedAt:       time.Now(),
	}

	if err := s.snapshots.CreateWrapped(ctx, snap); err != nil {
		return nil, fmt.Errorf("storing snapshot: %w", err)
	}

	entry := wrapped.HistoryEntry{
		SnapshotID: snap.ID,
		OwnerName:  profile.DisplayName,
		IsDuo:      false,
		CreatedAt:  snap.CreatedAt,
	}
	if err := s.profiles.AppendHistory(ctx, profile.ID, entry); err != nil {
		return nil, fmt.Errorf("recording history: %w", err)
	}

	return snap, nil
}

// ListHistory returns a profile's snapshot references, oldest first.
func (s *Service) ListHistory(ctx context.Context, profileID string) ([]wrapped.HistoryEntry, error) {
	entries, err := s.profiles.History(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return entries, nil
}

// describe runs the text generator, substituting the placeholder on any
// failure.
func (s *Service) describe(ctx context.Context, topic string) string {
	if s.gen == nil {
		return PlaceholderDescription
	}
	text, err := s.gen.Describe(ctx, topic)
	if err != nil {
		s.logger.Warn("description generation failed", "err", err)
		return PlaceholderDescription
	}
	return text
}

// favoritesPrompt seeds a description from a favorite-artists list.
func favoritesPrompt(displayName string, artists []wrapped.Artist) string {
	names := artistNames(artists, promptArtistCount)
	if len(names) == 0 {
		return fmt.Sprintf("Describe the music taste of a listener named %s.", displayName)
	}
	return fmt.Sprintf("Describe the music taste of a listener named %s whose favorite artists are %s.",
		displayName, strings.Join(names, ", "))
}

func artistNames(artists []wrapped.Artist, n int) []string {
	artists = wrapped.Truncate(artists, n)
	names := make([]string, len(artists))
	for i, a := range artists {
		names[i] = a.Name
	}
	return names
}
