package snapshot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	retry "github.com/avast/retry-go"
	"github.com/google/uuid"

	"github.com/YixiongHao/spotify-wrapper/internal/db"
	"github.com/YixiongHao/spotify-wrapper/internal/wrapped"
)

// historyAppendAttempts bounds retries of the per-participant history
// append. The two appends are deliberately not a cross-user transaction;
// each is idempotent at the database, so retrying is safe.
const historyAppendAttempts = 3

// BuildDuo merges the owner's facets with the named partner's for the given
// window, stores the joint snapshot, and appends a reference to both
// participants' history logs.
//
// If the snapshot is stored but one or both history appends fail after
// retries, the snapshot is returned together with a PartialAppendError per
// failed participant; callers must treat that as partial success, not
// silent success.
func (s *Service) BuildDuo(ctx context.Context, ownerID, partnerName string, window wrapped.Window) (*wrapped.DuoSnapshot, error) {
	if !window.Valid() {
		return nil, wrapped.ErrInvalidWindow
	}

	owner, err := s.profiles.Get(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	partner, err := s.profiles.GetByDisplayName(ctx, partnerName)
	if errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", wrapped.ErrParticipantNotFound, partnerName)
	}
	if err != nil {
		return nil, fmt.Errorf("loading partner profile: %w", err)
	}

	merged := wrapped.MergeFacets(owner.Facets[window], partner.Facets[window])

	snap := &wrapped.DuoSnapshot{
		ID:          uuid.New(),
		OwnerID:     owner.ID,
		OwnerName:   owner.DisplayName,
		PartnerID:   partner.ID,
		PartnerName: partner.DisplayName,
		Window:      window,
		Facets:      merged,
		Description: s.describe(ctx, duoPrompt(owner.DisplayName, partner.DisplayName, merged.Artists)),
		CreatedAt:   time.Now(),
	}

	if err := s.snapshots.CreateDuo(ctx, snap); err != nil {
		return nil, fmt.Errorf("storing snapshot: %w", err)
	}

	var partial error
	for _, p := range []*wrapped.Profile{owner, partner} {
		entry := wrapped.HistoryEntry{
			SnapshotID: snap.ID,
			OwnerName:  p.DisplayName,
			IsDuo:      true,
			CreatedAt:  snap.CreatedAt,
		}
		if err := s.appendWithRetry(ctx, p.ID, entry); err != nil {
			s.logger.Warn("duo history append failed", "participant", p.DisplayName, "snapshot", snap.ID, "err", err)
			partial = errors.Join(partial, &wrapped.PartialAppendError{Participant: p.DisplayName, Err: err})
		}
	}

	return snap, partial
}

// appendWithRetry retries a single history append with backoff.
func (s *Service) appendWithRetry(ctx context.Context, profileID string, entry wrapped.HistoryEntry) error {
	return retry.Do(
		func() error {
			return s.profiles.AppendHistory(ctx, profileID, entry)
		},
		retry.Attempts(historyAppendAttempts),
		retry.Delay(100*time.Millisecond),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
}

// duoPrompt seeds a joint description from the merged favorite-artists list.
func duoPrompt(ownerName, partnerName string, artists []wrapped.Artist) string {
	names := artistNames(artists, promptArtistCount)
	if len(names) == 0 {
		return fmt.Sprintf("Compare the music taste of two listeners named %s and %s.", ownerName, partnerName)
	}
	return fmt.Sprintf("Compare the music taste of two listeners named %s and %s whose combined favorite artists are %s.",
		ownerName, partnerName, strings.Join(names, ", "))
}
