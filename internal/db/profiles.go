package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/YixiongHao/spotify-wrapper/internal/wrapped"
)

// ProfileRepository handles profile database operations. Facet sets and the
// history log are stored as JSONB blobs on the profile row.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// Upsert creates or overwrites a profile keyed by provider id. The write is
// last-write-wins over the whole row: identity fields and all three facet
// sets are replaced together. The history log is preserved on update.
func (r *ProfileRepository) Upsert(ctx context.Context, p *wrapped.Profile) error {
	query := `
		INSERT INTO profiles (id, display_name, email, avatar_url,
			facets_short, facets_medium, facets_long, history, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, '[]'::jsonb, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			email = EXCLUDED.email,
			avatar_url = EXCLUDED.avatar_url,
			facets_short = EXCLUDED.facets_short,
			facets_medium = EXCLUDED.facets_medium,
			facets_long = EXCLUDED.facets_long,
			updated_at = NOW()
	`
	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.DisplayName,
		p.Email,
		p.AvatarURL,
		p.Facets[wrapped.Short],
		p.Facets[wrapped.Medium],
		p.Facets[wrapped.Long],
	)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}

// Get retrieves a profile by provider id.
func (r *ProfileRepository) Get(ctx context.Context, id string) (*wrapped.Profile, error) {
	query := `
		SELECT id, display_name, email, avatar_url, facets_short, facets_medium, facets_long
		FROM profiles
		WHERE id = $1
	`
	return r.scanProfile(r.pool.QueryRow(ctx, query, id))
}

// GetByDisplayName retrieves a profile by its unique display name.
// Used for duo partner lookup.
func (r *ProfileRepository) GetByDisplayName(ctx context.Context, name string) (*wrapped.Profile, error) {
	query := `
		SELECT id, display_name, email, avatar_url, facets_short, facets_medium, facets_long
		FROM profiles
		WHERE display_name = $1
	`
	return r.scanProfile(r.pool.QueryRow(ctx, query, name))
}

func (r *ProfileRepository) scanProfile(row pgx.Row) (*wrapped.Profile, error) {
	var p wrapped.Profile
	err := row.Scan(
		&p.ID,
		&p.DisplayName,
		&p.Email,
		&p.AvatarURL,
		&p.Facets[wrapped.Short],
		&p.Facets[wrapped.Medium],
		&p.Facets[wrapped.Long],
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}
	return &p, nil
}

// AppendHistory atomically appends one snapshot reference to a profile's
// history log. The append happens inside the database, so concurrent builds
// for the same user cannot lose entries to a read-modify-write race.
func (r *ProfileRepository) AppendHistory(ctx context.Context, profileID string, entry wrapped.HistoryEntry) error {
	query := `
		UPDATE profiles
		SET history = COALESCE(history, '[]'::jsonb) || $2::jsonb,
			updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query, profileID, entry)
	if err != nil {
		return fmt.Errorf("appending history entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// History returns a profile's snapshot references in insertion order,
// oldest first.
func (r *ProfileRepository) History(ctx context.Context, profileID string) ([]wrapped.HistoryEntry, error) {
	query := `SELECT COALESCE(history, '[]'::jsonb) FROM profiles WHERE id = $1`

	var entries []wrapped.HistoryEntry
	err := r.pool.QueryRow(ctx, query, profileID).Scan(&entries)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	return entries, nil
}
