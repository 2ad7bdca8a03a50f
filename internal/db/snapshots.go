package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/YixiongHao/spotify-wrapper/internal/wrapped"
)

// SnapshotRepository handles wrapped and duo snapshot storage. Snapshots are
// immutable: there are no update operations. Facet lists are stored as one
// JSONB blob per row.
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// CreateWrapped inserts a single-user snapshot.
func (r *SnapshotRepository) CreateWrapped(ctx context.Context, s *wrapped.WrappedSnapshot) error {
	query := `
		INSERT INTO wrapped_snapshots (id, owner_id, owner_name, time_window,
			facets, description, recommendations, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING created_at
	`
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	err := r.pool.QueryRow(ctx, query,
		s.ID,
		s.OwnerID,
		s.OwnerName,
		s.Window.String(),
		s.Facets,
		s.Description,
		s.Recommendations,
	).Scan(&s.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting wrapped snapshot: %w", err)
	}
	return nil
}

// GetWrapped retrieves a single-user snapshot by id.
func (r *SnapshotRepository) GetWrapped(ctx context.Context, id uuid.UUID) (*wrapped.WrappedSnapshot, error) {
	query := `
		SELECT id, owner_id, owner_name, time_window, facets, description, recommendations, created_at
		FROM wrapped_snapshots
		WHERE id = $1
	`
	var s wrapped.WrappedSnapshot
	var windowTag string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.OwnerID,
		&s.OwnerName,
		&windowTag,
		&s.Facets,
		&s.Description,
		&s.Recommendations,
		&s.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying wrapped snapshot: %w", err)
	}

	s.Window, err = wrapped.ParseWindow(windowTag)
	if err != nil {
		return nil, fmt.Errorf("stored snapshot has bad window tag: %w", err)
	}
	return &s, nil
}

// CreateDuo inserts a two-user snapshot.
func (r *SnapshotRepository) CreateDuo(ctx context.Context, s *wrapped.DuoSnapshot) error {
	query := `
		INSERT INTO duo_snapshots (id, owner_id, owner_name, partner_id, partner_name,
			time_window, facets, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at
	`
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	err := r.pool.QueryRow(ctx, query,
		s.ID,
		s.OwnerID,
		s.OwnerName,
		s.PartnerID,
		s.PartnerName,
		s.Window.String(),
		s.Facets,
		s.Description,
	).Scan(&s.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting duo snapshot: %w", err)
	}
	return nil
}

// GetDuo retrieves a two-user snapshot by id.
func (r *SnapshotRepository) GetDuo(ctx context.Context, id uuid.UUID) (*wrapped.DuoSnapshot, error) {
	query := `
		SELECT id, owner_id, owner_name, partner_id, partner_name,
			time_window, facets, description, created_at
		FROM duo_snapshots
		WHERE id = $1
	`
	var s wrapped.DuoSnapshot
	var windowTag string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.OwnerID,
		&s.OwnerName,
		&s.PartnerID,
		&s.PartnerName,
		&windowTag,
		&s.Facets,
		&s.Description,
		&s.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying duo snapshot: %w", err)
	}

	s.Window, err = wrapped.ParseWindow(windowTag)
	if err != nil {
		return nil, fmt.Errorf("stored snapshot has bad window tag: %w", err)
	}
	return &s, nil
}
