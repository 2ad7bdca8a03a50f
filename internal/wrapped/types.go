package wrapped

import (
	"time"

	"github.com/google/uuid"
)

// Image is a reference to provider-hosted artwork.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// ArtistRef is a minimal reference to an artist nested inside a track.
type ArtistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Track is one favorite track as fetched from the provider.
// Values are copied into whichever snapshot embeds them and never shared.
type Track struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Popularity int         `json:"popularity"`
	Artists    []ArtistRef `json:"artists,omitempty"`
	Images     []Image     `json:"images,omitempty"`
}

// Artist is one favorite artist as fetched from the provider.
type Artist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Popularity int      `json:"popularity"`
	Genres     []string `json:"genres,omitempty"`
	Images     []Image  `json:"images,omitempty"`
}

// FacetSet holds one user's taste data for a single window. Genres and
// Quirky are derived from Artists for the same window; the four lists are
// recomputed together on every refresh and never mixed across windows.
type FacetSet struct {
	Tracks  []Track  `json:"tracks"`
	Artists []Artist `json:"artists"`
	Genres  []string `json:"genres"`
	Quirky  []Artist `json:"quirky"`
}

// Identity holds the provider-assigned identity fields for a user.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// Profile is the per-user aggregate: identity plus one FacetSet per window.
// Indexed by Window.
type Profile struct {
	Identity
	Facets [WindowCount]FacetSet `json:"facets"`
}

// HistoryEntry is a lightweight reference to a produced snapshot, stored on
// the owning profile's append-only history log.
type HistoryEntry struct {
	SnapshotID uuid.UUID `json:"snapshot_id"`
	OwnerName  string    `json:"owner_name"`
	IsDuo      bool      `json:"is_duo"`
	CreatedAt  time.Time `json:"created_at"`
}

// WrappedSnapshot is an immutable capture of one profile's FacetSet for a
// chosen window at build time.
type WrappedSnapshot struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         string    `json:"owner_id"`
	OwnerName       string    `json:"owner_name"`
	Window          Window    `json:"window"`
	Facets          FacetSet  `json:"facets"`
	Description     string    `json:"description"`
	Recommendations []string  `json:"recommendations"`
	CreatedAt       time.Time `json:"created_at"`
}

// DuoSnapshot is an immutable capture of two profiles' merged facets for a
// chosen window.
type DuoSnapshot struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     string    `json:"owner_id"`
	OwnerName   string    `json:"owner_name"`
	PartnerID   string    `json:"partner_id"`
	PartnerName string    `json:"partner_name"`
	Window      Window    `json:"window"`
	Facets      FacetSet  `json:"facets"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
