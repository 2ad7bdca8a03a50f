package wrapped

import (
	"errors"
	"fmt"
)

// Sentinel errors for the summary pipeline.
var (
	// ErrInvalidWindow is returned when a raw window tag is not one of the
	// three recognized values.
	ErrInvalidWindow = errors.New("unrecognized time window")

	// ErrParticipantNotFound is returned when a duo partner's display name
	// matches no known profile.
	ErrParticipantNotFound = errors.New("duo participant not found")

	// ErrNotAuthenticated is returned when no valid access token is
	// available for an operation that requires one.
	ErrNotAuthenticated = errors.New("missing or invalid access token")

	// ErrSnapshotNotFound is returned when a snapshot id matches no stored
	// snapshot.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// UpstreamError records a failed provider call for a single facet. A refresh
// that hits one never fails as a whole; the facet is left empty and the
// error is reported alongside the partial result.
type UpstreamError struct {
	Facet  string // "tracks" or "artists"
	Window Window
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("fetching top %s for %s: %v", e.Facet, e.Window, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// PartialAppendError reports a duo build whose snapshot was stored but whose
// history reference could not be appended to one participant's log. The
// snapshot itself is valid.
type PartialAppendError struct {
	Participant string // display name of the participant whose append failed
	Err         error
}

func (e *PartialAppendError) Error() string {
	return fmt.Sprintf("history append failed for participant %q: %v", e.Participant, e.Err)
}

func (e *PartialAppendError) Unwrap() error {
	return e.Err
}
