// Package wrapped holds the domain types and derivation rules for
// listening-history summaries: time windows, facet sets, genre and
// quirky-artist derivation, and the duo merge rule.
package wrapped

import (
	"encoding/json"
	"fmt"
)

// Window identifies one of the three listening-history ranges over which
// favorites are computed.
type Window int

// Recognized windows, ordered shortest to longest.
const (
	Short Window = iota
	Medium
	Long

	windowCount
)

// WindowCount is the number of recognized windows.
const WindowCount = int(windowCount)

var windowTags = [windowCount]string{"short_term", "medium_term", "long_term"}

// ParseWindow converts a raw window tag into a Window.
// Returns ErrInvalidWindow for anything outside the three recognized tags.
// This is the only place raw tags are interpreted; internal code works with
// the Window type exclusively.
func ParseWindow(tag string) (Window, error) {
	for i, t := range windowTags {
		if t == tag {
			return Window(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWindow, tag)
}

// Windows returns all recognized windows in order.
func Windows() []Window {
	return []Window{Short, Medium, Long}
}

// Valid reports whether w is one of the recognized windows.
func (w Window) Valid() bool {
	return w >= Short && w < windowCount
}

// String returns the canonical tag for the window.
func (w Window) String() string {
	if !w.Valid() {
		return fmt.Sprintf("window(%d)", int(w))
	}
	return windowTags[w]
}

// MarshalJSON encodes the window as its canonical tag.
func (w Window) MarshalJSON() ([]byte, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, int(w))
	}
	return json.Marshal(w.String())
}

// UnmarshalJSON decodes a canonical window tag.
func (w *Window) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	parsed, err := ParseWindow(tag)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}
