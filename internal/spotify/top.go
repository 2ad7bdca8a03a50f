package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"

	"github.com/YixiongHao/spotify-wrapper/internal/wrapped"
)

// windowRanges maps domain windows onto the API's time_range values.
var windowRanges = [wrapped.WindowCount]spotify.Range{
	wrapped.Short:  spotify.ShortTermRange,
	wrapped.Medium: spotify.MediumTermRange,
	wrapped.Long:   spotify.LongTermRange,
}

// TopTracks fetches the user's favorite tracks for the given window,
// limited to wrapped.TopItemLimit items.
func (c *Client) TopTracks(ctx context.Context, w wrapped.Window) ([]wrapped.Track, error) {
	if !w.Valid() {
		return nil, wrapped.ErrInvalidWindow
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	page, err := c.api.CurrentUsersTopTracks(ctx,
		spotify.Timerange(windowRanges[w]),
		spotify.Limit(wrapped.TopItemLimit),
	)
	if err != nil {
		return nil, fmt.Errorf("fetching top tracks: %w", err)
	}

	tracks := make([]wrapped.Track, len(page.Tracks))
	for i, ft := range page.Tracks {
		tracks[i] = convertTrack(ft)
	}
	return tracks, nil
}

// TopArtists fetches the user's favorite artists for the given window,
// limited to wrapped.TopItemLimit items.
func (c *Client) TopArtists(ctx context.Context, w wrapped.Window) ([]wrapped.Artist, error) {
	if !w.Valid() {
		return nil, wrapped.ErrInvalidWindow
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	page, err := c.api.CurrentUsersTopArtists(ctx,
		spotify.Timerange(windowRanges[w]),
		spotify.Limit(wrapped.TopItemLimit),
	)
	if err != nil {
		return nil, fmt.Errorf("fetching top artists: %w", err)
	}

	artists := make([]wrapped.Artist, len(page.Artists))
	for i, fa := range page.Artists {
		artists[i] = convertArtist(fa)
	}
	return artists, nil
}

// convertTrack converts a Spotify FullTrack to the domain shape.
// Track artwork comes from the owning album.
func convertTrack(ft spotify.FullTrack) wrapped.Track {
	refs := make([]wrapped.ArtistRef, len(ft.Artists))
	for i, a := range ft.Artists {
		refs[i] = wrapped.ArtistRef{ID: a.ID.String(), Name: a.Name}
	}

	return wrapped.Track{
		ID:         ft.ID.String(),
		Name:       ft.Name,
		Popularity: int(ft.Popularity),
		Artists:    refs,
		Images:     convertImages(ft.Album.Images),
	}
}

// convertArtist converts a Spotify FullArtist to the domain shape.
func convertArtist(fa spotify.FullArtist) wrapped.Artist {
	return wrapped.Artist{
		ID:         fa.ID.String(),
		Name:       fa.Name,
		Popularity: int(fa.Popularity),
		Genres:     fa.Genres,
		Images:     convertImages(fa.Images),
	}
}

func convertImages(images []spotify.Image) []wrapped.Image {
	if len(images) == 0 {
		return nil
	}
	out := make([]wrapped.Image, len(images))
	for i, img := range images {
		out[i] = wrapped.Image{
			URL:    img.URL,
			Width:  int(img.Width),
			Height: int(img.Height),
		}
	}
	return out
}
