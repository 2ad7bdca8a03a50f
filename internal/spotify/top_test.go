package spotify

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/zmb3/spotify/v2"

	"github.com/YixiongHao/spotify-wrapper/internal/wrapped"
)

// deadlineCapture records the request context's deadline without touching
// the network.
type deadlineCapture struct {
	deadline time.Time
	ok       bool
}

func (d *deadlineCapture) RoundTrip(req *http.Request) (*http.Response, error) {
	d.deadline, d.ok = req.Context().Deadline()
	return nil, errors.New("no network")
}

func TestOutboundCallsCarryDeadline(t *testing.T) {
	tests := []struct {
		name string
		call func(c *Client, ctx context.Context) error
	}{
		{"identity", func(c *Client, ctx context.Context) error {
			_, err := c.Identity(ctx)
			return err
		}},
		{"top tracks", func(c *Client, ctx context.Context) error {
			_, err := c.TopTracks(ctx, wrapped.Short)
			return err
		}},
		{"top artists", func(c *Client, ctx context.Context) error {
			_, err := c.TopArtists(ctx, wrapped.Long)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := &deadlineCapture{}
			c := New(spotify.New(&http.Client{Transport: rt}))

			// Background context has no deadline; the wrapper must add one.
			if err := tt.call(c, context.Background()); err == nil {
				t.Fatal("call succeeded without network")
			}
			if !rt.ok {
				t.Fatal("outbound request has no deadline")
			}
			if remaining := time.Until(rt.deadline); remaining <= 0 || remaining > requestTimeout {
				t.Errorf("deadline %v from now, want within %v", remaining, requestTimeout)
			}
		})
	}
}

func TestOutboundCallsKeepCallerDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	rt := &deadlineCapture{}
	c := New(spotify.New(&http.Client{Transport: rt}))

	if _, err := c.TopTracks(ctx, wrapped.Short); err == nil {
		t.Fatal("call succeeded without network")
	}
	if !rt.ok {
		t.Fatal("outbound request has no deadline")
	}
	// A caller deadline tighter than the default wins.
	if remaining := time.Until(rt.deadline); remaining > time.Second {
		t.Errorf("deadline %v from now, want within 1s", remaining)
	}
}

func TestConvertTrack(t *testing.T) {
	ft := spotify.FullTrack{
		SimpleTrack: spotify.SimpleTrack{
			ID:   "track1",
			Name: "Some Song",
			Artists: []spotify.SimpleArtist{
				{ID: "artist1", Name: "First"},
				{ID: "artist2", Name: "Second"},
			},
		},
		Album: spotify.SimpleAlbum{
			Images: []spotify.Image{{URL: "http://img/cover", Width: 300, Height: 300}},
		},
		Popularity: 42,
	}

	got := convertTrack(ft)

	if got.ID != "track1" || got.Name != "Some Song" {
		t.Errorf("identity fields = %q/%q", got.ID, got.Name)
	}
	if got.Popularity != 42 {
		t.Errorf("Popularity = %d, want 42", got.Popularity)
	}
	if len(got.Artists) != 2 || got.Artists[0].Name != "First" || got.Artists[1].ID != "artist2" {
		t.Errorf("Artists = %+v", got.Artists)
	}
	if len(got.Images) != 1 || got.Images[0].URL != "http://img/cover" || got.Images[0].Width != 300 {
		t.Errorf("Images = %+v", got.Images)
	}
}

func TestConvertArtist(t *testing.T) {
	fa := spotify.FullArtist{
		SimpleArtist: spotify.SimpleArtist{ID: "artist1", Name: "Somebody"},
		Popularity:   17,
		Genres:       []string{"shoegaze", "dream pop"},
		Images:       []spotify.Image{{URL: "http://img/a", Width: 64, Height: 64}},
	}

	got := convertArtist(fa)

	if got.ID != "artist1" || got.Name != "Somebody" {
		t.Errorf("identity fields = %q/%q", got.ID, got.Name)
	}
	if got.Popularity != 17 {
		t.Errorf("Popularity = %d, want 17", got.Popularity)
	}
	if len(got.Genres) != 2 || got.Genres[0] != "shoegaze" {
		t.Errorf("Genres = %v", got.Genres)
	}
}

func TestConvertImagesEmpty(t *testing.T) {
	if got := convertImages(nil); got != nil {
		t.Errorf("convertImages(nil) = %v, want nil", got)
	}
}
