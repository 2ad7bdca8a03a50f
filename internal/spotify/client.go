// Package spotify wraps the Spotify Web API for identity and top-item reads.
package spotify

import (
	"context"
	"fmt"
	"time"

	"github.com/zmb3/spotify/v2"

	"github.com/YixiongHao/spotify-wrapper/internal/wrapped"
)

// requestTimeout bounds every outbound provider call. The oauth2 client
// handed to the wrapper carries no timeout of its own, so the bound lives
// here on the request context.
const requestTimeout = 10 * time.Second

// Client wraps the Spotify API client with convenience methods.
type Client struct {
	api *spotify.Client
}

// New creates a new Spotify client wrapper.
// The underlying client should already be authenticated.
func New(api *spotify.Client) *Client {
	return &Client{api: api}
}

// Identity returns the current user's provider identity.
func (c *Client) Identity(ctx context.Context) (wrapped.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	user, err := c.api.CurrentUser(ctx)
	if err != nil {
		return wrapped.Identity{}, fmt.Errorf("getting current user: %w", err)
	}

	id := wrapped.Identity{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
	}
	if len(user.Images) > 0 {
		id.AvatarURL = user.Images[0].URL
	}
	return id, nil
}
