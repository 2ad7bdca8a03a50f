package web

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
)

// staticToken is a tokenHolder returning a fixed token or error.
type staticToken struct {
	tok *oauth2.Token
	err error
}

func (s staticToken) Token() (*oauth2.Token, error) {
	return s.tok, s.err
}

func TestPersistRefreshedToken(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()
	session, err := store.Create(ctx, &oauth2.Token{AccessToken: "stale"}, "u1", "Alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	h := &Handlers{sessions: store, logger: log.Default()}

	h.persistRefreshedToken(ctx, session, staticToken{tok: &oauth2.Token{AccessToken: "fresh"}})

	if got := store.Get(ctx, session.ID); got.Token.AccessToken != "fresh" {
		t.Errorf("stored token = %q, want refreshed", got.Token.AccessToken)
	}
}

func TestPersistRefreshedTokenUnchanged(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()
	original := &oauth2.Token{AccessToken: "same"}
	session, err := store.Create(ctx, original, "u1", "Alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	h := &Handlers{sessions: store, logger: log.Default()}

	h.persistRefreshedToken(ctx, session, staticToken{tok: &oauth2.Token{AccessToken: "same"}})

	if got := store.Get(ctx, session.ID); got.Token != original {
		t.Error("token replaced although unchanged")
	}
}

func TestPersistRefreshedTokenHolderError(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()
	session, err := store.Create(ctx, &oauth2.Token{AccessToken: "kept"}, "u1", "Alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	h := &Handlers{sessions: store, logger: log.Default()}

	h.persistRefreshedToken(ctx, session, staticToken{err: errors.New("transport not oauth2")})

	if got := store.Get(ctx, session.ID); got.Token.AccessToken != "kept" {
		t.Errorf("stored token = %q, want untouched", got.Token.AccessToken)
	}
}
