package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"

	"github.com/YixiongHao/spotify-wrapper/internal/refresh"
	"github.com/YixiongHao/spotify-wrapper/internal/snapshot"
	provider "github.com/YixiongHao/spotify-wrapper/internal/spotify"
	"github.com/YixiongHao/spotify-wrapper/internal/wrapped"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	auth      *spotifyauth.Authenticator
	sessions  SessionManager
	refresher *refresh.Service
	snapshots *snapshot.Service
	logger    *log.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(auth *spotifyauth.Authenticator, sessions SessionManager, refresher *refresh.Service, snapshots *snapshot.Service, logger *log.Logger) *Handlers {
	if logger == nil {
		logger = log.Default()
	}
	return &Handlers{
		auth:      auth,
		sessions:  sessions,
		refresher: refresher,
		snapshots: snapshots,
		logger:    logger,
	}
}

// Health reports liveness (GET /healthz).
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// Login initiates the Spotify OAuth flow (GET /auth/login).
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	// Generate state for CSRF protection
	state, err := generateOAuthState()
	if err != nil {
		http.Error(w, "Failed to generate state", http.StatusInternalServerError)
		return
	}

	// Store state in cookie for validation on callback
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   300, // 5 minutes
	})

	// Redirect to Spotify auth
	url := h.auth.AuthURL(state)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// Callback handles the OAuth callback from Spotify (GET /callback).
func (h *Handlers) Callback(w http.ResponseWriter, r *http.Request) {
	// Verify state
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil {
		http.Error(w, "Missing state cookie", http.StatusBadRequest)
		return
	}

	state := r.URL.Query().Get("state")
	if state != stateCookie.Value {
		http.Error(w, "State mismatch", http.StatusBadRequest)
		return
	}

	// Clear state cookie
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	// Check for error from Spotify
	if errMsg := r.URL.Query().Get("error"); errMsg != "" {
		http.Error(w, fmt.Sprintf("Spotify auth error: %s", errMsg), http.StatusBadRequest)
		return
	}

	// Exchange code for token
	token, err := h.auth.Token(r.Context(), state, r)
	if err != nil {
		http.Error(w, "Failed to get token", http.StatusInternalServerError)
		return
	}

	// Get user info from Spotify
	identity, err := provider.New(spotify.New(h.auth.Client(r.Context(), token))).Identity(r.Context())
	if err != nil {
		http.Error(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}

	// Create session
	session, err := h.sessions.Create(r.Context(), token, identity.ID, identity.DisplayName)
	if err != nil {
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	// Set session cookie
	h.sessions.SetCookie(w, session)

	http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
}

// Logout clears the session (POST /auth/logout).
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if session := h.sessions.GetFromRequest(r); session != nil {
		h.sessions.Delete(r.Context(), session.ID)
	}
	h.sessions.ClearCookie(w)
	respondJSON(w, h.logger, http.StatusOK, map[string]string{"status": "logged out"})
}

// RefreshProfile pulls the caller's favorites from Spotify for every window
// and upserts the aggregated profile (POST /api/refresh).
func (h *Handlers) RefreshProfile(w http.ResponseWriter, r *http.Request) {
	session, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	api := spotify.New(h.auth.Client(r.Context(), session.Token))
	result, err := h.refresher.Refresh(r.Context(), provider.New(api))

	// The oauth2 transport may have refreshed the access token during the
	// provider calls; write it back so later requests reuse it.
	h.persistRefreshedToken(r.Context(), session, api)

	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	degraded := make([]string, 0, len(result.Degraded))
	for _, d := range result.Degraded {
		degraded = append(degraded, fmt.Sprintf("%s/%s", d.Facet, d.Window))
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]any{
		"profile":  result.Profile,
		"degraded": degraded,
	})
}

// BuildWrapped assembles and stores a wrapped snapshot for the caller
// (POST /api/wrapped/{window}).
func (h *Handlers) BuildWrapped(w http.ResponseWriter, r *http.Request) {
	session, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	window, err := wrapped.ParseWindow(chi.URLParam(r, "window"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	snap, err := h.snapshots.BuildWrapped(r.Context(), session.UserID, window)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusCreated, snap)
}

// BuildDuo assembles a shared snapshot for the caller and a named partner
// (POST /api/duo/{partner}/{window}). A partial history failure still
// returns the snapshot, flagged as partial.
func (h *Handlers) BuildDuo(w http.ResponseWriter, r *http.Request) {
	session, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	window, err := wrapped.ParseWindow(chi.URLParam(r, "window"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	snap, err := h.snapshots.BuildDuo(r.Context(), session.UserID, chi.URLParam(r, "partner"), window)
	if err != nil {
		var partial *wrapped.PartialAppendError
		if snap != nil && errors.As(err, &partial) {
			h.logger.Warn("duo history partially recorded", "snapshot", snap.ID, "err", err)
			respondJSON(w, h.logger, http.StatusOK, map[string]any{
				"snapshot": snap,
				"partial":  true,
				"detail":   err.Error(),
			})
			return
		}
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, map[string]any{
		"snapshot": snap,
		"partial":  false,
	})
}

// History returns the caller's snapshot references, oldest first
// (GET /api/history).
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	session, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	entries, err := h.snapshots.ListHistory(r.Context(), session.UserID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if entries == nil {
		entries = []wrapped.HistoryEntry{}
	}
	respondJSON(w, h.logger, http.StatusOK, entries)
}

// GetSnapshot returns a stored snapshot formatted for display
// (GET /api/snapshots/{id}?duo=true&blurbs=true).
func (h *Handlers) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireSession(w, r); !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, h.logger, http.StatusBadRequest, errorBody{Error: "invalid snapshot id"})
		return
	}

	isDuo := boolParam(r, "duo")
	withBlurbs := boolParam(r, "blurbs")

	view, err := h.snapshots.View(r.Context(), id, isDuo, withBlurbs)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, view)
}

// tokenHolder exposes the token currently held by a client's oauth2
// transport.
type tokenHolder interface {
	Token() (*oauth2.Token, error)
}

// persistRefreshedToken stores the token back on the session when the
// transport refreshed it during provider calls. Without this, every later
// request would redo the refresh round trip against an expired stored token.
func (h *Handlers) persistRefreshedToken(ctx context.Context, session *Session, api tokenHolder) {
	fresh, err := api.Token()
	if err != nil || fresh == nil {
		return
	}
	if fresh.AccessToken == session.Token.AccessToken {
		return
	}
	h.sessions.UpdateToken(ctx, session.ID, fresh)
}

// requireSession resolves the caller's session, writing a 401 when absent.
func (h *Handlers) requireSession(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	session := h.sessions.GetFromRequest(r)
	if session == nil {
		respondError(w, h.logger, wrapped.ErrNotAuthenticated)
		return nil, false
	}
	return session, true
}

func boolParam(r *http.Request, name string) bool {
	switch r.URL.Query().Get(name) {
	case "true", "1":
		return true
	}
	return false
}

// generateOAuthState creates a random state string for OAuth CSRF protection.
func generateOAuthState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
