package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/YixiongHao/spotify-wrapper/internal/db"
	"github.com/YixiongHao/spotify-wrapper/internal/wrapped"
)

// respondJSON writes v as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, logger *log.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encoding response", "err", err)
	}
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// respondError maps a service error to an HTTP status and writes it as JSON.
func respondError(w http.ResponseWriter, logger *log.Logger, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "err", err)
	} else {
		logger.Warn("request rejected", "status", status, "err", err)
	}
	respondJSON(w, logger, status, errorBody{Error: err.Error()})
}

// statusFor translates the service error taxonomy into HTTP status codes.
func statusFor(err error) int {
	var upstream *wrapped.UpstreamError
	switch {
	case errors.Is(err, wrapped.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, wrapped.ErrInvalidWindow):
		return http.StatusBadRequest
	case errors.Is(err, wrapped.ErrParticipantNotFound),
		errors.Is(err, wrapped.ErrSnapshotNotFound),
		errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
