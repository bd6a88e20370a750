package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jason-s-yu/uno/internal/game"
	"github.com/jason-s-yu/uno/internal/models"
)

var errBadRequest = errors.New("bad request payload")

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errBadRequest
	}
	return nil
}

// gameIDParam parses the {id} route segment. Malformed ids cannot name a game, so they are not found.
func gameIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, game.ErrNotFound
	}
	return id, nil
}

// parseColorParam converts an optional color string from a request body.
func parseColorParam(s *string) (*models.Color, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	c, ok := models.ParseColor(*s)
	if !ok {
		return nil, game.ErrInvalidColor
	}
	return &c, nil
}
