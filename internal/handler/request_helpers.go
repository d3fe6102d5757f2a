package handler

import (
	"encoding/json"
	"net/http"

	"github.com/daicaxom/tactics-server/internal/httpctx"
	"github.com/daicaxom/tactics-server/internal/logger"
)

// decodeJSON decodes a JSON request body into req, writing a 400 response
// and returning false if decoding fails.
func decodeJSON(r *http.Request, w http.ResponseWriter, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logger.FromContext(r.Context()).Warn("failed to decode request body", "error", err)
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// playerID returns the authenticated player id from the request context,
// writing a 401 response and returning false if it is absent.
func playerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := httpctx.PlayerID(r.Context())
	if !ok || id == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	return id, true
}
