// Package handlers contains the HTTP handlers. They are thin glue:
// decode, call the application service, encode.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/culinamind/backend/pkg/errors"
	"go.uber.org/zap"
)

// envelope is the standard body for the auth and recipe APIs.
type envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func respond(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Status: status, Message: message, Data: data})
}

// respondError maps an application error onto the envelope.
func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		respond(w, appErr.StatusCode(), appErr.Message, nil)
		return
	}
	logger.Error("unhandled error", zap.Error(err))
	respond(w, http.StatusInternalServerError, "Internal server error", nil)
}

// writeJSON writes a bare JSON body, used by the chatbot and validation
// APIs which predate the envelope.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
