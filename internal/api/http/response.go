package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"toolshare-admin/internal/logger"
	"toolshare-admin/internal/service"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Result  any    `json:"result,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

// errorStatus maps service errors onto HTTP statuses. Order matters for
// joined errors: the first match wins.
var errorStatus = []struct {
	err    error
	code   string
	status int
}{
	{service.ErrSession, "session", http.StatusUnauthorized},
	{service.ErrSaveInProgress, "save_in_progress", http.StatusConflict},
	{service.ErrInvalidTransition, "invalid_transition", http.StatusConflict},
	{service.ErrMissingLink, "missing_link", http.StatusUnprocessableEntity},
	{service.ErrValidation, "validation", http.StatusBadRequest},
	{service.ErrReportNotFound, "not_found", http.StatusNotFound},
	{service.ErrNotSettleable, "not_settleable", http.StatusConflict},
	{service.ErrStore, "store", http.StatusBadGateway},
}

// writeError renders a service error. result carries what was already
// written when a save failed partway.
func writeError(w http.ResponseWriter, r *http.Request, err error, result any) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			if e.status >= http.StatusInternalServerError {
				logger.FromContext(r.Context()).Error("Request failed", "path", r.URL.Path, "error", err)
			}
			writeJSON(w, e.status, errorBody{Error: e.code, Message: err.Error(), Result: result})
			return
		}
	}

	logger.FromContext(r.Context()).Error("Unhandled error", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal", Message: "internal server error"})
}
