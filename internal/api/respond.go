package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/samplan/internal/contract"
	"github.com/alexanderramin/samplan/internal/domain"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError maps domain errors onto HTTP statuses. Unexpected errors are
// logged and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	resp := ErrorResponse{Error: err.Error()}
	var status int

	var statusErr *contract.StatusError
	var inputErr *domain.InvalidInputError
	switch {
	case errors.As(err, &statusErr):
		status = http.StatusBadRequest
		resp.Code = string(statusErr.Code)
		resp.Error = statusErr.Message
	case errors.As(err, &inputErr):
		status = http.StatusBadRequest
		resp.Field = inputErr.Field
	case domain.IsClientError(err):
		status = http.StatusBadRequest
	case domain.IsForbidden(err):
		status = http.StatusForbidden
	case domain.IsNotFound(err):
		status = http.StatusNotFound
	default:
		status = http.StatusInternalServerError
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		resp.Error = "internal error"
	}
	writeJSON(w, status, resp)
}

// decodeJSON reads the request body into v. Malformed bodies are client
// errors.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var inputErr *domain.InvalidInputError
		if errors.As(err, &inputErr) {
			return inputErr
		}
		return &domain.InvalidInputError{Reason: fmt.Sprintf("invalid JSON body: %v", err)}
	}
	return nil
}
