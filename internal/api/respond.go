package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"skincare-advisor/internal/accounts"
	"skincare-advisor/internal/analysis"
	"skincare-advisor/internal/catalog"
	"skincare-advisor/internal/logging"
	"skincare-advisor/internal/recommend"
	"skincare-advisor/internal/services"
	"skincare-advisor/internal/validation"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error  string                  `json:"error"`
	Code   string                  `json:"code"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

var errBadJSON = errors.New("malformed JSON body")

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error().Err(err).Msg("JSON encode error")
	}
}

func respondError(w http.ResponseWriter, status int, code, msg string) {
	respondJSON(w, status, ErrorResponse{Error: msg, Code: code})
}

// decodeJSON reads exactly one JSON object, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", errBadJSON)
		}
		return fmt.Errorf("%w: %v", errBadJSON, err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after JSON object", errBadJSON)
	}
	return nil
}

// respondServiceError maps domain and upstream errors to a status code.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr   *validation.Error
		status *services.StatusError
	)

	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: verr.Error(), Code: "validation_failed", Fields: verr.Fields})
	case errors.Is(err, errBadJSON), errors.Is(err, recommend.ErrInvalidRequest), errors.Is(err, analysis.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, analysis.ErrUnsupportedImage):
		respondError(w, http.StatusUnsupportedMediaType, "unsupported_image", err.Error())
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, accounts.ErrNotFound), errors.Is(err, services.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, accounts.ErrEmailTaken):
		respondError(w, http.StatusConflict, "email_taken", err.Error())
	case errors.Is(err, accounts.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, accounts.ErrWrongPassword):
		respondError(w, http.StatusUnauthorized, "wrong_password", err.Error())
	case errors.As(err, &status) && status.Code < 500:
		// Pass client errors from downstream services through unchanged.
		msg := status.Message
		if msg == "" {
			msg = http.StatusText(status.Code)
		}
		respondError(w, status.Code, "upstream_rejected", msg)
	case errors.Is(err, recommend.ErrCatalogUnavailable):
		logging.Ctx(r.Context()).Error().Err(err).Msg("Catalog unavailable")
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "product catalog is unavailable")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
