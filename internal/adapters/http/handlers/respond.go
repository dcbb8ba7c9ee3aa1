package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/badhon18478/Marketplace-sub000/internal/adapters/http/dto"
	"github.com/badhon18478/Marketplace-sub000/internal/domain"
	"github.com/badhon18478/Marketplace-sub000/internal/platform/logging"
)

// maxBodyBytes caps a browse request body.
const maxBodyBytes = 1 << 20

func respond(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "encoding response", slog.Any("error", err))
	}
}

// validatable is a request body that can check itself after decoding.
type validatable interface {
	Validate() error
}

// readBody decodes and validates the JSON body into dst. On failure the
// problem response has already been written and readBody returns false.
func readBody(w http.ResponseWriter, r *http.Request, dst validatable) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	err := dec.Decode(dst)
	if err != nil {
		err = domain.NewValidationError("body", "invalid JSON")
	} else {
		err = dst.Validate()
	}
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}
