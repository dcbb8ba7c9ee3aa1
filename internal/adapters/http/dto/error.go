package dto

import (
	"cmp"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/badhon18478/Marketplace-sub000/internal/domain"
	"github.com/badhon18478/Marketplace-sub000/internal/platform/logging"
)

// ProblemContentType is the media type of every error body.
const ProblemContentType = "application/problem+json"

// ErrorResponse is an RFC 9457 problem document.
type ErrorResponse struct {
	Type     string        `json:"type"`
	Title    string        `json:"title"`
	Status   int           `json:"status"`
	Detail   string        `json:"detail,omitempty"`
	Instance string        `json:"instance,omitempty"`
	Errors   []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail names one rejected input, e.g. "query.page".
type ErrorDetail struct {
	Location string `json:"location"`
	Message  string `json:"message"`
	Value    any    `json:"value,omitempty"`
}

var sentinelStatus = []struct {
	err    error
	status int
}{
	{domain.ErrValidation, http.StatusBadRequest},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrConflict, http.StatusConflict},
	{domain.ErrUnavailable, http.StatusBadGateway},
}

// StatusFor maps err to the HTTP status of its domain sentinel, or 500.
func StatusFor(err error) int {
	for _, s := range sentinelStatus {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

// NewProblem returns a problem for status about the request r.
func NewProblem(r *http.Request, status int, detail string) ErrorResponse {
	return ErrorResponse{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: r.RequestURI,
	}
}

// NewErrorResponse describes err as a problem. Validation errors list each
// rejected field, located in the body for POST and the query otherwise.
func NewErrorResponse(r *http.Request, err error) ErrorResponse {
	p := NewProblem(r, StatusFor(err), err.Error())

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		where := "query."
		if r.Method == http.MethodPost {
			where = "body."
		}
		for field, msg := range verr.Fields {
			p.Errors = append(p.Errors, ErrorDetail{Location: where + field, Message: msg})
		}
		slices.SortFunc(p.Errors, func(a, b ErrorDetail) int { return cmp.Compare(a.Location, b.Location) })
	}
	return p
}

// Write sends p with its status and the problem media type.
func (p ErrorResponse) Write(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", ProblemContentType)
	w.WriteHeader(p.Status)
	return json.NewEncoder(w).Encode(p)
}

// WriteErrorResponse writes err as a problem response. Encoding failures are
// logged with the request's logger.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	if encErr := NewErrorResponse(r, err).Write(w); encErr != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "encoding problem response",
			slog.Any("error", encErr))
	}
}
