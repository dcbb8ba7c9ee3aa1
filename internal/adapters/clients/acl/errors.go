// Package acl is the anti-corruption layer between the marketplace REST API
// and the domain. Resource translators live in subpackages (acl/job); the
// shared requester and error mapping live here.
package acl

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/badhon18478/Marketplace-sub000/internal/domain"
)

const maxErrorBodySize = 1 << 20 // 1 MB

// problemDetail covers the error bodies the marketplace API produces: RFC 7807
// documents and the {"message": ...} or {"error": ...} objects its handlers
// send.
type problemDetail struct {
	Detail  string        `json:"detail"`
	Message string        `json:"message"`
	Error   string        `json:"error"`
	Errors  []errorDetail `json:"errors"`
}

type errorDetail struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

func (pd problemDetail) text(status int) string {
	for _, s := range []string{pd.Detail, pd.Message, pd.Error} {
		if s != "" {
			return s
		}
	}
	return http.StatusText(status)
}

// statusSentinels maps downstream statuses onto domain errors. Every 5xx is
// ErrUnavailable.
var statusSentinels = map[int]error{
	http.StatusBadRequest:          domain.ErrValidation,
	http.StatusUnprocessableEntity: domain.ErrValidation,
	http.StatusUnauthorized:        domain.ErrForbidden,
	http.StatusForbidden:           domain.ErrForbidden,
	http.StatusNotFound:            domain.ErrNotFound,
	http.StatusConflict:            domain.ErrConflict,
}

// TranslateHTTPError maps a non-success response to a domain error wrapping
// one of the domain sentinels. A 400 or 422 with field errors becomes a
// *domain.ValidationError.
func TranslateHTTPError(resp *http.Response) error {
	pd := readProblem(resp)
	msg := pd.text(resp.StatusCode)

	sentinel, ok := statusSentinels[resp.StatusCode]
	if !ok && resp.StatusCode >= http.StatusInternalServerError {
		sentinel, ok = domain.ErrUnavailable, true
	}
	if !ok {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, msg)
	}

	if sentinel == domain.ErrValidation && len(pd.Errors) > 0 {
		return fieldErrors(pd.Errors)
	}
	return fmt.Errorf("%s: %w", msg, sentinel)
}

// readProblem decodes a JSON error body. Anything else yields the zero value.
func readProblem(resp *http.Response) problemDetail {
	var pd problemDetail
	if resp.Body == nil {
		return pd
	}

	mt, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || (mt != "application/json" && mt != "application/problem+json") {
		return pd
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil || json.Unmarshal(body, &pd) != nil {
		return problemDetail{}
	}
	return pd
}

// fieldErrors keys each message by its location minus the "body." or
// "query." prefix.
func fieldErrors(details []errorDetail) *domain.ValidationError {
	fields := make(map[string]string, len(details))
	for _, d := range details {
		field := strings.TrimPrefix(strings.TrimPrefix(d.Location, "body."), "query.")
		fields[field] = d.Message
	}
	return &domain.ValidationError{Fields: fields}
}
