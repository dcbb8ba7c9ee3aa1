// Package job implements the Anti-Corruption Layer translators for the
// marketplace API's job-listing resources.
package job

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// JobDTO matches a job document as returned by the listing endpoint.
// Documents created through older forms carry the budget as a string, so
// Budget accepts either representation.
type JobDTO struct {
	ID          string  `json:"_id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Budget      FlexInt `json:"budget"`
	Deadline    string  `json:"deadline"`
	Email       string  `json:"email,omitempty"`
	PostedBy    string  `json:"postedBy,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

// JobListResponseDTO matches the listing endpoint's page envelope.
// TotalPages is omitted by some deployments and derived by the translator.
type JobListResponseDTO struct {
	Jobs       []JobDTO `json:"jobs"`
	Total      int      `json:"total"`
	TotalPages int      `json:"totalPages,omitempty"`
}

// FlexInt decodes a JSON number or a numeric JSON string into an int.
// null and "" decode to zero.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*f = 0
			return nil
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("budget %s is not a number", data)
	}
	*f = FlexInt(int(v))
	return nil
}
