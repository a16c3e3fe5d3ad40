package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// OrganizationDraftRequest asks the AI to draft a company profile.
// Either text or url must be provided.
type OrganizationDraftRequest struct {
	Text string `json:"text" binding:"max=20000"`
	URL  string `json:"url" binding:"omitempty,httpurl"`
}

// OrganizationDraft is the parsed AI output; name and industry are mandatory
type OrganizationDraft struct {
	Name          string `json:"name"`
	Industry      string `json:"industry"`
	Description   string `json:"description,omitempty"`
	Location      string `json:"location,omitempty"`
	Website       string `json:"website,omitempty"`
	EmployeeCount *int   `json:"employeeCount,omitempty"`
	Appeal        string `json:"appeal,omitempty"`
}

// UnmarshalJSON tolerates model output where employeeCount is a string such
// as "約120名" or "". Anything without digits becomes nil.
func (d *OrganizationDraft) UnmarshalJSON(data []byte) error {
	type alias OrganizationDraft
	aux := struct {
		*alias
		EmployeeCount json.RawMessage `json:"employeeCount"`
	}{alias: (*alias)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.EmployeeCount = parseCount(aux.EmployeeCount)
	return nil
}

func parseCount(raw json.RawMessage) *int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		v := int(n)
		return &v
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	start := strings.IndexAny(s, "0123456789")
	if start < 0 {
		return nil
	}
	end := start
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	v, err := strconv.Atoi(s[start:end])
	if err != nil {
		return nil
	}
	return &v
}

// JobDraftRequest asks the AI to draft a posting
type JobDraftRequest struct {
	Title          string     `json:"title" binding:"required,max=200"`
	OrganizationID *uuid.UUID `json:"organizationId"`
	Notes          string     `json:"notes" binding:"max=8000"`
	Type           string     `json:"type" binding:"omitempty,oneof=job quest"`
}

// JobDraft is the parsed AI output for a posting; description is mandatory
type JobDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category,omitempty"`
	RJPPositive []string `json:"rjpPositive"`
	RJPNegative []string `json:"rjpNegative"`
}

// RecommendationPreviewRequest previews AI reasons without persisting
type RecommendationPreviewRequest struct {
	Values []string `json:"values" binding:"required,min=1,max=10,dive,min=1,max=50"`
}
