package ai

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/ehimebase/babybase/internal/pkg/apperrors"
)

// StripCodeFence returns the JSON payload of a model reply. The first Markdown
// code block wins, wherever it starts. Without a fence, prose around the
// outermost object or array is dropped.
func StripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	start := strings.Index(s, "```")
	if start < 0 {
		return outermostJSON(s)
	}

	body := s[start+3:]
	if end := strings.Index(body, "```"); end >= 0 {
		body = body[:end]
	}
	// language tag such as ```json
	if nl := strings.IndexByte(body, '\n'); nl >= 0 && !strings.ContainsAny(body[:nl], "{[") {
		body = body[nl+1:]
	}
	return strings.TrimSpace(body)
}

func outermostJSON(s string) string {
	first := strings.IndexAny(s, "{[")
	if first <= 0 {
		return s
	}
	closing := byte('}')
	if s[first] == '[' {
		closing = ']'
	}
	last := strings.LastIndexByte(s, closing)
	if last < first {
		return s
	}
	return s[first : last+1]
}

// DecodeJSON strips fencing and unmarshals text into out.
// Any failure wraps apperrors.ErrAIParse.
func DecodeJSON(text string, out any) error {
	body := StripCodeFence(text)
	if body == "" {
		return fmt.Errorf("%w: empty response", apperrors.ErrAIParse)
	}
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrAIParse, err)
	}
	return nil
}

// RequireFields fails with ErrAIParse when any named field is blank
func RequireFields(fields map[string]string) error {
	var missing []string
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("%w: missing %s", apperrors.ErrAIParse, strings.Join(missing, ", "))
	}
	return nil
}
