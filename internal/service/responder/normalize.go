package responder

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sandevgo/saori/internal/core"
)

// Normalize decodes a request body. A body that is not a JSON object is
// core.ErrInvalidInput; a missing, non-string or blank message is
// core.ErrMissingField.
func Normalize(body []byte) (core.Request, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return core.Request{}, fmt.Errorf("decode body: %w", core.ErrInvalidInput)
	}

	var req core.Request
	raw, ok := fields["message"]
	if !ok || json.Unmarshal(raw, &req.Message) != nil {
		return core.Request{}, fmt.Errorf("message: %w", core.ErrMissingField)
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return core.Request{}, fmt.Errorf("message: %w", core.ErrMissingField)
	}

	req.Mode = core.ModeQuick
	if raw, ok := fields["mode"]; ok {
		var mode string
		if json.Unmarshal(raw, &mode) == nil && strings.TrimSpace(mode) != "" {
			req.Mode = strings.ToLower(strings.TrimSpace(mode))
		}
	}

	if raw, ok := fields["user_id"]; ok {
		var userID string
		if json.Unmarshal(raw, &userID) == nil {
			req.UserID = strings.TrimSpace(userID)
		}
	}

	return req, nil
}
