package hubspot

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a non-2xx response from HubSpot.
type APIError struct {
	StatusCode    int    `json:"-"`
	Status        string `json:"status"`
	Category      string `json:"category"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("hubspot api status %d", e.StatusCode)
	}
	return fmt.Sprintf("hubspot api status %d: %s", e.StatusCode, e.Message)
}

// newAPIError decodes HubSpot's error body, falling back to the raw text
// when it is not the usual JSON shape.
func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}
