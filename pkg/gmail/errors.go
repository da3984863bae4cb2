package gmail

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// IntegrationError wraps a non-2xx response from the mail provider with
// the status and message it reported.
type IntegrationError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("gmail %s: provider returned %d: %s", e.Op, e.StatusCode, e.Message)
}

// wrapError converts a google API error into an IntegrationError. Other
// errors (transport, context cancellation) pass through wrapped.
func wrapError(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &IntegrationError{
			Op:         op,
			StatusCode: gerr.Code,
			Message:    gerr.Message,
		}
	}
	return fmt.Errorf("gmail %s: %w", op, err)
}
