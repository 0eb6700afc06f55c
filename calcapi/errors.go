package calcapi

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// GenericErrorMessage is shown when a failed call carries no message of its own.
const GenericErrorMessage = "Calculation failed"

var ErrResponseTooLarge = fmt.Errorf("response larger than %d bytes", maxBodySize)

// APIError is a failed call to the calculator service: a non-2xx status
// (Status set, Message from the body when present) or a transport
// failure (Err set).
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	switch {
	case e.Err != nil && e.Status == 0:
		return fmt.Sprintf("calculator service unreachable: %v", e.Err)
	case e.Err != nil:
		return fmt.Sprintf("calculator service returned %d: %v", e.Status, e.Err)
	case e.Message != "":
		return fmt.Sprintf("calculator service returned %d: %s", e.Status, e.Message)
	default:
		return fmt.Sprintf("calculator service returned %d", e.Status)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}
	if gjson.ValidBytes(body) {
		apiErr.Message = gjson.GetBytes(body, "message").String()
	}
	return apiErr
}

// UserMessage picks the text for the error slot: the service's own
// message when it sent one, otherwise GenericErrorMessage.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return GenericErrorMessage
}
