// errors.go
// ---------
// Every failure mode of the client collapses to one APIError shape, so
// resource services and UI callers only ever handle a single error type.
//
// Three constructors cover the taxonomy:
// - newServerError:  backend responded with a non-2xx status
// - newNetworkError: request was sent but no response arrived
// - newRequestError: the request could not even be built or sent
package watchparty

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes attached to APIError for failures that never reached the
// backend, plus the auth code the backend uses for expired sessions.
const (
	CodeNetworkError = "NETWORK_ERROR"
	CodeTimeout      = "TIMEOUT"
	CodeRequestError = "REQUEST_ERROR"
)

// APIError is the normalized error surfaced by every client operation.
type APIError struct {
	Message string              `json:"message"`
	Status  int                 `json:"status"`
	Code    string              `json:"code,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (status %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// IsAuthError reports whether the backend rejected the credentials.
func (e *APIError) IsAuthError() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// IsNotFound reports whether the resource does not exist.
func (e *APIError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// IsServerError reports whether the backend failed with a 5xx status.
func (e *APIError) IsServerError() bool {
	return e.Status >= 500 && e.Status < 600
}

// Temporary reports whether retrying the same call could succeed: the
// request never got a response, timed out, or hit a 5xx.
func (e *APIError) Temporary() bool {
	if e.Code == CodeNetworkError || e.Code == CodeTimeout {
		return true
	}
	return e.IsServerError()
}

// serverErrorBody is the error envelope the backend returns. Field-level
// validation errors arrive under "errors".
type serverErrorBody struct {
	Message string              `json:"message"`
	Detail  string              `json:"detail"`
	Code    string              `json:"code"`
	Errors  map[string][]string `json:"errors"`
}

// newServerError builds an APIError from a non-2xx response body. Message
// precedence is message, then detail, then a generic fallback.
func newServerError(status int, body []byte) *APIError {
	var parsed serverErrorBody
	_ = json.Unmarshal(body, &parsed)

	msg := parsed.Message
	if msg == "" {
		msg = parsed.Detail
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", status)
	}

	return &APIError{
		Message: msg,
		Status:  status,
		Code:    parsed.Code,
		Errors:  parsed.Errors,
	}
}

// newNetworkError covers requests that were sent but never answered.
// timeout selects the TIMEOUT code over the generic NETWORK_ERROR.
func newNetworkError(err error, timeout bool) *APIError {
	code := CodeNetworkError
	if timeout {
		code = CodeTimeout
	}
	return &APIError{
		Message: err.Error(),
		Status:  0,
		Code:    code,
	}
}

// newRequestError covers requests that could not be constructed or sent at
// all (bad URL, marshal failure, interceptor failure).
func newRequestError(err error) *APIError {
	return &APIError{
		Message: err.Error(),
		Status:  0,
		Code:    CodeRequestError,
	}
}

// AsAPIError extracts the normalized error from err, or wraps err as a
// request-setup error if it is something else entirely.
func AsAPIError(err error) *APIError {
	if err == nil {
		return nil
	}
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}
	return newRequestError(err)
}
