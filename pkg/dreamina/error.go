package dreamina

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// maxErrorBodyRunes caps how much of a non-JSON error body is reported.
const maxErrorBodyRunes = 500

// ErrUnexpectedResponse is returned when a 2xx generation response does not
// carry a usable "data" list.
var ErrUnexpectedResponse = errors.New("dreamina: unexpected response format")

// Error represents a non-2xx answer from the gateway or an image host.
type Error struct {
	// HTTPStatus is the HTTP status code.
	HTTPStatus int `json:"http_status"`

	// Detail is the decoded JSON error body, nil if the body was not JSON.
	Detail any `json:"detail,omitempty"`

	// Body is the raw response body.
	Body string `json:"body,omitempty"`

	// RequestID is the X-Request-Id sent with the request, if any.
	RequestID string `json:"request_id,omitempty"`
}

func newError(status int, body []byte, requestID string) *Error {
	e := &Error{
		HTTPStatus: status,
		Body:       string(body),
		RequestID:  requestID,
	}
	var detail any
	if err := json.Unmarshal(body, &detail); err == nil {
		e.Detail = detail
	}
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("dreamina: HTTP %d %s", e.HTTPStatus, http.StatusText(e.HTTPStatus))
	if m := e.Message(); m != "" {
		msg += ": " + m
	}
	return msg
}

// Message returns the human readable message of a JSON error body, looking
// at the shapes gateways commonly use: {"error":{"message":...}},
// {"error":"..."}, {"message":"..."} and {"detail":"..."}.
func (e *Error) Message() string {
	obj, ok := e.Detail.(map[string]any)
	if !ok {
		return ""
	}
	if inner, ok := obj["error"].(map[string]any); ok {
		if m, ok := inner["message"].(string); ok {
			return m
		}
	}
	for _, key := range []string{"error", "message", "msg", "detail"} {
		if m, ok := obj[key].(string); ok && m != "" {
			return m
		}
	}
	return ""
}

// DetailText returns the JSON error body pretty-printed, or the first 500
// characters of a non-JSON body.
func (e *Error) DetailText() string {
	if e.Detail != nil {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(e.Detail); err == nil {
			return strings.TrimRight(buf.String(), "\n")
		}
	}
	return truncateRunes(e.Body, maxErrorBodyRunes)
}

// IsUnauthorized returns true if the gateway rejected the session token.
func (e *Error) IsUnauthorized() bool {
	return e.HTTPStatus == http.StatusUnauthorized || e.HTTPStatus == http.StatusForbidden
}

// IsRateLimit returns true if this is a rate limit error.
func (e *Error) IsRateLimit() bool {
	return e.HTTPStatus == http.StatusTooManyRequests
}

// IsServerError returns true if this is a server-side error.
func (e *Error) IsServerError() bool {
	return e.HTTPStatus >= 500
}

// AsError extracts *Error from an error.
//
// Example:
//
//	if e, ok := dreamina.AsError(err); ok {
//	    if e.IsUnauthorized() {
//	        // session expired
//	    }
//	}
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsTimeout reports whether err is the result of a timeout, either the
// context deadline or a transport-level one.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
