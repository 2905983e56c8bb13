package wiki

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// Sentinel errors for conditions callers branch on.
var (
	ErrNotFound = errors.New("page not found")
	ErrAuth     = errors.New("authentication failed")
)

// RemoteError is a non-success response from the wiki store. The status
// code and the store's own message are preserved verbatim so callers can
// surface them without translation.
type RemoteError struct {
	StatusCode int
	Message    string
	Op         string
}

func (e *RemoteError) Error() string {
	switch {
	case e.StatusCode == 0:
		return fmt.Sprintf("wiki %s: %s", e.Op, e.Message)
	case e.Message == "":
		return fmt.Sprintf("wiki %s: remote returned %d", e.Op, e.StatusCode)
	default:
		return fmt.Sprintf("wiki %s: remote returned %d: %s", e.Op, e.StatusCode, e.Message)
	}
}

// Unwrap maps auth and not-found statuses onto the sentinels so
// errors.Is works across the taxonomy.
func (e *RemoteError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuth
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// remoteError builds a *RemoteError from a response body. The error JSON
// shape varies between store versions ("message" at the top level, or
// nested under "data"), so the fields are probed rather than unmarshalled
// into a fixed struct.
func remoteError(op string, status int, body []byte) *RemoteError {
	msg := gjson.GetBytes(body, "message").String()
	if msg == "" {
		msg = gjson.GetBytes(body, "data.message").String()
	}
	if msg == "" {
		msg = gjson.GetBytes(body, "data.errors.0.message.translation").String()
	}
	return &RemoteError{StatusCode: status, Message: msg, Op: op}
}
