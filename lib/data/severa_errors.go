package data

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// AuthFailure is returned when the Severa credential exchange fails.
// StatusCode is zero when the exchange never got a response.
type AuthFailure struct {
	StatusCode int
	StatusText string
	Err        error
}

func (e *AuthFailure) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to get Severa access token: %d - %s", e.StatusCode, e.StatusText)
	}
	return fmt.Sprintf("failed to get Severa access token: %v", e.Err)
}

func (e *AuthFailure) Unwrap() error {
	return e.Err
}

// UpstreamFailure is returned when a Severa resource request answers with a non-2xx status
type UpstreamFailure struct {
	Resource   string
	StatusCode int
	StatusText string
}

func (e *UpstreamFailure) Error() string {
	return fmt.Sprintf("failed to fetch %s: %d - %s", e.Resource, e.StatusCode, e.StatusText)
}

// MalformedResponse is returned when a Severa payload lacks a field the mapping needs
type MalformedResponse struct {
	Resource string
	Index    int
	Field    string
	Err      error
}

func (e *MalformedResponse) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed upstream %s response: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("malformed upstream %s item %d: missing %q", e.Resource, e.Index, e.Field)
}

func (e *MalformedResponse) Unwrap() error {
	return e.Err
}

// statusText returns the reason phrase of a response, e.g. "Service Unavailable"
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
