package hinfo

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	errRequestLineBudget = newHTTPError("protocol", "request line budget exceeded")
)

// httpError separates client-caused protocol errors, which yield an error
// response, from communication errors, which end the server.
type httpError struct {
	Group string
	Err   error
}

func wrapHTTPError(group string, err error) error {
	return &httpError{
		Group: group,
		Err:   err,
	}
}

func newHTTPError(group string, str string) error {
	return &httpError{
		Group: group,
		Err:   errors.New(str),
	}
}

func (e *httpError) Error() string {
	if e.Group == "" {
		return fmt.Sprintf("%v", e.Err)
	}
	return fmt.Sprintf("%s error: %v", e.Group, e.Err)
}

func (e *httpError) Unwrap() error {
	return e.Err
}

func isProtocolError(err error) bool {
	if e, ok := errors.Cause(err).(*httpError); ok {
		return e.Group == "protocol"
	}
	return false
}
