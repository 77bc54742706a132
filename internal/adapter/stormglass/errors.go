package stormglass

import "fmt"

// ClientRequestError reports a failure to reach StormGlass or to read its
// response: network errors, timeouts, cancelled contexts, undecodable bodies.
type ClientRequestError struct {
	Err error
}

func (e *ClientRequestError) Error() string {
	return "unexpected error when trying to communicate to StormGlass: " + e.Err.Error()
}

func (e *ClientRequestError) Unwrap() error { return e.Err }

// ResponseError reports a non-2xx status returned by StormGlass.
type ResponseError struct {
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("unexpected error returned by the StormGlass service: status %d: %s", e.StatusCode, e.Body)
}
