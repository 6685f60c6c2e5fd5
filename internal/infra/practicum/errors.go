package practicum

import "fmt"

// APIRequestError reports a non-200 reply from the homework status API.
// Body carries the server-supplied error text, if any.
type APIRequestError struct {
	StatusCode int
	Body       string
}

func (e *APIRequestError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API request failed: http status %d", e.StatusCode)
	}
	return fmt.Sprintf("API request failed: http status %d: %s", e.StatusCode, e.Body)
}

// ConnectionError reports a transport-level failure reaching the endpoint.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to %s failed: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// DecodeError reports a response body that could not be decoded as JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("API response is not valid JSON: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
