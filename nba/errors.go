package nba

import "fmt"

// TransportError means the request never produced a 2xx response. StatusCode
// is 0 when the server could not be reached at all.
type TransportError struct {
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("nba: request to %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("nba: %s returned status %d: %s", e.URL, e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("nba: malformed json from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ShapeError means the payload did not hold a result set where one was asked for.
type ShapeError struct {
	Index  int
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("nba: no result set at index %d: %s", e.Index, e.Reason)
}

type PlayerNotFoundError struct {
	Name string
}

func (e *PlayerNotFoundError) Error() string {
	return fmt.Sprintf("nba: player %q not found", e.Name)
}
