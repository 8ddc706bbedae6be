package client

import "fmt"

// TransientFetchError marks a failure worth retrying: the network was
// unreachable or the server answered 5xx. Anything else (404, malformed
// payload) is permanent and surfaces as-is.
type TransientFetchError struct {
	Path string
	Err  error
}

func (e *TransientFetchError) Error() string {
	return fmt.Sprintf("transient fetch of %s: %v", e.Path, e.Err)
}

func (e *TransientFetchError) Unwrap() error { return e.Err }
