package fetch

import "errors"

// Sentinel errors returned by the fetcher. The CLI layer uses errors.Is()
// against these to choose the process exit code, so error text here must
// stay stable and self-describing.
var (
	// ErrInvalidURL is returned when the target is not an absolute
	// http or https URL with a host.
	ErrInvalidURL = errors.New("invalid URL: must be an absolute http(s) URL")

	// ErrHTTPStatus is returned when the server answers with an error
	// status code (4xx or 5xx). The wrapped message carries the code.
	ErrHTTPStatus = errors.New("server returned an error status")
)
