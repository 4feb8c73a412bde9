// Package fetch downloads a single web page over HTTP.
//
// The fetcher performs exactly one GET request per call with a bounded
// timeout: no retries, no caching, no crawling. Responses are size-limited
// and decoded to UTF-8 based on the charset declared in the Content-Type
// header, so downstream analysis always operates on valid UTF-8 text.
//
// Failures are classified through sentinel errors so the CLI boundary can
// map them to exit codes: ErrInvalidURL for malformed input, ErrHTTPStatus
// for error responses. Plain transport failures are returned wrapped but
// unclassified.
package fetch
