// Package httputil provides the HTTP plumbing shared by upstream clients.
//
//   - [NewClient]: an *http.Client with mandev's timeout and User-Agent
//   - [Retry]: retry with exponential backoff for transient failures
//
// Only errors wrapped in [RetryableError] are retried, so callers decide
// which failures are transient (transport errors, 5xx) and which are final
// (404).
package httputil
