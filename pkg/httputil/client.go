package httputil

import (
	"net/http"
	"time"

	"github.com/matzehuels/mandev/pkg/buildinfo"
)

// DefaultTimeout bounds every upstream request.
const DefaultTimeout = 10 * time.Second

// UserAgent identifies mandev to upstream services.
func UserAgent() string {
	return "mandev/" + buildinfo.Version
}

// NewClient returns an HTTP client with the given timeout, or
// [DefaultTimeout] when timeout is not positive.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
