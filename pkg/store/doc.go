// Package store looks up profile documents by username.
//
// [HTTPSource] asks the profile service (`GET <base>/api/profile/<user>`),
// caching answers and coalescing concurrent lookups of the same user.
// [DirSource] reads profile files from a directory for local development.
//
// Both report a missing profile as errors.ErrCodeNotFound and an
// unreachable or failing service as errors.ErrCodeUnavailable.
package store

import (
	"context"

	"github.com/matzehuels/mandev/pkg/profile"
)

// Entry is a fetched profile. Raw holds the upstream JSON bytes, which the
// JSON endpoint passes through unchanged.
type Entry struct {
	Raw      []byte
	Document *profile.Document
}

// Source resolves usernames to profiles. Implementations must be safe for
// concurrent use.
type Source interface {
	Fetch(ctx context.Context, username string) (*Entry, error)
}
