package library

import "fmt"

// Resource names a collection endpoint.
type Resource string

const (
	ResourceAuthors Resource = "authors"
	ResourceBooks   Resource = "books"
)

// AuthError reports a failed token exchange. Rejected credentials and
// transport failures are not distinguished.
type AuthError struct {
	Status int // zero when no response was received
	Err    error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authenticate: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// FetchError reports a failed collection listing.
type FetchError struct {
	Resource Resource
	Status   int // zero when no response was received
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("list %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
