// Package library provides an HTTP client for the library REST API.
//
// # Overview
//
// The API exposes a token exchange endpoint and two read endpoints:
//
//   - POST /api-token-auth/: {"username","password"} → {"token"}
//   - GET /api/authors/: array of Author
//   - GET /api/books/: array of Book
//
// List requests carry "Authorization: Token <token>" only when a token is
// known; an empty token issues an anonymous request, which the server may
// answer with 401.
//
// # Errors
//
// Authenticate fails with *AuthError, the list calls with *FetchError. Both
// wrap the underlying cause and expose the HTTP status when one was received.
// Connection failures and server rejections share the same type per
// operation, so callers handle a single error path:
//
//	token, err := client.Authenticate(ctx, user, pass)
//	var authErr *library.AuthError
//	if errors.As(err, &authErr) {
//		// show the login failure
//	}
//
// # Request Handling
//
// Every request sets Accept, User-Agent and a fresh X-Request-ID. The client
// never retries and sets no timeout of its own; deadlines come from the
// caller's context.
//
// # Thread Safety
//
// Client is safe for concurrent use. Authors and books are usually fetched
// in parallel.
package library
