// Package state owns the application state: the session token and the
// last successfully fetched authors and books.
//
// # Overview
//
// Controller is the single writer. Views never mutate state; they call
// Login, Logout, SetToken or Refresh and read copies through Snapshot.
//
//	Login ──> Authenticate ──> SetToken ──> persist ──> token ──> Refresh
//	                                                              ├─> ListAuthors ─> apply (epoch check)
//	                                                              └─> ListBooks   ─> apply (epoch check)
//
// # Refresh Semantics
//
// Each refresh starts a new epoch and fetches both collections in parallel.
// A result is applied only if its epoch is still current, so a slow
// response for an old token never overwrites data loaded for a newer one.
// Each collection updates on its own as soon as it resolves. A failed fetch
// is logged and recorded on the snapshot; the previous collection stays
// visible. Nothing retries.
//
// Every SetToken call refreshes, including repeated calls with the same
// token, and Start refreshes even when no token was persisted.
//
// # Concurrency
//
// A sync.RWMutex guards the state and is never held across network I/O.
// Snapshot returns deep copies so callers may keep or modify them freely.
package state
