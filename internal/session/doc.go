// Package session persists the API token between runs.
//
// The token lives in one TOML file (default ~/.config/shelf/session.toml,
// mode 0600) holding a single key:
//
//	token = "04d5489351c2e9694e27b1e51ba9f292e1737488"
//
// Read returns "" when the file does not exist, so a first run is simply
// unauthenticated. Write always overwrites; logging out writes the empty
// string rather than deleting the file. Tokens are opaque: no expiry and no
// shape checks happen here.
package session
