// Package config loads shelf's settings.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/shelf/config.toml
//  3. If the file doesn't exist, use defaults
//  4. Apply SHELF_API_BASE and SHELF_LANGUAGE from the environment
//
// cmd/shelf loads a .env file from the working directory before Load runs,
// so the overrides can live there too.
//
// # TOML Format
//
//	api_base = "127.0.0.1:8005"
//	session_file = "~/.config/shelf/session.toml"
//	log_file = "~/.local/state/shelf/shelf.log"
//	log_level = "info"
//	language = "en"
//
// Every field is optional. Paths get tilde expansion and are made absolute.
// Missing config files are not an error.
package config
