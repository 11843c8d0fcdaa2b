// Package app is the composition root for shelf.
//
// # Overview
//
// Run wires configuration, logging, the session store, the API client, the
// state controller and the UI, then blocks in the UI until the user quits or
// the context is cancelled.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()           Read config.toml and SHELF_* overrides
//	       ├─────> logging.New()           Open the JSON log file
//	       ├─────> prefs.Load()            Theme and last route
//	       ├─────> session.New()           Token slot on disk
//	       ├─────> library.NewClient()     HTTP client for the API
//	       ├─────> state.NewController()   Token, authors, books
//	       ├─────> StartPoller()           Optional periodic reload
//	       └─────> ui.Run()                Start TUI (blocks)
//
//	ui.Init
//	  └─> Controller.Start()   read token, load authors and books
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Config file present but unreadable or invalid
//   - Log file cannot be opened
//   - API base cannot be parsed
//
// Recoverable errors (logged, the UI keeps running):
//   - Unreadable prefs or session file
//   - Failed fetches; the previous collection stays on screen
//   - Failed token writes; the in-memory session still changes
package app
