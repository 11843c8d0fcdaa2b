// Package ui is the Bubble Tea front end for shelf.
//
// # Architecture Overview
//
// Model follows the Elm architecture: Init kicks off Controller.Start in a
// command, a periodic tick re-reads the controller snapshot, and key input is
// routed through overlays (alert, help, go-to prompt) before reaching the
// page. Fetches never run on the update loop; each one is wrapped in a
// tea.Cmd and reports back with a message.
//
// # Pages
//
// Pages are selected by URL-style paths resolved with the router package:
//
//   - /            Authors list; enter opens the selected author
//   - /books       Books list with author names
//   - /author/:id  Author detail with the books that reference the author
//   - /login       Username and password form
//   - /book        Redirects to /books
//   - anything else renders the 404 page
//
// A failed login raises a modal alert with the localized message. The alert
// swallows every key except enter and esc.
//
// # Key Bindings
//
//   - a/b/l: Authors, Books, Login
//   - o: Logout (when logged in)
//   - : go to any path, u or backspace to go back
//   - r: reload both collections
//   - L: tail of the log file (r re-reads it, esc closes)
//   - T: cycle theme, ?: help, q or ctrl+c: quit
package ui
