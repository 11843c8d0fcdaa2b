// Package logtail reads the tail of shelf's JSON log file for display in the
// TUI.
//
// Read keeps a ring buffer of maxLines while scanning the file once, so memory
// stays O(maxLines) regardless of file size. Tail decodes each line into an
// Entry; lines that are not JSON are kept verbatim in Entry.Raw.
//
// A missing file yields no lines and no error.
package logtail
