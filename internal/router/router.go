// Package router maps URL-style paths to views.
package router

import (
	"strconv"
	"strings"

	"github.com/five82/shelf/internal/library"
)

// View identifies a screen.
type View int

const (
	ViewNotFound View = iota
	ViewAuthors
	ViewBooks
	ViewAuthorDetail
	ViewLogin
)

func (v View) String() string {
	switch v {
	case ViewAuthors:
		return "Authors"
	case ViewBooks:
		return "Books"
	case ViewAuthorDetail:
		return "AuthorDetail"
	case ViewLogin:
		return "Login"
	default:
		return "NotFound"
	}
}

// Well-known paths.
const (
	PathAuthors = "/"
	PathBooks   = "/books"
	PathLogin   = "/login"

	legacyBookPath   = "/book"
	authorPathPrefix = "/author/"
)

// AuthorPath returns the detail path for an author id.
func AuthorPath(id int64) string {
	return authorPathPrefix + strconv.FormatInt(id, 10)
}

// Route is a resolved path.
type Route struct {
	View View
	// Path is the effective path after normalization and redirects.
	Path string
	// AuthorID is the raw :id segment for ViewAuthorDetail.
	AuthorID string
}

// Resolve maps a path to a route. Unknown paths resolve to ViewNotFound.
func Resolve(raw string) Route {
	path := Normalize(raw)

	switch path {
	case PathAuthors:
		return Route{View: ViewAuthors, Path: path}
	case PathBooks:
		return Route{View: ViewBooks, Path: path}
	case PathLogin:
		return Route{View: ViewLogin, Path: path}
	case legacyBookPath:
		return Route{View: ViewBooks, Path: PathBooks}
	}

	// /author/:id matches as a prefix; trailing segments are ignored.
	if rest, ok := strings.CutPrefix(path, authorPathPrefix); ok {
		id, _, _ := strings.Cut(rest, "/")
		if id != "" {
			return Route{View: ViewAuthorDetail, Path: path, AuthorID: id}
		}
	}
	return Route{View: ViewNotFound, Path: path}
}

// Normalize trims whitespace, drops query and fragment, forces a leading
// slash and removes a trailing slash (except for the root).
func Normalize(raw string) string {
	path := strings.TrimSpace(raw)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

// ParseAuthorID parses a route's :id segment.
func ParseAuthorID(id string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// BooksByAuthor returns the books referencing the author id, in input order.
// A non-numeric id matches nothing.
func BooksByAuthor(books []library.Book, id string) []library.Book {
	authorID, ok := ParseAuthorID(id)
	if !ok {
		return nil
	}
	var out []library.Book
	for _, b := range books {
		if b.HasAuthor(authorID) {
			out = append(out, b)
		}
	}
	return out
}

// FindAuthor looks up an author by raw id.
func FindAuthor(authors []library.Author, id string) (library.Author, bool) {
	authorID, ok := ParseAuthorID(id)
	if !ok {
		return library.Author{}, false
	}
	for _, a := range authors {
		if a.ID == authorID {
			return a, true
		}
	}
	return library.Author{}, false
}
