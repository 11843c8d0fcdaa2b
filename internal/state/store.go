package state

import (
	"time"

	"github.com/five82/shelf/internal/library"
)

// Snapshot is a copy of the application state handed to views.
type Snapshot struct {
	Token   string
	Authors []library.Author
	Books   []library.Book

	// Epoch identifies the refresh whose results are current.
	Epoch       uint64
	Loading     bool
	LastUpdated time.Time

	// Failures of the latest fetch per collection; the previous
	// collection stays in place when set.
	AuthorsErr error
	BooksErr   error
}

// IsAuthenticated reports whether a token is held.
func (s Snapshot) IsAuthenticated() bool {
	return s.Token != ""
}

// LastError returns the first recorded fetch failure, if any.
func (s Snapshot) LastError() error {
	if s.AuthorsErr != nil {
		return s.AuthorsErr
	}
	return s.BooksErr
}

func (s Snapshot) clone() Snapshot {
	dup := s
	dup.Authors = cloneAuthors(s.Authors)
	dup.Books = cloneBooks(s.Books)
	return dup
}

func cloneAuthors(items []library.Author) []library.Author {
	if items == nil {
		return nil
	}
	dup := make([]library.Author, len(items))
	copy(dup, items)
	return dup
}

func cloneBooks(items []library.Book) []library.Book {
	if items == nil {
		return nil
	}
	dup := make([]library.Book, len(items))
	for i, b := range items {
		dup[i] = b
		dup[i].Authors = append([]int64(nil), b.Authors...)
	}
	return dup
}
