package library

import (
	"slices"
	"strconv"
	"strings"
)

// Author mirrors an entry of GET /api/authors/.
type Author struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	BirthdayYear int    `json:"birthday_year"`
}

// FullName joins first and last name, falling back to the id.
func (a Author) FullName() string {
	name := strings.TrimSpace(strings.TrimSpace(a.FirstName) + " " + strings.TrimSpace(a.LastName))
	if name == "" {
		return "#" + strconv.FormatInt(a.ID, 10)
	}
	return name
}

// Book mirrors an entry of GET /api/books/. Authors holds author ids.
type Book struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Authors []int64 `json:"authors"`
}

// HasAuthor reports whether the book references the author id.
func (b Book) HasAuthor(id int64) bool {
	return slices.Contains(b.Authors, id)
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}
