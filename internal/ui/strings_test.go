package ui

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"fits", "Tolstoy", 10, "Tolstoy"},
		{"trimmed", "  Tolstoy  ", 10, "Tolstoy"},
		{"ellipsis", "War and Peace", 8, "War a..."},
		{"tiny_limit", "War and Peace", 3, "War"},
		{"no_limit", "War and Peace", 0, "War and Peace"},
		{"runes", "Анна Каренина", 7, "Анна..."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := truncate(tc.in, tc.limit); got != tc.want {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
			}
		})
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("  ", 10); got != "" {
		t.Fatalf("truncateMiddle blank = %q, want empty", got)
	}
	if got := truncateMiddle("abcdefgh", 4); got != "abcd" {
		t.Fatalf("truncateMiddle small limit = %q, want abcd", got)
	}
	got := truncateMiddle("http://library.example.com:8005", 12)
	if got != "http:…m:8005" {
		t.Fatalf("truncateMiddle = %q, want %q", got, "http:…m:8005")
	}
	if n := len([]rune(got)); n != 12 {
		t.Fatalf("got %q (%d runes), want 12", got, n)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("User", 8); got != "User    " {
		t.Fatalf("padRight = %q, want %q", got, "User    ")
	}
	if got := padRight("Password", 4); got != "Password" {
		t.Fatalf("padRight longer = %q, want unchanged", got)
	}
}
