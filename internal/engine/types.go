package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Comment is one record of the comment list. Records are read-only once loaded.
type Comment struct {
	ID     int    `json:"id"     yaml:"id"`
	PostID int    `json:"postId" yaml:"postId"`
	Name   string `json:"name"   yaml:"name"`
	Email  string `json:"email"  yaml:"email"`
	Body   string `json:"body"   yaml:"body"`
}

// User is a member of the users collection. Only the first user is shown, as
// the signed-in user in the dashboard header.
type User struct {
	ID       int    `json:"id"       yaml:"id"`
	Name     string `json:"name"     yaml:"name"`
	Username string `json:"username" yaml:"username"`
	Email    string `json:"email"    yaml:"email"`
	Phone    string `json:"phone"    yaml:"phone"`
	Website  string `json:"website"  yaml:"website"`
}

// maxInitials is the number of letters kept by Initials.
const maxInitials = 2

// Initials returns the upper-cased first letters of the first two words in
// name, or "U" when name is empty.
func Initials(name string) string {
	if strings.TrimSpace(name) == "" {
		return "U"
	}

	var sb strings.Builder
	count := 0
	for _, word := range strings.Split(name, " ") {
		if count == maxInitials {
			break
		}
		r, _ := utf8.DecodeRuneInString(word)
		if r == utf8.RuneError {
			continue
		}
		sb.WriteRune(unicode.ToUpper(r))
		count++
	}

	if sb.Len() == 0 {
		return "U"
	}
	return sb.String()
}
