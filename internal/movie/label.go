package movie

import (
	"strconv"
	"strings"
)

// Label renders a "Title (Year)" string, dropping the year when unknown.
func Label(title string, year int) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "untitled"
	}
	if year <= 0 {
		return title
	}
	return title + " (" + strconv.Itoa(year) + ")"
}
