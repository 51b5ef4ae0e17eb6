package textutil

import (
	"strings"

	"golang.org/x/text/cases"
)

// TitleKey returns the case-folded, whitespace-trimmed form of a title. Two
// titles refer to the same movie when their keys are equal.
func TitleKey(title string) string {
	return cases.Fold().String(strings.TrimSpace(title))
}

// EqualFold reports whether two titles are equal under Unicode case folding.
func EqualFold(a, b string) bool {
	return TitleKey(a) == TitleKey(b)
}

// ContainsFold reports whether query occurs in title, ignoring case. An empty
// query matches every title.
func ContainsFold(title, query string) bool {
	folder := cases.Fold()
	return strings.Contains(folder.String(title), folder.String(query))
}
