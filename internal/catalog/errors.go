package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCollection is returned by operations that are undefined on zero
	// movies: mean, median, and random selection.
	ErrEmptyCollection = errors.New("there are no movies in the database")
	// ErrDuplicateTitle is returned when a title is already present.
	ErrDuplicateTitle = errors.New("duplicate movie title")
	// ErrEmptyTitle is returned for blank titles.
	ErrEmptyTitle = errors.New("movie name must not be empty")
)

// DuplicateError names the title that collided with a stored movie.
type DuplicateError struct {
	Title string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: %q", ErrDuplicateTitle, e.Title)
}

// Is lets errors.Is match ErrDuplicateTitle.
func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicateTitle
}

// DuplicateTitle returns the colliding title carried by err, if any.
func DuplicateTitle(err error) (string, bool) {
	var dup *DuplicateError
	if errors.As(err, &dup) {
		return dup.Title, true
	}
	return "", false
}
