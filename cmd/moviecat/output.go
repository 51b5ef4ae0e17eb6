package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"moviecat/internal/catalog"
	"moviecat/internal/metadata"
	"moviecat/internal/services"
)

const (
	bestLabel  = "Best movie(s): "
	worstLabel = "Worst movie(s): "
)

// userError carries a console-ready message while keeping the underlying
// error reachable through errors.Is.
type userError struct {
	message string
	err     error
}

func (e *userError) Error() string { return e.message }

func (e *userError) Unwrap() error { return e.err }

func newUserError(err error, title string) error {
	if err == nil {
		return nil
	}
	return &userError{message: describeError(err, title), err: err}
}

// describeError maps catalog errors onto the messages shown to the user.
func describeError(err error, title string) string {
	switch {
	case errors.Is(err, catalog.ErrEmptyCollection):
		return "There are no movies in the database."
	case errors.Is(err, metadata.ErrDisabled):
		return "Movie lookups are disabled; add the movie manually."
	case errors.Is(err, metadata.ErrNotFound):
		return fmt.Sprintf("The movie %s doesn't exist.", title)
	case errors.Is(err, services.ErrDuplicate):
		if stored, ok := catalog.DuplicateTitle(err); ok {
			title = stored
		}
		return fmt.Sprintf("Movie %s is already in your database!", title)
	case errors.Is(err, services.ErrNotFound):
		return fmt.Sprintf("Movie %s doesn't exist!", title)
	case errors.Is(err, services.ErrExternal):
		return "The movie service could not be reached. Check your internet connection and try again!"
	case errors.Is(err, catalog.ErrEmptyTitle):
		return "Movie name must not be empty."
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

func printMovieLines(w io.Writer, movies []catalog.Movie) {
	for _, movie := range movies {
		fmt.Fprintln(w, movie.String())
	}
}

func printMovieList(w io.Writer, movies []catalog.Movie) {
	fmt.Fprintf(w, "%d movie(s) in total\n", len(movies))
	printMovieLines(w, movies)
}

// printStats writes the statistics screen; continuation lines of the best
// and worst lists are indented under the first entry.
func printStats(w io.Writer, stats catalog.Stats) {
	fmt.Fprintf(w, "Average rating: %s\n", formatFigure(stats.Average))
	fmt.Fprintf(w, "Median rating: %s\n", formatFigure(stats.Median))
	printAligned(w, bestLabel, stats.Best)
	printAligned(w, worstLabel, stats.Worst)
}

func printAligned(w io.Writer, label string, movies []catalog.Movie) {
	pad := strings.Repeat(" ", len(label))
	for i, movie := range movies {
		prefix := pad
		if i == 0 {
			prefix = label
		}
		fmt.Fprintln(w, prefix+movie.String())
	}
}

// formatFigure rounds an average or median to two decimals.
func formatFigure(value float64) string {
	return catalog.FormatRating(math.Round(value*100) / 100)
}

func randomLine(movie catalog.Movie) string {
	return fmt.Sprintf("Your movie for tonight: %s (%d), it's rated %s", movie.Title, movie.Year, catalog.FormatRating(movie.Rating))
}

func suggestionLine(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	return "Did you mean: " + strings.Join(suggestions, ", ") + "?"
}
