package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"moviecat/internal/catalog"
	"moviecat/internal/library"
	"moviecat/internal/services"
)

const menuTitle = "My Movies Database"

type menuEntry struct {
	key    string
	label  string
	action func(ctx context.Context) error
}

// menu is the interactive numbered loop. It keeps running until the user
// picks 0 or input ends.
type menu struct {
	svc      *library.Service
	in       *bufio.Reader
	out      io.Writer
	colorize bool
	running  bool
	entries  []menuEntry
}

func newMenu(svc *library.Service, in io.Reader, out io.Writer) *menu {
	m := &menu{
		svc:      svc,
		in:       bufio.NewReader(in),
		out:      out,
		colorize: shouldColorize(out),
	}
	m.entries = []menuEntry{
		{key: "1", label: "List movies", action: m.listMovies},
		{key: "2", label: "Add movie", action: m.addMovie},
		{key: "3", label: "Delete movie", action: m.deleteMovie},
		{key: "4", label: "Update movie", action: m.updateMovie},
		{key: "5", label: "Stats", action: m.showStats},
		{key: "6", label: "Random movie", action: m.randomMovie},
		{key: "7", label: "Search movie", action: m.searchMovie},
		{key: "8", label: "Movies sorted by rating", action: m.sortedMovies},
		{key: "9", label: "Generate website", action: m.generateWebsite},
	}
	return m
}

func (m *menu) run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	for _, line := range renderSectionHeader(menuTitle, m.colorize) {
		fmt.Fprintln(m.out, line)
	}

	m.running = true
	for m.running {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.printMenu()
		choice, err := m.prompt(fmt.Sprintf("Enter choice (0-%d): ", len(m.entries)))
		if err != nil {
			return m.stop(err)
		}
		if choice == "0" {
			m.running = false
			break
		}

		entry, ok := m.lookup(choice)
		if !ok {
			fmt.Fprintln(m.out, colorText("Invalid choice", ansiRed, m.colorize))
		} else if err := entry.action(ctx); err != nil {
			return m.stop(err)
		}

		fmt.Fprintln(m.out)
		if _, err := m.prompt("Press enter to continue"); err != nil {
			return m.stop(err)
		}
	}
	fmt.Fprintln(m.out, "Bye!")
	return nil
}

// stop ends the loop. Closed input is a normal exit.
func (m *menu) stop(err error) error {
	m.running = false
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(m.out)
		fmt.Fprintln(m.out, "Bye!")
		return nil
	}
	return err
}

func (m *menu) printMenu() {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "Menu:")
	fmt.Fprintln(m.out, "0. Exit")
	for _, entry := range m.entries {
		fmt.Fprintf(m.out, "%s. %s\n", entry.key, entry.label)
	}
	fmt.Fprintln(m.out)
}

func (m *menu) lookup(choice string) (menuEntry, bool) {
	for _, entry := range m.entries {
		if entry.key == choice {
			return entry, true
		}
	}
	return menuEntry{}, false
}

// prompt writes label and returns the next input line without its line
// ending. A final line without a newline is still returned; io.EOF is
// reported only once nothing is left.
func (m *menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (m *menu) fail(err error, title string) {
	fmt.Fprintln(m.out, colorText(describeError(err, title), ansiRed, m.colorize))
}

func (m *menu) success(message string) {
	fmt.Fprintln(m.out, colorText(message, ansiGreen, m.colorize))
}

func (m *menu) listMovies(ctx context.Context) error {
	movies, err := m.svc.List(ctx)
	if err != nil {
		m.fail(err, "")
		return nil
	}
	fmt.Fprintln(m.out)
	printMovieList(m.out, movies)
	return nil
}

func (m *menu) addMovie(ctx context.Context) error {
	fmt.Fprintln(m.out)
	title, err := m.prompt("Enter new movie name: ")
	if err != nil {
		return err
	}

	if m.svc.LookupEnabled() {
		movie, err := m.svc.Add(ctx, title)
		if err != nil {
			m.fail(err, title)
			return nil
		}
		m.success(fmt.Sprintf("Movie '%s' added successfully.", movie.Title))
		return nil
	}

	if err := catalog.ValidateTitle(title); err != nil {
		m.fail(err, title)
		return nil
	}
	exists, err := m.svc.Exists(ctx, title)
	if err != nil {
		m.fail(err, title)
		return nil
	}
	if exists {
		m.fail(services.ErrDuplicate, title)
		return nil
	}
	year, err := m.promptYear()
	if err != nil {
		return err
	}
	rating, err := m.promptRating(func(input string) string {
		return fmt.Sprintf("Rating %s is invalid.", input)
	})
	if err != nil {
		return err
	}
	movie, err := m.svc.AddManual(ctx, catalog.Movie{Title: strings.TrimSpace(title), Year: year, Rating: rating})
	if err != nil {
		m.fail(err, title)
		return nil
	}
	m.success(fmt.Sprintf("Movie '%s' added successfully.", movie.Title))
	return nil
}

func (m *menu) promptYear() (int, error) {
	for {
		input, err := m.prompt("Enter new movie year: ")
		if err != nil {
			return 0, err
		}
		if year, ok := catalog.ParseYear(input); ok {
			return year, nil
		}
		fmt.Fprintf(m.out, "Year %s is invalid.\n", input)
	}
}

// promptRating re-asks until the input passes catalog.ValidateRating.
func (m *menu) promptRating(invalid func(input string) string) (float64, error) {
	for {
		input, err := m.prompt("Enter new movie rating (0-10): ")
		if err != nil {
			return 0, err
		}
		if rating, ok := catalog.ParseRating(input); ok {
			return rating, nil
		}
		fmt.Fprintln(m.out, invalid(input))
	}
}

func (m *menu) deleteMovie(ctx context.Context) error {
	fmt.Fprintln(m.out)
	title, err := m.prompt("Enter movie name to delete: ")
	if err != nil {
		return err
	}
	if err := m.svc.Delete(ctx, title); err != nil {
		m.notFound(ctx, err, title)
		return nil
	}
	m.success(fmt.Sprintf("Movie '%s' deleted successfully.", title))
	return nil
}

func (m *menu) updateMovie(ctx context.Context) error {
	fmt.Fprintln(m.out)
	title, err := m.prompt("Enter movie name: ")
	if err != nil {
		return err
	}
	exists, err := m.svc.Exists(ctx, title)
	if err != nil {
		m.fail(err, title)
		return nil
	}
	if !exists {
		m.notFound(ctx, services.ErrNotFound, title)
		return nil
	}
	rating, err := m.promptRating(func(string) string {
		return "Please enter a valid rating"
	})
	if err != nil {
		return err
	}
	if err := m.svc.UpdateRating(ctx, title, rating); err != nil {
		m.fail(err, title)
		return nil
	}
	m.success(fmt.Sprintf("Movie %s successfully updated", title))
	return nil
}

// notFound reports err and, for missing titles, offers close matches.
func (m *menu) notFound(ctx context.Context, err error, title string) {
	m.fail(err, title)
	if !errors.Is(err, services.ErrNotFound) {
		return
	}
	suggestions, suggestErr := m.svc.Suggest(ctx, title)
	if suggestErr == nil {
		if line := suggestionLine(suggestions); line != "" {
			fmt.Fprintln(m.out, line)
		}
	}
}

func (m *menu) showStats(ctx context.Context) error {
	stats, err := m.svc.Stats(ctx)
	if err != nil {
		m.fail(err, "")
		return nil
	}
	fmt.Fprintln(m.out)
	printStats(m.out, stats)
	return nil
}

func (m *menu) randomMovie(ctx context.Context) error {
	movie, err := m.svc.Random(ctx)
	if err != nil {
		m.fail(err, "")
		return nil
	}
	fmt.Fprintln(m.out, randomLine(movie))
	return nil
}

func (m *menu) searchMovie(ctx context.Context) error {
	fmt.Fprintln(m.out)
	query, err := m.prompt("Enter part of movie name: ")
	if err != nil {
		return err
	}
	matches, err := m.svc.Search(ctx, query)
	if err != nil {
		m.fail(err, "")
		return nil
	}
	if len(matches) == 0 {
		fmt.Fprintf(m.out, "No movies match %q.\n", query)
		return nil
	}
	for _, movie := range matches {
		fmt.Fprintf(m.out, "%s (%d), %s\n", movie.Title, movie.Year, catalog.FormatRating(movie.Rating))
	}
	return nil
}

func (m *menu) sortedMovies(ctx context.Context) error {
	movies, err := m.svc.Sorted(ctx)
	if err != nil {
		m.fail(err, "")
		return nil
	}
	fmt.Fprintln(m.out)
	printMovieLines(m.out, movies)
	return nil
}

func (m *menu) generateWebsite(ctx context.Context) error {
	path, err := m.svc.GenerateWebsite(ctx)
	if err != nil {
		m.fail(err, "")
		return nil
	}
	m.success("Website was generated successfully.")
	fmt.Fprintln(m.out, path)
	return nil
}
