package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"moviecat/internal/catalog"
	"moviecat/internal/library"
	"moviecat/internal/metadata"
	"moviecat/internal/testsupport"
	"moviecat/internal/website"
)

func newTestMenu(t *testing.T, input string, provider *testsupport.StubProvider, movies ...catalog.Movie) (*menu, *bytes.Buffer) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	testsupport.Seed(t, st, movies...)

	site := website.Generator{Title: cfg.Website.Title, OutputDir: cfg.Website.OutputDir}
	var svc *library.Service
	if provider != nil {
		svc = library.New(st, provider, site)
	} else {
		svc = library.New(st, nil, site)
	}
	var out bytes.Buffer
	return newMenu(svc, strings.NewReader(input), &out), &out
}

func TestMenuInvalidChoiceThenExit(t *testing.T) {
	m, out := newTestMenu(t, "x\n\n0\n", nil)
	if err := m.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	requireContains(t, got, "********** My Movies Database **********")
	requireContains(t, got, "0. Exit")
	requireContains(t, got, "9. Generate website")
	requireContains(t, got, "Invalid choice")
	requireContains(t, got, "Press enter to continue")
	requireContains(t, got, "Bye!")
	if m.running {
		t.Fatal("expected menu to stop running")
	}
}

func TestMenuEndOfInputExits(t *testing.T) {
	m, out := newTestMenu(t, "1\n", nil)
	if err := m.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out.String(), "0 movie(s) in total")
	requireContains(t, out.String(), "Bye!")
}

func TestMenuManualAddReprompts(t *testing.T) {
	input := strings.Join([]string{
		"2", "The Matrix", "abc", "1999", "11", "8.7", "",
		"1", "",
		"0",
	}, "\n") + "\n"
	m, out := newTestMenu(t, input, nil)
	if err := m.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	requireContains(t, got, "Year abc is invalid.")
	requireContains(t, got, "Rating 11 is invalid.")
	requireContains(t, got, "Movie 'The Matrix' added successfully.")
	requireContains(t, got, "1 movie(s) in total\nThe Matrix (1999): 8.7\n")
}

func TestMenuManualAddRejectsDuplicateBeforePrompting(t *testing.T) {
	m, out := newTestMenu(t, "2\nthe matrix\n\n0\n", nil, catalog.Movie{Title: "The Matrix", Year: 1999, Rating: 8.7})
	if err := m.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	requireContains(t, got, "Movie the matrix is already in your database!")
	requireNotContains(t, got, "Enter new movie year")
}

func TestMenuAddReportsStoredTitleOnCanonicalDuplicate(t *testing.T) {
	provider := testsupport.NewStubProvider(metadata.Match{Title: "The Matrix", Year: 1999, Rating: 8.7, Source: "stub"})
	provider.Alias("matrix", "The Matrix")
	m, out := newTestMenu(t, "2\nmatrix\n\n0\n", provider, catalog.Movie{Title: "The Matrix", Year: 1999, Rating: 6})
	if err := m.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	requireContains(t, got, "Movie The Matrix is already in your database!")
	requireNotContains(t, got, "Movie matrix is already")
}

func TestMenuAddWithLookup(t *testing.T) {
	provider := testsupport.NewStubProvider(metadata.Match{Title: "Inception", Year: 2010, Rating: 8.8, Source: "stub"})
	m, out := newTestMenu(t, "2\ninception\n\n2\nNope\n\n0\n", provider)
	if err := m.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	requireContains(t, got, "Movie 'Inception' added successfully.")
	requireContains(t, got, "The movie Nope doesn't exist.")
}

func TestMenuStatsRandomSearchSorted(t *testing.T) {
	input := strings.Join([]string{"5", "", "6", "", "7", "b", "", "7", "zzz", "", "8", "", "0"}, "\n") + "\n"
	m, out := newTestMenu(t, input, nil, testsupport.SampleMovies()...)
	if err := m.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	requireContains(t, got, "Average rating: 9.0")
	requireContains(t, got, "Median rating: 9.5")
	requireContains(t, got, "Best movie(s): B (2001): 9.5\n               C (2002): 9.5\n")
	requireContains(t, got, "Worst movie(s): A (2000): 8.0\n")
	requireContains(t, got, "Your movie for tonight: ")
	requireContains(t, got, "B (2001), 9.5\n")
	requireContains(t, got, `No movies match "zzz".`)
	requireContains(t, got, "\nB (2001): 9.5\nC (2002): 9.5\nA (2000): 8.0\n")
}

func TestMenuEmptyCatalogMessages(t *testing.T) {
	m, out := newTestMenu(t, "5\n\n6\n\n0\n", nil)
	if err := m.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Count(out.String(), "There are no movies in the database.") != 2 {
		t.Fatalf("expected empty catalog message twice, got %q", out.String())
	}
}

func TestMenuUpdateAndDelete(t *testing.T) {
	input := strings.Join([]string{
		"4", "the matrix", "x", "9", "",
		"4", "Matrx", "",
		"3", "The Matrix", "",
		"3", "The Matrix", "",
		"0",
	}, "\n") + "\n"
	m, out := newTestMenu(t, input, nil, catalog.Movie{Title: "The Matrix", Year: 1999, Rating: 8.7})
	if err := m.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	requireContains(t, got, "Please enter a valid rating")
	requireContains(t, got, "Movie the matrix successfully updated")
	requireContains(t, got, "Movie Matrx doesn't exist!")
	requireContains(t, got, "Movie 'The Matrix' deleted successfully.")
	requireContains(t, got, "Movie The Matrix doesn't exist!")
}

func TestRootCommandRunsMenu(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLIWithInput(t, nil, env.configPath, "0\n")
	if err != nil {
		t.Fatalf("menu: %v", err)
	}
	requireContains(t, out, "Menu:")
	requireContains(t, out, "Bye!")
}
