package testsupport

import (
	"context"
	"testing"

	"moviecat/internal/catalog"
	"moviecat/internal/config"
	"moviecat/internal/store"
)

// MustOpenStore opens the configured store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) store.Store {
	t.Helper()

	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

// Seed inserts movies in order.
func Seed(t testing.TB, s store.Store, movies ...catalog.Movie) {
	t.Helper()

	for _, movie := range movies {
		if err := s.Insert(context.Background(), movie); err != nil {
			t.Fatalf("seed %q: %v", movie.Title, err)
		}
	}
}

// SampleMovies returns a small catalog with a tie at the top rating.
func SampleMovies() []catalog.Movie {
	return []catalog.Movie{
		{Title: "A", Year: 2000, Rating: 8.0},
		{Title: "B", Year: 2001, Rating: 9.5},
		{Title: "C", Year: 2002, Rating: 9.5},
	}
}
