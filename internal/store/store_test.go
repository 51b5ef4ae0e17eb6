package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"moviecat/internal/catalog"
	"moviecat/internal/config"
	"moviecat/internal/services"
	"moviecat/internal/store"
)

type backend struct {
	name string
	open func(t *testing.T, dir string) store.Store
}

func backends() []backend {
	return []backend{
		{name: "sqlite", open: func(t *testing.T, dir string) store.Store {
			s, err := store.OpenSQLite(filepath.Join(dir, "movies.db"))
			if err != nil {
				t.Fatalf("OpenSQLite: %v", err)
			}
			return s
		}},
		{name: "json", open: func(t *testing.T, dir string) store.Store {
			s, err := store.OpenJSON(filepath.Join(dir, "movies.json"))
			if err != nil {
				t.Fatalf("OpenJSON: %v", err)
			}
			return s
		}},
	}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, s store.Store)) {
	t.Helper()
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t, t.TempDir())
			t.Cleanup(func() { _ = s.Close() })
			fn(t, s)
		})
	}
}

func TestInsertListPreservesOrderAndFields(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		want := []catalog.Movie{
			{Title: "Inception", Year: 2010, Rating: 8.8, PosterURL: "https://img.example/inception.jpg"},
			{Title: "Amélie", Year: 2001, Rating: 8.3},
		}
		for _, movie := range want {
			if err := s.Insert(ctx, movie); err != nil {
				t.Fatalf("Insert %q: %v", movie.Title, err)
			}
		}
		got, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("List mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestListEmpty(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s store.Store) {
		got, err := s.List(context.Background())
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected empty catalog, got %v", got)
		}
	})
}

func TestTitleLookupsIgnoreCase(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		if err := s.Insert(ctx, catalog.Movie{Title: "The Matrix", Year: 1999, Rating: 8.7}); err != nil {
			t.Fatalf("Insert: %v", err)
		}

		exists, err := s.Exists(ctx, "the matrix")
		if err != nil || !exists {
			t.Fatalf("Exists = %v, %v; want true", exists, err)
		}
		movie, err := s.Get(ctx, "THE MATRIX")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if movie.Title != "The Matrix" {
			t.Fatalf("expected stored spelling, got %q", movie.Title)
		}

		err = s.Insert(ctx, catalog.Movie{Title: "the matrix", Year: 1999, Rating: 5})
		if !errors.Is(err, services.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}
	})
}

func TestUpdateRatingAndDelete(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		for _, movie := range []catalog.Movie{
			{Title: "Alien", Year: 1979, Rating: 8.5},
			{Title: "Aliens", Year: 1986, Rating: 8.4},
		} {
			if err := s.Insert(ctx, movie); err != nil {
				t.Fatalf("Insert: %v", err)
			}
		}

		if err := s.UpdateRating(ctx, "alien", 9.1); err != nil {
			t.Fatalf("UpdateRating: %v", err)
		}
		movie, err := s.Get(ctx, "Alien")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if movie.Rating != 9.1 {
			t.Fatalf("expected rating 9.1, got %v", movie.Rating)
		}

		if err := s.Delete(ctx, "ALIEN"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		got, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(got) != 1 || got[0].Title != "Aliens" {
			t.Fatalf("unexpected catalog after delete: %v", got)
		}
	})
}

func TestMissingTitleReturnsNotFound(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		if _, err := s.Get(ctx, "Nope"); !errors.Is(err, services.ErrNotFound) {
			t.Fatalf("Get: expected ErrNotFound, got %v", err)
		}
		if err := s.Delete(ctx, "Nope"); !errors.Is(err, services.ErrNotFound) {
			t.Fatalf("Delete: expected ErrNotFound, got %v", err)
		}
		if err := s.UpdateRating(ctx, "Nope", 5); !errors.Is(err, services.ErrNotFound) {
			t.Fatalf("UpdateRating: expected ErrNotFound, got %v", err)
		}
		exists, err := s.Exists(ctx, "Nope")
		if err != nil || exists {
			t.Fatalf("Exists = %v, %v; want false", exists, err)
		}
	})
}

func TestInvalidRecordsRejected(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s store.Store) {
		ctx := context.Background()
		cases := []catalog.Movie{
			{Title: "   ", Year: 2000, Rating: 5},
			{Title: "Too High", Year: 2000, Rating: 10.5},
			{Title: "Negative", Year: 2000, Rating: -1},
		}
		for _, movie := range cases {
			if err := s.Insert(ctx, movie); !errors.Is(err, services.ErrValidation) {
				t.Fatalf("Insert %+v: expected ErrValidation, got %v", movie, err)
			}
		}
		if err := s.Insert(ctx, catalog.Movie{Title: "Valid", Year: 2000, Rating: 5}); err != nil {
			t.Fatalf("Insert: %v", err)
		}
		if err := s.UpdateRating(ctx, "Valid", 11); !errors.Is(err, services.ErrValidation) {
			t.Fatalf("UpdateRating: expected ErrValidation, got %v", err)
		}
	})
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.db")
	s, err := store.OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := s.Insert(context.Background(), catalog.Movie{Title: "Heat", Year: 1995, Rating: 8.3}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := store.OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	movie, err := reopened.Get(context.Background(), "heat")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if movie.Year != 1995 {
		t.Fatalf("unexpected movie %+v", movie)
	}
}

func TestJSONStoreFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.json")
	s, err := store.OpenJSON(path)
	if err != nil {
		t.Fatalf("OpenJSON: %v", err)
	}
	defer s.Close()
	if err := s.Insert(context.Background(), catalog.Movie{Title: "Up", Year: 2009, Rating: 8}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	content := string(data)
	for _, want := range []string{`"name": "Up"`, `"year": 2009`, `"rating": 8`} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %s in %s", want, content)
		}
	}
	for _, unwanted := range []string{"poster_url", `"title"`} {
		if strings.Contains(content, unwanted) {
			t.Fatalf("expected no %s in %s", unwanted, content)
		}
	}
}

func TestJSONStoreReadsNameKeyedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.json")
	existing := `[{"name": "Heat", "year": 1995, "rating": 8.3}, {"name": "Alien", "year": "1979", "rating": 8.5}, {"title": "Up", "year": 2009, "rating": 8}]`
	if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := store.OpenJSON(path)
	if err != nil {
		t.Fatalf("OpenJSON: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	movies, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []catalog.Movie{
		{Title: "Heat", Year: 1995, Rating: 8.3},
		{Title: "Alien", Year: 1979, Rating: 8.5},
		{Title: "Up", Year: 2009, Rating: 8},
	}
	if diff := cmp.Diff(want, movies); diff != "" {
		t.Fatalf("List mismatch (-want +got):\n%s", diff)
	}

	if err := s.UpdateRating(ctx, "heat", 9); err != nil {
		t.Fatalf("UpdateRating: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if strings.Count(string(data), `"name"`) != 3 || strings.Contains(string(data), `"title"`) {
		t.Fatalf("expected every entry rewritten under name: %s", data)
	}
}

func TestJSONStoreRejectsEntryWithoutName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.json")
	if err := os.WriteFile(path, []byte(`[{"year": 1995, "rating": 8.3}]`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := store.OpenJSON(path); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestJSONStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := store.OpenJSON(path); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = dir
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Website.OutputDir = filepath.Join(dir, "site")
	cfg.Storage.SQLitePath = filepath.Join(dir, "movies.db")
	cfg.Storage.JSONPath = filepath.Join(dir, "movies.json")

	cfg.Storage.Backend = config.BackendJSON
	s, err := store.Open(&cfg)
	if err != nil {
		t.Fatalf("Open json: %v", err)
	}
	if _, ok := s.(*store.JSONStore); !ok {
		t.Fatalf("expected *JSONStore, got %T", s)
	}
	_ = s.Close()

	cfg.Storage.Backend = config.BackendSQLite
	s, err = store.Open(&cfg)
	if err != nil {
		t.Fatalf("Open sqlite: %v", err)
	}
	if _, ok := s.(*store.SQLiteStore); !ok {
		t.Fatalf("expected *SQLiteStore, got %T", s)
	}
	_ = s.Close()

	cfg.Storage.Backend = "csv"
	if _, err := store.Open(&cfg); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}
