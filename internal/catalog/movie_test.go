package catalog_test

import (
	"errors"
	"testing"

	"moviecat/internal/catalog"
)

func TestCollectionEnforcesUniqueTitles(t *testing.T) {
	c, err := catalog.NewCollection([]catalog.Movie{{Title: "Heat", Year: 1995, Rating: 8.3}})
	if err != nil {
		t.Fatalf("NewCollection: %v", err)
	}
	if err := c.Add(catalog.Movie{Title: "HEAT", Year: 1986}); !errors.Is(err, catalog.ErrDuplicateTitle) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if _, err := catalog.NewCollection([]catalog.Movie{{Title: "x"}, {Title: "X"}}); err == nil {
		t.Fatal("expected duplicate error from NewCollection")
	}
}

func TestCollectionLookupRemoveAndRating(t *testing.T) {
	c, err := catalog.NewCollection([]catalog.Movie{
		{Title: "Alien", Rating: 8.5},
		{Title: "Brazil", Rating: 7.9},
		{Title: "Cube", Rating: 7.2},
	})
	if err != nil {
		t.Fatalf("NewCollection: %v", err)
	}
	if movie, ok := c.Get("brazil"); !ok || movie.Title != "Brazil" {
		t.Fatalf("Get(brazil) = %v, %v", movie, ok)
	}
	if !c.SetRating("CUBE", 6) {
		t.Fatal("SetRating should find Cube")
	}
	if !c.Remove("alien") {
		t.Fatal("Remove should find Alien")
	}
	if c.Remove("alien") {
		t.Fatal("second Remove should report missing")
	}
	if c.Len() != 2 || !c.Contains("Cube") {
		t.Fatalf("unexpected collection state: %v", c.Titles())
	}
	if movie, _ := c.Get("cube"); movie.Rating != 6 {
		t.Fatalf("expected updated rating, got %v", movie.Rating)
	}
}

func TestMovieString(t *testing.T) {
	got := catalog.Movie{Title: "Heat", Year: 1995, Rating: 8}.String()
	if got != "Heat (1995): 8.0" {
		t.Fatalf("String() = %q", got)
	}
	if got := catalog.FormatRating(7.25); got != "7.25" {
		t.Fatalf("FormatRating(7.25) = %q", got)
	}
}
