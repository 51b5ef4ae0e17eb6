package catalog_test

import (
	"math/rand/v2"
	"testing"

	"moviecat/internal/catalog"
)

func TestSearchCaseInsensitivePreservesOrder(t *testing.T) {
	movies := []catalog.Movie{
		{Title: "The Godfather"},
		{Title: "Alien"},
		{Title: "The Godfather Part II"},
		{Title: "godzilla"},
	}
	got := catalog.Search(movies, "GOD")
	want := []string{"The Godfather", "The Godfather Part II", "godzilla"}
	if len(got) != len(want) {
		t.Fatalf("Search returned %v", got)
	}
	for i := range want {
		if got[i].Title != want[i] {
			t.Fatalf("position %d: got %q want %q", i, got[i].Title, want[i])
		}
	}
	if res := catalog.Search(movies, "xyz"); len(res) != 0 {
		t.Fatalf("expected no matches, got %v", res)
	}
}

func TestPickRandomCoversEveryMovie(t *testing.T) {
	movies := []catalog.Movie{{Title: "a"}, {Title: "b"}, {Title: "c"}}
	r := rand.New(rand.NewPCG(1, 2))
	seen := map[string]int{}
	for i := 0; i < 300; i++ {
		movie, err := catalog.PickRandom(movies, r)
		if err != nil {
			t.Fatalf("PickRandom: %v", err)
		}
		seen[movie.Title]++
	}
	for _, m := range movies {
		if seen[m.Title] == 0 {
			t.Fatalf("movie %q never selected: %v", m.Title, seen)
		}
	}
}

func TestPickRandomGlobalSource(t *testing.T) {
	movies := []catalog.Movie{{Title: "only"}}
	movie, err := catalog.PickRandom(movies, nil)
	if err != nil || movie.Title != "only" {
		t.Fatalf("PickRandom = %v, %v", movie, err)
	}
}
