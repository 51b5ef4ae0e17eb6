package catalog

import (
	"math/rand/v2"

	"moviecat/internal/textutil"
)

// Search returns the movies whose title contains query, ignoring case, in
// their original order.
func Search(movies []Movie, query string) []Movie {
	var matches []Movie
	for _, movie := range movies {
		if textutil.ContainsFold(movie.Title, query) {
			matches = append(matches, movie)
		}
	}
	return matches
}

// PickRandom selects one movie uniformly at random. A nil r uses the global
// source.
func PickRandom(movies []Movie, r *rand.Rand) (Movie, error) {
	if len(movies) == 0 {
		return Movie{}, ErrEmptyCollection
	}
	var idx int
	if r == nil {
		idx = rand.IntN(len(movies))
	} else {
		idx = r.IntN(len(movies))
	}
	return movies[idx], nil
}
