package catalog

import (
	"fmt"

	"moviecat/internal/textutil"
)

// Movie is a single catalog record. Title identifies the movie; lookups are
// case-insensitive while the stored spelling is preserved.
type Movie struct {
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Rating    float64 `json:"rating"`
	PosterURL string  `json:"poster_url,omitempty"`
}

// Key returns the case-folded title used for uniqueness checks.
func (m Movie) Key() string {
	return textutil.TitleKey(m.Title)
}

// HasPoster reports whether the record carries a poster URL to render.
func (m Movie) HasPoster() bool {
	return m.PosterURL != ""
}

// String renders the console form "Title (Year): Rating".
func (m Movie) String() string {
	return fmt.Sprintf("%s (%d): %s", m.Title, m.Year, FormatRating(m.Rating))
}

// FormatRating prints a rating with the shortest representation that keeps
// one decimal place, so 8 prints as "8.0" and 7.25 as "7.25".
func FormatRating(rating float64) string {
	if rating == float64(int64(rating)) {
		return fmt.Sprintf("%.1f", rating)
	}
	return fmt.Sprintf("%g", rating)
}

// Collection is an ordered set of movies with a folded-title index. Insertion
// order is kept so tie ordering in rankings stays reproducible.
type Collection struct {
	movies []Movie
	index  map[string]int
}

// NewCollection builds a collection from movies, rejecting duplicate titles.
func NewCollection(movies []Movie) (*Collection, error) {
	c := &Collection{
		movies: make([]Movie, 0, len(movies)),
		index:  make(map[string]int, len(movies)),
	}
	for _, movie := range movies {
		if err := c.Add(movie); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add appends a movie. It fails with ErrDuplicateTitle when a movie with the
// same folded title is already present.
func (c *Collection) Add(movie Movie) error {
	key := movie.Key()
	if _, exists := c.index[key]; exists {
		return &DuplicateError{Title: movie.Title}
	}
	c.index[key] = len(c.movies)
	c.movies = append(c.movies, movie)
	return nil
}

// Get returns the movie matching title, ignoring case.
func (c *Collection) Get(title string) (Movie, bool) {
	idx, ok := c.index[textutil.TitleKey(title)]
	if !ok {
		return Movie{}, false
	}
	return c.movies[idx], true
}

// Contains reports whether a movie with the given title exists.
func (c *Collection) Contains(title string) bool {
	_, ok := c.index[textutil.TitleKey(title)]
	return ok
}

// Remove deletes the movie matching title and reports whether it existed.
func (c *Collection) Remove(title string) bool {
	key := textutil.TitleKey(title)
	idx, ok := c.index[key]
	if !ok {
		return false
	}
	c.movies = append(c.movies[:idx], c.movies[idx+1:]...)
	delete(c.index, key)
	for i := idx; i < len(c.movies); i++ {
		c.index[c.movies[i].Key()] = i
	}
	return true
}

// SetRating updates the rating of the movie matching title.
func (c *Collection) SetRating(title string, rating float64) bool {
	idx, ok := c.index[textutil.TitleKey(title)]
	if !ok {
		return false
	}
	c.movies[idx].Rating = rating
	return true
}

// Len returns the number of movies.
func (c *Collection) Len() int {
	return len(c.movies)
}

// Movies returns a copy of the movies in insertion order.
func (c *Collection) Movies() []Movie {
	out := make([]Movie, len(c.movies))
	copy(out, c.movies)
	return out
}

// Titles returns the stored titles in insertion order.
func (c *Collection) Titles() []string {
	out := make([]string, 0, len(c.movies))
	for _, movie := range c.movies {
		out = append(out, movie.Title)
	}
	return out
}
