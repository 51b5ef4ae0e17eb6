package store

import (
	"database/sql"

	"moviecat/internal/catalog"
)

const movieColumns = "title, year, rating, poster_url"

func scanMovie(scanner interface{ Scan(dest ...any) error }) (catalog.Movie, error) {
	var (
		title     string
		year      int
		rating    float64
		posterURL sql.NullString
	)
	if err := scanner.Scan(&title, &year, &rating, &posterURL); err != nil {
		return catalog.Movie{}, err
	}
	return catalog.Movie{
		Title:     title,
		Year:      year,
		Rating:    rating,
		PosterURL: posterURL.String,
	}, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
