package catalog

import "sort"

// Stats bundles the figures shown on the statistics screen.
type Stats struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Median  float64 `json:"median"`
	Best    []Movie `json:"best"`
	Worst   []Movie `json:"worst"`
}

// AverageRating returns the arithmetic mean of all ratings.
func AverageRating(movies []Movie) (float64, error) {
	if len(movies) == 0 {
		return 0, ErrEmptyCollection
	}
	var sum float64
	for _, movie := range movies {
		sum += movie.Rating
	}
	return sum / float64(len(movies)), nil
}

// MedianRating returns the median rating: the middle value for an odd count,
// the mean of the two middle values for an even count.
func MedianRating(movies []Movie) (float64, error) {
	if len(movies) == 0 {
		return 0, ErrEmptyCollection
	}
	ratings := make([]float64, len(movies))
	for i, movie := range movies {
		ratings[i] = movie.Rating
	}
	sort.Float64s(ratings)
	mid := len(ratings) / 2
	if len(ratings)%2 == 1 {
		return ratings[mid], nil
	}
	return (ratings[mid-1] + ratings[mid]) / 2, nil
}

// SortedByRatingDesc returns a copy of movies ordered by rating, highest
// first. Movies with equal ratings keep their input order.
func SortedByRatingDesc(movies []Movie) []Movie {
	sorted := make([]Movie, len(movies))
	copy(sorted, movies)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})
	return sorted
}

// SortedByRatingAsc returns a copy of movies ordered by rating, lowest first,
// stable on ties.
func SortedByRatingAsc(movies []Movie) []Movie {
	sorted := make([]Movie, len(movies))
	copy(sorted, movies)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating < sorted[j].Rating
	})
	return sorted
}

// BestMovies returns every movie sharing the highest rating, in stable
// descending order. It returns nil for an empty collection.
func BestMovies(movies []Movie) []Movie {
	return leadingTies(SortedByRatingDesc(movies))
}

// WorstMovies returns every movie sharing the lowest rating, in stable
// ascending order. It returns nil for an empty collection.
func WorstMovies(movies []Movie) []Movie {
	return leadingTies(SortedByRatingAsc(movies))
}

// leadingTies returns the prefix of sorted whose ratings equal the first one,
// stopping at the first different rating.
func leadingTies(sorted []Movie) []Movie {
	if len(sorted) == 0 {
		return nil
	}
	target := sorted[0].Rating
	end := 1
	for end < len(sorted) && sorted[end].Rating == target {
		end++
	}
	return sorted[:end:end]
}

// Summarize computes the statistics screen figures from a single snapshot.
func Summarize(movies []Movie) (Stats, error) {
	average, err := AverageRating(movies)
	if err != nil {
		return Stats{}, err
	}
	median, err := MedianRating(movies)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Count:   len(movies),
		Average: average,
		Median:  median,
		Best:    BestMovies(movies),
		Worst:   WorstMovies(movies),
	}, nil
}
