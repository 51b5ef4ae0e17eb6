package catalog

import (
	"strconv"
	"strings"
)

const (
	// MinRating and MaxRating bound every stored rating.
	MinRating = 0.0
	MaxRating = 10.0
	// EarliestFilmYear is the year of the earliest known film; manually
	// entered years before it are rejected.
	EarliestFilmYear = 1888
)

// ValidateRating reports whether input is an acceptable rating: a plain
// integer in [0,10], or a decimal with digits on both sides of the point whose
// value is in [0,10]. Signs, exponents, extra points, and surrounding spaces
// are all rejected.
func ValidateRating(input string) bool {
	if isDigits(input) {
		value, err := strconv.Atoi(input)
		return err == nil && value >= MinRating && value <= MaxRating
	}
	if !strings.Contains(input, ".") {
		return false
	}
	parts := strings.Split(input, ".")
	if !isDigits(parts[0]) || !isDigits(parts[1]) {
		return false
	}
	value, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return false
	}
	return value >= MinRating && value <= MaxRating
}

// ParseRating validates input and returns its numeric value.
func ParseRating(input string) (float64, bool) {
	if !ValidateRating(input) {
		return 0, false
	}
	value, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// ValidateYear reports whether input is all digits and not earlier than
// EarliestFilmYear.
func ValidateYear(input string) bool {
	if !isDigits(input) {
		return false
	}
	value, err := strconv.Atoi(input)
	return err == nil && value >= EarliestFilmYear
}

// ParseYear validates input and returns its numeric value.
func ParseYear(input string) (int, bool) {
	if !ValidateYear(input) {
		return 0, false
	}
	value, err := strconv.Atoi(input)
	if err != nil {
		return 0, false
	}
	return value, true
}

// ValidateTitle rejects empty and whitespace-only titles.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// RatingInRange reports whether rating lies in [MinRating, MaxRating].
func RatingInRange(rating float64) bool {
	return rating >= MinRating && rating <= MaxRating
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
