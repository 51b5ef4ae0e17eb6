package metadata

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrNotFound is returned (wrapped) when the provider has no match for a title.
var ErrNotFound = errors.New("movie doesn't exist")

// ErrDisabled is returned (wrapped) by the provider built for metadata.provider = "none".
var ErrDisabled = errors.New("metadata lookups are disabled")

// Match is the record a lookup produced. Title is the provider's canonical
// spelling, which is what the catalog stores.
type Match struct {
	Title     string
	Year      int
	Rating    float64
	PosterURL string
	Source    string
}

// Provider looks a movie up by title.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, title string) (*Match, error)
}

const notAvailable = "N/A"

var leadingYear = regexp.MustCompile(`^\s*(\d{4})`)

// ParseYear extracts the leading four-digit year from values such as "1999",
// "2010–2013" or "2008-05-02". It returns 0 when none is present.
func ParseYear(value string) int {
	m := leadingYear.FindStringSubmatch(value)
	if m == nil {
		return 0
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return year
}

// ParseRating converts a provider rating string, treating "N/A", blanks and
// unparsable values as 0.
func ParseRating(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, notAvailable) {
		return 0
	}
	rating, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return clampRating(rating)
}

func clampRating(rating float64) float64 {
	switch {
	case math.IsNaN(rating), rating < 0:
		return 0
	case rating > 10:
		return 10
	default:
		return rating
	}
}

// NormalizePoster maps "N/A" and blanks to the empty string.
func NormalizePoster(value string) string {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, notAvailable) {
		return ""
	}
	return value
}
