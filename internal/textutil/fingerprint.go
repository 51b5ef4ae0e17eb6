package textutil

import (
	"math"
	"regexp"

	"golang.org/x/text/cases"
)

var wordSplitPattern = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Fingerprint is a character-trigram frequency vector of a title. Trigrams
// rather than whole words let a misspelt title still score close to the
// stored one.
type Fingerprint struct {
	grams map[string]float64
	norm  float64
}

// NewFingerprint returns the fingerprint of text, or nil when text has no
// word of two or more runes.
func NewFingerprint(text string) *Fingerprint {
	words := Tokenize(text)
	if len(words) == 0 {
		return nil
	}
	grams := make(map[string]float64)
	for _, word := range words {
		padded := []rune(" " + word + " ")
		for i := 0; i+3 <= len(padded); i++ {
			grams[string(padded[i:i+3])]++
		}
	}
	var sum float64
	for _, n := range grams {
		sum += n * n
	}
	return &Fingerprint{grams: grams, norm: math.Sqrt(sum)}
}

// Tokenize splits text into case-folded words, dropping single runes such as
// the article "A".
func Tokenize(text string) []string {
	folded := cases.Fold().String(text)
	var words []string
	for _, word := range wordSplitPattern.Split(folded, -1) {
		if len([]rune(word)) < 2 {
			continue
		}
		words = append(words, word)
	}
	return words
}

// Size returns the number of distinct trigrams.
func (f *Fingerprint) Size() int {
	if f == nil {
		return 0
	}
	return len(f.grams)
}
