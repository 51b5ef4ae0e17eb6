package textutil

import (
	"math"
	"testing"
)

func TestCosineSimilarityNil(t *testing.T) {
	tests := []struct {
		name string
		a    *Fingerprint
		b    *Fingerprint
		want float64
	}{
		{"both nil", nil, nil, 0},
		{"a nil", nil, NewFingerprint("the dark knight"), 0},
		{"b nil", NewFingerprint("the dark knight"), nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineSimilarityIdenticalIgnoresCase(t *testing.T) {
	a := NewFingerprint("The Dark Knight")
	b := NewFingerprint("the DARK knight")

	got := CosineSimilarity(a, b)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("CosineSimilarity(identical) = %v, want 1.0", got)
	}
}

func TestCosineSimilarityCompletelyDifferent(t *testing.T) {
	a := NewFingerprint("Alien")
	b := NewFingerprint("Jaws")

	if got := CosineSimilarity(a, b); got != 0 {
		t.Errorf("CosineSimilarity(different) = %v, want 0", got)
	}
}

func TestTokenizeDropsSingleRunes(t *testing.T) {
	got := Tokenize("Up: A Film, II")
	want := []string{"up", "film", "ii"}
	if len(got) != len(want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tokenize()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSuggestOrdersByScore(t *testing.T) {
	candidates := []string{"Blade Runner", "The Dark Knight Rises", "The Dark Knight", "Casablanca"}
	got := Suggest("dark knight", candidates, 0.3, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %v", got)
	}
	if got[0] != "The Dark Knight" || got[1] != "The Dark Knight Rises" {
		t.Fatalf("unexpected suggestion order: %v", got)
	}
}

func TestSuggestEmptyQuery(t *testing.T) {
	if got := Suggest("  ", []string{"Alien"}, 0.1, 3); got != nil {
		t.Fatalf("expected no suggestions, got %v", got)
	}
}

func TestSuggestToleratesTypos(t *testing.T) {
	got := Suggest("The Matrx", []string{"Heat", "The Matrix", "Alien"}, 0.3, 3)
	if len(got) != 1 || got[0] != "The Matrix" {
		t.Fatalf("expected The Matrix, got %v", got)
	}
}

func TestFingerprintSize(t *testing.T) {
	if got := NewFingerprint("Up").Size(); got != 2 {
		t.Fatalf("Size() = %d, want 2", got)
	}
	var nilPrint *Fingerprint
	if nilPrint.Size() != 0 {
		t.Fatal("expected nil fingerprint size 0")
	}
	if NewFingerprint("a ! b") != nil {
		t.Fatal("expected nil fingerprint for single-rune words")
	}
}
