package textutil

import "sort"

// CosineSimilarity computes the cosine similarity between two fingerprints.
// Returns 0 if either fingerprint is nil or has zero norm.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	var dot float64
	for gram, n := range a.grams {
		dot += n * b.grams[gram]
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm * b.norm)
}

// Suggest returns up to limit candidates whose similarity to query is at
// least threshold, best match first. Ties keep the candidates' input order.
func Suggest(query string, candidates []string, threshold float64, limit int) []string {
	target := NewFingerprint(query)
	if target == nil || limit <= 0 {
		return nil
	}
	type scored struct {
		value string
		score float64
	}
	matches := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		score := CosineSimilarity(target, NewFingerprint(candidate))
		if score < threshold || score == 0 {
			continue
		}
		matches = append(matches, scored{value: candidate, score: score})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.value)
	}
	return out
}
