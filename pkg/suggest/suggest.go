// Package suggest ranks candidate names by similarity to a mistyped input.
// It backs the "did you mean" hints on unknown-flag errors.
package suggest

import (
	"sort"
	"strings"
)

// threshold is the minimum score for a candidate to be offered at all.
const threshold = 0.5

// Similar returns up to max candidates ordered by decreasing similarity to
// target, ties broken alphabetically.
func Similar(target string, candidates []string, max int) []string {
	if target == "" || max <= 0 {
		return nil
	}

	type scored struct {
		name  string
		score float64
	}
	var ranked []scored
	for _, name := range candidates {
		if s := score(target, name); s > threshold {
			ranked = append(ranked, scored{name: name, score: s})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score == ranked[j].score {
			return ranked[i].name < ranked[j].name
		}
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > max {
		ranked = ranked[:max]
	}
	out := make([]string, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, s.name)
	}
	return out
}

func score(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 1.0
	}
	if strings.HasPrefix(b, a) || strings.HasPrefix(a, b) {
		return 0.9
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	return 1.0 - float64(distance(a, b))/float64(longest)
}

// distance is the Levenshtein edit distance, single-row variant.
func distance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur := prev[0]
		prev[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			next := min3(prev[j]+1, prev[j-1]+1, cur+cost)
			cur = prev[j]
			prev[j] = next
		}
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
