package cities

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultCutoff is the minimum similarity ratio for a fuzzy match.
const DefaultCutoff = 0.6

type scored struct {
	score float64
	name  string
}

// closeMatches returns up to n candidates whose SequenceMatcher ratio against word is at
// least cutoff, best first. Equal scores are ordered by name, descending. Comparison is
// case-sensitive and works on runes.
func closeMatches(word string, candidates []string, n int, cutoff float64) []string {
	if n <= 0 || len(candidates) == 0 {
		return nil
	}

	m := difflib.NewMatcher(nil, runes(word))
	var hits []scored
	for _, c := range candidates {
		m.SetSeq1(runes(c))
		if m.RealQuickRatio() >= cutoff && m.QuickRatio() >= cutoff {
			if r := m.Ratio(); r >= cutoff {
				hits = append(hits, scored{score: r, name: c})
			}
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].name > hits[j].name
	})
	if len(hits) > n {
		hits = hits[:n]
	}

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}
	return out
}

func runes(s string) []string {
	return strings.Split(s, "")
}
