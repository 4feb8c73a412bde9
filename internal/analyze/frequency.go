package analyze

import (
	"sort"

	"github.com/nao1215/webfreq/internal/model"
)

// Rank builds a frequency ranking from an ordered key sequence.
//
// The sequence is scanned exactly once. Distinct keys are ordered by count
// descending; keys with equal counts keep the order in which they were
// first seen. This matches "most common N" semantics where ties preserve
// scan order, and makes the ranking deterministic for identical input.
func Rank(keys []string) []model.FrequencyEntry {
	counts := make(map[string]int, len(keys))
	order := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	entries := make([]model.FrequencyEntry, 0, len(order))
	for _, k := range order {
		entries = append(entries, model.FrequencyEntry{Name: k, Count: counts[k]})
	}

	// Stable sort over the first-seen order keeps ties deterministic.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// TopN returns the first n entries of a ranking.
//
// n larger than the list returns the whole list without padding; n of
// zero returns an empty list. Negative n is rejected at the CLI boundary
// and never reaches this function, but is clamped to zero as well so the
// aggregation itself cannot fail.
func TopN(entries []model.FrequencyEntry, n int) []model.FrequencyEntry {
	if n <= 0 {
		return []model.FrequencyEntry{}
	}
	if n >= len(entries) {
		return entries
	}
	return entries[:n]
}
