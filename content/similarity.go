// Package content produces lesson material for renders, either from an
// AI backend or from a built-in fallback catalog.
package content

import "strings"

// SimilarityRatio scores how alike two topic strings are, from 0 for
// disjoint to 1 for identical. It sums the longest common blocks the
// way a diff would, so reworded duplicates still score high.
func SimilarityRatio(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return 2 * float64(matchingChars(a, b)) / float64(len(a)+len(b))
}

// matchingChars counts characters covered by common blocks: take the
// longest common substring, then recurse on both sides of it.
func matchingChars(a, b string) int {
	if a == "" || b == "" {
		return 0
	}

	ai, bj, n := longestMatch(a, b)
	if n == 0 {
		return 0
	}
	return matchingChars(a[:ai], b[:bj]) + n + matchingChars(a[ai+n:], b[bj+n:])
}

// longestMatch finds the longest common substring, returning its start
// in a, its start in b and its length.
func longestMatch(a, b string) (int, int, int) {
	bestI, bestJ, bestN := 0, 0, 0

	prev := make(map[int]int)
	for i := 0; i < len(a); i++ {
		cur := make(map[int]int)
		for j := 0; j < len(b); j++ {
			if a[i] != b[j] {
				continue
			}
			k := prev[j-1] + 1
			cur[j] = k
			if k > bestN {
				bestI, bestJ, bestN = i-k+1, j-k+1, k
			}
		}
		prev = cur
	}
	return bestI, bestJ, bestN
}
