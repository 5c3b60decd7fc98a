package content

import "testing"

func TestSimilarityRatio(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		min  float64
		max  float64
	}{
		{"identical", "Array Reduce", "Array Reduce", 1, 1},
		{"case and spacing ignored", "  Array Reduce ", "array reduce", 1, 1},
		{"reworded duplicate", "Array Reduce Basics", "array reduce", 0.7, 1},
		{"unrelated", "Binary Search Trees", "CSS Flexbox", 0, 0.5},
		{"both empty", "", "", 1, 1},
		{"one empty", "Recursion", "", 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SimilarityRatio(tc.a, tc.b)
			if got < tc.min || got > tc.max {
				t.Fatalf("ratio(%q, %q) = %.3f, want within [%.2f, %.2f]", tc.a, tc.b, got, tc.min, tc.max)
			}
		})
	}
}

func TestSimilarityRatioIsSymmetric(t *testing.T) {
	a, b := "Go slices explained", "Explaining slices in Go"
	if SimilarityRatio(a, b) != SimilarityRatio(b, a) {
		t.Fatal("ratio should not depend on argument order")
	}
}

func TestLongestMatch(t *testing.T) {
	ai, bj, n := longestMatch("xxhelloyy", "aahellobb")
	if n != 5 {
		t.Fatalf("expected match length 5, got %d", n)
	}
	if ai != 2 || bj != 2 {
		t.Fatalf("expected match at (2, 2), got (%d, %d)", ai, bj)
	}
}
