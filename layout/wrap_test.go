package layout

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// charWidth mimics a monospace face for tests.
const charWidth = 10

func measureMono(text string) int {
	return utf8.RuneCountInString(text) * charWidth
}

func TestWrapKeepsFittingLineWhole(t *testing.T) {
	line := "    const x = 1"
	subs := Wrap(line, measureMono, 1000)

	if len(subs) != 1 || subs[0] != line {
		t.Fatalf("expected line untouched, got %v", subs)
	}
}

func TestWrapSubLinesFitBudget(t *testing.T) {
	lines := []string{
		"const sum = nums.reduce((acc, curr) => acc + curr, 0);",
		"        deeply.indented(call).with(lots).of(parts)",
		strings.Repeat("x", 500),
		"short",
	}
	maxPx := 40 * charWidth

	for _, line := range lines {
		subs := Wrap(line, measureMono, maxPx)
		indentW := measureMono(LeadingIndent(line))

		for i, sub := range subs {
			drawn := measureMono(sub)
			if i > 0 {
				drawn += indentW
			}
			if drawn > maxPx && utf8.RuneCountInString(sub) > 1 {
				t.Fatalf("line %q sub %d overflows budget: %q (%dpx)", line, i, sub, drawn)
			}
		}
	}
}

func TestWrapPreservesEveryCharacter(t *testing.T) {
	lines := []string{
		"const nums = [1, 2, 3, 4];",
		"  return acc + curr;",
		strings.Repeat("y", 137) + " " + strings.Repeat("z", 90),
		"",
		"    ",
	}

	for _, line := range lines {
		subs := Wrap(line, measureMono, 12*charWidth)
		if len(subs) == 0 {
			t.Fatalf("line %q produced no sub-lines", line)
		}

		var b strings.Builder
		for _, sub := range subs {
			b.WriteString(sub)
		}
		if b.String() != line {
			t.Fatalf("characters lost wrapping %q: got %q", line, b.String())
		}
	}
}

func TestWrapIndentOnFirstSubLineOnly(t *testing.T) {
	line := "    alpha beta gamma delta epsilon"
	subs := Wrap(line, measureMono, 14*charWidth)

	if len(subs) < 2 {
		t.Fatalf("expected the line to wrap, got %v", subs)
	}
	if !strings.HasPrefix(subs[0], "    ") {
		t.Fatalf("first sub-line lost its indent: %q", subs[0])
	}
	for i, sub := range subs[1:] {
		if strings.HasPrefix(sub, "    ") {
			t.Fatalf("continuation %d duplicates the indent: %q", i+1, sub)
		}
	}
}

func TestWrapBreaksUnbrokenRunByCharacter(t *testing.T) {
	line := strings.Repeat("a", 500)
	maxPx := 40 * charWidth

	subs := Wrap(line, measureMono, maxPx)
	if len(subs) < 2 {
		t.Fatalf("expected multiple sub-lines for a 500 char run, got %d", len(subs))
	}

	total := 0
	for i, sub := range subs {
		if measureMono(sub) > maxPx {
			t.Fatalf("sub %d overflows: %q", i, sub)
		}
		total += len(sub)
	}
	if total != 500 {
		t.Fatalf("expected 500 characters across sub-lines, got %d", total)
	}
}

func TestWrapTerminatesWhenIndentEatsBudget(t *testing.T) {
	line := strings.Repeat(" ", 30) + "abc"
	subs := Wrap(line, measureMono, 20*charWidth)

	var b strings.Builder
	for _, sub := range subs {
		b.WriteString(sub)
	}
	if b.String() != line {
		t.Fatalf("characters lost: %q", b.String())
	}
}
