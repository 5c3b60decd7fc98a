// Package layout wraps text lines under a pixel budget using a caller
// supplied measuring function, so the same algorithm serves any font.
package layout

import "strings"

// MeasureFunc reports the rendered advance width of a string in pixels.
type MeasureFunc func(text string) int

// LeadingIndent returns the run of spaces and tabs opening the line.
func LeadingIndent(line string) string {
	end := 0
	for end < len(line) && (line[end] == ' ' || line[end] == '\t') {
		end++
	}
	return line[:end]
}

// Wrap splits line into sub-lines that each fit within maxPx.
//
// The original indentation is kept on the first sub-line only;
// continuation sub-lines carry bare content and are expected to be
// drawn at the indentation baseline, so their budget is reduced by the
// indent width. Content characters are never dropped: concatenating
// the sub-lines (indent excluded from continuations) reproduces the
// input. A sub-line only exceeds the budget when one single character
// already does.
func Wrap(line string, measure MeasureFunc, maxPx int) []string {
	indent := LeadingIndent(line)
	content := line[len(indent):]
	if content == "" {
		return []string{line}
	}

	budget := maxPx - measure(indent)

	var subs []string
	var cur strings.Builder

	flush := func() {
		sub := cur.String()
		if len(subs) == 0 {
			sub = indent + sub
		}
		subs = append(subs, sub)
		cur.Reset()
	}

	for _, tok := range splitRuns(content) {
		if cur.Len() > 0 && measure(cur.String()+tok) > budget {
			flush()
		}
		if cur.Len() == 0 && measure(tok) > budget {
			// A single run wider than the budget breaks by character.
			for _, r := range tok {
				if cur.Len() > 0 && measure(cur.String()+string(r)) > budget {
					flush()
				}
				cur.WriteRune(r)
			}
			continue
		}
		cur.WriteString(tok)
	}
	if cur.Len() > 0 {
		flush()
	}

	return subs
}

// splitRuns cuts content into alternating runs of whitespace and
// non-whitespace so separators survive wrapping byte for byte.
func splitRuns(content string) []string {
	var runs []string
	start := 0
	for i := 1; i <= len(content); i++ {
		if i == len(content) || isSpace(content[i]) != isSpace(content[start]) {
			runs = append(runs, content[start:i])
			start = i
		}
	}
	return runs
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}
