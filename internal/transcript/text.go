package transcript

import (
	"sort"
	"strings"
)

// Text is the full session transcript. It is built once per run and never
// modified; all scans share the same buffer.
type Text struct {
	raw    string
	lines  []string
	starts []int // byte offset of each line
}

// New wraps raw transcript text.
func New(raw string) Text {
	lines := strings.Split(raw, "\n")
	starts := make([]int, len(lines))
	offset := 0
	for i, l := range lines {
		starts[i] = offset
		offset += len(l) + 1
	}
	return Text{raw: raw, lines: lines, starts: starts}
}

// String returns the raw transcript.
func (t Text) String() string { return t.raw }

// Len returns the transcript size in bytes.
func (t Text) Len() int { return len(t.raw) }

// NumLines returns the number of newline-separated lines.
func (t Text) NumLines() int { return len(t.lines) }

// Line returns line i, or "" when i is out of range.
func (t Text) Line(i int) string {
	if i < 0 || i >= len(t.lines) {
		return ""
	}
	return t.lines[i]
}

// LineAt converts a byte offset into the index of the line containing it.
func (t Text) LineAt(offset int) int {
	if len(t.starts) == 0 || offset < 0 {
		return 0
	}
	return sort.Search(len(t.starts), func(i int) bool { return t.starts[i] > offset }) - 1
}

// Join returns lines from..to (inclusive) joined by newlines, clamped to
// the transcript bounds.
func (t Text) Join(from, to int) string {
	if from < 0 {
		from = 0
	}
	if to >= len(t.lines) {
		to = len(t.lines) - 1
	}
	if from > to {
		return ""
	}
	return strings.Join(t.lines[from:to+1], "\n")
}

// Offsets returns the byte offset of every non-overlapping occurrence of s.
func (t Text) Offsets(s string) []int {
	if s == "" {
		return nil
	}
	var offsets []int
	pos := 0
	for {
		i := strings.Index(t.raw[pos:], s)
		if i < 0 {
			return offsets
		}
		offsets = append(offsets, pos+i)
		pos += i + len(s)
	}
}
