// Package correlate links error occurrences to the action that resolved
// them, using line proximity in the transcript.
package correlate

import (
	"strings"

	"github.com/suykerbuyk/wrapup/internal/extract"
	"github.com/suykerbuyk/wrapup/internal/transcript"
)

// Default correlation settings.
const (
	DefaultWindow       = 5
	DefaultContextLines = 3
)

// DefaultActionMarkers are the line markers that denote an edit or a
// command execution.
var DefaultActionMarkers = []string{transcript.EditMarker, transcript.CommandMarker}

// Link binds an error text to the snippet that resolved it. Snippet is
// empty when Resolved is false.
type Link struct {
	Error    string
	Snippet  string
	Resolved bool
}

// Finding is one grouped error with its surrounding context and
// resolution status.
type Finding struct {
	Occurrence extract.ErrorOccurrence
	Context    string
	Link       Link
}

// Correlator holds the window sizes and markers used for correlation.
// Zero values fall back to the defaults.
type Correlator struct {
	Window        int
	ContextLines  int
	ActionMarkers []string
}

// New returns a Correlator with default settings.
func New() Correlator {
	return Correlator{
		Window:        DefaultWindow,
		ContextLines:  DefaultContextLines,
		ActionMarkers: DefaultActionMarkers,
	}
}

func (c Correlator) window() int {
	if c.Window <= 0 {
		return DefaultWindow
	}
	return c.Window
}

func (c Correlator) contextLines() int {
	if c.ContextLines < 0 {
		return DefaultContextLines
	}
	return c.ContextLines
}

func (c Correlator) markers() []string {
	if len(c.ActionMarkers) == 0 {
		return DefaultActionMarkers
	}
	return c.ActionMarkers
}

// Correlate evaluates every occurrence and returns findings in the same
// order.
func (c Correlator) Correlate(t transcript.Text, occurrences []extract.ErrorOccurrence) []Finding {
	findings := make([]Finding, 0, len(occurrences))
	for _, occ := range occurrences {
		findings = append(findings, Finding{
			Occurrence: occ,
			Context:    c.Context(t, occ.Text),
			Link:       c.Resolve(t, occ.Text),
		})
	}
	return findings
}

// Resolve looks for a resolution after each position of errText. The
// first occurrence that yields a snippet resolves the whole error text.
func (c Correlator) Resolve(t transcript.Text, errText string) Link {
	for _, offset := range t.Offsets(errText) {
		if snippet, ok := c.resolveAt(t, t.LineAt(offset)); ok {
			return Link{Error: errText, Snippet: snippet, Resolved: true}
		}
	}
	return Link{Error: errText}
}

// resolveAt scans lines idx+1..idx+window for the first resolution phrase,
// then walks back toward idx for the nearest action line.
func (c Correlator) resolveAt(t transcript.Text, idx int) (string, bool) {
	last := idx + c.window()
	if last >= t.NumLines() {
		last = t.NumLines() - 1
	}

	hit := -1
	for i := idx + 1; i <= last; i++ {
		if extract.SolvedPattern.MatchString(t.Line(i)) {
			hit = i
			break
		}
	}
	if hit < 0 {
		return "", false
	}

	for i := hit - 1; i > idx; i-- {
		if c.isAction(t.Line(i)) {
			return t.Join(i, hit), true
		}
	}
	return "", false
}

func (c Correlator) isAction(line string) bool {
	for _, m := range c.markers() {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// Context returns the lines surrounding the first occurrence of errText,
// or errText itself when it does not occur.
func (c Correlator) Context(t transcript.Text, errText string) string {
	offsets := t.Offsets(errText)
	if len(offsets) == 0 {
		return errText
	}
	first := t.LineAt(offsets[0])
	end := t.LineAt(offsets[0] + len(errText) - 1)
	n := c.contextLines()
	return t.Join(first-n, end+n)
}

// Unresolved counts findings without a resolution link.
func Unresolved(findings []Finding) int {
	n := 0
	for _, f := range findings {
		if !f.Link.Resolved {
			n++
		}
	}
	return n
}
