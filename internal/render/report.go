package render

import (
	"time"

	"github.com/suykerbuyk/wrapup/internal/correlate"
	"github.com/suykerbuyk/wrapup/internal/extract"
	"github.com/suykerbuyk/wrapup/internal/friction"
)

// DateFormat is how session dates appear in every artifact.
const DateFormat = "2006-01-02 15:04"

// Report holds everything needed to render one session summary. It is
// built fresh per run.
type Report struct {
	Date        time.Time
	RunID       string
	Origin      string
	Findings    []correlate.Finding
	Frustration []friction.Marker
	Phrases     []extract.Phrase
	Friction    friction.Result
}

// Solved returns the SOLVED-tier phrases.
func (r Report) Solved() []extract.Phrase {
	return extract.ByTier(r.Phrases, extract.Solved)
}

// Attempts returns the tentative and uncertain phrases.
func (r Report) Attempts() []extract.Phrase {
	return extract.ByTier(r.Phrases, extract.Tentative, extract.Uncertain)
}

// Outstanding returns the findings with no resolution link.
func (r Report) Outstanding() []correlate.Finding {
	var out []correlate.Finding
	for _, f := range r.Findings {
		if !f.Link.Resolved {
			out = append(out, f)
		}
	}
	return out
}

// NextSteps lists the follow-up items. The generic continuation item is
// always present.
func (r Report) NextSteps() []string {
	var steps []string
	if len(r.Outstanding()) > 0 {
		steps = append(steps, "Address remaining errors")
	}
	if len(r.Attempts()) > 0 {
		steps = append(steps, "Follow up on attempted changes")
	}
	return append(steps, "Continue with planned development tasks")
}

func (r Report) date() string {
	return r.Date.Format(DateFormat)
}
