package render

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/suykerbuyk/wrapup/internal/snapshot"
)

// NoResolution marks an error with no resolution snippet in the log.
const NoResolution = "⚠️ No clear resolution found"

// Frontmatter is the YAML header of the snapshot file.
type Frontmatter struct {
	Date          string `yaml:"date"`
	RunID         string `yaml:"run_id"`
	Origin        string `yaml:"origin"`
	Errors        int    `yaml:"errors"`
	Unresolved    int    `yaml:"unresolved"`
	FrictionScore int    `yaml:"friction_score"`
}

// LogSection renders the dated section appended to the bugfix log.
func LogSection(r Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n\n## Session %s\n", r.date())
	if r.RunID != "" {
		fmt.Fprintf(&b, "\nRun: `%s`\n", r.RunID)
	}

	if len(r.Findings) > 0 || len(r.Frustration) > 0 {
		b.WriteString("\n### Issues Found\n")

		for _, f := range r.Findings {
			fmt.Fprintf(&b, "\n#### Error (occurred %d times):\n", f.Occurrence.Count)
			writeFence(&b, f.Context)
			if f.Link.Resolved {
				b.WriteString("\nResolution:\n")
				writeFence(&b, f.Link.Snippet)
			} else {
				fmt.Fprintf(&b, "\n%s\n", NoResolution)
			}
		}

		if len(r.Frustration) > 0 {
			b.WriteString("\n#### Frustration Points:\n")
			for _, m := range r.Frustration {
				fmt.Fprintf(&b, "- %s\n", m.Text)
			}
		}
	}

	if len(r.Phrases) > 0 {
		b.WriteString("\n### Solutions and Attempts:\n")
		for _, p := range r.Solved() {
			fmt.Fprintf(&b, "- %s: %s\n", p.Tier.Marker(), p.Text)
		}
		for _, p := range r.Attempts() {
			fmt.Fprintf(&b, "- %s %s\n", p.Tier.Marker(), p.Text)
		}
	}

	return b.String()
}

// Snapshot renders the overwrite-in-place summary of the latest run.
// snaps holds whichever external views were captured.
func Snapshot(r Report, snaps []snapshot.Snapshot) (string, error) {
	fm, err := yaml.Marshal(Frontmatter{
		Date:          r.date(),
		RunID:         r.RunID,
		Origin:        r.Origin,
		Errors:        len(r.Findings),
		Unresolved:    len(r.Outstanding()),
		FrictionScore: r.Friction.Score,
	})
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")

	b.WriteString("# Last Session Summary\n\n")
	fmt.Fprintf(&b, "Session Date: %s\n\n", r.date())

	for _, s := range snaps {
		fmt.Fprintf(&b, "## %s\n", s.Title)
		writeFence(&b, s.Body)
		b.WriteString("\n")
	}

	solved, attempts, outstanding := r.Solved(), r.Attempts(), r.Outstanding()
	if len(solved) > 0 || len(attempts) > 0 || len(outstanding) > 0 || r.Friction.Score > 0 {
		b.WriteString("## Session Overview\n")

		if r.Friction.Score > 0 {
			fmt.Fprintf(&b, "\nFriction score: %d/100\n", r.Friction.Score)
			for _, s := range r.Friction.Summary {
				fmt.Fprintf(&b, "- %s\n", s)
			}
		}
		if len(solved) > 0 {
			b.WriteString("\n### Completed Changes\n")
			for _, p := range solved {
				fmt.Fprintf(&b, "- %s\n", p.Text)
			}
		}
		if len(attempts) > 0 {
			b.WriteString("\n### In Progress/Attempted Changes\n")
			for _, p := range attempts {
				fmt.Fprintf(&b, "- %s %s\n", p.Tier.Marker(), p.Text)
			}
		}
		if len(outstanding) > 0 {
			b.WriteString("\n### Outstanding Issues\n")
			for _, f := range outstanding {
				fmt.Fprintf(&b, "- %s (occurred %d times)\n", f.Occurrence.Text, f.Occurrence.Count)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("## Next Steps\n")
	for i, s := range r.NextSteps() {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}

	return b.String(), nil
}

// ParseFrontmatter reads the YAML header back from a snapshot file.
func ParseFrontmatter(content []byte) (Frontmatter, error) {
	var fm Frontmatter
	rest, ok := bytes.CutPrefix(content, []byte("---\n"))
	if !ok {
		return fm, fmt.Errorf("no frontmatter")
	}
	end := bytes.Index(rest, []byte("\n---\n"))
	if end < 0 {
		return fm, fmt.Errorf("unterminated frontmatter")
	}
	if err := yaml.Unmarshal(rest[:end], &fm); err != nil {
		return fm, fmt.Errorf("parse frontmatter: %w", err)
	}
	return fm, nil
}

func writeFence(b *strings.Builder, body string) {
	b.WriteString("```\n")
	b.WriteString(body)
	b.WriteString("\n```\n")
}
