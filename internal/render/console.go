package render

import (
	"fmt"
	"strings"
)

// Console renders the plain-text summary printed after each run.
func Console(r Report) string {
	var b strings.Builder

	b.WriteString("\n=== Session Summary ===\n\n")
	fmt.Fprintf(&b, "Session Date: %s\n", r.date())

	if r.Friction.Score > 0 {
		fmt.Fprintf(&b, "\nFriction Score: %d/100\n", r.Friction.Score)
		for _, s := range r.Friction.Summary {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
	}

	if solved := r.Solved(); len(solved) > 0 {
		b.WriteString("\nCompleted Changes:\n")
		for _, p := range solved {
			fmt.Fprintf(&b, "✓ %s\n", p.Text)
		}
	}

	if attempts := r.Attempts(); len(attempts) > 0 {
		b.WriteString("\nIn Progress/Attempted Changes:\n")
		for _, p := range attempts {
			fmt.Fprintf(&b, "%s %s\n", p.Tier.Marker(), p.Text)
		}
	}

	if outstanding := r.Outstanding(); len(outstanding) > 0 {
		b.WriteString("\nOutstanding Issues:\n")
		for _, f := range outstanding {
			fmt.Fprintf(&b, "! %s (occurred %d times)\n", f.Occurrence.Text, f.Occurrence.Count)
		}
	}

	b.WriteString("\nNext Steps:\n")
	for i, s := range r.NextSteps() {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}

	return b.String()
}
