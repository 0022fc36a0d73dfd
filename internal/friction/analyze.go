package friction

import "fmt"

// Analyze derives friction signals, score, and summary lines from one
// transcript's findings.
func Analyze(in Input) Result {
	lines := in.Lines
	if lines == 0 {
		lines = 1 // avoid division by zero
	}

	var s Signals
	if in.DistinctErrors > 0 {
		s.UnresolvedRatio = float64(in.Unresolved) / float64(in.DistinctErrors)
	}
	if total := in.Attempts + in.Solved; total > 0 {
		s.AttemptRatio = float64(in.Attempts) / float64(total)
	}
	s.FrustrationDensity = float64(in.Markers) * 100 / float64(lines)
	s.ErrorDensity = float64(in.ErrorMatches) * 100 / float64(lines)

	return Result{
		Score:   Score(s),
		Signals: s,
		Summary: buildSummary(s, in),
	}
}

// buildSummary generates human-readable signal descriptions.
func buildSummary(s Signals, in Input) []string {
	var lines []string

	if in.Unresolved > 0 {
		lines = append(lines, fmt.Sprintf("%d of %d distinct errors unresolved", in.Unresolved, in.DistinctErrors))
	}
	if s.FrustrationDensity >= thresholdFrustrationDensity/2 {
		lines = append(lines, fmt.Sprintf("%d frustration markers (%.1f per 100 lines)", in.Markers, s.FrustrationDensity))
	}
	if in.Attempts > 0 && s.AttemptRatio > 0.5 {
		lines = append(lines, fmt.Sprintf("%.0f%% of solution phrases were tentative", s.AttemptRatio*100))
	}
	if s.ErrorDensity > thresholdErrorDensity {
		lines = append(lines, fmt.Sprintf("%.1f error mentions per 100 lines", s.ErrorDensity))
	}

	return lines
}
