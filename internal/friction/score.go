package friction

import "math"

// Signal weights and thresholds for friction scoring.
const (
	weightUnresolved  = 35
	weightFrustration = 25
	weightAttempts    = 20
	weightErrors      = 20

	thresholdUnresolvedRatio    = 0.50
	thresholdFrustrationDensity = 2.0
	thresholdAttemptRatio       = 0.75
	thresholdErrorDensity       = 5.0
)

// Score computes the composite friction score from signals.
// Returns 0-100 where higher means more friction.
func Score(s Signals) int {
	raw := clamp(s.UnresolvedRatio/thresholdUnresolvedRatio)*weightUnresolved +
		clamp(s.FrustrationDensity/thresholdFrustrationDensity)*weightFrustration +
		clamp(s.AttemptRatio/thresholdAttemptRatio)*weightAttempts +
		clamp(s.ErrorDensity/thresholdErrorDensity)*weightErrors

	score := int(math.Round(raw))
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// clamp limits a value to [0, 1].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
