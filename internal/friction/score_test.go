package friction

import (
	"strings"
	"testing"
)

func TestScore_ZeroSignals(t *testing.T) {
	if score := Score(Signals{}); score != 0 {
		t.Errorf("expected 0, got %d", score)
	}
}

func TestScore_MaxSignals(t *testing.T) {
	s := Signals{
		UnresolvedRatio:    1,
		FrustrationDensity: 10,
		AttemptRatio:       1,
		ErrorDensity:       50,
	}
	if score := Score(s); score != 100 {
		t.Errorf("expected 100, got %d", score)
	}
}

func TestScore_SingleSignals(t *testing.T) {
	tests := []struct {
		name string
		s    Signals
		want int
	}{
		{"unresolved", Signals{UnresolvedRatio: 0.5}, weightUnresolved},
		{"frustration", Signals{FrustrationDensity: 2}, weightFrustration},
		{"attempts", Signals{AttemptRatio: 0.75}, weightAttempts},
		{"errors", Signals{ErrorDensity: 5}, weightErrors},
		{"half unresolved threshold", Signals{UnresolvedRatio: 0.25}, 18},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.s); got != tt.want {
				t.Errorf("Score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWeightsSum(t *testing.T) {
	if sum := weightUnresolved + weightFrustration + weightAttempts + weightErrors; sum != 100 {
		t.Errorf("weights sum to %d, want 100", sum)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0}, {0, 0}, {0.5, 0.5}, {1, 1}, {3, 1},
	}
	for _, tt := range tests {
		if got := clamp(tt.in); got != tt.want {
			t.Errorf("clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAnalyze_Empty(t *testing.T) {
	r := Analyze(Input{})
	if r.Score != 0 {
		t.Errorf("expected 0 score, got %d", r.Score)
	}
	if len(r.Summary) != 0 {
		t.Errorf("expected no summary, got %v", r.Summary)
	}
}

func TestAnalyze_RoughSession(t *testing.T) {
	r := Analyze(Input{
		Lines:          20,
		ErrorMatches:   4,
		DistinctErrors: 2,
		Unresolved:     2,
		Markers:        2,
		Attempts:       3,
		Solved:         1,
	})
	if r.Signals.UnresolvedRatio != 1 {
		t.Errorf("UnresolvedRatio = %v, want 1", r.Signals.UnresolvedRatio)
	}
	if r.Signals.ErrorDensity != 20 {
		t.Errorf("ErrorDensity = %v, want 20", r.Signals.ErrorDensity)
	}
	if r.Signals.AttemptRatio != 0.75 {
		t.Errorf("AttemptRatio = %v, want 0.75", r.Signals.AttemptRatio)
	}
	if r.Score != 100 {
		t.Errorf("Score = %d, want 100", r.Score)
	}
	joined := strings.Join(r.Summary, "\n")
	for _, want := range []string{
		"2 of 2 distinct errors unresolved",
		"2 frustration markers",
		"75% of solution phrases were tentative",
		"20.0 error mentions per 100 lines",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("summary missing %q:\n%s", want, joined)
		}
	}
}

func TestAnalyze_ResolvedSession(t *testing.T) {
	r := Analyze(Input{
		Lines:          100,
		ErrorMatches:   1,
		DistinctErrors: 1,
		Unresolved:     0,
		Solved:         1,
	})
	if r.Signals.UnresolvedRatio != 0 {
		t.Errorf("UnresolvedRatio = %v, want 0", r.Signals.UnresolvedRatio)
	}
	if r.Score != 4 {
		t.Errorf("Score = %d, want 4", r.Score)
	}
}
