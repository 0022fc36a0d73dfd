package friction

// Marker is a frustration cue: a shouted run of capitals or a profanity,
// with the rest of its statement.
type Marker struct {
	Text string
}

// Input carries the per-transcript counts friction is scored from.
type Input struct {
	Lines          int // transcript lines
	ErrorMatches   int // error spans, duplicates included
	DistinctErrors int
	Unresolved     int // distinct errors with no resolution link
	Markers        int // deduplicated frustration markers
	Solved         int // SOLVED phrases
	Attempts       int // tentative + uncertain phrases
}

// Signals holds the raw friction signal values before scoring.
type Signals struct {
	UnresolvedRatio    float64 // unresolved / distinct errors
	FrustrationDensity float64 // markers per 100 lines
	AttemptRatio       float64 // attempts / (attempts + solved)
	ErrorDensity       float64 // error matches per 100 lines
}

// Result holds the full friction analysis output.
type Result struct {
	Score   int // Composite friction score 0-100
	Signals Signals
	Summary []string // Human-readable signal descriptions
}
