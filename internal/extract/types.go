package extract

// Tier classifies a solution-like phrase by the vocabulary that matched it.
type Tier int

const (
	Solved Tier = iota
	Tentative
	Uncertain
)

func (t Tier) String() string {
	switch t {
	case Solved:
		return "solved"
	case Tentative:
		return "tentative"
	case Uncertain:
		return "uncertain"
	default:
		return "unknown"
	}
}

// Marker returns the prefix printed in front of the phrase in reports.
func (t Tier) Marker() string {
	switch t {
	case Solved:
		return "SOLVED"
	case Tentative:
		return "??"
	case Uncertain:
		return "?"
	default:
		return ""
	}
}

// Phrase is a matched solution or attempt span.
type Phrase struct {
	Tier Tier
	Text string
}

// ErrorOccurrence groups identical error matches. The matched text is the
// key: no normalization is applied before grouping.
type ErrorOccurrence struct {
	Text  string
	Count int
}
