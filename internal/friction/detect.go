package friction

import (
	"regexp"

	"github.com/suykerbuyk/wrapup/internal/transcript"
)

// A shouted run must open with a capital so indentation and blank runs
// never count.
var frustrationPattern = regexp.MustCompile(`(?:[A-Z][A-Z !]{3,}|(?i:damn|shit|fuck|crap))[^\n.]*`)

// DetectFrustration returns the distinct frustration markers in the
// transcript, in order of first appearance.
func DetectFrustration(t transcript.Text) []Marker {
	seen := make(map[string]bool)
	var markers []Marker
	for _, m := range frustrationPattern.FindAllString(t.String(), -1) {
		if seen[m] {
			continue
		}
		seen[m] = true
		markers = append(markers, Marker{Text: m})
	}
	return markers
}
