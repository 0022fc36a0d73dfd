package extract

import (
	"regexp"
	"sort"

	"github.com/suykerbuyk/wrapup/internal/transcript"
)

// Each trigger is extended through the end of its statement; errors take
// one more statement, phrases up to two more.
const (
	statementTail = `[^\n.]*`
	phraseTail    = statementTail + `(?:[\n.][^\n.]*){0,2}`
)

var (
	errorPattern = regexp.MustCompile(`(?i)(?:error|exception|failed|failure)` + statementTail + `[\n.]` + statementTail)

	// SolvedPattern also serves as the resolution vocabulary for correlation.
	// "resolved" is covered by "solved".
	SolvedPattern = regexp.MustCompile(`(?i)that worked|fixed|solved`)

	tierPatterns = []struct {
		tier    Tier
		pattern *regexp.Regexp
	}{
		{Solved, regexp.MustCompile(`(?i)(?:that worked|fixed|solved)` + phraseTail)},
		{Tentative, regexp.MustCompile(`(?i)(?:let's try|try something|different approach)` + phraseTail)},
		{Uncertain, regexp.MustCompile(`(?i)(?:this might|maybe|could try)` + phraseTail)},
	}
)

// Errors returns every error-like span in the transcript, in order,
// duplicates included.
func Errors(t transcript.Text) []string {
	return errorPattern.FindAllString(t.String(), -1)
}

// Group collapses exact duplicates into occurrences, most frequent first.
// Ties keep the order of first appearance.
func Group(matches []string) []ErrorOccurrence {
	index := make(map[string]int)
	var groups []ErrorOccurrence
	for _, m := range matches {
		if i, ok := index[m]; ok {
			groups[i].Count++
			continue
		}
		index[m] = len(groups)
		groups = append(groups, ErrorOccurrence{Text: m, Count: 1})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})
	return groups
}

// Phrases runs each tier scan independently over the transcript. Results
// are ordered by tier, then by position; a span containing several
// vocabularies is reported once per tier.
func Phrases(t transcript.Text) []Phrase {
	var phrases []Phrase
	for _, tp := range tierPatterns {
		for _, m := range tp.pattern.FindAllString(t.String(), -1) {
			phrases = append(phrases, Phrase{Tier: tp.tier, Text: m})
		}
	}
	return phrases
}

// ByTier filters phrases to the given tiers, preserving order.
func ByTier(phrases []Phrase, tiers ...Tier) []Phrase {
	var out []Phrase
	for _, p := range phrases {
		for _, t := range tiers {
			if p.Tier == t {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
