package sanitize

import (
	"regexp"
	"strings"
)

// Wrapper tags injected by agent frontends around user and tool text.
// Only the tags are removed; their content stays in the transcript.
var wrapperTagPattern = regexp.MustCompile(
	`</?(?:user_query|additional_data|attached_files|` +
		`local-command-(?:stdout|stderr|caveat)|command-(?:output|name|args|message)|` +
		`system-reminder|persisted-output|thinking|tool-use-id|task-notification)[^>]*>`,
)

var blankRunPattern = regexp.MustCompile(`\n{3,}`)

// StripTags removes agent wrapper tags from text and collapses the blank
// line runs they leave behind.
func StripTags(text string) string {
	text = wrapperTagPattern.ReplaceAllString(text, "")
	text = blankRunPattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
