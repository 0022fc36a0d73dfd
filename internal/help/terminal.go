package help

import (
	"fmt"
	"strings"
)

// FormatTerminal renders a subcommand's help text for terminal --help output.
func FormatTerminal(c Command) string {
	var sections []string

	sections = append(sections, fmt.Sprintf("wrapup %s — %s", c.Name, c.Synopsis))
	sections = append(sections, "Usage: "+c.Usage)

	// Args and flags share one description column.
	maxNameLen := 0
	for _, a := range c.Args {
		maxNameLen = max(maxNameLen, len(a.Name))
	}
	for _, f := range c.Flags {
		maxNameLen = max(maxNameLen, len(f.Name))
	}
	col := maxNameLen + 3

	if len(c.Args) > 0 {
		var b strings.Builder
		b.WriteString("Arguments:")
		for _, a := range c.Args {
			fmt.Fprintf(&b, "\n  %-*s%s", col, a.Name, a.Desc)
		}
		sections = append(sections, b.String())
	}

	if len(c.Flags) > 0 {
		var b strings.Builder
		b.WriteString("Flags:")
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "\n  %-*s%s", col, f.Name, f.Desc)
		}
		sections = append(sections, b.String())
	}

	if c.Description != "" {
		sections = append(sections, c.Description)
	}

	if len(c.Examples) > 0 {
		sections = append(sections, "Examples:\n  "+strings.Join(c.Examples, "\n  "))
	}

	return strings.Join(sections, "\n\n") + "\n"
}

// FormatUsage renders the top-level usage text (for wrapup --help / wrapup help).
func FormatUsage(top Command, subs []Command) string {
	var b strings.Builder

	fmt.Fprintf(&b, "wrapup v%s — %s\n", Version, top.Synopsis)
	b.WriteString("\nUsage:\n")

	type entry struct {
		usage string
		brief string
	}
	entries := make([]entry, 0, len(subs)+1)
	for _, s := range subs {
		entries = append(entries, entry{s.tableUsage(), s.Brief})
	}
	entries = append(entries, entry{"wrapup help [command]", "Show help"})

	maxWidth := 0
	for _, e := range entries {
		maxWidth = max(maxWidth, len(e.usage))
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxWidth, e.usage, e.brief)
	}

	b.WriteString(`
Transcript sources, first match wins:
  $CURSOR_CONTEXT, piped stdin, .conversation_history

Configuration: ~/.config/wrapup/config.toml
`)
	return b.String()
}
