package help

import "strings"

// Version is the wrapup release version, set at build time via -ldflags.
// Defaults to "dev" when built without version injection (e.g. `go run`).
var Version = "dev"

// Flag describes a command-line flag.
type Flag struct {
	Name string // e.g. "--history <path>"
	Desc string
}

// Arg describes a positional argument.
type Arg struct {
	Name     string
	Desc     string
	Optional bool
}

// Command describes a wrapup subcommand (or the top-level binary when Name is "").
type Command struct {
	Name        string // "summarize", "hook", etc; "" for top-level
	Synopsis    string // one-line description (lowercase, for --help header)
	Brief       string // short description for usage table (capitalized)
	Usage       string // full usage line
	TableUsage  string // shortened usage for the top-level table (if different from Usage)
	Args        []Arg
	Flags       []Flag
	Description string   // multi-line prose (stored verbatim)
	Examples    []string // one per line, without leading 2-space indent
	SeeAlso     []string // man page cross-refs, e.g. "wrapup(1)"
}

func (c Command) tableUsage() string {
	if c.TableUsage != "" {
		return c.TableUsage
	}
	return c.Usage
}

// ManName returns the man page name: "wrapup" for top-level, "wrapup-<name>"
// for subcommands ("hook install" → "wrapup-hook-install").
func (c Command) ManName() string {
	if c.Name == "" {
		return "wrapup"
	}
	return "wrapup-" + strings.ReplaceAll(c.Name, " ", "-")
}

// TopLevel is the top-level wrapup command (used by FormatUsage).
var TopLevel = Command{
	Synopsis: "end-of-session transcript summary",
}

var CmdSummarize = Command{
	Name:       "summarize",
	Synopsis:   "summarize the current session transcript",
	Brief:      "Summarize the session (default command)",
	Usage:      "wrapup [summarize] [--history <path>] [--window <n>] [--no-snapshot]",
	TableUsage: "wrapup [summarize]",
	Flags: []Flag{
		{Name: "--history <path>", Desc: "History file to read when nothing else supplies a transcript"},
		{Name: "--window <n>", Desc: "Lines scanned after an error for a resolution (default: 5)"},
		{Name: "--no-snapshot", Desc: "Skip the git diff and tree sections"},
	},
	Description: `Reads the transcript from $CURSOR_CONTEXT, then piped stdin, then the
history file, and reports which errors were resolved and by what.

Prints a summary, appends a dated section to .wrapup/bugfixes.md, and
rewrites .wrapup/last_session_summary.md. A history file ending in .zst
is decompressed; one ending in .jsonl is read as a Claude Code transcript.`,
	Examples: []string{
		"wrapup                                  Summarize from env, stdin, or history",
		"pbpaste | wrapup                        Summarize a pasted transcript",
		"wrapup --history session.jsonl.zst      Summarize an archived transcript",
	},
	SeeAlso: []string{"wrapup(1)", "wrapup-watch(1)", "wrapup-hook(1)"},
}

var CmdHook = Command{
	Name:       "hook",
	Synopsis:   "Claude Code hook handler",
	Brief:      "Hook mode (reads stdin from Claude Code)",
	Usage:      "wrapup hook [install | uninstall | --event <name>]",
	TableUsage: "wrapup hook [install | ...]",
	Flags: []Flag{
		{Name: "--event <name>", Desc: "Override the hook event type (default: read from stdin)"},
	},
	Description: `Reads a JSON payload from stdin as delivered by Claude Code's hook
system. On SessionEnd the transcript at transcript_path is summarized
into the project the session ran in. Stop and PreCompact are ignored;
clear events are skipped.

This command is meant to be called by Claude Code, not directly.

Subcommands:
  wrapup hook install     Add the hook to ~/.claude/settings.json
  wrapup hook uninstall   Remove the hook from ~/.claude/settings.json`,
	SeeAlso: []string{"wrapup(1)", "wrapup-hook-install(1)", "wrapup-hook-uninstall(1)"},
}

var CmdWatch = Command{
	Name:     "watch",
	Synopsis: "re-summarize whenever the history file changes",
	Brief:    "Re-run the summary on history changes",
	Usage:    "wrapup watch [--history <path>]",
	Flags: []Flag{
		{Name: "--history <path>", Desc: "History file to watch (default: .conversation_history)"},
	},
	Description: `Watches the history file and runs one summary each time it settles
after a write. Runs never overlap. Stop with Ctrl-C.`,
	SeeAlso: []string{"wrapup(1)", "wrapup-summarize(1)"},
}

var CmdCheck = Command{
	Name:     "check",
	Synopsis: "validate config, outputs, and tools",
	Brief:    "Validate config, outputs, and tools",
	Usage:    "wrapup check",
	Description: `Runs diagnostic checks and prints a pass/warn/FAIL report:
  - Config file location
  - History file size and age
  - Bugfix log session count
  - Last snapshot frontmatter
  - Snapshot tools on PATH (git, tree)
  - Transcript archive
  - Claude Code hook setup in ~/.claude/settings.json

Exit code 0 if all checks pass or warn, 1 if any check fails.`,
	SeeAlso: []string{"wrapup(1)", "wrapup-init(1)"},
}

var CmdInit = Command{
	Name:     "init",
	Synopsis: "write a default config file",
	Brief:    "Write ~/.config/wrapup/config.toml",
	Usage:    "wrapup init",
	Description: `Writes a commented default configuration to
~/.config/wrapup/config.toml (or $XDG_CONFIG_HOME/wrapup/config.toml).
An existing file is left untouched.`,
	SeeAlso: []string{"wrapup(1)", "wrapup-check(1)"},
}

var CmdVersion = Command{
	Name:     "version",
	Synopsis: "print version",
	Brief:    "Print version",
	Usage:    "wrapup version",
	SeeAlso:  []string{"wrapup(1)"},
}

var CmdHookInstall = Command{
	Name:     "hook install",
	Synopsis: "add the wrapup hook to Claude Code settings",
	Brief:    "Add the wrapup hook to settings.json",
	Usage:    "wrapup hook install",
	Description: `Adds a SessionEnd hook entry to ~/.claude/settings.json so that
Claude Code calls wrapup when each session ends.

Creates the settings file if needed and preserves all other settings.
A backup is saved to settings.json.wrapup.bak before any change.
Running it again is a no-op.`,
	SeeAlso: []string{"wrapup(1)", "wrapup-hook(1)", "wrapup-hook-uninstall(1)"},
}

var CmdHookUninstall = Command{
	Name:     "hook uninstall",
	Synopsis: "remove the wrapup hook from Claude Code settings",
	Brief:    "Remove the wrapup hook from settings.json",
	Usage:    "wrapup hook uninstall",
	Description: `Removes hook entries running "wrapup hook" from ~/.claude/settings.json,
then drops any hook arrays left empty. A backup is saved to
settings.json.wrapup.bak before any change. Running it again is a no-op.`,
	SeeAlso: []string{"wrapup(1)", "wrapup-hook(1)", "wrapup-hook-install(1)"},
}

// HookSubcommands is the ordered list of hook sub-subcommands.
var HookSubcommands = []Command{
	CmdHookInstall,
	CmdHookUninstall,
}

// Subcommands is the ordered list of all subcommands.
var Subcommands = []Command{
	CmdSummarize,
	CmdHook,
	CmdWatch,
	CmdCheck,
	CmdInit,
	CmdVersion,
}

// Lookup finds a subcommand or hook sub-subcommand by name.
func Lookup(name string) (Command, bool) {
	for _, list := range [][]Command{Subcommands, HookSubcommands} {
		for _, c := range list {
			if c.Name == name {
				return c, true
			}
		}
	}
	return Command{}, false
}
