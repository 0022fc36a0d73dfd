package transcript

// Entry is a single line of a Claude Code JSONL transcript. Only the
// fields needed to flatten the conversation are decoded.
type Entry struct {
	Type      string   `json:"type"`
	UUID      string   `json:"uuid"`
	SessionID string   `json:"sessionId"`
	CWD       string   `json:"cwd"`
	Message   *Message `json:"message,omitempty"`

	// IsMeta marks system-injected messages (CLAUDE.md, context reminders).
	IsMeta bool `json:"isMeta,omitempty"`
}

// Message is the inner message object on user/assistant entries.
type Message struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"` // string or []ContentBlock
}

// ContentBlock represents one block in a content array.
type ContentBlock struct {
	Type      string      `json:"type"`
	Text      string      `json:"text,omitempty"`
	ID        string      `json:"id,omitempty"`          // tool_use id
	Name      string      `json:"name,omitempty"`        // tool name
	Input     interface{} `json:"input,omitempty"`       // tool input
	ToolUseID string      `json:"tool_use_id,omitempty"` // tool_result
	Content   interface{} `json:"content,omitempty"`     // tool_result content (string or array)
	IsError   bool        `json:"is_error,omitempty"`
}

// Action markers written into flattened transcripts. The correlator treats
// lines carrying them as the action that produced a fix.
const (
	EditMarker    = "edit_file"
	CommandMarker = "run_terminal_cmd"
)
