package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/suykerbuyk/wrapup/internal/sanitize"
)

// FlattenFile reads a Claude Code JSONL transcript and flattens it to text.
func FlattenFile(path string) (Text, error) {
	f, err := os.Open(path)
	if err != nil {
		return Text{}, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()
	return Flatten(f)
}

// Flatten converts a JSONL transcript into plain text, one role-prefixed
// line per message block. Tool calls become action-marker lines so the
// correlator can find the edit or command behind a fix.
func Flatten(r io.Reader) (Text, error) {
	var b strings.Builder
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024) // 10MB max line

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			// Skip unparseable lines rather than failing the whole transcript
			continue
		}
		if entry.Type == "file-history-snapshot" || entry.Type == "progress" || entry.IsMeta {
			continue
		}
		writeEntry(&b, entry)
	}

	if err := scanner.Err(); err != nil {
		return Text{}, fmt.Errorf("scan transcript: %w", err)
	}
	return New(strings.TrimRight(b.String(), "\n")), nil
}

func writeEntry(b *strings.Builder, e Entry) {
	if e.Message == nil {
		return
	}
	for _, block := range ContentBlocks(e.Message) {
		switch block.Type {
		case "text":
			text := sanitize.StripTags(block.Text)
			if text == "" {
				continue
			}
			fmt.Fprintf(b, "%s: %s\n", e.Message.Role, text)
		case "tool_use":
			b.WriteString(toolLine(block))
			b.WriteByte('\n')
		case "tool_result":
			if block.IsError {
				fmt.Fprintf(b, "tool error: %s\n", firstLine(resultText(block.Content)))
			}
		}
	}
}

// toolLine renders a tool call as an action-marker line.
func toolLine(tu ContentBlock) string {
	switch tu.Name {
	case "Write", "Edit", "MultiEdit":
		return EditMarker + " " + inputStr(tu.Input, "file_path")
	case "NotebookEdit":
		return EditMarker + " " + inputStr(tu.Input, "notebook_path")
	case "Bash":
		return CommandMarker + " " + firstLine(inputStr(tu.Input, "command"))
	default:
		return "tool " + tu.Name
	}
}

// ContentBlocks extracts typed content blocks from a message.
// Handles both string content and array content.
func ContentBlocks(msg *Message) []ContentBlock {
	if msg == nil {
		return nil
	}

	switch c := msg.Content.(type) {
	case string:
		return []ContentBlock{{Type: "text", Text: c}}
	case []interface{}:
		var blocks []ContentBlock
		for _, item := range c {
			m, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			raw, err := json.Marshal(m)
			if err != nil {
				continue
			}
			var block ContentBlock
			if err := json.Unmarshal(raw, &block); err != nil {
				continue
			}
			blocks = append(blocks, block)
		}
		return blocks
	}
	return nil
}

// resultText pulls the text out of a tool_result content value.
func resultText(content interface{}) string {
	switch c := content.(type) {
	case string:
		return c
	case []interface{}:
		for _, item := range c {
			if m, ok := item.(map[string]interface{}); ok {
				if text, ok := m["text"].(string); ok {
					return text
				}
			}
		}
	}
	return ""
}

func inputStr(input interface{}, key string) string {
	m, ok := input.(map[string]interface{})
	if !ok {
		return ""
	}
	v, _ := m[key].(string)
	return v
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx > 0 {
		return s[:idx]
	}
	return s
}
