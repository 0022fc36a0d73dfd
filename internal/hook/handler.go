package hook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/suykerbuyk/wrapup/internal/config"
	"github.com/suykerbuyk/wrapup/internal/correlate"
	"github.com/suykerbuyk/wrapup/internal/session"
	"github.com/suykerbuyk/wrapup/internal/source"
	"github.com/suykerbuyk/wrapup/internal/transcript"
)

// Input is the JSON object Claude Code sends to hooks via stdin.
type Input struct {
	SessionID      string `json:"session_id"`
	TranscriptPath string `json:"transcript_path"`
	HookEventName  string `json:"hook_event_name"`
	CWD            string `json:"cwd"`
	Reason         string `json:"reason,omitempty"`
}

// stdinTimeout bounds how long the hook waits for its JSON payload.
const stdinTimeout = 2 * time.Second

// Handle reads hook input from stdin and processes it. Status lines go
// to stderr so they never mix with agent-visible output.
func Handle(ctx context.Context, cfg config.Config, event string, stdin io.Reader, stderr io.Writer) error {
	input, err := readInput(stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	return handleInput(ctx, input, event, cfg, stderr)
}

func handleInput(ctx context.Context, input *Input, event string, cfg config.Config, stderr io.Writer) error {
	// Use event override if provided (e.g., --event SessionEnd)
	if event != "" {
		input.HookEventName = event
	}

	// Skip context clears
	if input.Reason == "clear" {
		return nil
	}

	switch input.HookEventName {
	case "SessionEnd", "":
		return handleSessionEnd(ctx, input, cfg, stderr)
	case "Stop", "PreCompact":
		// Mid-session events carry a partial transcript; the summary waits
		// for SessionEnd.
		return nil
	default:
		return fmt.Errorf("unknown hook event: %s", input.HookEventName)
	}
}

func readInput(r io.Reader) (*Input, error) {
	done := make(chan []byte, 1)
	errCh := make(chan error, 1)

	go func() {
		data, err := io.ReadAll(r)
		if err != nil {
			errCh <- err
			return
		}
		done <- data
	}()

	var data []byte
	select {
	case data = <-done:
	case err := <-errCh:
		return nil, err
	case <-time.After(stdinTimeout):
		return nil, fmt.Errorf("stdin read timeout")
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("empty stdin")
	}

	var input Input
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("parse stdin JSON: %w", err)
	}

	return &input, nil
}

func handleSessionEnd(ctx context.Context, input *Input, cfg config.Config, stderr io.Writer) error {
	if input.TranscriptPath == "" {
		return fmt.Errorf("no transcript_path in hook input")
	}

	text, err := transcript.FlattenFile(input.TranscriptPath)
	if err != nil {
		return err
	}

	var dir string
	if input.CWD != "" {
		dir = session.Detect(input.CWD).Root
	}

	result, err := session.Summarize(ctx, source.Context{Text: text, Origin: source.OriginTranscript}, session.Options{
		Config: cfg,
		Dir:    dir,
	})
	if err != nil {
		return fmt.Errorf("summarize session: %w", err)
	}

	fmt.Fprintf(stderr, "wrapup: %d errors (%d unresolved) → %s\n",
		len(result.Report.Findings),
		correlate.Unresolved(result.Report.Findings),
		config.CompressHome(result.LogPath))
	return nil
}
