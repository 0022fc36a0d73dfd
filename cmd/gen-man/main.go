// Command gen-man writes roff man pages for wrapup and its subcommands.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/suykerbuyk/wrapup/internal/help"
)

func main() {
	dir := "man"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if err := generate(dir, time.Now().Format("2006-01-02")); err != nil {
		fmt.Fprintf(os.Stderr, "gen-man: %v\n", err)
		os.Exit(1)
	}
}

func generate(dir, date string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	if err := write(dir, "wrapup.1", help.FormatRoffTopLevel(help.TopLevel, help.Subcommands, date)); err != nil {
		return err
	}

	pages := append(append([]help.Command{}, help.Subcommands...), help.HookSubcommands...)
	for _, cmd := range pages {
		if err := write(dir, cmd.ManName()+".1", help.FormatRoff(cmd, date)); err != nil {
			return err
		}
	}
	return nil
}

func write(dir, name, content string) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Printf("  %s\n", path)
	return nil
}
