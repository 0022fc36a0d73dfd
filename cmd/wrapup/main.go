package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/suykerbuyk/wrapup/internal/check"
	"github.com/suykerbuyk/wrapup/internal/config"
	"github.com/suykerbuyk/wrapup/internal/help"
	"github.com/suykerbuyk/wrapup/internal/hook"
	"github.com/suykerbuyk/wrapup/internal/session"
	"github.com/suykerbuyk/wrapup/internal/source"
	"github.com/suykerbuyk/wrapup/internal/watch"
)

func main() {
	cmd, args := command(os.Args[1:])

	if cmd != "help" && wantsHelp(args) {
		printHelp(helpTopic(cmd, args))
		return
	}

	switch cmd {
	case "summarize":
		runSummarize(args)

	case "hook":
		runHook(args)

	case "watch":
		runWatch(args)

	case "check":
		cfg := loadConfig()
		wd, _ := os.Getwd()
		report := check.Run(cfg, wd)
		fmt.Print(report.Format())
		if report.HasFailures() {
			os.Exit(1)
		}

	case "init":
		path, created, err := config.WriteDefault()
		if err != nil {
			fatal("init: %v", err)
		}
		if created {
			fmt.Printf("wrote %s\n", config.CompressHome(path))
		} else {
			fmt.Printf("config exists: %s\n", config.CompressHome(path))
		}

	case "version":
		fmt.Printf("wrapup v%s\n", help.Version)

	case "help":
		if len(args) > 0 {
			printHelp(strings.Join(args, " "))
		} else {
			fmt.Print(help.FormatUsage(help.TopLevel, help.Subcommands))
		}

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, help.FormatUsage(help.TopLevel, help.Subcommands))
		os.Exit(1)
	}
}

// command splits the argument list into a subcommand and its arguments.
// No arguments, or a leading flag, means summarize.
func command(args []string) (string, []string) {
	if len(args) == 0 {
		return "summarize", nil
	}
	switch a := args[0]; {
	case a == "--help" || a == "-h":
		return "help", nil
	case strings.HasPrefix(a, "-"):
		return "summarize", args
	default:
		return a, args[1:]
	}
}

func runSummarize(args []string) {
	cfg := loadConfig()
	history, window, err := summarizeFlags(args, cfg)
	if err != nil {
		fatal("%v", err)
	}
	cfg.Analysis.Window = window

	src := source.Resolver{
		EnvKey:      cfg.Context.Env,
		Stdin:       os.Stdin,
		HistoryPath: history,
	}.Resolve()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := session.Summarize(ctx, src, session.Options{
		Config:     cfg,
		Stdout:     os.Stdout,
		NoSnapshot: hasFlag(args, "--no-snapshot"),
	})
	if err != nil {
		fatal("%v", err)
	}
	fmt.Fprintf(os.Stderr, "wrapup: log → %s\n", res.LogPath)
	fmt.Fprintf(os.Stderr, "wrapup: snapshot → %s\n", res.SnapshotPath)
	if res.ArchivePath != "" {
		fmt.Fprintf(os.Stderr, "wrapup: archive → %s\n", res.ArchivePath)
	}
}

// summarizeFlags applies --history and --window over the config values.
func summarizeFlags(args []string, cfg config.Config) (string, int, error) {
	history := cfg.Context.HistoryFile
	if v := flagValue(args, "--history"); v != "" {
		history = v
	}

	window := cfg.Analysis.Window
	if v := flagValue(args, "--window"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return "", 0, fmt.Errorf("--window must be a positive integer, got %q", v)
		}
		window = n
	}
	return history, window, nil
}

func runHook(args []string) {
	if len(args) > 0 {
		switch args[0] {
		case "install":
			if err := hook.Install(os.Stdout); err != nil {
				fatal("hook install: %v", err)
			}
			return
		case "uninstall":
			if err := hook.Uninstall(os.Stdout); err != nil {
				fatal("hook uninstall: %v", err)
			}
			return
		}
	}

	cfg := loadConfig()
	event := flagValue(args, "--event")
	if err := hook.Handle(context.Background(), cfg, event, os.Stdin, os.Stderr); err != nil {
		fatal("%v", err)
	}
}

func runWatch(args []string) {
	cfg := loadConfig()
	history, _, err := summarizeFlags(args, cfg)
	if err != nil {
		fatal("%v", err)
	}

	run := func(ctx context.Context) error {
		src := source.Resolver{HistoryPath: history}.Resolve()
		res, err := session.Summarize(ctx, src, session.Options{Config: cfg, Stdout: os.Stdout})
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrapup: %d errors (%d unresolved) → %s\n",
			len(res.Report.Findings), len(res.Report.Outstanding()), res.LogPath)
		return nil
	}

	w, err := watch.New(history, watch.DefaultDebounce, run, os.Stderr)
	if err != nil {
		fatal("watch: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "wrapup: watching %s\n", history)
	if err := w.Run(ctx); err != nil {
		fatal("watch: %v", err)
	}
}

func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fatal("load config: %v", err)
	}
	return cfg
}

func printHelp(name string) {
	c, ok := help.Lookup(name)
	if !ok {
		fatal("no help for %q", name)
	}
	fmt.Print(help.FormatTerminal(c))
}

// helpTopic names the command whose help applies, so that
// "hook install --help" shows the install page.
func helpTopic(cmd string, args []string) string {
	if cmd == "hook" && len(args) > 0 && (args[0] == "install" || args[0] == "uninstall") {
		return "hook " + args[0]
	}
	return cmd
}

func wantsHelp(args []string) bool {
	return hasFlag(args, "--help") || hasFlag(args, "-h")
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func flagValue(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "wrapup: "+format+"\n", args...)
	os.Exit(1)
}
