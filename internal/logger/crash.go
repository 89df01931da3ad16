// Package logger provides the structured logger and crash reports for taskvoice.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	// CrashLogDir is the directory for crash reports, relative to the project root.
	CrashLogDir = ".taskvoice/crash_logs"

	// MaxCrashLogs is how many crash reports are kept.
	MaxCrashLogs = 10
)

// crashState records what the process was doing when a panic happened.
type crashState struct {
	mu        sync.RWMutex
	rootDir   string
	version   string
	command   string
	lastTool  string
	lastInput string
}

var state = &crashState{}

// SetRootDir sets the project root under which crash reports are written.
func SetRootDir(dir string) {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.rootDir = dir
}

// SetVersion records the build version in crash reports.
func SetVersion(version string) {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.version = version
}

// SetCommand records the command being executed.
func SetCommand(cmd string) {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.command = cmd
}

// SetLastToolCall records the most recent action invocation.
func SetLastToolCall(name, args string) {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.lastTool = truncate(name+" "+strings.TrimSpace(args), 1000)
}

// SetLastInput records the most recent user utterance.
func SetLastInput(input string) {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.lastInput = truncate(strings.TrimSpace(input), 500)
}

func truncate(value string, maxLen int) string {
	if len(value) <= maxLen {
		return value
	}
	return value[:maxLen] + "... [truncated]"
}

// CrashReport is the content of one crash log file.
type CrashReport struct {
	Timestamp  time.Time
	Version    string
	Command    string
	PanicValue string
	StackTrace string
	LastTool   string
	LastInput  string
	GoVersion  string
	Platform   string
}

// HandlePanic recovers a panic, writes a crash report and exits with status 1.
// Usage: defer logger.HandlePanic()
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}
	report := newCrashReport(r)
	path, err := WriteCrashReport(report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[CRASH] could not write crash log: %v\n", err)
		fmt.Fprintf(os.Stderr, "[CRASH] panic: %v\n%s\n", r, report.StackTrace)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\ntaskvoice crashed unexpectedly. A crash log was saved to:\n  %s\n", path)
	os.Exit(1)
}

func newCrashReport(panicValue any) CrashReport {
	state.mu.RLock()
	defer state.mu.RUnlock()

	return CrashReport{
		Timestamp:  time.Now(),
		Version:    state.version,
		Command:    state.command,
		PanicValue: fmt.Sprintf("%v", panicValue),
		StackTrace: string(debug.Stack()),
		LastTool:   state.lastTool,
		LastInput:  state.lastInput,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func crashDir() string {
	state.mu.RLock()
	root := state.rootDir
	state.mu.RUnlock()
	if root == "" {
		root = "."
	}
	return filepath.Join(root, CrashLogDir)
}

// WriteCrashReport writes report to the crash log directory, pruning old
// reports, and returns the file path.
func WriteCrashReport(report CrashReport) (string, error) {
	dir := crashDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create crash log dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("crash_%s.log", report.Timestamp.Format("20060102_150405.000")))
	if err := os.WriteFile(path, []byte(report.String()), 0o644); err != nil {
		return "", fmt.Errorf("write crash log: %w", err)
	}
	if err := pruneCrashLogs(dir, MaxCrashLogs); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] failed to prune crash logs: %v\n", err)
	}
	return path, nil
}

// String renders the report as plain text.
func (r CrashReport) String() string {
	var sb strings.Builder
	rule := strings.Repeat("-", 72) + "\n"

	sb.WriteString("TASKVOICE CRASH LOG\n")
	sb.WriteString(rule)
	fmt.Fprintf(&sb, "Timestamp: %s\n", r.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Version:   %s\n", r.Version)
	fmt.Fprintf(&sb, "Command:   %s\n", r.Command)
	fmt.Fprintf(&sb, "Go:        %s (%s)\n", r.GoVersion, r.Platform)
	sb.WriteString(rule)
	fmt.Fprintf(&sb, "Panic: %s\n\n%s", r.PanicValue, r.StackTrace)
	if r.LastTool != "" {
		sb.WriteString(rule)
		fmt.Fprintf(&sb, "Last tool call: %s\n", r.LastTool)
	}
	if r.LastInput != "" {
		sb.WriteString(rule)
		fmt.Fprintf(&sb, "Last input: %s\n", r.LastInput)
	}
	return sb.String()
}

// ListCrashLogs returns crash log paths, oldest first.
func ListCrashLogs() ([]string, error) {
	return crashLogFiles(crashDir())
}

func crashLogFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var logs []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "crash_") && strings.HasSuffix(e.Name(), ".log") {
			logs = append(logs, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(logs)
	return logs, nil
}

func pruneCrashLogs(dir string, keep int) error {
	logs, err := crashLogFiles(dir)
	if err != nil {
		return err
	}
	for len(logs) > keep {
		if err := os.Remove(logs[0]); err != nil {
			return fmt.Errorf("remove old crash log %s: %w", logs[0], err)
		}
		logs = logs[1:]
	}
	return nil
}
