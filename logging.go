package main

import (
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

const debugEnv = "JMEME_DEBUG"

// logger is silent unless JMEME_DEBUG is set; the TUI owns the terminal so
// log output goes to a file.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// setupLogging points logger at path when debugging is enabled. The
// returned file is nil when logging stays off.
func setupLogging(path string) (*os.File, error) {
	if os.Getenv(debugEnv) == "" {
		return nil, nil
	}
	f, err := tea.LogToFile(path, "jmeme")
	if err != nil {
		return nil, err
	}
	logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return f, nil
}
