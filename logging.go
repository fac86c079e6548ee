package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

const logEnv = "SCHEMER_LOG"

// setupLogger opens the log file named by $SCHEMER_LOG or the config. With
// neither set, logs are discarded since stdout belongs to the UI.
func setupLogger(config *Config) (*slog.Logger, func(), error) {
	path := os.Getenv(logEnv)
	if path == "" {
		path = config.LogFile
	}
	if path == "" {
		return discardLogger(), func() {}, nil
	}
	f, err := tea.LogToFile(path, "schemer")
	if err != nil {
		return discardLogger(), func() {}, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
