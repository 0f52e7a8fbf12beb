package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxLogFiles is the rotation limit used when none is configured
const DefaultMaxLogFiles = 100

// Logger is the process-wide logger. It discards everything until Initialize enables debugging.
var Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// Options controls where debug logs are written
type Options struct {
	Debug       bool
	DebugFile   string // Fixed log file, disables rotation
	MaxLogFiles int    // 0 keeps every file
}

// Initialize configures Logger and returns the path of the log file, if any.
// CLAWUSAGE_DEBUG=1 and CLAWUSAGE_DEBUG_FILE enable logging without flags.
func Initialize(opts Options) (string, error) {
	if os.Getenv("CLAWUSAGE_DEBUG") == "1" {
		opts.Debug = true
	}
	if envFile := os.Getenv("CLAWUSAGE_DEBUG_FILE"); envFile != "" && opts.DebugFile == "" {
		opts.DebugFile = envFile
	}
	if envMax := os.Getenv("CLAWUSAGE_MAX_LOG_FILES"); envMax != "" && opts.MaxLogFiles == DefaultMaxLogFiles {
		if parsed, err := strconv.Atoi(envMax); err == nil {
			opts.MaxLogFiles = parsed
		}
	}

	if !opts.Debug && opts.DebugFile == "" {
		Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return "", nil
	}

	logFilePath := opts.DebugFile
	if logFilePath == "" {
		logDir, err := logDirectory()
		if err != nil {
			return "", fmt.Errorf("failed to get log directory: %w", err)
		}
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create log directory: %w", err)
		}
		if opts.MaxLogFiles > 0 {
			if err := rotate(logDir, opts.MaxLogFiles); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: log rotation failed: %v\n", err)
			}
		}
		logFilePath = filepath.Join(logDir, uuid.New().String()+".log")
	} else if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create log file: %w", err)
	}

	Logger = slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))
	Logger.Info("Debug logging initialized", "log_file", logFilePath, "pid", os.Getpid())

	return logFilePath, nil
}

// rotate deletes the oldest .log files so that a new one fits under maxLogFiles
func rotate(logDir string, maxLogFiles int) error {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	type logFile struct {
		modTime time.Time
		path    string
	}
	var files []logFile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".log" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, logFile{modTime: info.ModTime(), path: filepath.Join(logDir, entry.Name())})
	}

	if len(files) < maxLogFiles {
		return nil
	}

	slices.SortFunc(files, func(a, b logFile) int {
		return a.modTime.Compare(b.modTime)
	})

	excess := len(files) - maxLogFiles + 1
	for _, f := range files[:excess] {
		if err := os.Remove(f.path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to delete old log file %s: %v\n", f.path, err)
		}
	}
	return nil
}

// logDirectory returns the OS-specific directory for debug logs
func logDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Logs", "clawusage"), nil
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(localAppData, "clawusage", "logs"), nil
	default:
		stateHome := os.Getenv("XDG_STATE_HOME")
		if stateHome == "" {
			stateHome = filepath.Join(homeDir, ".local", "state")
		}
		return filepath.Join(stateHome, "clawusage"), nil
	}
}
