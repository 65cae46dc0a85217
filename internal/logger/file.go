package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/harrison/progress/pkg/progress"
)

// LatestLogName is the symlink that points at the most recent run log.
const LatestLogName = "latest.log"

// FileLogger writes a timestamped log file per CLI run into a log directory
// and keeps a latest.log symlink pointing to the most recent one.
// It is thread-safe and supports log level filtering.
type FileLogger struct {
	runLog   *os.File
	runFile  string
	runID    uuid.UUID
	logLevel string
	mu       sync.Mutex
	now      func() time.Time
}

// NewFileLogger creates the log directory if needed, opens
// run-YYYYMMDD-HHMMSS-<id>.log inside it and points latest.log at it.
// The id is the first block of a fresh run UUID, so runs started within the
// same second get separate files.
func NewFileLogger(logDir string, logLevel string) (*FileLogger, error) {
	return newFileLogger(logDir, logLevel, time.Now, uuid.New())
}

func newFileLogger(logDir string, logLevel string, now func() time.Time, runID uuid.UUID) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	started := now()
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s-%s.log", started.Format("20060102-150405"), runID.String()[:8]))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, LatestLogName)
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	logger := &FileLogger{
		runLog:   file,
		runFile:  runFile,
		runID:    runID,
		logLevel: normalizeLogLevel(logLevel),
		now:      now,
	}

	logger.writeRunLog("=== Progress Run Log ===\n")
	logger.writeRunLog(fmt.Sprintf("Run ID: %s\n", runID))
	logger.writeRunLog(fmt.Sprintf("Started at: %s\n\n", started.Format(time.RFC3339)))

	return logger, nil
}

// Path returns the run log file path.
func (fl *FileLogger) Path() string {
	return fl.runFile
}

// RunID returns the id recorded in the run log header.
func (fl *FileLogger) RunID() uuid.UUID {
	return fl.runID
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", fl.timestamp(), level, message))
}

// LogSummary writes the full metrics of a finished indicator at INFO level.
// Bounded snapshots add the completion and a COMPLETE or PARTIAL status.
func (fl *FileLogger) LogSummary(action string, s progress.Snapshot) {
	if !fl.shouldLog("info") {
		return
	}

	ts := fl.timestamp()
	var b strings.Builder
	fmt.Fprintf(&b, "\n[%s] === %s ===\n", ts, strings.ToUpper(action))
	fmt.Fprintf(&b, "[%s] Units:        %d\n", ts, s.Index)
	fmt.Fprintf(&b, "[%s] Elapsed:      %s\n", ts, formatDuration(s.ElapsedDuration()))
	fmt.Fprintf(&b, "[%s] Avg:          %.2fs/unit\n", ts, s.Avg)
	fmt.Fprintf(&b, "[%s] SMA:          %.2fs/unit\n", ts, s.SMA)

	if s.Bounded {
		status := "COMPLETE"
		if s.Remaining > 0 {
			status = "PARTIAL"
		}
		fmt.Fprintf(&b, "[%s] Progress:     %.0f%% (%d/%d)\n", ts, s.Percent, s.Index, s.Max)
		fmt.Fprintf(&b, "[%s] Status:       %s (%d remaining)\n", ts, status, s.Remaining)
	}
	fmt.Fprintf(&b, "[%s] Finished at:  %s\n", ts, fl.now().Format(time.RFC3339))

	fl.writeRunLog(b.String())
}

// LogBytesSummary logs a finished byte transfer with its throughput at INFO level.
func (fl *FileLogger) LogBytesSummary(action string, s progress.Snapshot) {
	bytes := uint64(max(s.Index, 0))
	message := fmt.Sprintf("%s: %s in %s", action, humanize.Bytes(bytes), formatDuration(s.ElapsedDuration()))
	if s.Elapsed > 0 {
		message += fmt.Sprintf(" (%s/s)", humanize.Bytes(bytes/uint64(s.Elapsed)))
	}
	fl.LogInfo(message)
}

// Close flushes and closes the run log file.
// It should be called when the logger is no longer needed.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}

	return nil
}

func (fl *FileLogger) timestamp() string {
	return fl.now().Format("15:04:05")
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
		// Flush after each write for real-time logging
		fl.runLog.Sync()
	}
}

// MultiLogger forwards every call to each of its loggers in order.
type MultiLogger []Logger

// LogDebug logs a debug-level message to all loggers.
func (m MultiLogger) LogDebug(message string) {
	for _, l := range m {
		l.LogDebug(message)
	}
}

// LogInfo logs an info-level message to all loggers.
func (m MultiLogger) LogInfo(message string) {
	for _, l := range m {
		l.LogInfo(message)
	}
}

// LogWarn logs a warning-level message to all loggers.
func (m MultiLogger) LogWarn(message string) {
	for _, l := range m {
		l.LogWarn(message)
	}
}

// LogError logs an error-level message to all loggers.
func (m MultiLogger) LogError(message string) {
	for _, l := range m {
		l.LogError(message)
	}
}

// LogSummary logs the summary to all loggers.
func (m MultiLogger) LogSummary(action string, s progress.Snapshot) {
	for _, l := range m {
		l.LogSummary(action, s)
	}
}

// LogBytesSummary logs the byte summary to all loggers.
func (m MultiLogger) LogBytesSummary(action string, s progress.Snapshot) {
	for _, l := range m {
		l.LogBytesSummary(action, s)
	}
}
