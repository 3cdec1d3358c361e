// internal/logbook/logbook.go
//
// Session logbook. Every fetch, mutation and communication deep link
// is appended to a plain text file under ~/.propdesk/logs and mirrored
// into a small in-memory ring so the activity panel can render recent
// entries without touching the disk.

package logbook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log entry.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// ringSize bounds how many entries the activity panel can show.
const ringSize = 200

// Entry is one recorded event.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
}

// String renders the entry the way it appears in the log file.
func (e Entry) String() string {
	return fmt.Sprintf("%s %-5s %s", e.Time.UTC().Format(time.RFC3339), string(e.Level), e.Message)
}

// Logbook persists session activity to a text file and keeps the most
// recent entries in memory.
type Logbook struct {
	path string

	mu      sync.Mutex
	entries []Entry
}

// Open creates a logbook writing to the provided path. The parent
// directory is created when missing.
func Open(path string) (*Logbook, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &Logbook{path: path}, nil
}

// Path returns the file backing this logbook.
func (l *Logbook) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Append records a single entry. File write failures are swallowed;
// losing a log line must never break the session.
func (l *Logbook) Append(level Level, message string) {
	if l == nil {
		return
	}
	entry := Entry{
		Time:    time.Now(),
		Level:   level,
		Message: strings.TrimSpace(message),
	}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	if len(l.entries) > ringSize {
		l.entries = l.entries[len(l.entries)-ringSize:]
	}
	l.mu.Unlock()

	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	_, _ = file.WriteString(entry.String() + "\n")
}

// Recent returns up to n of the most recent entries, oldest first.
func (l *Logbook) Recent(n int) []Entry {
	if l == nil || n <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return nil
	}
	start := 0
	if len(l.entries) > n {
		start = len(l.entries) - n
	}
	out := make([]Entry, len(l.entries)-start)
	copy(out, l.entries[start:])
	return out
}

// Info appends an informational entry.
func (l *Logbook) Info(format string, args ...any) {
	l.Append(LevelInfo, fmt.Sprintf(format, args...))
}

// Warn appends a warning entry.
func (l *Logbook) Warn(format string, args ...any) {
	l.Append(LevelWarn, fmt.Sprintf(format, args...))
}

// Error appends an error entry.
func (l *Logbook) Error(format string, args ...any) {
	l.Append(LevelError, fmt.Sprintf(format, args...))
}
