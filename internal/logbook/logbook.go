// internal/logbook/logbook.go
//
// The logbook is slate's diagnostic sink: an append-only text file shared
// by every workstation pointed at the same config. It is never load-bearing
// for correctness, so write failures are swallowed; the worst outcome of a
// broken log is a quiet log panel.

package logbook

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level is the severity of an entry.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Logbook appends leveled, timestamped lines to a single file.
type Logbook struct {
	path string
	mu   sync.Mutex
}

// New creates a logbook writing to path, ensuring its directory exists.
func New(path string) (*Logbook, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logbook: ensure log dir: %w", err)
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

// Infof appends an informational entry.
func (l *Logbook) Infof(format string, args ...any) {
	l.append(LevelInfo, fmt.Sprintf(format, args...))
}

// Warnf appends a warning entry.
func (l *Logbook) Warnf(format string, args ...any) {
	l.append(LevelWarn, fmt.Sprintf(format, args...))
}

// Errorf appends an error entry.
func (l *Logbook) Errorf(format string, args ...any) {
	l.append(LevelError, fmt.Sprintf(format, args...))
}

func (l *Logbook) append(level Level, message string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	fmt.Fprintf(file, "%s %-5s %s\n",
		time.Now().UTC().Format(time.RFC3339),
		string(level),
		strings.TrimSpace(message),
	)
}

// Tail returns up to maxLines of the most recent entries, oldest first.
func (l *Logbook) Tail(maxLines int) []string {
	if l == nil || maxLines <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	file, err := os.Open(l.path)
	if err != nil {
		return nil
	}
	defer file.Close()

	// Ring buffer so a long-lived log does not cost a full slice.
	ring := make([]string, maxLines)
	count := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		ring[count%maxLines] = scanner.Text()
		count++
	}
	if count == 0 {
		return nil
	}
	if count < maxLines {
		return ring[:count]
	}
	out := make([]string, 0, maxLines)
	for i := 0; i < maxLines; i++ {
		out = append(out, ring[(count+i)%maxLines])
	}
	return out
}
