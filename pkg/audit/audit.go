// Package audit records reconciliation passes to a JSON-lines log.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bridgewise-net/bridgewise/pkg/util"
)

// Event is one audited reconciliation pass.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Bridge    string    `json:"bridge"`
	Operation string    `json:"operation"`
	DryRun    bool      `json:"dry_run"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
	// Ops is the human-readable operation trace of the pass.
	Ops []string `json:"ops,omitempty"`
}

// NewEvent creates an event stamped with the current time and user.
func NewEvent(bridge, operation string) *Event {
	user := os.Getenv("SUDO_USER")
	if user == "" {
		user = os.Getenv("USER")
	}
	return &Event{
		Timestamp: time.Now(),
		User:      user,
		Bridge:    bridge,
		Operation: operation,
	}
}

// WithResult records the outcome of the pass.
func (e *Event) WithResult(err error) *Event {
	e.Success = err == nil
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// Filter selects events when querying the log.
type Filter struct {
	Bridge    string
	Operation string
	Since     time.Time
	Limit     int
}

// Logger is the audit logging backend contract.
type Logger interface {
	Log(event *Event) error
	Query(filter Filter) ([]*Event, error)
	Close() error
}

// RotationConfig configures log file rotation.
type RotationConfig struct {
	MaxSize    int64 // max file size in bytes before rotation
	MaxBackups int   // old files to retain
}

// FileLogger appends events to a JSON-lines file with size-based rotation.
type FileLogger struct {
	path     string
	file     *os.File
	encoder  *json.Encoder
	mu       sync.RWMutex
	rotation RotationConfig
}

// NewFileLogger opens (or creates) the audit log at path.
func NewFileLogger(path string, rotation RotationConfig) (*FileLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating audit log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	return &FileLogger{
		path:     path,
		file:     file,
		encoder:  json.NewEncoder(file),
		rotation: rotation,
	}, nil
}

// Log appends one event, rotating first if the file exceeds MaxSize.
func (l *FileLogger) Log(event *Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.rotation.MaxSize > 0 {
		if info, err := l.file.Stat(); err == nil && info.Size() >= l.rotation.MaxSize {
			if err := l.rotate(); err != nil {
				return fmt.Errorf("rotating audit log: %w", err)
			}
		}
	}
	return l.encoder.Encode(event)
}

// Query scans the log for events matching the filter, oldest first.
func (l *FileLogger) Query(filter Filter) ([]*Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	file, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Event{}, nil
		}
		return nil, err
	}
	defer file.Close()

	var events []*Event
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		var event Event
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			util.Warnf("audit: skipping malformed log entry at line %d: %v", line, err)
			continue
		}
		if l.matches(&event, filter) {
			events = append(events, &event)
		}
	}
	if filter.Limit > 0 && filter.Limit < len(events) {
		events = events[len(events)-filter.Limit:]
	}
	return events, scanner.Err()
}

func (l *FileLogger) matches(event *Event, filter Filter) bool {
	if filter.Bridge != "" && event.Bridge != filter.Bridge {
		return false
	}
	if filter.Operation != "" && event.Operation != filter.Operation {
		return false
	}
	if !filter.Since.IsZero() && event.Timestamp.Before(filter.Since) {
		return false
	}
	return true
}

// rotate renames the current file to path.1, shifting older backups up, and
// reopens a fresh file. Caller holds the write lock.
func (l *FileLogger) rotate() error {
	l.file.Close()

	maxBackups := l.rotation.MaxBackups
	if maxBackups <= 0 {
		maxBackups = 1
	}
	os.Remove(fmt.Sprintf("%s.%d", l.path, maxBackups))
	for i := maxBackups - 1; i >= 1; i-- {
		os.Rename(fmt.Sprintf("%s.%d", l.path, i), fmt.Sprintf("%s.%d", l.path, i+1))
	}
	if err := os.Rename(l.path, l.path+".1"); err != nil {
		return err
	}

	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	l.file = file
	l.encoder = json.NewEncoder(file)
	return nil
}

// Close closes the log file.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// loggerHolder wraps Logger for atomic.Value (which needs a concrete type).
type loggerHolder struct {
	logger Logger
}

var defaultLogger atomic.Value

// SetDefaultLogger sets the process-wide audit logger.
func SetDefaultLogger(logger Logger) {
	defaultLogger.Store(loggerHolder{logger: logger})
}

// Log writes an event to the default logger, if one is configured.
func Log(event *Event) error {
	v := defaultLogger.Load()
	if v == nil {
		return nil
	}
	holder := v.(loggerHolder)
	if holder.logger == nil {
		return nil
	}
	return holder.logger.Log(event)
}
