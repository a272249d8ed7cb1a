package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogFilePath is the default log file, relative to the working directory.
const LogFilePath = "logs/morph.log"

// maxLines bounds the in-memory history shown by the console.
const maxLines = 256

// Logger writes structured entries through zap and keeps a short stamped history in memory
// for the in-window console. It is safe for concurrent use (gesture producers log from
// their own goroutines).
type Logger struct {
	mu    sync.Mutex
	lines []string
	z     *zap.SugaredLogger
}

// New returns a Logger that appends JSON lines to path (LogFilePath when empty), creating the
// directory if needed. If the file cannot be opened the logger falls back to stderr.
func New(path string) *Logger {
	if path == "" {
		path = LogFilePath
	}
	_ = os.MkdirAll(filepath.Dir(path), 0755)

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil
	z, err := cfg.Build()
	if err != nil {
		z, _ = zap.NewDevelopment()
		z.Warn("log file unavailable, using stderr", zap.String("path", path), zap.Error(err))
	}
	return &Logger{z: z.Sugar()}
}

// NewNop returns a Logger that only keeps the in-memory history. Used by tests.
func NewNop() *Logger {
	return &Logger{z: zap.NewNop().Sugar()}
}

// FromZap wraps an existing zap logger.
func FromZap(z *zap.Logger) *Logger {
	return &Logger{z: z.Sugar()}
}

// Log records a free-form line, e.g. a console command.
func (l *Logger) Log(line string) {
	l.z.Info(line)
	l.remember(line)
}

// Info records msg with alternating key/value pairs.
func (l *Logger) Info(msg string, keysAndValues ...any) {
	l.z.Infow(msg, keysAndValues...)
	l.remember(format(msg, keysAndValues))
}

// Error records msg with err attached.
func (l *Logger) Error(msg string, err error, keysAndValues ...any) {
	kv := append([]any{"error", err}, keysAndValues...)
	l.z.Errorw(msg, kv...)
	l.remember(format(msg, kv))
}

// Lines returns a copy of the stored history, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.z.Sync()
}

func (l *Logger) remember(line string) {
	ts := time.Now().Format("15:04:05")
	stamped := "[" + ts + "] " + line

	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, stamped)
	if over := len(l.lines) - maxLines; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
}

func format(msg string, kv []any) string {
	if len(kv) == 0 {
		return msg
	}
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i < len(kv); i += 2 {
		b.WriteByte(' ')
		if i+1 < len(kv) {
			fmt.Fprintf(&b, "%v=%v", kv[i], kv[i+1])
		} else {
			fmt.Fprintf(&b, "%v", kv[i])
		}
	}
	return b.String()
}
