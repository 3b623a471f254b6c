package evergreen

import (
	"fmt"
	"log"
	"os"
	"sync"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type DefaultLogger struct {
	mu     sync.Mutex
	debug  bool
	prefix string
	out    *log.Logger
	err    *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		debug:  debug,
		prefix: prefix,
		out:    log.New(os.Stdout, "", flags),
		err:    log.New(os.Stderr, "", flags),
	}
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

func (l *DefaultLogger) prefixf(level string, format string, args ...any) string {
	if l.prefix != "" {
		return fmt.Sprintf("[%s] %s: %s", l.prefix, level, fmt.Sprintf(format, args...))
	}
	return fmt.Sprintf("%s: %s", level, fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.out.Print(l.prefixf("DEBUG", format, args...))
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.out.Print(l.prefixf("INFO", format, args...))
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.err.Print(l.prefixf("WARN", format, args...))
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.err.Print(l.prefixf("ERROR", format, args...))
}

// LoggingModule installs a default logger as a resource.
// Output can be redirected (the terminal preview sends it to a file).
type LoggingModule struct {
	Prefix string
	Debug  bool
	Output *os.File
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	logger := NewDefaultLogger(m.Prefix, m.Debug)
	if m.Output != nil {
		logger.out.SetOutput(m.Output)
		logger.err.SetOutput(m.Output)
	}
	cmd.AddResources(logger)
}

// LogTreeSummary writes the one-line inventory of a freshly built tree.
func LogTreeSummary(log Logger, tree *Tree, mode AnimationMode) {
	log.Infof("tree: %d foliage particles, %s, %s, starting %s",
		tree.Foliage.Count(), batchSummary(tree.Boxes), batchSummary(tree.Spheres), mode)
}

func batchSummary(b *OrnamentBatch) string {
	return fmt.Sprintf("%d %s ornaments (%s)", b.Count(), b.Kind, b.Id)
}

// LogModeChange is written at debug level when the mode flips between frames.
func LogModeChange(log Logger, frame uint64, from, to AnimationMode, tree *Tree) {
	log.Debugf("frame %d: %s -> %s at foliage progress %.3f", frame, from, to, tree.Foliage.Progress())
}

// LogTreeStatus reports where every driver stands at frame.
func LogTreeStatus(log Logger, frame uint64, t *Time, mode AnimationMode, tree *Tree) {
	u := tree.Foliage.Uniforms()
	log.Infof("frame %4d t=%6.2fs mode=%-9s foliage=%.3f eased=%.3f alpha=%.3f boxes=%.3f spheres=%.3f",
		frame, t.Elapsed, mode, u.Progress, u.Eased, tree.Foliage.Alpha(),
		tree.Boxes.Progress(), tree.Spheres.Progress())
}

// Nop logger and App helper accessor

type nopLogger struct{}

func NewNopLogger() Logger                             { return &nopLogger{} }
func (n *nopLogger) DebugEnabled() bool                { return false }
func (n *nopLogger) SetDebug(enabled bool)             {}
func (n *nopLogger) Debugf(format string, args ...any) {}
func (n *nopLogger) Infof(format string, args ...any)  {}
func (n *nopLogger) Warnf(format string, args ...any)  {}
func (n *nopLogger) Errorf(format string, args ...any) {}

// Logger returns the first Logger resource if present, otherwise a no-op logger.
// Safe to call at any time; never returns nil.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	for _, r := range app.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return NewNopLogger()
}
