// internal/logger/logger.go

package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/orgoj/recordlog/internal/templater"
)

const (
	// TimestampLayout is the ISO-8601 UTC layout used for {{date}} and the default file name.
	TimestampLayout = "2006-01-02T15:04:05.000Z"
	// DefaultName is the logger name used when Options.Name is empty.
	DefaultName = "recordlog"
	// DefaultTemplate is the record template used when Options.Template is empty.
	DefaultTemplate = "{{date}} {{name}} [{{level}}] {{message}}"
)

// DefaultDestFolder is the directory used when Options.DestFolder is empty.
var DefaultDestFolder = filepath.Join(os.TempDir(), "recordlog")

// Context holds the values available to {{key}} placeholders.
type Context map[string]any

// Options configures Open. Zero values select the defaults.
type Options struct {
	// Date names the default log file. Default: current UTC time in TimestampLayout.
	Date string
	// DestFolder holds the log file. Default: DefaultDestFolder.
	DestFolder string
	// LogFile is the target file. Default: <DestFolder>/<Date>.log
	LogFile string
	// Name identifies the logger in records. Default: DefaultName.
	Name string
	// Template wraps every record. Default: DefaultTemplate.
	Template string
	// Console echoes colorized records to Output.
	Console bool
	// Stack keeps records in memory until Dump instead of writing them.
	Stack bool
	// Output receives console echo. Default: os.Stdout.
	Output io.Writer
	// Color decides whether console echo is colorized. The default,
	// ColorAuto, colors only when Output is a terminal.
	Color ColorMode
	// Clock returns the current time. Default: time.Now.
	Clock func() time.Time
}

// stack holds buffered records in insertion order. A nil *stack means
// write-through mode.
type stack struct {
	lines []string
}

func (s *stack) push(line string) {
	s.lines = append(s.lines, line)
}

// Logger renders leveled records and either appends them to a file or keeps
// them in memory until Dump. It is not safe for concurrent use.
type Logger struct {
	date       string
	destFolder string
	logFile    string
	name       string
	template   string
	console    bool
	stack      *stack
	output     io.Writer
	color      bool
	now        func() time.Time
}

// Open applies defaults, creates the destination directory and an empty log
// file when missing, and returns the Logger. Provisioning failures are
// returned as *ProvisionError.
func Open(opts Options) (*Logger, error) {
	l := &Logger{
		date:       opts.Date,
		destFolder: opts.DestFolder,
		logFile:    opts.LogFile,
		name:       opts.Name,
		template:   opts.Template,
		console:    opts.Console,
		output:     opts.Output,
		now:        opts.Clock,
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.date == "" {
		l.date = l.timestamp()
	}
	if l.destFolder == "" {
		l.destFolder = DefaultDestFolder
	}
	if l.logFile == "" {
		l.logFile = filepath.Join(l.destFolder, l.date+".log")
	}
	if l.name == "" {
		l.name = DefaultName
	}
	if l.template == "" {
		l.template = DefaultTemplate
	}
	if l.output == nil {
		l.output = os.Stdout
	}
	l.color = opts.Color.enabled(l.output)
	if opts.Stack {
		l.stack = &stack{}
	}

	if err := provision(l.destFolder, l.logFile); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Logger) timestamp() string {
	return l.now().UTC().Format(TimestampLayout)
}

// Date returns the construction timestamp.
func (l *Logger) Date() string { return l.date }

// DestFolder returns the directory holding the log file.
func (l *Logger) DestFolder() string { return l.destFolder }

// LogFile returns the path records are written to.
func (l *Logger) LogFile() string { return l.logFile }

// Name returns the logger name.
func (l *Logger) Name() string { return l.name }

// Template returns the record template.
func (l *Logger) Template() string { return l.template }

// Console reports whether records are echoed to the console.
func (l *Logger) Console() bool { return l.console }

// Buffering reports whether records are kept in memory until Dump.
func (l *Logger) Buffering() bool { return l.stack != nil }

// Buffered returns a copy of the records waiting for Dump.
func (l *Logger) Buffered() []string {
	if l.stack == nil {
		return nil
	}
	lines := make([]string, len(l.stack.lines))
	copy(lines, l.stack.lines)
	return lines
}

// fields exposes the logger configuration to templates.
func (l *Logger) fields() Context {
	return Context{
		"date":       l.date,
		"destFolder": l.destFolder,
		"logFile":    l.logFile,
		"name":       l.name,
		"template":   l.template,
		"console":    l.console,
		"trace":      l.console,
		"stack":      l.Buffering(),
	}
}

// Render fills message against the logger fields overlaid with ctx, then
// fills the record template with that context plus the rendered message and
// a timestamp taken now.
func (l *Logger) Render(message string, ctx ...Context) string {
	merged := l.fields()
	for _, c := range ctx {
		for k, v := range c {
			merged[k] = v
		}
	}

	merged["message"] = templater.Render(message, merged)
	merged["date"] = l.timestamp()

	return templater.Render(l.template, merged)
}

// Record renders message at level and dispatches it. The level always
// overrides a "level" key supplied in ctx.
func (l *Logger) Record(level Level, message string, ctx ...Context) error {
	contexts := make([]Context, 0, len(ctx)+1)
	contexts = append(contexts, ctx...)
	contexts = append(contexts, Context{"level": string(level)})

	return l.print(l.Render(message, contexts...))
}

// Log records a LOG message.
func (l *Logger) Log(message string, ctx ...Context) error {
	return l.Record(LevelLog, message, ctx...)
}

// Error records an ERROR message.
func (l *Logger) Error(message string, ctx ...Context) error {
	return l.Record(LevelError, message, ctx...)
}

// Debug records a DEBUG message.
func (l *Logger) Debug(message string, ctx ...Context) error {
	return l.Record(LevelDebug, message, ctx...)
}

// Warn records a WARNING message.
func (l *Logger) Warn(message string, ctx ...Context) error {
	return l.Record(LevelWarning, message, ctx...)
}

// Info records an INFO message.
func (l *Logger) Info(message string, ctx ...Context) error {
	return l.Record(LevelInfo, message, ctx...)
}

// print echoes line to the console when enabled, then either buffers it or
// appends it to the log file.
func (l *Logger) print(line string) error {
	if l.console {
		_, _ = fmt.Fprintln(l.output, colorize(line, l.color))
	}

	if l.stack != nil {
		l.stack.push(line)
		return nil
	}
	return writeFile(l.logFile, line, true)
}

// Dump writes every buffered record to the log file, joined by "\n",
// replacing the file content. The buffer is kept, so calling Dump again
// writes the same records. Without buffered records Dump does nothing.
func (l *Logger) Dump() error {
	if l.stack == nil || len(l.stack.lines) == 0 {
		return nil
	}
	return writeFile(l.logFile, strings.Join(l.stack.lines, "\n"), false)
}
