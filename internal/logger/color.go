// internal/logger/color.go

package logger

import (
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorMode selects when console echo carries color escape codes.
type ColorMode int

const (
	// ColorAuto colors only when the output itself is a terminal and
	// NO_COLOR is unset.
	ColorAuto ColorMode = iota
	// ColorAlways colors regardless of the output.
	ColorAlways
	// ColorNever never colors.
	ColorNever
)

var levelPattern = regexp.MustCompile(levelAlternation())

// LOG and INFO have no entry and are printed as-is.
var levelAttributes = map[Level][]color.Attribute{
	LevelError:   {color.FgRed, color.Bold},
	LevelDebug:   {color.FgBlue},
	LevelWarning: {color.FgYellow},
}

func levelAlternation() string {
	tags := make([]string, len(Levels))
	for i, level := range Levels {
		tags[i] = regexp.QuoteMeta(string(level))
	}
	return strings.Join(tags, "|")
}

// enabled resolves the mode for output written to w.
func (m ColorMode) enabled(w io.Writer) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Colorize wraps every level tag found in line with its console color.
// Matching is a plain substring scan, so "ERRORS" is colored too.
// Whether escape codes are emitted follows fatih/color's stdout detection;
// Logger and AppLogger check their own writer instead.
func Colorize(line string) string {
	return colorize(line, !color.NoColor)
}

func colorize(line string, enabled bool) string {
	if line == "" || !enabled {
		return line
	}
	return levelPattern.ReplaceAllStringFunc(line, func(match string) string {
		attrs, ok := levelAttributes[Level(match)]
		if !ok {
			return match
		}
		c := color.New(attrs...)
		c.EnableColor()
		return c.Sprint(match)
	})
}
