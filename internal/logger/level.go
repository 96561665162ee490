// internal/logger/level.go

package logger

import (
	"fmt"
	"strings"
)

// Level is the tag injected as {{level}} into every record.
type Level string

// Log levels
const (
	LevelLog     Level = "LOG"
	LevelError   Level = "ERROR"
	LevelDebug   Level = "DEBUG"
	LevelWarning Level = "WARNING"
	LevelInfo    Level = "INFO"
)

// Levels lists every level tag in the order the console colorizer scans them.
var Levels = []Level{LevelLog, LevelError, LevelDebug, LevelWarning, LevelInfo}

// levelNameToLevel maps method names and tags (lowercase) to levels.
var levelNameToLevel = map[string]Level{
	"log":     LevelLog,
	"error":   LevelError,
	"debug":   LevelDebug,
	"warn":    LevelWarning,
	"warning": LevelWarning,
	"info":    LevelInfo,
}

// ParseLevel accepts a level tag or a recording method name, case-insensitively.
func ParseLevel(name string) (Level, error) {
	level, ok := levelNameToLevel[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("invalid log level: %s", name)
	}
	return level, nil
}

func (l Level) String() string {
	return string(l)
}
