// internal/logger/file.go

package logger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// ProvisionError reports a failure to prepare the log directory or file in Open.
type ProvisionError struct {
	Op   string
	Path string
	Err  error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("logger: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ProvisionError) Unwrap() error {
	return e.Err
}

// provision creates destFolder (without parents) and an empty logFile when
// they are missing. Existing files are left untouched.
func provision(destFolder, logFile string) error {
	missing, err := isMissing(destFolder)
	if err != nil {
		return &ProvisionError{Op: "stat directory", Path: destFolder, Err: err}
	}
	if missing {
		if err := os.Mkdir(destFolder, dirPerm); err != nil {
			return &ProvisionError{Op: "create directory", Path: destFolder, Err: err}
		}
	}

	missing, err = isMissing(logFile)
	if err != nil {
		return &ProvisionError{Op: "stat file", Path: logFile, Err: err}
	}
	if missing {
		if err := os.WriteFile(logFile, nil, filePerm); err != nil {
			return &ProvisionError{Op: "create file", Path: logFile, Err: err}
		}
	}
	return nil
}

func isMissing(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	return false, err
}

// writeFile replaces the log file content. With appendExisting the previous
// content is read back first and the result is old + "\n" + content, so the
// first record in a fresh file follows an empty line.
// The read and the write are separate open/close cycles; concurrent writers
// to the same file can lose records.
func writeFile(path, content string, appendExisting bool) error {
	if appendExisting {
		existing, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read log file %s: %w", path, err)
		}
		content = string(existing) + "\n" + content
	}

	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		return fmt.Errorf("failed to write log file %s: %w", path, err)
	}
	return nil
}
