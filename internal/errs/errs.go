// Package errs holds the error classifications shared by the compiler, the
// process runner and the CLI.
package errs

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidInput covers a missing input file, an unparseable or out of
	// range option, or an unsupported extension.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedOperation is returned when a media kind / operation pair
	// has no argument mapping.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrProcessLaunch means the external binary could not be started.
	ErrProcessLaunch = errors.New("process launch failure")

	// ErrProcessExecution means the external binary exited non-zero.
	ErrProcessExecution = errors.New("process execution failure")
)

// Invalid wraps ErrInvalidInput with a formatted message.
func Invalid(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidInput, format, args...)
}

// Unsupported wraps ErrUnsupportedOperation with a formatted message.
func Unsupported(format string, args ...interface{}) error {
	return errors.Wrapf(ErrUnsupportedOperation, format, args...)
}

// ExecError is the failure of a process that started but exited non-zero.
// Stderr holds the diagnostic text captured while it ran.
type ExecError struct {
	Binary   string
	ExitCode int
	Stderr   string
}

func (e *ExecError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Binary, e.ExitCode)
	if tail := lastLine(e.Stderr); tail != "" {
		msg += ": " + tail
	}
	return msg
}

// Is makes errors.Is(err, ErrProcessExecution) hold for an *ExecError.
func (e *ExecError) Is(target error) bool {
	return target == ErrProcessExecution
}

func lastLine(s string) string {
	s = strings.TrimRight(s, "\r\n ")
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return strings.TrimSpace(s)
}
