package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/streakguard/internal/logger"
)

// Exit codes used by Fatal.
const (
	ExitFailure = 1
	ExitInvalid = 2 // rejected input, nothing was changed
)

// Format renders err for the terminal with an "Error: " prefix. Save failures hide their
// cause, which only goes to the log.
func Format(err error) string {
	if err == nil {
		return ""
	}

	var ve *ValidationError
	switch {
	case stderrors.As(err, &ve):
		if ve.Reason == "" {
			return fmt.Sprintf("Error: %v: %s", ve.Kind, ve.Field)
		}
		return fmt.Sprintf("Error: %v for %s: %s", ve.Kind, ve.Field, ve.Reason)
	case stderrors.Is(err, ErrSave):
		return fmt.Sprintf("Error: %v, see the log file for details", ErrSave)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

// ExitCode is the process exit status for err.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if stderrors.Is(err, ErrInvalidValue) || stderrors.Is(err, ErrRequired) {
		return ExitInvalid
	}
	return ExitFailure
}

// Report logs err and writes its formatted message to w. It returns the exit code.
func Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(w, Format(err))
	return ExitCode(err)
}

// Fatal reports err on stderr and exits. A nil error is ignored.
func Fatal(err error) {
	if err != nil {
		os.Exit(Report(os.Stderr, err))
	}
}
