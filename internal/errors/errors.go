package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/dentaplan/internal/logger"
	"github.com/julianstephens/dentaplan/internal/models"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// IsValidation reports whether err was caused by rejected user input rather
// than a storage or system failure.
func IsValidation(err error) bool {
	return stderrors.Is(err, models.ErrInvalidSettings) ||
		stderrors.Is(err, models.ErrInvalidPatient) ||
		stderrors.Is(err, models.ErrInvalidAppointment)
}

// ExitCode maps err to a process exit status: 0 for nil, 2 for validation
// failures, 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case IsValidation(err):
		return 2
	default:
		return 1
	}
}

// Fatal logs err, prints it to stderr and exits.
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(ExitCode(err))
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
