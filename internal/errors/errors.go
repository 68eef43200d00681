package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/headcount/internal/backup"
	"github.com/julianstephens/headcount/internal/constants"
	"github.com/julianstephens/headcount/internal/keyring"
	"github.com/julianstephens/headcount/internal/logger"
	"github.com/julianstephens/headcount/internal/records"
	"github.com/julianstephens/headcount/internal/storage"
	"github.com/julianstephens/headcount/internal/trend"
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

// Hint suggests a next step for well-known failures. It returns "" for
// anything else.
func Hint(err error) string {
	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, records.ErrDuplicate):
		return fmt.Sprintf("run '%s list' to review the existing entry", constants.AppName)
	case stderrors.Is(err, backup.ErrInvalidBackup):
		return "the file must be a backup with a data array of records; current data was left untouched"
	case stderrors.Is(err, trend.ErrInsufficientData):
		return "trends need records in at least two different months"
	case stderrors.Is(err, storage.ErrNotLoaded):
		return fmt.Sprintf("run '%s init' first", constants.AppName)
	case stderrors.Is(err, keyring.ErrKeyringUnavailable):
		return "set HEADCOUNT_DB_CONNECTION instead of using the OS keyring"
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		if hint := Hint(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
