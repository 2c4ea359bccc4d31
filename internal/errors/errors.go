package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/almanac/internal/hijri"
	"github.com/julianstephens/almanac/internal/keyring"
	"github.com/julianstephens/almanac/internal/logger"
	"github.com/julianstephens/almanac/internal/storage"
)

// hints maps known failures to a follow-up suggestion printed under the error.
var hints = []struct {
	target error
	hint   string
}{
	{storage.ErrNotFound, "run 'almanac habit list' to see existing habits"},
	{hijri.ErrInvalidDateRange, "Hijri months run 1-12 and days 1-30"},
	{keyring.ErrKeyringUnavailable, "pass --db or set ALMANAC_DB instead of using the keyring"},
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint returns the suggestion registered for err, or "".
func Hint(err error) string {
	for _, h := range hints {
		if stderrors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
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
