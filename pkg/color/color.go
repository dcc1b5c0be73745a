// Package color provides terminal color output for sealog.
// It respects the NO_COLOR environment variable (https://no-color.org/).
package color

import (
	"fmt"
	"os"
	"sync"
)

var state struct {
	enabled  bool
	once     sync.Once
	disabled bool
}

// Init initializes the color system from environment and flags.
func Init(noColorFlag bool) {
	state.once.Do(func() {
		if _, exists := os.LookupEnv("NO_COLOR"); exists {
			state.disabled = true
		}
		if term := os.Getenv("TERM"); term == "dumb" {
			state.disabled = true
		}
		if noColorFlag {
			state.disabled = true
		}
		state.enabled = !state.disabled
	})
}

// Enabled returns true if color output is enabled.
func Enabled() bool {
	Init(false)
	return state.enabled
}

// Disable turns off color output.
func Disable() {
	state.disabled = true
	state.enabled = false
}

// ANSI codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

func wrap(code, s string) string {
	if !Enabled() {
		return s
	}
	return code + s + reset
}

// Success formats a success message in green.
func Success(s string) string { return wrap(green, s) }

// Error formats an error message in red.
func Error(s string) string { return wrap(red, s) }

// Warning formats a warning message in yellow.
func Warning(s string) string { return wrap(yellow, s) }

// Dim formats de-emphasized text.
func Dim(s string) string { return wrap(dim, s) }

// Header formats a section header in bold.
func Header(s string) string { return wrap(bold, s) }

// Hash formats a chain or content hash in cyan.
func Hash(s string) string { return wrap(cyan, s) }

// Successf formats with printf-style arguments.
func Successf(format string, args ...any) string {
	return Success(fmt.Sprintf(format, args...))
}

// Errorf formats with printf-style arguments.
func Errorf(format string, args ...any) string {
	return Error(fmt.Sprintf(format, args...))
}
