package ui

import (
	"fmt"
	"strings"
)

// Status symbols. Status lines carry no color of their own.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolPending = "☐"
)

func status(symbol, msg string) string {
	return symbol + " " + msg
}

// Success prefixes msg with a check mark.
func Success(msg string) string { return status(SymbolSuccess, msg) }

// Successf is Success with formatting.
func Successf(format string, args ...interface{}) string {
	return Success(fmt.Sprintf(format, args...))
}

// Error prefixes msg with a cross.
func Error(msg string) string { return status(SymbolError, msg) }

// Warning prefixes msg with a warning sign.
func Warning(msg string) string { return status(SymbolWarning, msg) }

// Warningf is Warning with formatting.
func Warningf(format string, args ...interface{}) string {
	return Warning(fmt.Sprintf(format, args...))
}

// Header renders a section title.
func Header(msg string) string {
	return Bold.Render(msg)
}

// FilePath renders a path in the accent color.
func FilePath(path string) string {
	return Accent.Render(path)
}

// Hint renders secondary text.
func Hint(msg string) string {
	return Muted.Render(msg)
}

// Divider returns a muted horizontal rule of the given width.
func Divider(width int) string {
	if width <= 0 {
		return ""
	}
	return Muted.Render(strings.Repeat("-", width))
}

// Checkbox returns the completion marker for a checklist entry.
func Checkbox(done bool) string {
	if done {
		return SymbolSuccess
	}
	return Muted.Render(SymbolPending)
}

// Ratio formats completed/total with a percentage, e.g. " 3/ 10 ( 30.0%)".
// A zero total reports 0%.
func Ratio(done, total int) string {
	pct := 0.0
	if total > 0 {
		pct = float64(done) / float64(total) * 100
	}
	return fmt.Sprintf("%3d/%3d (%5.1f%%)", done, total, pct)
}

// Count renders "(n singular)" or "(n plural)".
func Count(n int, singular, plural string) string {
	noun := plural
	if n == 1 {
		noun = singular
	}
	return fmt.Sprintf("(%d %s)", n, noun)
}
