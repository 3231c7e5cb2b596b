package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
)

// DefaultTermWidth is the fallback terminal width when detection fails.
const DefaultTermWidth = 100

// DisplayContext carries the detected terminal dimensions for listings.
type DisplayContext struct {
	TermWidth int
	IsTTY     bool
}

// NewDisplayContext detects whether stdout is a terminal and its width.
func NewDisplayContext() *DisplayContext {
	fd := os.Stdout.Fd()
	isTTY := term.IsTerminal(fd)

	width := DefaultTermWidth
	if isTTY {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			width = w
		}
	}
	return &DisplayContext{TermWidth: width, IsTTY: isTTY}
}

// NewDisplayContextWithWidth creates a DisplayContext with a fixed width.
func NewDisplayContextWithWidth(width int) *DisplayContext {
	return &DisplayContext{TermWidth: width, IsTTY: true}
}

// ColumnBudget splits the width left after fixed columns evenly across n
// flexible columns, never returning less than min.
func (d *DisplayContext) ColumnBudget(fixed, n, min int) int {
	if n <= 0 {
		return min
	}
	w := (d.TermWidth - fixed) / n
	if w < min {
		return min
	}
	return w
}
