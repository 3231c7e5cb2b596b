package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/raidbook/raidbook/internal/checklist"
	"github.com/raidbook/raidbook/internal/ui"
)

// prompter supplies the interactive answers a command needs: overwrite
// confirmation and manually entered entry fields.
type prompter interface {
	Confirm(message string) bool
	EntryFields(season string) (checklist.Entry, error)
}

var prompt prompter = &terminalPrompter{in: os.Stdin, out: os.Stdout}

type terminalPrompter struct {
	in     io.Reader
	out    io.Writer
	reader *bufio.Reader
}

func shouldPromptForConfirm() bool {
	if isJSONOutput() {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd())
}

func (p *terminalPrompter) readLine(label string) string {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.in)
	}
	fmt.Fprint(p.out, label)
	line, _ := p.reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// Confirm asks a yes/no question. Without a terminal the answer is no.
func (p *terminalPrompter) Confirm(message string) bool {
	if !shouldPromptForConfirm() {
		return false
	}
	if message == "" {
		message = "Apply changes?"
	}
	answer := strings.ToLower(p.readLine(fmt.Sprintf("%s %s ", message, ui.Hint("[y/N]"))))
	return answer == "y" || answer == "yes"
}

// EntryFields reads one entry field per line. Types are comma separated and
// uppercased; blank optional fields stay empty.
func (p *terminalPrompter) EntryFields(season string) (checklist.Entry, error) {
	fmt.Fprintln(p.out, ui.Header("Add Pokemon to "+season))

	var e checklist.Entry
	e.Name = p.readLine("Pokemon name: ")
	if e.Name == "" {
		return e, checklist.ErrEmptyName
	}

	role, err := checklist.ParseRole(p.readLine("Usage (Physical/Special/Support): "))
	if err != nil {
		return e, err
	}
	e.Role = role

	e.Types = checklist.SplitTypes(p.readLine("Types (comma-separated, e.g., Fire, Flying): "))
	e.HeldItem = p.readLine("Held item (optional): ")
	e.Ability = p.readLine("Ability (optional): ")
	e.Moves = p.readLine("Moves (optional): ")
	e.Notes = p.readLine("Notes (optional): ")
	return e, nil
}
