package screen

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	clearScreen = termenv.CSI + fmt.Sprintf(termenv.EraseDisplaySeq, 2) + termenv.CSI + fmt.Sprintf(termenv.CursorPositionSeq, 1, 1)
	clearLine   = "\r" + termenv.CSI + termenv.EraseEntireLineSeq
)

var (
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	hintStyle   = lipgloss.NewStyle().Faint(true)
)

// Clear erases the whole display and moves the cursor to the top left.
func Clear(w io.Writer) error {
	_, err := io.WriteString(w, clearScreen)
	return err
}

// ClearLine erases the line the cursor is on and returns to its start.
func ClearLine(w io.Writer) error {
	_, err := io.WriteString(w, clearLine)
	return err
}

// Banner renders a section title. It must never be used for sensitive text.
func Banner(title string) string {
	rule := strings.Repeat("=", 16)
	return bannerStyle.Render(rule + " " + title + " " + rule)
}

// Hint renders secondary guidance text.
func Hint(text string) string {
	return hintStyle.Render(text)
}
