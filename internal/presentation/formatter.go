package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#54A0FF"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	derivedStyle = lipgloss.NewStyle().Italic(true)
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatSdks formats a list of SDKs as indented JSON
func (f *Formatter) FormatSdks(sdks []SdkDTO) error {
	return f.FormatJSON(sdks)
}

// FormatJSON writes any value as indented JSON
func (f *Formatter) FormatJSON(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatTable renders SDKs as an aligned table under title. An empty list
// prints a muted placeholder.
func (f *Formatter) FormatTable(title string, sdks []SdkDTO) error {
	var b strings.Builder
	if title != "" {
		b.WriteString(titleStyle.Render(title))
		b.WriteString("\n")
	}

	if len(sdks) == 0 {
		b.WriteString(mutedStyle.Render("(no sdks)"))
		b.WriteString("\n")
		_, err := io.WriteString(f.writer, b.String())
		return err
	}

	headers := []string{"NAME", "TYPE", "VERSION", "HOME"}
	rows := make([][]string, len(sdks))
	for i, s := range sdks {
		name := s.Name
		switch {
		case s.Internal:
			name += " (internal)"
		case s.Derived:
			name += " (derived)"
		}
		rows[i] = []string{name, s.Type, s.Version, s.Home}
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	b.WriteString(renderRow(headers, widths, headerStyle))
	for i, row := range rows {
		style := lipgloss.NewStyle()
		if sdks[i].Derived || sdks[i].Internal {
			style = derivedStyle
		}
		b.WriteString(renderRow(row, widths, style))
	}

	_, err := io.WriteString(f.writer, b.String())
	return err
}

// FormatTypes lists registered type names, one per line.
func (f *Formatter) FormatTypes(names []string) error {
	for _, n := range names {
		if _, err := fmt.Fprintln(f.writer, n); err != nil {
			return err
		}
	}
	return nil
}

func renderRow(cells []string, widths []int, style lipgloss.Style) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		padded := c + strings.Repeat(" ", widths[i]-lipgloss.Width(c))
		parts[i] = style.Render(padded)
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ") + "\n"
}
