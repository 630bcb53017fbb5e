package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes human-readable progress for tool commands.
// Styles are disabled when the writer is not a terminal.
type Printer struct {
	w       io.Writer
	errW    io.Writer
	isTTY   bool
	verbose bool
	styles  *Styles
}

// Styles holds lipgloss styles for console output.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Bold    lipgloss.Style
	Dim     lipgloss.Style
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Code    lipgloss.Style
	Step    lipgloss.Style
	Border  lipgloss.Color
	Accent  lipgloss.Style
}

// NewPrinter creates a new Printer.
// If isTTY is true, colors will be enabled.
func NewPrinter(writer io.Writer, isTTY bool) *Printer {
	styles := &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true), // Red
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),           // Green
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),           // Yellow
		Bold:    lipgloss.NewStyle().Bold(true),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")), // Blue
		Muted:   lipgloss.NewStyle().Faint(true),
		Code:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")), // Cyan
		Step:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Border:  lipgloss.Color("14"),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")), // Magenta
	}

	if !isTTY {
		plain := lipgloss.NewStyle()
		styles = &Styles{
			Error: plain, Success: plain, Warning: plain, Bold: plain, Dim: plain,
			Title: plain, Muted: plain, Code: plain, Step: plain, Accent: plain,
			Border: lipgloss.Color(""),
		}
	}

	return &Printer{
		w:      writer,
		errW:   writer,
		isTTY:  isTTY,
		styles: styles,
	}
}

// WithStderr sets a separate writer for errors and warnings.
// Returns the printer for chaining.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errW = w
	return p
}

// WithVerbose enables Debug output.
func (p *Printer) WithVerbose(verbose bool) *Printer {
	p.verbose = verbose
	return p
}

// Styles exposes the active style set for callers composing their own lines.
func (p *Printer) Styles() *Styles {
	return p.styles
}

// Step announces the start of a unit of work ("Installing Prettier...").
func (p *Printer) Step(format string, args ...any) {
	mustWrite(fmt.Fprintln(p.w, p.styles.Step.Render("›")+" "+fmt.Sprintf(format, args...)))
}

// Info writes a plain informational line.
func (p *Printer) Info(format string, args ...any) {
	mustWrite(fmt.Fprintf(p.w, format+"\n", args...))
}

// Success writes a line in the success style.
func (p *Printer) Success(format string, args ...any) {
	mustWrite(fmt.Fprintln(p.w, p.styles.Success.Render(fmt.Sprintf(format, args...))))
}

// Hint writes a suggestion or next step in the warning color without a prefix.
func (p *Printer) Hint(format string, args ...any) {
	mustWrite(fmt.Fprintln(p.w, p.styles.Warning.Render(fmt.Sprintf(format, args...))))
}

// Code writes an indented snippet the user is expected to copy.
func (p *Printer) Code(snippet string) {
	for line := range strings.SplitSeq(strings.Trim(snippet, "\n"), "\n") {
		mustWrite(fmt.Fprintln(p.w, "  "+p.styles.Code.Render(line)))
	}
}

// Debug writes a dimmed line when verbose output is enabled.
func (p *Printer) Debug(format string, args ...any) {
	if !p.verbose {
		return
	}
	mustWrite(fmt.Fprintln(p.errW, p.styles.Dim.Render("debug: "+fmt.Sprintf(format, args...))))
}

// Error outputs an error to the error writer.
func (p *Printer) Error(err error) {
	msg := err.Error()
	exitErr := &ExitError{}
	if errors.As(err, &exitErr) && exitErr.Cause != nil {
		msg = exitErr.Message + ": " + exitErr.Cause.Error()
	}
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Error.Render("Error"), msg))
}

// Warn outputs a warning message to the error writer.
func (p *Printer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Warning.Render("Warning"), msg))
}

// Print formats and writes to the output without a newline.
func (p *Printer) Print(format string, args ...any) {
	mustWrite(fmt.Fprintf(p.w, format, args...))
}

// Println writes a line to the output.
func (p *Printer) Println(args ...any) {
	mustWrite(fmt.Fprintln(p.w, args...))
}

// mustWrite panics if a write operation fails.
// Use this to wrap write operations that should never fail
// (e.g., writing to stdout/stderr or buffers).
func mustWrite(_ int, err error) {
	if err != nil {
		panic(fmt.Sprintf("write failed: %v", err))
	}
}

// Table renders a simple table with column alignment.
// Headers are rendered in Bold style. Column widths are auto-calculated.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := calcColumnWidths(headers, rows)
	p.printTableRow(headers, widths, p.styles.Bold)
	for _, row := range rows {
		p.printTableRow(row, widths, lipgloss.NewStyle())
	}
}

// calcColumnWidths computes the max width for each column.
func calcColumnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

// printTableRow renders a single row padded to the column widths.
func (p *Printer) printTableRow(row []string, widths []int, style lipgloss.Style) {
	for i, cell := range row {
		if i >= len(widths) {
			break
		}
		if i > 0 {
			mustWrite(fmt.Fprint(p.w, "  "))
		}
		mustWrite(fmt.Fprint(p.w, style.Render(padRight(cell, widths[i]))))
	}
	mustWrite(fmt.Fprintln(p.w))
}

// Box renders content in a bordered box with an optional title.
// For non-TTY output, renders plain text without borders.
func (p *Printer) Box(title string, content string) {
	if !p.isTTY {
		if title != "" {
			mustWrite(fmt.Fprintln(p.w, title))
		}
		mustWrite(fmt.Fprintln(p.w, content))
		return
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.styles.Border).
		Padding(0, 1)

	boxContent := content
	if title != "" {
		boxContent = p.styles.Title.Render(title) + "\n" + content
	}

	mustWrite(fmt.Fprintln(p.w, style.Render(boxContent)))
}

// Section renders a section header with underline.
// Adds a blank line before the header.
func (p *Printer) Section(title string) {
	mustWrite(fmt.Fprintln(p.w))
	mustWrite(fmt.Fprintln(p.w, p.styles.Title.Render(title)))
	underline := strings.Repeat("─", len(title))
	mustWrite(fmt.Fprintln(p.w, p.styles.Muted.Render(underline)))
}

// Rule prints a horizontal separator between batch entries.
func (p *Printer) Rule() {
	mustWrite(fmt.Fprintln(p.w, p.styles.Dim.Render(strings.Repeat("─", 50))))
}

// padRight pads a string with spaces to reach the target width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
