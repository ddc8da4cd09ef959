// Package output renders hook results for the console.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/Veraticus/wiz-iac/internal/shared"
)

// Reporter writes the banners and diagnostics of a scan. Captured scanner
// output is written verbatim; only the banners are styled.
type Reporter struct {
	w      io.Writer
	styles shared.Styles
}

// NewReporter returns a reporter writing to w. Colour is used only when
// color is true.
func NewReporter(w io.Writer, color bool) *Reporter {
	return &Reporter{w: w, styles: shared.NewStyles(NewRenderer(w, color))}
}

// NewRenderer returns a lipgloss renderer for w, forced to plain text unless
// color is set.
func NewRenderer(w io.Writer, color bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Command echoes the command line and working directory before execution.
func (r *Reporter) Command(argv []string, dir string) {
	r.line(r.styles.Info.Render(fmt.Sprintf("Executing command: \"%s\" in directory: %s", strings.Join(argv, " "), dir)))
}

// Success prints the success banner, stdout and, if any, stderr.
func (r *Reporter) Success(stdout, stderr string) {
	r.line(r.styles.Success.Render("Scan successful:"))
	r.block(stdout)
	if stderr != "" {
		r.line(r.styles.Warning.Render("Stderr:"))
		r.block(stderr)
	}
}

// ScanFailed prints the failure banner with the exit code and stderr.
func (r *Reporter) ScanFailed(code int, stderr string) {
	r.line(r.styles.Error.Render(fmt.Sprintf("Scan failed with exit code %d:", code)))
	r.block(stderr)
}

// NotFound prints the diagnostic for a scanner missing from PATH.
func (r *Reporter) NotFound(executable string) {
	r.line(r.styles.Error.Render(fmt.Sprintf(
		"Error: '%s' command not found. Please ensure the Wiz CLI is installed and in your system's PATH.",
		executable)))
}

// Unexpected prints any other failure.
func (r *Reporter) Unexpected(msg string) {
	r.line(r.styles.Error.Render("An unexpected error occurred: " + msg))
}

// Invalid prints an option validation failure.
func (r *Reporter) Invalid(err error) {
	r.line(r.styles.Error.Render("Error: " + err.Error()))
}

func (r *Reporter) line(s string) {
	_, _ = fmt.Fprintln(r.w, s)
}

func (r *Reporter) block(s string) {
	if s == "" {
		return
	}
	_, _ = io.WriteString(r.w, s)
	if !strings.HasSuffix(s, "\n") {
		_, _ = io.WriteString(r.w, "\n")
	}
}
