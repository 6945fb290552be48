package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/votecloud/votecloud/pkg/score"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")      // Teal - titles, spinner
	colorGreen  = lipgloss.Color("35")      // Green - success
	colorYellow = lipgloss.Color("220")     // Amber - warnings, drops
	colorRed    = lipgloss.Color("167")     // Soft red - errors
	colorBlue   = lipgloss.Color("75")      // Light blue - commands
	colorWhite  = lipgloss.Color("255")     // Bright white - values
	colorGray   = lipgloss.Color("245")     // Gray - keys, table headers
	colorDim    = lipgloss.Color("240")     // Dim gray - muted text
	colorPink   = lipgloss.Color("#E91E63") // Winner pink, same as the cloud's centre label
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleWinner      = lipgloss.NewStyle().Bold(true).Foreground(colorPink)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// printer - human-facing command output
// =============================================================================

// printer writes styled status lines. Logs go to stderr through the logger;
// printer output is the command's result and goes to stdout.
type printer struct {
	w io.Writer
}

func (p printer) line(s string) {
	fmt.Fprintln(p.w, s)
}

func (p printer) success(format string, args ...any) {
	p.line(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func (p printer) warning(format string, args ...any) {
	p.line(StyleWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (p printer) info(format string, args ...any) {
	p.line(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// detail prints an indented, muted line.
func (p printer) detail(format string, args ...any) {
	p.line("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints the path of a written artifact.
func (p printer) file(path string) {
	p.line("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func (p printer) keyValue(key, value string) {
	p.line(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// nextStep prints a suggested follow-up command.
func (p printer) nextStep(description, cmd string) {
	p.line(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// stats prints render statistics and the current leader on one line:
//
//	12 labels · 40 votes · 12 placed · Bob leads with 9
func (p printer) stats(placed, dropped int, ranking score.RankedList) {
	sep := StyleDim.Render(" · ")
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d labels", len(ranking))),
		StyleDim.Render(fmt.Sprintf("%d votes", ranking.Total())),
		StyleDim.Render(fmt.Sprintf("%d placed", placed)),
	}
	if dropped > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d dropped", dropped)))
	}
	if w, ok := ranking.Winner(); ok && w.Score > 0 {
		parts = append(parts, styleWinner.Render(fmt.Sprintf("%s leads with %d", w.Label, w.Score)))
	}
	p.line("  " + strings.Join(parts, sep))
}
