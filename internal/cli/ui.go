package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette. Numbers are ANSI 256 colour indexes.
var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorLink   = lipgloss.Color("75")
	colorBright = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

// Styles shared with the interactive preview.
var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleDim     = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue   = lipgloss.NewStyle().Foreground(colorBright)
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleKey         = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorLink)
	styleCached      = lipgloss.NewStyle().Foreground(colorOK)
	styleComputed    = lipgloss.NewStyle().Foreground(colorMuted)
)

// statusKind selects the icon and colour of a status line.
type statusKind int

const (
	statusSuccess statusKind = iota
	statusError
	statusWarning
	statusInfo
)

var statusIcons = [...]struct {
	icon  string
	style lipgloss.Style
}{
	statusSuccess: {"✓", lipgloss.NewStyle().Foreground(colorOK)},
	statusError:   {"✗", lipgloss.NewStyle().Foreground(colorFail)},
	statusWarning: {"!", lipgloss.NewStyle().Foreground(colorWarn)},
	statusInfo:    {"›", lipgloss.NewStyle().Foreground(colorMuted)},
}

// uiOut receives all human-facing command output. Tests swap it out.
var uiOut io.Writer = os.Stdout

func emit(line string) {
	fmt.Fprintln(uiOut, line)
}

func statusLine(kind statusKind, msg string) string {
	s := statusIcons[kind]
	if kind == statusWarning {
		msg = StyleWarning.Render(msg)
	}
	return s.style.Render(s.icon) + " " + msg
}

func printSuccess(format string, args ...any) {
	emit(statusLine(statusSuccess, fmt.Sprintf(format, args...)))
}

func printError(format string, args ...any) {
	emit(statusLine(statusError, fmt.Sprintf(format, args...)))
}

func printWarning(format string, args ...any) {
	emit(statusLine(statusWarning, fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	emit(statusLine(statusInfo, fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, dimmed line below a status line.
func printDetail(format string, args ...any) {
	emit("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile lists a written artifact.
func printFile(path string) {
	emit("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	emit(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// printStats summarises a layout as "N nodes · M edges · cached|fresh".
// Zero counts are omitted.
func printStats(nodes, edges int, cached bool) {
	var parts []string
	if nodes > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d nodes", nodes)))
	}
	if edges > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d edges", edges)))
	}
	if cached {
		parts = append(parts, StyleDim.Render(styleCached.Render("cached")))
	} else {
		parts = append(parts, StyleDim.Render(styleComputed.Render("fresh")))
	}
	emit("  " + strings.Join(parts, StyleDim.Render(" · ")))
}

// printNextStep suggests the command to run after this one.
func printNextStep(description, cmd string) {
	emit(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	emit("")
}
