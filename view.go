package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// layout is the screen geometry of the three panes. Widths and height are
// outer sizes including borders.
type layout struct {
	paletteW   int
	canvasW    int
	chatW      int
	paneH      int
	canvasCols int
	canvasRows int
	// screen position of the first raster cell
	canvasX int
	canvasY int
}

const headerGap = 2

var (
	paneStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#666666"))
	focusedPaneStyle = paneStyle.Copy().BorderForeground(lipgloss.Color("#1976d2"))
	buttonStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#424242"))
	activeButton     = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color(pendingStartColor))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#aaaaaa"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true)
)

func (m model) layout() layout {
	paneH := m.height - 1 // status line
	if paneH < 3 {
		paneH = 3
	}
	paletteW := m.config.PaletteWidth
	chatW := m.config.ChatWidth
	canvasW := m.width - paletteW - chatW
	if canvasW < minCanvasPaneWidth {
		canvasW = minCanvasPaneWidth
	}
	l := layout{
		paletteW: paletteW,
		canvasW:  canvasW,
		chatW:    chatW,
		paneH:    paneH,
		canvasX:  paletteW + 1,
		canvasY:  2, // border, then header row
	}
	l.canvasCols = canvasW - 2
	l.canvasRows = paneH - 3
	return l
}

func (c *Chat) buttonRow() int {
	// title, history, blank, input
	return c.history.Height + 3
}

func (m model) headerButtons() (string, string) {
	connect := "[c] Add Connection"
	if m.canvas.ConnectionMode() {
		connect = "[c] Cancel Connection"
	}
	remove := ""
	if _, ok := m.canvas.Selected(); ok {
		remove = "[x] Remove Component"
	}
	return connect, remove
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}
	l := m.layout()

	palette := m.pane(FocusPalette, l.paletteW, l.paneH).Render(m.palette.View(l.paletteW - 2))
	canvas := m.pane(FocusCanvas, l.canvasW, l.paneH).Render(m.canvasView(l))
	chat := m.pane(FocusChat, l.chatW, l.paneH).Render(m.chat.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, palette, canvas, chat)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusLine())
}

func (m model) pane(f Focus, w, h int) lipgloss.Style {
	style := paneStyle
	if m.focus == f {
		style = focusedPaneStyle
	}
	return style.Copy().Width(w - 2).Height(h - 2).MaxHeight(h)
}

func (m model) canvasView(l layout) string {
	connect, remove := m.headerButtons()
	var header strings.Builder
	if m.canvas.ConnectionMode() {
		header.WriteString(activeButton.Render(connect))
	} else {
		header.WriteString(buttonStyle.Render(connect))
	}
	if remove != "" {
		header.WriteString(strings.Repeat(" ", headerGap))
		header.WriteString(buttonStyle.Render(remove))
	}

	lines := make([]string, 0, len(m.canvasLines)+1)
	lines = append(lines, header.String())
	lines = append(lines, m.canvasLines...)
	return strings.Join(lines, "\n")
}

func (m model) modeString() string {
	if m.canvas.ConnectionMode() {
		if id, ok := m.canvas.PendingStart(); ok {
			comp, _ := m.canvas.Component(id)
			return "CONNECT: pick end for " + comp.Kind.DisplayName()
		}
		return "CONNECT: pick start"
	}
	return strings.ToUpper(m.canvas.Gesture().name())
}

func (m model) statusLine() string {
	parts := []string{m.modeString()}
	if id, ok := m.canvas.Selected(); ok {
		comp, _ := m.canvas.Component(id)
		parts = append(parts, "selected: "+comp.Kind.DisplayName())
	}
	parts = append(parts, fmt.Sprintf("%d components, %d connections",
		len(m.canvas.components), len(m.canvas.connections)))

	status := statusStyle.Render(strings.Join(parts, " | "))
	if m.errorMessage != "" {
		status += "  " + errorStyle.Render(m.errorMessage)
	}
	hints := statusStyle.Render("  tab focus  c connect  x remove  u/ctrl+r undo/redo  esc cancel  q quit")
	return lipgloss.NewStyle().MaxWidth(m.width).Render(status + hints)
}
