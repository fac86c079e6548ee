package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"gonum.org/v1/gonum/spatial/r2"
)

func main() {
	config, configErr := loadConfig()
	logger, closeLog, err := setupLogger(config)
	if err != nil {
		fmt.Fprintln(os.Stderr, "schemer:", err)
	}
	defer closeLog()
	if configErr != nil {
		logger.Warn("config file ignored", "err", configErr)
	}

	m, err := newModel(config, logger)
	if err != nil {
		log.Fatal(err)
	}
	logger.Info("starting", "canvas_width", config.CanvasWidth, "canvas_height", config.CanvasHeight)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func newModel(config *Config, logger *slog.Logger) (model, error) {
	surface, err := NewSurface(config.CanvasWidth, config.CanvasHeight)
	if err != nil {
		return model{}, err
	}
	m := model{
		config:  config,
		logger:  logger,
		canvas:  NewCanvas(config),
		surface: surface,
		chat:    newChat(),
	}
	m.setFocus(FocusPalette)
	return m, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case AddComponentMsg:
		comp := m.canvas.AddComponent(msg.Kind)
		m.history.Record(ActionAddComponent,
			AddComponentData{Component: comp, Index: len(m.canvas.components) - 1}, nil)
		m.logger.Info("component added", "id", comp.ID, "kind", comp.Kind)
		m.redraw()
		return m, nil

	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// cursor blink and other input plumbing
	cmd := m.chat.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errorMessage = ""
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		cmd := m.cycleFocus(1)
		return m, cmd
	case "shift+tab":
		cmd := m.cycleFocus(-1)
		return m, cmd
	}

	switch m.focus {
	case FocusChat:
		if msg.Type == tea.KeyEscape {
			cmd := m.setFocus(FocusCanvas)
			return m, cmd
		}
		cmd := m.chat.Update(msg)
		return m, cmd
	case FocusPalette:
		if cmd, ok := m.palette.Update(msg); ok {
			return m, cmd
		}
	}
	return m.handleCanvasKey(msg)
}

func (m model) handleCanvasKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "c":
		m.canvas.ToggleConnectionMode()
	case "esc":
		if !m.canvas.CancelConnectionMode() {
			return m, nil
		}
	case "x", "delete", "backspace":
		if !m.removeSelected() {
			m.errorMessage = "nothing selected"
			return m, nil
		}
	case "u", "ctrl+z":
		m.undo()
	case "ctrl+r", "U":
		m.redo()
	default:
		if m.focus != FocusCanvas || !m.handleNudge(msg.String()) {
			return m, nil
		}
	}
	m.redraw()
	return m, nil
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	l := m.layout()
	col, row := msg.X-l.canvasX, msg.Y-l.canvasY

	switch msg.Type {
	case tea.MouseLeft:
		if m.pointerDown {
			m.pointerMove(col, row)
			return nil
		}
		return m.pointerPress(msg, l, col, row)
	case tea.MouseMotion:
		if m.pointerDown {
			m.pointerMove(col, row)
		}
	case tea.MouseRelease:
		if m.pointerDown {
			m.pointerRelease(col, row)
		}
	case tea.MouseWheelUp, tea.MouseWheelDown:
		if msg.X >= l.paletteW+l.canvasW {
			return m.chat.Update(msg)
		}
	}
	return nil
}

func (m *model) pointerPress(msg tea.MouseMsg, l layout, col, row int) tea.Cmd {
	switch {
	case msg.X < l.paletteW:
		cmd := m.setFocus(FocusPalette)
		return tea.Batch(cmd, m.palette.Click(msg.Y-1))
	case msg.X >= l.paletteW+l.canvasW:
		cmd := m.setFocus(FocusChat)
		if msg.Y == 1+m.chat.buttonRow() {
			m.chat.Send()
		}
		return cmd
	}

	cmd := m.setFocus(FocusCanvas)
	if msg.Y == l.canvasY-1 {
		if m.clickHeader(msg.X - l.canvasX) {
			m.redraw()
		}
		return cmd
	}
	if !m.cells.contains(col, row) {
		return cmd
	}
	m.grab(col, row)
	m.pointerDown = true
	m.captureOrigin()
	m.redraw()
	return cmd
}

// grab presses the canvas at a cell. Handles anywhere inside the cell are
// reachable even though the press lands on its centre.
func (m *model) grab(col, row int) {
	m.canvas.PointerDownWithin(m.cells.toSurface(col, row), m.cells.slack())
}

func (m *model) pointerMove(col, row int) {
	if m.canvas.PointerMove(m.surfacePoint(col, row)) {
		m.redraw()
	}
}

// pointerRelease ends the gesture. A release inside the canvas is also a
// click, which is what picks components in connection mode.
func (m *model) pointerRelease(col, row int) {
	m.pointerDown = false
	m.canvas.PointerUp()
	m.finishGesture()
	if m.cells.contains(col, row) {
		if conn, ok := m.canvas.Click(m.cells.toSurface(col, row)); ok {
			m.history.Record(ActionAddConnection, AddConnectionData{Connection: conn}, nil)
			m.logger.Info("connection added", "id", conn.ID,
				"start", conn.Start.ComponentID, "end", conn.End.ComponentID)
		}
	}
	m.redraw()
}

// surfacePoint maps a cell to the surface, clamped to the surface bounds.
func (m *model) surfacePoint(col, row int) r2.Vec {
	w, h := m.canvas.Size()
	p := m.cells.toSurface(col, row)
	return r2.Vec{X: clamp(p.X, 0, float64(w)), Y: clamp(p.Y, 0, float64(h))}
}

func (m *model) captureOrigin() {
	m.dragOrigin = nil
	switch g := m.canvas.Gesture().(type) {
	case draggingComponent:
		if comp, ok := m.canvas.Component(g.id); ok {
			m.dragOrigin = &gestureOrigin{componentID: comp.ID, position: comp.Pos}
		}
	case draggingEndpoint:
		if conn, ok := m.canvas.Connection(g.connID); ok {
			m.dragOrigin = &gestureOrigin{connection: conn, hasConn: true}
		}
	case rotating:
		if conn, ok := m.canvas.Connection(g.connID); ok {
			m.dragOrigin = &gestureOrigin{connection: conn, hasConn: true}
		}
	}
}

// finishGesture records a completed drag or wire edit for undo.
func (m *model) finishGesture() {
	origin := m.dragOrigin
	m.dragOrigin = nil
	if origin == nil {
		return
	}
	if origin.hasConn {
		after, ok := m.canvas.Connection(origin.connection.ID)
		if ok && after != origin.connection {
			m.history.Record(ActionEditConnection,
				EditConnectionData{Connection: after},
				EditConnectionData{Connection: origin.connection})
		}
		return
	}
	after, ok := m.canvas.Component(origin.componentID)
	if ok && after.Pos != origin.position {
		m.history.Record(ActionMoveComponent,
			MoveComponentData{ID: after.ID, Position: after.Pos},
			MoveComponentData{ID: after.ID, Position: origin.position})
	}
}

// clickHeader handles the buttons on the canvas header row.
func (m *model) clickHeader(x int) bool {
	connectLabel, removeLabel := m.headerButtons()
	switch {
	case x >= 0 && x < len(connectLabel):
		m.canvas.ToggleConnectionMode()
		return true
	case removeLabel != "" && x >= len(connectLabel)+headerGap && x < len(connectLabel)+headerGap+len(removeLabel):
		return m.removeSelected()
	}
	return false
}

func (m *model) removeSelected() bool {
	removed, ok := m.canvas.RemoveSelected()
	if !ok {
		return false
	}
	m.history.Record(ActionRemoveComponent, removed, nil)
	m.logger.Info("component removed", "id", removed.Component.ID,
		"kind", removed.Component.Kind, "connections", len(removed.Connections))
	return true
}

func (m *model) undo() {
	action, ok := m.history.Undo(m.canvas)
	if !ok {
		m.errorMessage = "nothing to undo"
		return
	}
	m.logger.Debug("undo", "action", action.Type.String())
}

func (m *model) redo() {
	action, ok := m.history.Redo(m.canvas)
	if !ok {
		m.errorMessage = "nothing to redo"
		return
	}
	m.logger.Debug("redo", "action", action.Type.String())
}

// resize refits the panes to the terminal and redraws.
func (m *model) resize() {
	l := m.layout()
	m.chat.SetSize(l.chatW-2, l.paneH-2)
	m.redraw()
}

// redraw renders the canvas onto the surface and rasterises it for the
// canvas pane.
func (m *model) redraw() {
	l := m.layout()
	w, h := m.canvas.Size()
	m.cells = newCellMap(w, h, l.canvasCols, l.canvasRows)
	m.surface.Draw(m.canvas)
	m.canvasLines = rasterize(m.surface.Image(), m.cells, componentLabels(m.canvas, m.cells))
}
