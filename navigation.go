package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"gonum.org/v1/gonum/spatial/r2"
)

// handleNudge moves the selected component with the arrow keys and
// records the move for undo.
func (m *model) handleNudge(key string) bool {
	id, ok := m.canvas.Selected()
	if !ok {
		return false
	}
	before, _ := m.canvas.Component(id)
	speed := float64(m.getMoveSpeed(key))
	var delta r2.Vec
	switch key {
	case "h", "left", "H", "shift+left":
		delta.X = -speed
	case "l", "right", "L", "shift+right":
		delta.X = speed
	case "k", "up", "K", "shift+up":
		delta.Y = -speed
	case "j", "down", "J", "shift+down":
		delta.Y = speed
	default:
		return false
	}
	if !m.canvas.Nudge(delta.X, delta.Y) {
		return false
	}
	after, _ := m.canvas.Component(id)
	m.history.Record(ActionMoveComponent,
		MoveComponentData{ID: id, Position: after.Pos},
		MoveComponentData{ID: id, Position: before.Pos})
	return true
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return nudgeStepFast
	default:
		return nudgeStep
	}
}

// setFocus moves keyboard focus to f, focusing or blurring the chat input.
func (m *model) setFocus(f Focus) tea.Cmd {
	m.focus = f
	m.palette.focused = f == FocusPalette
	if f == FocusChat {
		return m.chat.Focus()
	}
	m.chat.Blur()
	return nil
}

func (m *model) cycleFocus(step int) tea.Cmd {
	next := (int(m.focus) + step + int(numFocus)) % int(numFocus)
	return m.setFocus(Focus(next))
}
