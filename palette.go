package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type paletteEntry struct {
	Name string
	Kind Kind
}

var paletteEntries = []paletteEntry{
	{Name: "Resistor", Kind: KindResistor},
	{Name: "Capacitor", Kind: KindCapacitor},
	{Name: "LED", Kind: KindLED},
	{Name: "Battery", Kind: KindBattery},
	{Name: "Transistor", Kind: KindTransistor},
	{Name: "Diode", Kind: KindDiode},
	{Name: "Switch", Kind: KindSwitch},
	{Name: "Ground", Kind: KindGround},
}

// paletteHeaderRows is the number of content rows above the first entry.
const paletteHeaderRows = 2

func (k Kind) DisplayName() string {
	for _, e := range paletteEntries {
		if e.Kind == k {
			return e.Name
		}
	}
	return string(k)
}

// AddComponentMsg asks the canvas to place a new component.
type AddComponentMsg struct {
	Kind Kind
}

func addComponent(kind Kind) tea.Cmd {
	return func() tea.Msg {
		return AddComponentMsg{Kind: kind}
	}
}

type Palette struct {
	cursor  int
	focused bool
}

var (
	paletteTitleStyle  = lipgloss.NewStyle().Bold(true)
	paletteItemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#1976d2")).Bold(true)
	paletteCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#ffb300")).Bold(true)
)

// Update handles palette keys. The second result reports whether the key
// was consumed.
func (p *Palette) Update(msg tea.KeyMsg) (tea.Cmd, bool) {
	key := msg.String()
	switch key {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
		return nil, true
	case "down", "j":
		if p.cursor < len(paletteEntries)-1 {
			p.cursor++
		}
		return nil, true
	case "enter", " ":
		return addComponent(paletteEntries[p.cursor].Kind), true
	}
	if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(paletteEntries) {
		p.cursor = int(key[0] - '1')
		return addComponent(paletteEntries[p.cursor].Kind), true
	}
	return nil, false
}

// Click handles a click on a content row of the palette pane.
func (p *Palette) Click(row int) tea.Cmd {
	i := row - paletteHeaderRows
	if i < 0 || i >= len(paletteEntries) {
		return nil
	}
	p.cursor = i
	return addComponent(paletteEntries[i].Kind)
}

func (p Palette) View(width int) string {
	var b strings.Builder
	b.WriteString(paletteTitleStyle.Render("Component Library"))
	b.WriteString("\n\n")
	for i, e := range paletteEntries {
		label := fmt.Sprintf(" %d %s", i+1, e.Name)
		style := paletteItemStyle
		if p.focused && i == p.cursor {
			style = paletteCursorStyle
		}
		b.WriteString(style.Width(width).Render(label))
		if i < len(paletteEntries)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
