package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
	"gonum.org/v1/gonum/spatial/r2"
)

// cellMap converts between terminal cells of the canvas pane and surface
// pixels. Every cell shows two vertically stacked samples (a half block),
// and one sample covers scale x scale surface pixels.
type cellMap struct {
	scale float64
	cols  int
	rows  int
	imgW  int
	imgH  int
}

func newCellMap(surfaceW, surfaceH, cols, rows int) cellMap {
	if cols < 1 || rows < 1 || surfaceW < 1 || surfaceH < 1 {
		return cellMap{}
	}
	scale := math.Max(float64(surfaceW)/float64(cols), float64(surfaceH)/float64(2*rows))
	imgW := int(math.Ceil(float64(surfaceW) / scale))
	imgH := int(math.Ceil(float64(surfaceH) / scale))
	return cellMap{
		scale: scale,
		cols:  imgW,
		rows:  (imgH + 1) / 2,
		imgW:  imgW,
		imgH:  imgH,
	}
}

func (m cellMap) valid() bool {
	return m.scale > 0
}

func (m cellMap) contains(col, row int) bool {
	return m.valid() && col >= 0 && col < m.cols && row >= 0 && row < m.rows
}

// toSurface returns the surface point at the centre of a cell.
func (m cellMap) toSurface(col, row int) r2.Vec {
	return r2.Vec{
		X: (float64(col) + 0.5) * m.scale,
		Y: (float64(row)*2 + 1) * m.scale,
	}
}

// slack is the distance from a cell's centre to its edges, so every
// surface point within slack of toSurface(col, row) shows in that cell.
func (m cellMap) slack() r2.Vec {
	return r2.Vec{X: m.scale / 2, Y: m.scale}
}

func (m cellMap) toCell(p r2.Vec) (int, int) {
	if !m.valid() {
		return 0, 0
	}
	return int(math.Floor(p.X / m.scale)), int(math.Floor(p.Y / (2 * m.scale)))
}

// cellLabel is text drawn over the raster at a cell position.
type cellLabel struct {
	col, row int
	text     string
}

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(labelColor)).
			Background(lipgloss.Color(componentColor)).
			Bold(true)
	halfBlockStyles = map[[2]string]lipgloss.Style{}
)

// inkGain exaggerates how far a downsampled pixel strays from the
// background so thin wires stay visible at terminal resolution.
const inkGain = 3.0

// rasterize scales img down to the cell grid and renders it as rows of
// half blocks with labels laid over it.
func rasterize(img image.Image, m cellMap, labels []cellLabel) []string {
	if !m.valid() {
		return nil
	}
	small := image.NewRGBA(image.Rect(0, 0, m.imgW, m.rows*2))
	xdraw.Draw(small, small.Bounds(), image.NewUniform(hexColor(backgroundColor)), image.Point{}, xdraw.Src)
	xdraw.BiLinear.Scale(small, image.Rect(0, 0, m.imgW, m.imgH), img, img.Bounds(), xdraw.Src, nil)
	bg := hexColor(backgroundColor)

	overlay := make([][]rune, m.rows)
	for i := range overlay {
		overlay[i] = make([]rune, m.cols)
	}
	for _, l := range labels {
		if l.row < 0 || l.row >= m.rows {
			continue
		}
		for i, r := range []rune(l.text) {
			col := l.col + i
			if col >= 0 && col < m.cols {
				overlay[l.row][col] = r
			}
		}
	}

	lines := make([]string, m.rows)
	for row := 0; row < m.rows; row++ {
		var b strings.Builder
		for col := 0; col < m.cols; {
			if overlay[row][col] != 0 {
				start := col
				for col < m.cols && overlay[row][col] != 0 {
					col++
				}
				b.WriteString(labelStyle.Render(string(overlay[row][start:col])))
				continue
			}
			top := ink(small.RGBAAt(col, row*2), bg)
			bottom := ink(small.RGBAAt(col, row*2+1), bg)
			b.WriteString(halfBlock(top, bottom))
			col++
		}
		lines[row] = b.String()
	}
	return lines
}

func halfBlock(top, bottom string) string {
	key := [2]string{top, bottom}
	style, ok := halfBlockStyles[key]
	if !ok {
		style = lipgloss.NewStyle().
			Foreground(lipgloss.Color(top)).
			Background(lipgloss.Color(bottom))
		halfBlockStyles[key] = style
	}
	return style.Render("▀")
}

// ink pushes c away from bg by inkGain and returns it as a hex colour.
func ink(c, bg color.RGBA) string {
	push := func(v, base uint8) uint8 {
		d := (float64(v) - float64(base)) * inkGain
		return uint8(math.Max(0, math.Min(255, float64(base)+d)))
	}
	return fmt.Sprintf("#%02x%02x%02x", push(c.R, bg.R), push(c.G, bg.G), push(c.B, bg.B))
}

// hexColor parses one of the colour constants. It panics on a malformed
// value.
func hexColor(hex string) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(fmt.Sprintf("bad colour %q: %v", hex, err))
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// componentLabels centres each component's kind name, cut to the
// component's width in cells, on the cell under its centre.
func componentLabels(c *Canvas, m cellMap) []cellLabel {
	if !m.valid() {
		return nil
	}
	width := int(componentWidth / m.scale)
	if width < 1 {
		width = 1
	}
	labels := make([]cellLabel, 0, len(c.components))
	for _, comp := range c.components {
		col, row := m.toCell(componentCenter(comp.Pos))
		text := []rune(string(comp.Kind))
		if len(text) > width {
			text = text[:width]
		}
		col -= len(text) / 2
		labels = append(labels, cellLabel{col: col, row: row, text: string(text)})
	}
	return labels
}
