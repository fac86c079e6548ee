package main

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"gonum.org/v1/gonum/spatial/r2"
)

// Surface is the fixed-size drawing context the canvas renders into.
type Surface struct {
	dc *gg.Context
}

func NewSurface(width, height int) (*Surface, error) {
	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	dc := gg.NewContext(width, height)
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    labelFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))
	return &Surface{dc: dc}, nil
}

func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

// Draw clears the surface and renders the canvas onto it.
func (s *Surface) Draw(c *Canvas) {
	c.Render(s.dc)
}

func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// Render clears dc and draws components, then wires and their handles on
// top.
func (c *Canvas) Render(dc *gg.Context) {
	dc.SetHexColor(backgroundColor)
	dc.Clear()

	for _, comp := range c.components {
		c.drawComponent(dc, comp)
	}
	for _, conn := range c.connections {
		c.drawConnection(dc, conn)
	}
}

func (c *Canvas) drawComponent(dc *gg.Context, comp Component) {
	dc.SetHexColor(componentColor)
	dc.DrawRectangle(comp.Pos.X, comp.Pos.Y, componentWidth, componentHeight)
	dc.Fill()

	dc.SetHexColor(labelColor)
	dc.DrawString(string(comp.Kind), comp.Pos.X+labelOffsetX, comp.Pos.Y+labelOffsetY)

	outline := ""
	if pending, ok := c.PendingStart(); ok && pending == comp.ID {
		outline = pendingStartColor
	} else if comp.ID == c.selected {
		outline = selectedColor
	}
	if outline != "" {
		dc.SetHexColor(outline)
		dc.SetLineWidth(outlineWidth)
		dc.DrawRectangle(comp.Pos.X-outlineWidth, comp.Pos.Y-outlineWidth,
			componentWidth+2*outlineWidth, componentHeight+2*outlineWidth)
		dc.Stroke()
	}
}

func (c *Canvas) drawConnection(dc *gg.Context, conn Connection) {
	start, okStart := c.Anchor(conn, SideStart)
	end, okEnd := c.Anchor(conn, SideEnd)
	if !okStart || !okEnd {
		return
	}

	// The stroke is rotated around the start anchor; handles are not.
	dc.Push()
	dc.Translate(start.X, start.Y)
	dc.Rotate(conn.Rotation)
	dc.MoveTo(0, 0)
	d := r2.Sub(end, start)
	dc.LineTo(d.X, d.Y)
	dc.SetHexColor(wireColor)
	dc.SetLineWidth(wireWidth)
	dc.Stroke()
	dc.Pop()

	radius := c.handleSize / 2
	dc.SetHexColor(handleColor)
	dc.DrawCircle(start.X, start.Y, radius)
	dc.Fill()
	dc.DrawCircle(end.X, end.Y, radius)
	dc.Fill()

	mid := midpoint(start, end)
	dc.SetHexColor(rotateHandleColor)
	dc.DrawCircle(mid.X, mid.Y, radius)
	dc.Fill()
}
