package main

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

var componentCenterOffset = r2.Vec{X: componentWidth / 2, Y: componentHeight / 2}

// componentCenter is where wires attach to a component.
func componentCenter(pos r2.Vec) r2.Vec {
	return r2.Add(pos, componentCenterOffset)
}

// insideComponent reports whether p lies in the footprint at pos. Edges count.
func insideComponent(pos, p r2.Vec) bool {
	return p.X >= pos.X && p.X <= pos.X+componentWidth &&
		p.Y >= pos.Y && p.Y <= pos.Y+componentHeight
}

func withinHandle(center, p r2.Vec, handleSize float64) bool {
	return r2.Norm(r2.Sub(p, center)) < handleSize/2
}

// grabsHandle reports whether a press at p picks up the handle at center.
// Besides the handle circle, the press also takes any handle lying within
// slack of p on each axis, so a coarse pointer can reach every handle.
func (c *Canvas) grabsHandle(center, p, slack r2.Vec) bool {
	if withinHandle(center, p, c.handleSize) {
		return true
	}
	d := r2.Sub(p, center)
	return math.Abs(d.X) <= slack.X && math.Abs(d.Y) <= slack.Y
}

func midpoint(a, b r2.Vec) r2.Vec {
	return r2.Scale(0.5, r2.Add(a, b))
}

// angleFrom returns the direction of p as seen from center, in radians.
func angleFrom(center, p r2.Vec) float64 {
	d := r2.Sub(p, center)
	return math.Atan2(d.Y, d.X)
}

func (c *Canvas) componentAt(p r2.Vec) int {
	for i, comp := range c.components {
		if insideComponent(comp.Pos, p) {
			return i
		}
	}
	return -1
}

// endpointHandleAt finds the first connection whose start or end handle
// contains p. Start handles are tested before end handles.
func (c *Canvas) endpointHandleAt(p, slack r2.Vec) (int, EndpointSide, bool) {
	for i, conn := range c.connections {
		for _, side := range []EndpointSide{SideStart, SideEnd} {
			anchor, ok := c.Anchor(conn, side)
			if ok && c.grabsHandle(anchor, p, slack) {
				return i, side, true
			}
		}
	}
	return -1, SideStart, false
}

func (c *Canvas) rotationHandleAt(p, slack r2.Vec) (int, bool) {
	for i, conn := range c.connections {
		center, ok := c.wireCenter(conn)
		if ok && c.grabsHandle(center, p, slack) {
			return i, true
		}
	}
	return -1, false
}

// wireCenter is the midpoint between both anchors, which is also the
// centre of the connection's bounding box.
func (c *Canvas) wireCenter(conn Connection) (r2.Vec, bool) {
	a, okA := c.Anchor(conn, SideStart)
	b, okB := c.Anchor(conn, SideEnd)
	if !okA || !okB {
		return r2.Vec{}, false
	}
	return midpoint(a, b), true
}
