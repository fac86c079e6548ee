package main

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"
)

// gesture is the pointer interaction in progress. Exactly one is active.
type gesture interface {
	name() string
}

type idle struct{}

type draggingComponent struct {
	id     string
	offset r2.Vec
}

type draggingEndpoint struct {
	connID string
	side   EndpointSide
}

type rotating struct {
	connID string
}

func (idle) name() string              { return "idle" }
func (draggingComponent) name() string { return "dragging component" }
func (draggingEndpoint) name() string  { return "dragging wire end" }
func (rotating) name() string          { return "rotating wire" }

// connectState is present while connection mode is on.
type connectState struct {
	pending string
}

type Canvas struct {
	width       int
	height      int
	handleSize  float64
	defaultPos  r2.Vec
	components  []Component
	connections []Connection
	gesture     gesture
	selected    string
	connect     *connectState
	newID       func() string
}

func NewCanvas(config *Config) *Canvas {
	return &Canvas{
		width:       config.CanvasWidth,
		height:      config.CanvasHeight,
		handleSize:  config.HandleSize,
		defaultPos:  r2.Vec{X: config.DefaultX, Y: config.DefaultY},
		components:  make([]Component, 0),
		connections: make([]Connection, 0),
		gesture:     idle{},
		newID:       uuid.NewString,
	}
}

func (c *Canvas) Components() []Component {
	return append([]Component(nil), c.components...)
}

func (c *Canvas) Connections() []Connection {
	return append([]Connection(nil), c.connections...)
}

func (c *Canvas) Component(id string) (Component, bool) {
	if i := c.componentIndex(id); i >= 0 {
		return c.components[i], true
	}
	return Component{}, false
}

func (c *Canvas) Connection(id string) (Connection, bool) {
	if i := c.connectionIndex(id); i >= 0 {
		return c.connections[i], true
	}
	return Connection{}, false
}

func (c *Canvas) componentIndex(id string) int {
	for i, comp := range c.components {
		if comp.ID == id {
			return i
		}
	}
	return -1
}

func (c *Canvas) connectionIndex(id string) int {
	for i, conn := range c.connections {
		if conn.ID == id {
			return i
		}
	}
	return -1
}

// Anchor resolves where an endpoint is drawn: its pinned point if the
// handle was dragged, otherwise the centre of the live component.
func (c *Canvas) Anchor(conn Connection, side EndpointSide) (r2.Vec, bool) {
	e := conn.endpoint(side)
	if e.Pinned {
		return e.Override, true
	}
	comp, ok := c.Component(e.ComponentID)
	if !ok {
		return r2.Vec{}, false
	}
	return componentCenter(comp.Pos), true
}

func (c *Canvas) Gesture() gesture {
	return c.gesture
}

func (c *Canvas) Selected() (string, bool) {
	return c.selected, c.selected != ""
}

func (c *Canvas) ConnectionMode() bool {
	return c.connect != nil
}

func (c *Canvas) PendingStart() (string, bool) {
	if c.connect == nil || c.connect.pending == "" {
		return "", false
	}
	return c.connect.pending, true
}

// AddComponent places a new component of kind at the default position.
func (c *Canvas) AddComponent(kind Kind) Component {
	comp := Component{
		ID:   c.newID(),
		Kind: kind,
		Pos:  c.defaultPos,
	}
	c.components = append(c.components, comp)
	return comp
}

// InsertComponent puts comp back at index, clamped to the list bounds.
func (c *Canvas) InsertComponent(comp Component, index int) {
	if index < 0 || index > len(c.components) {
		index = len(c.components)
	}
	c.components = append(c.components, Component{})
	copy(c.components[index+1:], c.components[index:])
	c.components[index] = comp
}

// DeleteComponent removes the component and every connection touching it.
// It returns what was removed so the deletion can be undone.
func (c *Canvas) DeleteComponent(id string) (RemoveComponentData, bool) {
	idx := c.componentIndex(id)
	if idx < 0 {
		return RemoveComponentData{}, false
	}
	removed := RemoveComponentData{Component: c.components[idx], Index: idx}
	c.components = append(c.components[:idx], c.components[idx+1:]...)

	kept := make([]Connection, 0, len(c.connections))
	for i, conn := range c.connections {
		if conn.references(id) {
			removed.Connections = append(removed.Connections, conn)
			removed.ConnectionIndices = append(removed.ConnectionIndices, i)
			continue
		}
		kept = append(kept, conn)
	}
	c.connections = kept

	if c.selected == id {
		c.selected = ""
	}
	if c.connect != nil && c.connect.pending == id {
		c.connect.pending = ""
	}
	c.dropStaleGesture()
	return removed, true
}

// RemoveSelected deletes the selected component, if any.
func (c *Canvas) RemoveSelected() (RemoveComponentData, bool) {
	if c.selected == "" {
		return RemoveComponentData{}, false
	}
	return c.DeleteComponent(c.selected)
}

// AddConnection wires two distinct, existing components together.
func (c *Canvas) AddConnection(startID, endID string) (Connection, bool) {
	if startID == endID {
		return Connection{}, false
	}
	if c.componentIndex(startID) < 0 || c.componentIndex(endID) < 0 {
		return Connection{}, false
	}
	conn := Connection{
		ID:    c.newID(),
		Start: Endpoint{ComponentID: startID},
		End:   Endpoint{ComponentID: endID},
	}
	c.connections = append(c.connections, conn)
	return conn, true
}

func (c *Canvas) RestoreConnection(conn Connection) {
	c.connections = append(c.connections, conn)
}

// InsertConnection puts conn back at index, clamped to the list bounds.
func (c *Canvas) InsertConnection(conn Connection, index int) {
	if index < 0 || index > len(c.connections) {
		index = len(c.connections)
	}
	c.connections = append(c.connections, Connection{})
	copy(c.connections[index+1:], c.connections[index:])
	c.connections[index] = conn
}

func (c *Canvas) RemoveConnection(id string) bool {
	idx := c.connectionIndex(id)
	if idx < 0 {
		return false
	}
	c.connections = append(c.connections[:idx], c.connections[idx+1:]...)
	c.dropStaleGesture()
	return true
}

// ReplaceConnection overwrites the connection with the same id.
func (c *Canvas) ReplaceConnection(conn Connection) bool {
	idx := c.connectionIndex(conn.ID)
	if idx < 0 {
		return false
	}
	c.connections[idx] = conn
	return true
}

func (c *Canvas) SetComponentPosition(id string, pos r2.Vec) bool {
	idx := c.componentIndex(id)
	if idx < 0 {
		return false
	}
	c.components[idx].Pos = pos
	return true
}

// Nudge moves the selected component by (dx, dy).
func (c *Canvas) Nudge(dx, dy float64) bool {
	idx := c.componentIndex(c.selected)
	if idx < 0 {
		return false
	}
	c.components[idx].Pos = r2.Add(c.components[idx].Pos, r2.Vec{X: dx, Y: dy})
	return true
}

// PointerDown starts a gesture. Handles win over component bodies: wire
// end handles first, then rotation handles, then components.
func (c *Canvas) PointerDown(p r2.Vec) {
	c.PointerDownWithin(p, r2.Vec{})
}

// PointerDownWithin is PointerDown for a pointer that only knows p to
// within slack on each axis, such as a terminal cell. Handles inside that
// box are grabbed even when p misses their circle.
func (c *Canvas) PointerDownWithin(p, slack r2.Vec) {
	if i, side, ok := c.endpointHandleAt(p, slack); ok {
		c.gesture = draggingEndpoint{connID: c.connections[i].ID, side: side}
		return
	}
	if i, ok := c.rotationHandleAt(p, slack); ok {
		c.gesture = rotating{connID: c.connections[i].ID}
		return
	}
	if i := c.componentAt(p); i >= 0 {
		comp := c.components[i]
		c.gesture = draggingComponent{id: comp.ID, offset: r2.Sub(p, comp.Pos)}
		c.selected = comp.ID
		return
	}
	c.gesture = idle{}
	c.selected = ""
}

// PointerMove advances the active gesture. It reports whether anything
// changed.
func (c *Canvas) PointerMove(p r2.Vec) bool {
	switch g := c.gesture.(type) {
	case draggingComponent:
		return c.SetComponentPosition(g.id, r2.Sub(p, g.offset))
	case draggingEndpoint:
		idx := c.connectionIndex(g.connID)
		if idx < 0 {
			return false
		}
		conn := &c.connections[idx]
		e := conn.endpoint(g.side)
		e.Override = p
		e.Pinned = true
		conn.setEndpoint(g.side, e)
		return true
	case rotating:
		idx := c.connectionIndex(g.connID)
		if idx < 0 {
			return false
		}
		center, ok := c.wireCenter(c.connections[idx])
		if !ok {
			return false
		}
		c.connections[idx].Rotation = angleFrom(center, p)
		return true
	}
	return false
}

func (c *Canvas) PointerUp() {
	c.gesture = idle{}
}

// Click handles the two-click connect gesture. It returns the new
// connection when the second click completes one.
func (c *Canvas) Click(p r2.Vec) (Connection, bool) {
	if c.connect == nil {
		return Connection{}, false
	}
	hit := ""
	if i := c.componentAt(p); i >= 0 {
		hit = c.components[i].ID
	}
	if c.connect.pending != "" && hit != "" && hit != c.connect.pending {
		conn, ok := c.AddConnection(c.connect.pending, hit)
		if ok {
			c.connect = nil
		}
		return conn, ok
	}
	c.connect.pending = hit
	return Connection{}, false
}

func (c *Canvas) ToggleConnectionMode() {
	if c.connect != nil {
		c.connect = nil
		return
	}
	c.connect = &connectState{}
}

func (c *Canvas) CancelConnectionMode() bool {
	if c.connect == nil {
		return false
	}
	c.connect = nil
	return true
}

// dropStaleGesture returns to idle when the gesture's target is gone.
func (c *Canvas) dropStaleGesture() {
	switch g := c.gesture.(type) {
	case draggingComponent:
		if c.componentIndex(g.id) < 0 {
			c.gesture = idle{}
		}
	case draggingEndpoint:
		if c.connectionIndex(g.connID) < 0 {
			c.gesture = idle{}
		}
	case rotating:
		if c.connectionIndex(g.connID) < 0 {
			c.gesture = idle{}
		}
	}
}
