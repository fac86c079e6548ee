package main

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"
)

type model struct {
	width        int
	height       int
	config       *Config
	logger       *slog.Logger
	canvas       *Canvas
	surface      *Surface
	history      History
	palette      Palette
	chat         Chat
	focus        Focus
	canvasLines  []string
	cells        cellMap
	pointerDown  bool
	dragOrigin   *gestureOrigin
	errorMessage string
}

// gestureOrigin is the state captured at pointer-down so a finished
// gesture can be recorded for undo.
type gestureOrigin struct {
	componentID string
	position    r2.Vec
	connection  Connection
	hasConn     bool
}

type Component struct {
	ID   string
	Kind Kind
	Pos  r2.Vec
}

// Endpoint refers to a component by id. Once its handle has been dragged
// it is pinned to Override and no longer follows the component.
type Endpoint struct {
	ComponentID string
	Override    r2.Vec
	Pinned      bool
}

type Connection struct {
	ID       string
	Start    Endpoint
	End      Endpoint
	Rotation float64
}

func (c Connection) endpoint(side EndpointSide) Endpoint {
	if side == SideEnd {
		return c.End
	}
	return c.Start
}

func (c *Connection) setEndpoint(side EndpointSide, e Endpoint) {
	if side == SideEnd {
		c.End = e
		return
	}
	c.Start = e
}

func (c Connection) references(componentID string) bool {
	return c.Start.ComponentID == componentID || c.End.ComponentID == componentID
}

type Message struct {
	Text   string
	Sender Sender
}

type Action struct {
	Type    ActionType
	Data    interface{}
	Inverse interface{}
}

type AddComponentData struct {
	Component Component
	Index     int
}

// RemoveComponentData is a removed component with the connections that
// went with it. ConnectionIndices holds where each connection sat, in
// ascending order.
type RemoveComponentData struct {
	Component         Component
	Index             int
	Connections       []Connection
	ConnectionIndices []int
}

type AddConnectionData struct {
	Connection Connection
}

type MoveComponentData struct {
	ID       string
	Position r2.Vec
}

type EditConnectionData struct {
	Connection Connection
}
