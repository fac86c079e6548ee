package main

type Kind string

const (
	KindResistor   Kind = "resistor"
	KindCapacitor  Kind = "capacitor"
	KindLED        Kind = "led"
	KindBattery    Kind = "battery"
	KindTransistor Kind = "transistor"
	KindDiode      Kind = "diode"
	KindSwitch     Kind = "switch"
	KindGround     Kind = "ground"
)

type EndpointSide int

const (
	SideStart EndpointSide = iota
	SideEnd
)

type Focus int

const (
	FocusPalette Focus = iota
	FocusCanvas
	FocusChat
	numFocus
)

type Sender int

const (
	SenderUser Sender = iota
	SenderBot
)

type ActionType int

const (
	ActionAddComponent ActionType = iota
	ActionRemoveComponent
	ActionAddConnection
	ActionMoveComponent
	ActionEditConnection
)

func (t ActionType) String() string {
	switch t {
	case ActionAddComponent:
		return "add component"
	case ActionRemoveComponent:
		return "remove component"
	case ActionAddConnection:
		return "add connection"
	case ActionMoveComponent:
		return "move component"
	case ActionEditConnection:
		return "edit connection"
	}
	return "unknown"
}

// Component footprint in surface pixels.
const (
	componentWidth  = 50
	componentHeight = 20
)

const (
	defaultCanvasWidth  = 800
	defaultCanvasHeight = 600
	defaultComponentX   = 50
	defaultComponentY   = 50
	defaultHandleSize   = 10
	defaultPaletteWidth = 22
	defaultChatWidth    = 36

	minCanvasPaneWidth = 20
	nudgeStep          = 1
	nudgeStepFast      = 10
)

const (
	backgroundColor   = "#f0f0f0"
	componentColor    = "#000000"
	labelColor        = "#ffffff"
	wireColor         = "#000000"
	handleColor       = "#ff0000"
	rotateHandleColor = "#1e88e5"
	selectedColor     = "#ffb300"
	pendingStartColor = "#43a047"
	wireWidth         = 2.0
	outlineWidth      = 2.0
	labelFontSize     = 12.0
	labelOffsetX      = 5.0
	labelOffsetY      = 15.0
)
