package main

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func newTestCanvas() *Canvas {
	c := NewCanvas(defaultConfig())
	n := 0
	c.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return c
}

// drag performs a full press, move, release at surface coordinates.
func drag(c *Canvas, from, to r2.Vec) {
	c.PointerDown(from)
	c.PointerMove(to)
	c.PointerUp()
}

func TestAddComponentUsesDefaultPosition(t *testing.T) {
	c := newTestCanvas()
	a := c.AddComponent(KindResistor)
	b := c.AddComponent(KindBattery)

	assert.Equal(t, r2.Vec{X: 50, Y: 50}, a.Pos)
	assert.Equal(t, a.Pos, b.Pos)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, c.Components(), 2)
}

func TestComponentIDsAreUnique(t *testing.T) {
	c := NewCanvas(defaultConfig())
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		comp := c.AddComponent(paletteEntries[i%len(paletteEntries)].Kind)
		require.False(t, seen[comp.ID], "duplicate id %s", comp.ID)
		seen[comp.ID] = true
	}
}

func TestComponentCountTracksAddsAndRemoves(t *testing.T) {
	c := newTestCanvas()
	var ids []string
	for i := 0; i < 5; i++ {
		ids = append(ids, c.AddComponent(KindDiode).ID)
	}
	_, ok := c.DeleteComponent(ids[1])
	require.True(t, ok)
	_, ok = c.DeleteComponent(ids[3])
	require.True(t, ok)
	_, ok = c.DeleteComponent(ids[3])
	assert.False(t, ok, "second removal is a no-op")

	assert.Len(t, c.Components(), 3)
}

func TestDragMovesComponentByGrabOffset(t *testing.T) {
	c := newTestCanvas()
	comp := c.AddComponent(KindResistor)

	c.PointerDown(r2.Vec{X: 60, Y: 55})
	require.IsType(t, draggingComponent{}, c.Gesture())
	c.PointerMove(r2.Vec{X: 210, Y: 305})
	c.PointerUp()

	got, _ := c.Component(comp.ID)
	assert.Equal(t, r2.Vec{X: 200, Y: 300}, got.Pos)
	assert.IsType(t, idle{}, c.Gesture())
	sel, ok := c.Selected()
	assert.True(t, ok)
	assert.Equal(t, comp.ID, sel)
}

func TestPointerDownOnEmptySpaceClearsSelection(t *testing.T) {
	c := newTestCanvas()
	c.AddComponent(KindResistor)
	c.PointerDown(r2.Vec{X: 60, Y: 55})
	c.PointerUp()
	_, ok := c.Selected()
	require.True(t, ok)

	c.PointerDown(r2.Vec{X: 500, Y: 500})
	_, ok = c.Selected()
	assert.False(t, ok)
	assert.IsType(t, idle{}, c.Gesture())
	assert.False(t, c.PointerMove(r2.Vec{X: 10, Y: 10}))
}

func TestEndpointsFollowDraggedComponent(t *testing.T) {
	c := newTestCanvas()
	a := c.AddComponent(KindResistor)
	b := c.AddComponent(KindBattery)
	c.SetComponentPosition(b.ID, r2.Vec{X: 300, Y: 300})
	conn, ok := c.AddConnection(a.ID, b.ID)
	require.True(t, ok)

	drag(c, r2.Vec{X: 52, Y: 52}, r2.Vec{X: 102, Y: 402})

	start, _ := c.Anchor(conn, SideStart)
	assert.Equal(t, r2.Vec{X: 125, Y: 410}, start)
	end, _ := c.Anchor(conn, SideEnd)
	assert.Equal(t, r2.Vec{X: 325, Y: 310}, end)
}

func TestDraggedEndpointStaysPinned(t *testing.T) {
	c := newTestCanvas()
	a := c.AddComponent(KindResistor)
	b := c.AddComponent(KindBattery)
	c.SetComponentPosition(b.ID, r2.Vec{X: 300, Y: 300})
	conn, _ := c.AddConnection(a.ID, b.ID)

	// grab the end handle at the battery's centre
	c.PointerDown(r2.Vec{X: 326, Y: 311})
	require.Equal(t, draggingEndpoint{connID: conn.ID, side: SideEnd}, c.Gesture())
	c.PointerMove(r2.Vec{X: 400, Y: 450})
	c.PointerUp()

	got, _ := c.Connection(conn.ID)
	assert.True(t, got.End.Pinned)
	assert.Equal(t, b.ID, got.End.ComponentID, "reference is kept")
	end, _ := c.Anchor(got, SideEnd)
	assert.Equal(t, r2.Vec{X: 400, Y: 450}, end)

	// moving the battery no longer moves the pinned end
	drag(c, r2.Vec{X: 340, Y: 305}, r2.Vec{X: 540, Y: 505})
	end, _ = c.Anchor(got, SideEnd)
	assert.Equal(t, r2.Vec{X: 400, Y: 450}, end)

	// but removing it still removes the wire
	c.DeleteComponent(b.ID)
	assert.Empty(t, c.Connections())
}

func TestHandlesTakePriorityOverComponents(t *testing.T) {
	c := newTestCanvas()
	a := c.AddComponent(KindResistor)
	b := c.AddComponent(KindBattery)
	c.SetComponentPosition(b.ID, r2.Vec{X: 200, Y: 50})
	conn, _ := c.AddConnection(a.ID, b.ID)

	// the start anchor sits inside the resistor body
	c.PointerDown(r2.Vec{X: 75, Y: 60})
	assert.Equal(t, draggingEndpoint{connID: conn.ID, side: SideStart}, c.Gesture())
	_, selected := c.Selected()
	assert.False(t, selected, "handle grabs do not select")
	c.PointerUp()

	// midpoint of (75,60) and (225,60)
	c.PointerDown(r2.Vec{X: 150, Y: 62})
	assert.Equal(t, rotating{connID: conn.ID}, c.Gesture())
	c.PointerUp()

	// just outside the handle radius falls through to the body
	c.PointerDown(r2.Vec{X: 75, Y: 66})
	assert.IsType(t, draggingComponent{}, c.Gesture())
}

func TestRotationFollowsPointerAngle(t *testing.T) {
	c := newTestCanvas()
	a := c.AddComponent(KindResistor)
	b := c.AddComponent(KindBattery)
	c.SetComponentPosition(b.ID, r2.Vec{X: 200, Y: 50})
	conn, _ := c.AddConnection(a.ID, b.ID)
	center := r2.Vec{X: 150, Y: 60}

	c.PointerDown(center)
	c.PointerMove(r2.Vec{X: 150, Y: 160})
	got, _ := c.Connection(conn.ID)
	assert.InDelta(t, math.Pi/2, got.Rotation, 1e-9)

	c.PointerMove(r2.Vec{X: 50, Y: 60})
	c.PointerUp()
	got, _ = c.Connection(conn.ID)
	assert.InDelta(t, math.Pi, got.Rotation, 1e-9)

	// a later component drag leaves the rotation alone
	drag(c, r2.Vec{X: 210, Y: 55}, r2.Vec{X: 310, Y: 155})
	got, _ = c.Connection(conn.ID)
	assert.InDelta(t, math.Pi, got.Rotation, 1e-9)
}

func TestRemoveSelectedCascadesOnlyToItsConnections(t *testing.T) {
	c := newTestCanvas()
	a := c.AddComponent(KindResistor)
	b := c.AddComponent(KindBattery)
	d := c.AddComponent(KindLED)
	c.SetComponentPosition(b.ID, r2.Vec{X: 200, Y: 200})
	c.SetComponentPosition(d.ID, r2.Vec{X: 400, Y: 400})
	ab, _ := c.AddConnection(a.ID, b.ID)
	bd, _ := c.AddConnection(b.ID, d.ID)
	ad, _ := c.AddConnection(a.ID, d.ID)

	c.PointerDown(r2.Vec{X: 205, Y: 205})
	c.PointerUp()
	removed, ok := c.RemoveSelected()
	require.True(t, ok)

	assert.Equal(t, b.ID, removed.Component.ID)
	assert.ElementsMatch(t, []string{ab.ID, bd.ID}, []string{removed.Connections[0].ID, removed.Connections[1].ID})
	require.Len(t, c.Connections(), 1)
	assert.Equal(t, ad.ID, c.Connections()[0].ID)
	_, selected := c.Selected()
	assert.False(t, selected)

	_, ok = c.RemoveSelected()
	assert.False(t, ok, "nothing selected")
}

func TestSelfConnectionIsRejected(t *testing.T) {
	c := newTestCanvas()
	a := c.AddComponent(KindResistor)

	_, ok := c.AddConnection(a.ID, a.ID)
	assert.False(t, ok)

	c.ToggleConnectionMode()
	p := r2.Vec{X: 60, Y: 55}
	_, ok = c.Click(p)
	assert.False(t, ok)
	_, ok = c.Click(p)
	assert.False(t, ok)

	assert.Empty(t, c.Connections())
	assert.True(t, c.ConnectionMode(), "still waiting for an end component")
	pending, _ := c.PendingStart()
	assert.Equal(t, a.ID, pending)
}

func TestClickOutsideConnectionModeDoesNothing(t *testing.T) {
	c := newTestCanvas()
	c.AddComponent(KindResistor)
	_, ok := c.Click(r2.Vec{X: 60, Y: 55})
	assert.False(t, ok)
	_, pending := c.PendingStart()
	assert.False(t, pending)
}

func TestClickOnEmptySpaceClearsPendingStart(t *testing.T) {
	c := newTestCanvas()
	c.AddComponent(KindResistor)
	c.ToggleConnectionMode()
	c.Click(r2.Vec{X: 60, Y: 55})
	_, pending := c.PendingStart()
	require.True(t, pending)

	c.Click(r2.Vec{X: 700, Y: 500})
	_, pending = c.PendingStart()
	assert.False(t, pending)
	assert.True(t, c.ConnectionMode())
}

func TestToggleConnectionModeKeepsGesture(t *testing.T) {
	c := newTestCanvas()
	c.AddComponent(KindResistor)
	c.PointerDown(r2.Vec{X: 60, Y: 55})

	c.ToggleConnectionMode()
	assert.True(t, c.ConnectionMode())
	assert.IsType(t, draggingComponent{}, c.Gesture())

	c.ToggleConnectionMode()
	assert.False(t, c.ConnectionMode())
	assert.IsType(t, draggingComponent{}, c.Gesture())
	assert.False(t, c.CancelConnectionMode())
}

func TestRemovingDraggedComponentEndsGesture(t *testing.T) {
	c := newTestCanvas()
	c.AddComponent(KindResistor)
	c.PointerDown(r2.Vec{X: 60, Y: 55})
	_, ok := c.RemoveSelected()
	require.True(t, ok)

	assert.IsType(t, idle{}, c.Gesture())
	assert.False(t, c.PointerMove(r2.Vec{X: 100, Y: 100}))
}

func TestNudgeMovesSelection(t *testing.T) {
	c := newTestCanvas()
	comp := c.AddComponent(KindSwitch)
	assert.False(t, c.Nudge(1, 0), "nothing selected")

	c.PointerDown(r2.Vec{X: 60, Y: 55})
	c.PointerUp()
	require.True(t, c.Nudge(10, -1))
	got, _ := c.Component(comp.ID)
	assert.Equal(t, r2.Vec{X: 60, Y: 49}, got.Pos)
}

func TestResistorBatteryScenario(t *testing.T) {
	c := newTestCanvas()
	resistor := c.AddComponent(KindResistor)
	battery := c.AddComponent(KindBattery)
	require.Equal(t, resistor.Pos, battery.Pos)
	require.NotEqual(t, resistor.ID, battery.ID)

	// both sit at (50,50); the first in the list is hit first
	drag(c, r2.Vec{X: 50, Y: 50}, r2.Vec{X: 100, Y: 100})
	got, _ := c.Component(resistor.ID)
	require.Equal(t, r2.Vec{X: 100, Y: 100}, got.Pos)

	c.ToggleConnectionMode()
	_, ok := c.Click(r2.Vec{X: 110, Y: 105})
	require.False(t, ok)
	conn, ok := c.Click(r2.Vec{X: 60, Y: 55})
	require.True(t, ok)

	assert.False(t, c.ConnectionMode())
	require.Len(t, c.Connections(), 1)
	assert.Equal(t, resistor.ID, conn.Start.ComponentID)
	assert.Equal(t, battery.ID, conn.End.ComponentID)
	assert.Zero(t, conn.Rotation)
	start, _ := c.Anchor(conn, SideStart)
	assert.Equal(t, componentCenter(r2.Vec{X: 100, Y: 100}), start)
	end, _ := c.Anchor(conn, SideEnd)
	assert.Equal(t, componentCenter(r2.Vec{X: 50, Y: 50}), end)

	c.PointerDown(r2.Vec{X: 55, Y: 52})
	c.PointerUp()
	_, ok = c.RemoveSelected()
	require.True(t, ok)

	assert.Empty(t, c.Connections())
	require.Len(t, c.Components(), 1)
	assert.Equal(t, resistor.ID, c.Components()[0].ID)
}

func TestPointerDownWithinGrabsHandleInsideSlack(t *testing.T) {
	c := newTestCanvas()
	a := c.AddComponent(KindResistor)
	b := c.AddComponent(KindBattery)
	c.SetComponentPosition(b.ID, r2.Vec{X: 400, Y: 50})
	c.AddConnection(a.ID, b.ID)

	// exactly one radius from the rotation handle at (250, 60)
	p := r2.Vec{X: 253, Y: 64}
	c.PointerDown(p)
	assert.IsType(t, idle{}, c.Gesture(), "the handle circle is strict")

	c.PointerDownWithin(p, r2.Vec{X: 4, Y: 8})
	assert.IsType(t, rotating{}, c.Gesture())
	c.PointerUp()

	c.PointerDownWithin(r2.Vec{X: 260, Y: 60}, r2.Vec{X: 4, Y: 8})
	assert.IsType(t, idle{}, c.Gesture())

	c.PointerDownWithin(r2.Vec{X: 79, Y: 68}, r2.Vec{X: 4, Y: 8})
	g, ok := c.Gesture().(draggingEndpoint)
	require.True(t, ok)
	assert.Equal(t, SideStart, g.side)
}
