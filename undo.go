package main

// History holds the undo and redo stacks for one canvas.
type History struct {
	undoStack []Action
	redoStack []Action
}

func (h *History) Record(actionType ActionType, data, inverse interface{}) {
	h.undoStack = append(h.undoStack, Action{
		Type:    actionType,
		Data:    data,
		Inverse: inverse,
	})
	h.redoStack = h.redoStack[:0]
}

func (h *History) Undo(c *Canvas) (Action, bool) {
	if len(h.undoStack) == 0 {
		return Action{}, false
	}
	lastIndex := len(h.undoStack) - 1
	action := h.undoStack[lastIndex]
	h.undoStack = h.undoStack[:lastIndex]

	switch action.Type {
	case ActionAddComponent:
		data := action.Data.(AddComponentData)
		c.DeleteComponent(data.Component.ID)
	case ActionRemoveComponent:
		data := action.Data.(RemoveComponentData)
		c.InsertComponent(data.Component, data.Index)
		for i, conn := range data.Connections {
			index := -1
			if i < len(data.ConnectionIndices) {
				index = data.ConnectionIndices[i]
			}
			c.InsertConnection(conn, index)
		}
	case ActionAddConnection:
		data := action.Data.(AddConnectionData)
		c.RemoveConnection(data.Connection.ID)
	case ActionMoveComponent:
		data := action.Inverse.(MoveComponentData)
		c.SetComponentPosition(data.ID, data.Position)
	case ActionEditConnection:
		data := action.Inverse.(EditConnectionData)
		c.ReplaceConnection(data.Connection)
	}

	h.redoStack = append(h.redoStack, action)
	return action, true
}

func (h *History) Redo(c *Canvas) (Action, bool) {
	if len(h.redoStack) == 0 {
		return Action{}, false
	}
	lastIndex := len(h.redoStack) - 1
	action := h.redoStack[lastIndex]
	h.redoStack = h.redoStack[:lastIndex]

	switch action.Type {
	case ActionAddComponent:
		data := action.Data.(AddComponentData)
		c.InsertComponent(data.Component, data.Index)
	case ActionRemoveComponent:
		data := action.Data.(RemoveComponentData)
		c.DeleteComponent(data.Component.ID)
	case ActionAddConnection:
		data := action.Data.(AddConnectionData)
		c.RestoreConnection(data.Connection)
	case ActionMoveComponent:
		data := action.Data.(MoveComponentData)
		c.SetComponentPosition(data.ID, data.Position)
	case ActionEditConnection:
		data := action.Data.(EditConnectionData)
		c.ReplaceConnection(data.Connection)
	}

	h.undoStack = append(h.undoStack, action)
	return action, true
}
