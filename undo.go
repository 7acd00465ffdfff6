package main

func (m *model) recordAction(actionType ActionType, data, inverse interface{}) {
	action := Action{
		Type:    actionType,
		Data:    data,
		Inverse: inverse,
	}
	m.undoStack = append(m.undoStack, action)
	m.redoStack = m.redoStack[:0]
}

func (m *model) undo() {
	if len(m.undoStack) == 0 {
		return
	}

	lastIndex := len(m.undoStack) - 1
	action := m.undoStack[lastIndex]
	m.undoStack = m.undoStack[:lastIndex]

	m.applyAction(action.Type, action.Inverse, true)
	m.redoStack = append(m.redoStack, action)
}

func (m *model) redo() {
	if len(m.redoStack) == 0 {
		return
	}

	lastIndex := len(m.redoStack) - 1
	action := m.redoStack[lastIndex]
	m.redoStack = m.redoStack[:lastIndex]

	m.applyAction(action.Type, action.Data, false)
	m.undoStack = append(m.undoStack, action)
}

// applyAction puts the editor into the state described by payload. Add and
// delete are mirror images, so reverse flips which of the two is applied.
func (m *model) applyAction(actionType ActionType, payload interface{}, reverse bool) {
	e := m.editor
	switch actionType {
	case ActionAddOverlay, ActionDeleteOverlay:
		data := payload.(OverlaySnapshot)
		if (actionType == ActionAddOverlay) == reverse {
			e.Delete(data.Overlay.ID)
		} else {
			e.Restore(data.Overlay, data.Index)
		}
	case ActionMoveOverlay:
		data := payload.(OverlayPosition)
		e.SetPosition(data.ID, Point{X: data.X, Y: data.Y})
	case ActionEditText:
		data := payload.(OverlayText)
		e.SetOverlayText(data.ID, data.Text)
	case ActionResizeOverlay:
		data := payload.(OverlaySize)
		e.SetOverlaySize(data.ID, data.Size)
	case ActionRotateOverlay:
		data := payload.(OverlayRotation)
		e.SetOverlayRotation(data.ID, data.Rotation)
	}
}
