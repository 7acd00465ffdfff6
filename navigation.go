package main

// handleNavigation moves the cursor; during a keyboard drag the overlay
// follows it.
func (m *model) handleNavigation(key string) {
	m.handleCursorMove(key, m.getMoveSpeed(key))
	if m.mode == ModeMove {
		m.editor.DragTo(m.pointAt(m.cursorX, m.cursorY))
	}
}

func (m *model) handleCursorMove(key string, speed int) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.cursorX -= speed
	case "l", "right", "L", "shift+right":
		m.cursorX += speed
	case "k", "up", "K", "shift+up":
		m.cursorY -= speed
	case "j", "down", "J", "shift+down":
		m.cursorY += speed
	}
	m.ensureCursorInBounds()
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

func isNavigationKey(key string) bool {
	switch key {
	case "h", "j", "k", "l", "H", "J", "K", "L",
		"left", "right", "up", "down",
		"shift+left", "shift+right", "shift+up", "shift+down":
		return true
	}
	return false
}

// ensureCursorInBounds keeps the cursor inside the canvas area.
func (m *model) ensureCursorInBounds() {
	cols, rows := m.canvasArea()
	if m.cursorX >= cols {
		m.cursorX = cols - 1
	}
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorY >= canvasTopRow+rows {
		m.cursorY = canvasTopRow + rows - 1
	}
	if m.cursorY < canvasTopRow {
		m.cursorY = canvasTopRow
	}
}

// startKeyboardDrag puts the cursor on the selected overlay's handle and
// drags it from there until Enter or Esc.
func (m *model) startKeyboardDrag() bool {
	o, ok := m.editor.SelectedOverlay()
	if !ok {
		return false
	}
	m.cursorX, m.cursorY = m.handleCell(o)
	m.ensureCursorInBounds()
	if !m.editor.StartDrag(o.ID, m.pointAt(m.cursorX, m.cursorY)) {
		return false
	}
	m.mode = ModeMove
	return true
}

func (m *model) showCursor() bool {
	return m.mode == ModeNormal || m.mode == ModeMove
}
