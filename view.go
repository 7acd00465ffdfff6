package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	toolbarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#3C3C3C"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#F5C518")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
	fieldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
)

var helpLines = []string{
	"jmeme Help",
	"==========",
	"",
	"Image:",
	"------",
	"  o                Choose an image (type to filter, ↑/↓ to pick, Enter to open)",
	"  p                Toggle preview (hides handles)",
	"",
	"Text:",
	"-----",
	"  t/Enter          Edit the text field (Esc or Ctrl+S to finish, Enter for newline)",
	"  Ctrl+V           Paste clipboard text into the text field",
	"  a                Toggle add mode (clicking the image places the text)",
	"  click/Space      Place text, select a handle, or deselect",
	"",
	"Selected overlay:",
	"-----------------",
	"  +/-              Text size ±1",
	"  ]/[              Text size ±10",
	"  >/<              Rotate ±1°",
	"  ./,              Rotate ±15°",
	"  drag handle ✥    Move overlay",
	"  m                Move overlay with hjkl/arrows (Enter to finish, Esc to cancel)",
	"  d/✕              Delete overlay",
	"  Tab              Select next overlay",
	"",
	"Navigation:",
	"-----------",
	"  h/←/j/↓/k/↑/l/→  Move cursor",
	"  Shift+h/j/k/l    Move cursor 2x faster",
	"",
	"Export:",
	"-------",
	"  s                Export as PNG",
	"  y                Copy the last export path",
	"  Y                Copy the image as a PNG data URL",
	"",
	"General:",
	"  u                Undo last action",
	"  U                Redo last undone action",
	"  Esc              Clear selection",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	width := m.width
	if width < 1 {
		width = 1
	}

	var result strings.Builder
	result.WriteString(toolbarStyle.Render(fitLine(m.toolbarText(), width)))
	result.WriteString("\n")

	var body []string
	if m.mode == ModeFileInput && m.fileOp == FileOpOpen {
		body = m.fileListLines(width)
	} else {
		body = m.renderCanvas()
	}
	for _, line := range body {
		result.WriteString(line)
		result.WriteString("\n")
	}

	result.WriteString(m.textFieldLine(width))
	result.WriteString("\n")
	result.WriteString(m.statusLine(width))
	return result.String()
}

func (m model) toolbarText() string {
	var parts []string
	if m.editor.AddMode() {
		parts = append(parts, "ADD")
	} else {
		parts = append(parts, "EDIT")
	}
	if m.editor.Preview() {
		parts = append(parts, "PREVIEW")
	}
	if o, ok := m.editor.SelectedOverlay(); ok {
		parts = append(parts, fmt.Sprintf("Overlay %d: %.0fpx %.0f°", o.ID, o.Size, o.Rotation))
	} else {
		parts = append(parts, fmt.Sprintf("%d overlays", m.editor.OverlayCount()))
	}
	if m.editor.HasImage() {
		w, h := m.editor.Dimensions()
		parts = append(parts, fmt.Sprintf("%s %dx%d", filepath.Base(m.imagePath), w, h))
	}
	return " " + strings.Join(parts, " | ")
}

func (m model) fileListLines(width int) []string {
	_, rows := m.canvasArea()
	lines := make([]string, 0, rows)
	lines = append(lines, fitLine("Select an image:", width))
	lines = append(lines, strings.Repeat("─", width))

	maxFiles := rows - len(lines)
	if len(m.filteredFiles) == 0 {
		lines = append(lines, fitLine("(No matching images in current directory)", width))
	} else if maxFiles > 0 {
		startIdx := 0
		if m.selectedFileIndex >= maxFiles {
			startIdx = m.selectedFileIndex - maxFiles + 1
		}
		endIdx := startIdx + maxFiles
		if endIdx > len(m.filteredFiles) {
			endIdx = len(m.filteredFiles)
		}
		for i := startIdx; i < endIdx; i++ {
			name := "  " + m.filteredFiles[i]
			if i == m.selectedFileIndex {
				lines = append(lines, activeStyle.Render(fitLine("> "+m.filteredFiles[i], width)))
				continue
			}
			lines = append(lines, fitLine(name, width))
		}
	}
	for len(lines) < rows {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return lines[:rows]
}

// textFieldLine shows the pending text with newlines as ⏎ and, while the
// field has focus, a block cursor inserted before the rune it sits on.
func (m model) textFieldLine(width int) string {
	runes := []rune(strings.ReplaceAll(m.editor.PendingText(), "\n", "⏎"))
	if m.mode != ModeTextInput {
		label := "Text: " + string(runes)
		if len(runes) == 0 {
			label = "Text: (press t to type)"
		}
		return fieldStyle.Render(fitLine(label, width))
	}

	pos := m.textInputCursorPos
	if pos > len(runes) {
		pos = len(runes)
	}
	display := string(runes[:pos]) + "█" + string(runes[pos:])
	return activeStyle.Render(fitLine("Text: "+display, width))
}

func (m model) statusLine(width int) string {
	var status string
	switch m.mode {
	case ModeTextInput:
		status = "Mode: TEXT | ←/→=move cursor, Enter=newline, Ctrl+V=paste, Esc/Ctrl+S=done"
	case ModeMove:
		status = fmt.Sprintf("Mode: MOVE | Overlay %d | hjkl/arrows=move, Enter=finish, Esc=cancel", m.editor.DragID())
	case ModeFileInput:
		var opStr string
		switch m.fileOp {
		case FileOpOpen:
			opStr = "Open"
		case FileOpSavePNG:
			opStr = "Export PNG"
		}
		if m.errorMessage != "" {
			status = fmt.Sprintf("Mode: FILE | ERROR: %s | %s filename: %s█ | Enter=retry, Esc=cancel", m.errorMessage, opStr, m.filename)
		} else if m.fileOp == FileOpOpen {
			status = fmt.Sprintf("Mode: FILE | %s filename: %s█ | ↑/↓=navigate list, Type=filter, Enter=confirm, Esc=cancel", opStr, m.filename)
		} else {
			status = fmt.Sprintf("Mode: FILE | %s filename: %s█ | Enter=confirm, Esc=cancel", opStr, m.filename)
		}
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmDeleteOverlay:
			message = fmt.Sprintf("Delete overlay %d? (y/n)", m.confirmOverlayID)
		case ConfirmQuit:
			message = "Quit jmeme? (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.filename)
		}
		status = fmt.Sprintf("Mode: CONFIRM | %s", message)
	default:
		status = fmt.Sprintf("Mode: %s | Cursor: (%d,%d)", m.modeString(), m.cursorX, m.cursorY-canvasTopRow)
		if m.successMessage != "" {
			status += fmt.Sprintf(" | %s", m.successMessage)
		}
		if m.errorMessage != "" {
			status += fmt.Sprintf(" | ERROR: %s", m.errorMessage)
		} else if m.successMessage == "" {
			status += " | ? for help | q to quit"
		}
	}

	line := fitLine(status, width)
	if m.errorMessage != "" {
		return errorStyle.Render(line)
	}
	return line
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeTextInput:
		return "TEXT"
	case ModeMove:
		return "MOVE"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m model) helpHeight() int {
	h := m.height - 1
	if h < 1 {
		h = 1
	}
	return h
}

func (m model) helpView() string {
	visibleHeight := m.helpHeight()

	startLine := m.helpScroll
	if startLine > len(helpLines)-visibleHeight {
		startLine = len(helpLines) - visibleHeight
	}
	if startLine < 0 {
		startLine = 0
	}
	endLine := startLine + visibleHeight
	if endLine > len(helpLines) {
		endLine = len(helpLines)
	}

	result := strings.Join(helpLines[startLine:endLine], "\n")
	result += "\n" + fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, any other key to close",
		startLine+1, endLine, len(helpLines))
	return result
}
