package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type cliArgs struct {
	output string
	args   []string
}

func parseFlags() cliArgs {
	var a cliArgs
	flag.StringVar(&a.output, "o", "", "Export file name (default from ~/.jmemerc or meme.png)")
	flag.Parse()
	a.args = flag.Args()
	return a
}

func main() {
	args := parseFlags()

	logFile, err := setupLogging("jmeme.log")
	if err != nil {
		log.Fatal(err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	config := loadConfig()
	if args.output != "" {
		config.ExportName = args.output
	}

	fonts, err := LoadFontSet(config.Fonts, config.FontDirs)
	if err != nil {
		log.Fatal(err)
	}
	logger.Info("font selected", "source", fonts.Source())

	m := initialModel(config, NewRenderer(fonts, config.StrokeWidth))
	if len(args.args) > 0 {
		m.imagePath = args.args[0]
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func initialModel(config *Config, renderer *Renderer) model {
	editor := NewEditor(config.TextSize)
	editor.SetAddMode(config.AddMode)
	return model{
		editor:            editor,
		renderer:          renderer,
		config:            config,
		mode:              ModeNormal,
		cursorY:           canvasTopRow,
		editTextID:        noSelection,
		confirmOverlayID:  noSelection,
		selectedFileIndex: -1,
		cache:             &previewCache{},
	}
}

func (m model) Init() tea.Cmd {
	if m.imagePath != "" {
		return m.loadImage(m.imagePath)
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInBounds()
		return m, nil

	case imageLoadedMsg:
		m.handleImageLoaded(msg)
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		if m.help {
			m.updateHelp(msg)
			return m, nil
		}

		switch m.mode {
		case ModeNormal:
			return m, m.updateNormal(msg)
		case ModeTextInput:
			m.updateTextInput(msg)
			return m, nil
		case ModeMove:
			m.updateMove(msg)
			return m, nil
		case ModeFileInput:
			return m, m.updateFileInput(msg)
		case ModeConfirm:
			return m, m.updateConfirm(msg)
		}
	}
	return m, nil
}

func (m *model) updateHelp(msg tea.KeyMsg) {
	switch msg.String() {
	case "j", "down":
		maxScroll := len(helpLines) - m.helpHeight()
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
}

func (m *model) updateNormal(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return nil
		}
		return tea.Quit
	case "?":
		m.help = !m.help
		return nil
	case "o":
		m.mode = ModeFileInput
		m.fileOp = FileOpOpen
		m.filename = ""
		m.errorMessage = ""
		m.successMessage = ""
		m.scanImages()
		return nil
	case "esc":
		m.editor.Deselect()
		m.errorMessage = ""
		m.successMessage = ""
		return nil
	}

	if isNavigationKey(key) {
		m.handleNavigation(key)
		return nil
	}

	if !m.editor.HasImage() {
		m.errorMessage = "Choose an image first ('o')"
		return nil
	}

	switch key {
	case " ":
		m.pressAt(m.cursorX, m.cursorY, false)
	case "t", "enter":
		m.beginTextInput()
	case "a":
		m.editor.SetAddMode(!m.editor.AddMode())
	case "p":
		m.editor.SetPreview(!m.editor.Preview())
	case "+", "=":
		m.adjustSize(1)
	case "-", "_":
		m.adjustSize(-1)
	case "]":
		m.adjustSize(10)
	case "[":
		m.adjustSize(-10)
	case ">":
		m.adjustRotation(1)
	case "<":
		m.adjustRotation(-1)
	case ".":
		m.adjustRotation(15)
	case ",":
		m.adjustRotation(-15)
	case "tab":
		m.editor.CycleSelection()
	case "d", "delete", "backspace":
		if id := m.editor.Selected(); id != noSelection {
			m.requestDelete(id)
		}
	case "m":
		m.startKeyboardDrag()
	case "u":
		m.undo()
		m.successMessage = ""
	case "U", "ctrl+r":
		m.redo()
		m.successMessage = ""
	case "s":
		m.mode = ModeFileInput
		m.fileOp = FileOpSavePNG
		m.filename = m.config.ExportName
		m.errorMessage = ""
		m.successMessage = ""
	case "y":
		m.copyExportPath()
	case "Y":
		m.copyDataURL()
	case "ctrl+v":
		m.pasteText()
	}
	return nil
}

func (m *model) updateTextInput(msg tea.KeyMsg) {
	text := []rune(m.editor.PendingText())
	pos := m.textInputCursorPos
	if pos > len(text) {
		pos = len(text)
	}

	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlS:
		m.commitTextEdit()
		m.mode = ModeNormal
		return
	case tea.KeyLeft:
		if pos > 0 {
			pos--
		}
	case tea.KeyRight:
		if pos < len(text) {
			pos++
		}
	case tea.KeyHome:
		pos = 0
	case tea.KeyEnd:
		pos = len(text)
	case tea.KeyEnter:
		text = insertRunes(text, pos, []rune{'\n'})
		pos++
	case tea.KeyBackspace:
		if pos > 0 {
			text = append(text[:pos-1], text[pos:]...)
			pos--
		}
	case tea.KeyDelete:
		if pos < len(text) {
			text = append(text[:pos], text[pos+1:]...)
		}
	case tea.KeyCtrlV:
		pasted, err := readClipboardText()
		if err != nil {
			m.errorMessage = fmt.Sprintf("Error reading clipboard: %s", err.Error())
			break
		}
		insert := []rune(cleanClipboardText(pasted))
		text = insertRunes(text, pos, insert)
		pos += len(insert)
	case tea.KeySpace:
		text = insertRunes(text, pos, []rune{' '})
		pos++
	case tea.KeyRunes:
		text = insertRunes(text, pos, msg.Runes)
		pos += len(msg.Runes)
	default:
		return
	}

	m.textInputCursorPos = pos
	if string(text) != m.editor.PendingText() {
		m.editor.SetText(string(text))
	}
}

func (m *model) updateMove(msg tea.KeyMsg) {
	key := msg.String()
	switch {
	case key == "enter":
		m.finishDrag()
	case key == "esc":
		m.editor.CancelDrag()
		m.mode = ModeNormal
	case isNavigationKey(key):
		m.handleNavigation(key)
	}
}

func (m *model) updateFileInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.filename = ""
		m.errorMessage = ""
		return nil
	case tea.KeyUp:
		if m.fileOp == FileOpOpen && m.selectedFileIndex > 0 {
			m.selectedFileIndex--
		}
		return nil
	case tea.KeyDown:
		if m.fileOp == FileOpOpen && m.selectedFileIndex < len(m.filteredFiles)-1 {
			m.selectedFileIndex++
		}
		return nil
	case tea.KeyEnter:
		return m.submitFileInput()
	case tea.KeyBackspace:
		if r := []rune(m.filename); len(r) > 0 {
			m.filename = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.filename += " "
	case tea.KeyRunes:
		m.filename += string(msg.Runes)
	default:
		return nil
	}
	if m.fileOp == FileOpOpen {
		m.refilterFiles()
	}
	return nil
}

func (m *model) submitFileInput() tea.Cmd {
	switch m.fileOp {
	case FileOpOpen:
		path := m.chosenFile()
		if path == "" {
			m.errorMessage = "No image selected"
			return nil
		}
		m.mode = ModeNormal
		m.filename = ""
		m.errorMessage = ""
		return m.loadImage(path)

	case FileOpSavePNG:
		filename := strings.TrimSpace(m.filename)
		if filename == "" {
			m.errorMessage = "Filename cannot be empty"
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(filename), ".png") {
			filename += ".png"
		}
		path, err := m.config.GetSavePath(filename)
		if err != nil {
			m.errorMessage = err.Error()
			return nil
		}
		if m.config.Confirmations && fileExists(path) {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			m.filename = path
			return nil
		}
		m.saveExport(path)
	}
	return nil
}

func (m *model) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		switch m.confirmAction {
		case ConfirmDeleteOverlay:
			m.deleteOverlay(m.confirmOverlayID)
			m.confirmOverlayID = noSelection
		case ConfirmQuit:
			return tea.Quit
		case ConfirmOverwriteFile:
			m.saveExport(m.filename)
			return nil
		}
		m.mode = ModeNormal
	case "n", "N", "esc":
		if m.confirmAction == ConfirmOverwriteFile {
			m.mode = ModeFileInput
			m.fileOp = FileOpSavePNG
			m.filename = filepath.Base(m.filename)
		} else {
			m.mode = ModeNormal
		}
	}
	return nil
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	if m.help || !m.editor.HasImage() {
		return
	}
	if m.mode != ModeNormal && m.mode != ModeTextInput {
		return
	}

	// Motion with the button held arrives as a left-button event too, so
	// only a press may start a click or a drag.
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if m.editor.Dragging() {
			m.editor.DragTo(m.pointAt(msg.X, msg.Y))
			return
		}
		if m.mode == ModeTextInput {
			m.commitTextEdit()
			m.mode = ModeNormal
		}
		m.cursorX, m.cursorY = msg.X, msg.Y
		m.ensureCursorInBounds()
		m.pressAt(msg.X, msg.Y, true)
	case tea.MouseActionMotion:
		if m.editor.Dragging() {
			m.editor.DragTo(m.pointAt(msg.X, msg.Y))
		}
	case tea.MouseActionRelease:
		m.finishDrag()
	}
}

// pressAt handles a press on a terminal cell: the delete affordance, a
// drag handle, or the canvas itself, in that order.
func (m *model) pressAt(col, row int, drag bool) {
	if m.deleteAffordanceAt(col, row) {
		m.requestDelete(m.editor.Selected())
		return
	}
	if id := m.overlayAtCell(col, row); id != noSelection {
		if drag {
			m.editor.StartDrag(id, m.pointAt(col, row))
		} else {
			m.editor.Select(id)
		}
		m.textInputCursorPos = len([]rune(m.editor.PendingText()))
		return
	}
	if m.cellInCanvas(col, row) {
		m.clickCanvas(m.pointAt(col, row))
	}
}

func (m *model) clickCanvas(pt Point) {
	o, added := m.editor.Click(pt)
	if !added {
		return
	}
	m.textInputCursorPos = 0
	snapshot := OverlaySnapshot{Overlay: o, Index: m.editor.OverlayCount() - 1}
	m.recordAction(ActionAddOverlay, snapshot, snapshot)
	m.successMessage = ""
}

func (m *model) finishDrag() {
	id, from, to, ok := m.editor.EndDrag()
	if m.mode == ModeMove {
		m.mode = ModeNormal
	}
	if !ok || from == to {
		return
	}
	m.recordAction(ActionMoveOverlay,
		OverlayPosition{ID: id, X: to.X, Y: to.Y},
		OverlayPosition{ID: id, X: from.X, Y: from.Y})
}

func (m *model) requestDelete(id int) {
	if m.config.Confirmations {
		m.mode = ModeConfirm
		m.confirmAction = ConfirmDeleteOverlay
		m.confirmOverlayID = id
		return
	}
	m.deleteOverlay(id)
}

func (m *model) deleteOverlay(id int) {
	o, idx, ok := m.editor.Delete(id)
	if !ok {
		return
	}
	snapshot := OverlaySnapshot{Overlay: o, Index: idx}
	m.recordAction(ActionDeleteOverlay, snapshot, snapshot)
}

func (m *model) adjustSize(delta float64) {
	before, ok := m.editor.SelectedOverlay()
	if !ok || !m.editor.SetSize(before.Size+delta) {
		return
	}
	after, _ := m.editor.SelectedOverlay()
	if after.Size != before.Size {
		m.recordAction(ActionResizeOverlay,
			OverlaySize{ID: before.ID, Size: after.Size},
			OverlaySize{ID: before.ID, Size: before.Size})
	}
}

func (m *model) adjustRotation(delta float64) {
	before, ok := m.editor.SelectedOverlay()
	if !ok || !m.editor.SetRotation(before.Rotation+delta) {
		return
	}
	after, _ := m.editor.SelectedOverlay()
	if after.Rotation != before.Rotation {
		m.recordAction(ActionRotateOverlay,
			OverlayRotation{ID: before.ID, Rotation: after.Rotation},
			OverlayRotation{ID: before.ID, Rotation: before.Rotation})
	}
}

func (m *model) beginTextInput() {
	m.mode = ModeTextInput
	m.editTextID = m.editor.Selected()
	m.originalEditText = m.editor.PendingText()
	m.textInputCursorPos = len([]rune(m.originalEditText))
}

// commitTextEdit records the text change made to the selected overlay
// while the text field had focus.
func (m *model) commitTextEdit() {
	id := m.editTextID
	m.editTextID = noSelection
	if id == noSelection {
		return
	}
	o, ok := m.editor.Overlay(id)
	if !ok || o.Text == m.originalEditText {
		return
	}
	m.recordAction(ActionEditText,
		OverlayText{ID: id, Text: o.Text},
		OverlayText{ID: id, Text: m.originalEditText})
}

// pasteText appends clipboard text to the text field outside of text input
// mode.
func (m *model) pasteText() {
	pasted, err := readClipboardText()
	if err != nil {
		m.errorMessage = fmt.Sprintf("Error reading clipboard: %s", err.Error())
		return
	}
	m.beginTextInput()
	m.editor.SetText(m.editor.PendingText() + cleanClipboardText(pasted))
	m.commitTextEdit()
	m.mode = ModeNormal
}

func (m *model) loadImage(path string) tea.Cmd {
	gen := m.editor.BeginLoad()
	m.imagePath = path
	m.successMessage = fmt.Sprintf("Loading %s", filepath.Base(path))
	logger.Debug("loading image", "path", path, "generation", gen)
	return loadImageCmd(path, gen)
}

func (m *model) handleImageLoaded(msg imageLoadedMsg) {
	if msg.generation != m.editor.LoadGeneration() {
		logger.Debug("discarding stale image load", "path", msg.path, "generation", msg.generation)
		return
	}
	if msg.err != nil {
		logger.Error("loading image", "path", msg.path, "err", msg.err)
		m.errorMessage = fmt.Sprintf("Error opening image: %s", msg.err.Error())
		m.successMessage = ""
		return
	}
	m.editor.FinishLoad(msg.generation, msg.img)
	w, h := m.editor.Dimensions()
	m.errorMessage = ""
	m.successMessage = fmt.Sprintf("Loaded %s (%dx%d)", filepath.Base(msg.path), w, h)
	m.ensureCursorInBounds()
}

func (m *model) saveExport(path string) {
	if err := m.exportPNG(path); err != nil {
		m.errorMessage = fmt.Sprintf("Error exporting PNG: %s", err.Error())
		m.mode = ModeFileInput
		m.fileOp = FileOpSavePNG
		return
	}
	absPath, _ := filepath.Abs(path)
	m.lastExport = absPath
	m.successMessage = fmt.Sprintf("Exported to %s", absPath)
	m.errorMessage = ""
	m.mode = ModeNormal
	m.filename = ""
}

func (m *model) copyExportPath() {
	if m.lastExport == "" {
		m.errorMessage = "Nothing exported yet ('s')"
		return
	}
	if err := writeClipboardText(m.lastExport); err != nil {
		m.errorMessage = fmt.Sprintf("Error writing clipboard: %s", err.Error())
		return
	}
	m.successMessage = "Copied export path"
}

func (m *model) copyDataURL() {
	url, err := m.dataURL()
	if err != nil {
		m.errorMessage = fmt.Sprintf("Error encoding image: %s", err.Error())
		return
	}
	if err := writeClipboardText(url); err != nil {
		m.errorMessage = fmt.Sprintf("Error writing clipboard: %s", err.Error())
		return
	}
	m.successMessage = fmt.Sprintf("Copied data URL (%d bytes)", len(url))
}

func insertRunes(text []rune, pos int, insert []rune) []rune {
	out := make([]rune, 0, len(text)+len(insert))
	out = append(out, text[:pos]...)
	out = append(out, insert...)
	return append(out, text[pos:]...)
}
