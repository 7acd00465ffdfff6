package main

import "image"

type model struct {
	width              int
	height             int
	cursorX            int
	cursorY            int
	editor             *Editor
	renderer           *Renderer
	config             *Config
	mode               Mode
	help               bool
	helpScroll         int
	undoStack          []Action
	redoStack          []Action
	textInputCursorPos int
	originalEditText   string
	editTextID         int
	filename           string
	fileList           []string
	filteredFiles      []string
	selectedFileIndex  int
	fileOp             FileOperation
	confirmAction      ConfirmAction
	confirmOverlayID   int
	imagePath          string
	lastExport         string
	errorMessage       string
	successMessage     string
	cache              *previewCache
}

// previewCache keeps the last composite and its terminal rendering so View
// only re-renders after the editor or the terminal size changed.
type previewCache struct {
	version   uint64
	composite *image.RGBA
	cols      int
	rows      int
	cells     [][]string
}

type Action struct {
	Type    ActionType
	Data    interface{}
	Inverse interface{}
}

type OverlaySnapshot struct {
	Overlay Overlay
	Index   int
}

type OverlayPosition struct {
	ID int
	X  float64
	Y  float64
}

type OverlayText struct {
	ID   int
	Text string
}

type OverlaySize struct {
	ID   int
	Size float64
}

type OverlayRotation struct {
	ID       int
	Rotation float64
}
