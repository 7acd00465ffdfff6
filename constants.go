package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeTextInput
	ModeMove
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpOpen FileOperation = iota
	FileOpSavePNG
)

type ConfirmAction int

const (
	ConfirmDeleteOverlay ConfirmAction = iota
	ConfirmQuit
	ConfirmOverwriteFile
)

type ActionType int

const (
	ActionAddOverlay ActionType = iota
	ActionDeleteOverlay
	ActionMoveOverlay
	ActionEditText
	ActionResizeOverlay
	ActionRotateOverlay
)

const (
	defaultTextSize   = 80.0
	minTextSize       = 10.0
	maxTextSize       = 500.0
	minRotation       = -180.0
	maxRotation       = 180.0
	lineHeightFactor  = 1.2
	defaultStroke     = 2.0
	defaultExportName = "meme.png"
	noSelection       = -1
)

var defaultFonts = []string{"Bangers", "Impact", "sans-serif"}
