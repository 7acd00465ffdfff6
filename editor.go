package main

import (
	"image"
	"strings"
)

type Point struct {
	X, Y float64
}

type Overlay struct {
	ID       int
	X        float64
	Y        float64
	Text     string
	Size     float64
	Rotation float64
}

func (o *Overlay) Lines() []string {
	return strings.Split(o.Text, "\n")
}

func (o *Overlay) Position() Point {
	return Point{X: o.X, Y: o.Y}
}

// Editor holds the whole editing session: the active image, the overlay
// list in paint order and the interaction flags. Every mutation bumps
// version so views can cache renders.
type Editor struct {
	img         image.Image
	width       int
	height      int
	overlays    []Overlay
	selected    int
	nextID      int
	addMode     bool
	preview     bool
	pendingText string
	textSize    float64

	dragging   bool
	dragID     int
	dragOffset Point
	dragOrigin Point

	loadGeneration uint64
	version        uint64
}

func NewEditor(textSize float64) *Editor {
	if textSize <= 0 {
		textSize = defaultTextSize
	}
	return &Editor{
		overlays: make([]Overlay, 0),
		selected: noSelection,
		dragID:   noSelection,
		addMode:  true,
		textSize: clamp(textSize, minTextSize, maxTextSize),
	}
}

func (e *Editor) touch() {
	e.version++
}

func (e *Editor) Version() uint64 {
	return e.version
}

func (e *Editor) Image() image.Image {
	return e.img
}

func (e *Editor) HasImage() bool {
	return e.img != nil
}

// Dimensions returns the canvas size in image pixels.
func (e *Editor) Dimensions() (int, int) {
	return e.width, e.height
}

// BeginLoad starts a new image load and returns its generation. Results of
// older generations are ignored by FinishLoad.
func (e *Editor) BeginLoad() uint64 {
	e.loadGeneration++
	return e.loadGeneration
}

func (e *Editor) LoadGeneration() uint64 {
	return e.loadGeneration
}

// FinishLoad installs img if gen is still the current load generation.
func (e *Editor) FinishLoad(gen uint64, img image.Image) bool {
	if gen != e.loadGeneration || img == nil {
		return false
	}
	e.SetImage(img)
	return true
}

func (e *Editor) SetImage(img image.Image) {
	b := img.Bounds()
	e.img = img
	e.width = b.Dx()
	e.height = b.Dy()
	e.touch()
}

func (e *Editor) Overlays() []Overlay {
	out := make([]Overlay, len(e.overlays))
	copy(out, e.overlays)
	return out
}

func (e *Editor) OverlayCount() int {
	return len(e.overlays)
}

func (e *Editor) indexOf(id int) int {
	for i := range e.overlays {
		if e.overlays[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Editor) Overlay(id int) (Overlay, bool) {
	idx := e.indexOf(id)
	if idx == -1 {
		return Overlay{}, false
	}
	return e.overlays[idx], true
}

func (e *Editor) Selected() int {
	return e.selected
}

func (e *Editor) SelectedOverlay() (Overlay, bool) {
	if e.selected == noSelection {
		return Overlay{}, false
	}
	return e.Overlay(e.selected)
}

func (e *Editor) PendingText() string {
	return e.pendingText
}

func (e *Editor) AddMode() bool {
	return e.addMode
}

func (e *Editor) SetAddMode(on bool) {
	e.addMode = on
}

func (e *Editor) Preview() bool {
	return e.preview
}

func (e *Editor) SetPreview(on bool) {
	e.preview = on
}

func (e *Editor) Dragging() bool {
	return e.dragging
}

func (e *Editor) DragID() int {
	return e.dragID
}

// Click handles a click on the canvas at pt (image space). In add mode with
// pending text a new overlay is created and selected; otherwise the
// selection is cleared.
func (e *Editor) Click(pt Point) (Overlay, bool) {
	if e.addMode && e.pendingText != "" {
		o := Overlay{
			ID:       e.nextID,
			X:        pt.X,
			Y:        pt.Y,
			Text:     e.pendingText,
			Size:     e.textSize,
			Rotation: 0,
		}
		e.overlays = append(e.overlays, o)
		e.selected = o.ID
		e.nextID++
		e.pendingText = ""
		e.touch()
		return o, true
	}
	e.Deselect()
	return Overlay{}, false
}

// Select marks id as selected and loads its text into the pending text.
func (e *Editor) Select(id int) bool {
	idx := e.indexOf(id)
	if idx == -1 {
		return false
	}
	e.selected = id
	e.pendingText = e.overlays[idx].Text
	e.touch()
	return true
}

func (e *Editor) Deselect() {
	if e.selected != noSelection {
		e.selected = noSelection
		e.touch()
	}
}

// CycleSelection selects the overlay after the current one in paint order,
// wrapping around.
func (e *Editor) CycleSelection() bool {
	if len(e.overlays) == 0 {
		return false
	}
	next := 0
	if idx := e.indexOf(e.selected); idx != -1 {
		next = (idx + 1) % len(e.overlays)
	}
	return e.Select(e.overlays[next].ID)
}

// SetText updates the pending text and, when an overlay is selected, its
// text as well.
func (e *Editor) SetText(text string) {
	e.pendingText = text
	if idx := e.indexOf(e.selected); idx != -1 {
		e.overlays[idx].Text = text
		e.touch()
	}
}

// SetSize sets the selected overlay's font size. It reports false when
// nothing is selected.
func (e *Editor) SetSize(size float64) bool {
	return e.SetOverlaySize(e.selected, size)
}

// SetRotation sets the selected overlay's rotation in degrees. It reports
// false when nothing is selected.
func (e *Editor) SetRotation(deg float64) bool {
	return e.SetOverlayRotation(e.selected, deg)
}

func (e *Editor) SetOverlaySize(id int, size float64) bool {
	idx := e.indexOf(id)
	if idx == -1 {
		return false
	}
	e.overlays[idx].Size = clamp(size, minTextSize, maxTextSize)
	e.touch()
	return true
}

func (e *Editor) SetOverlayRotation(id int, deg float64) bool {
	idx := e.indexOf(id)
	if idx == -1 {
		return false
	}
	e.overlays[idx].Rotation = clamp(deg, minRotation, maxRotation)
	e.touch()
	return true
}

func (e *Editor) SetOverlayText(id int, text string) bool {
	idx := e.indexOf(id)
	if idx == -1 {
		return false
	}
	e.overlays[idx].Text = text
	if id == e.selected {
		e.pendingText = text
	}
	e.touch()
	return true
}

func (e *Editor) SetPosition(id int, pt Point) bool {
	idx := e.indexOf(id)
	if idx == -1 {
		return false
	}
	e.overlays[idx].X = pt.X
	e.overlays[idx].Y = pt.Y
	e.touch()
	return true
}

// StartDrag begins dragging overlay id from pointer position pt. The offset
// between overlay and pointer is kept for the whole drag so the overlay
// does not jump to the pointer.
func (e *Editor) StartDrag(id int, pt Point) bool {
	idx := e.indexOf(id)
	if idx == -1 {
		return false
	}
	o := e.overlays[idx]
	e.dragOffset = Point{X: o.X - pt.X, Y: o.Y - pt.Y}
	e.dragOrigin = o.Position()
	e.dragging = true
	e.dragID = id
	e.Select(id)
	return true
}

func (e *Editor) DragTo(pt Point) bool {
	if !e.dragging {
		return false
	}
	return e.SetPosition(e.dragID, Point{X: pt.X + e.dragOffset.X, Y: pt.Y + e.dragOffset.Y})
}

// EndDrag stops the current drag and returns where the overlay started and
// ended. ok is false when no drag was active or the overlay is gone.
func (e *Editor) EndDrag() (id int, from, to Point, ok bool) {
	if !e.dragging {
		return noSelection, Point{}, Point{}, false
	}
	id = e.dragID
	e.dragging = false
	e.dragID = noSelection
	o, found := e.Overlay(id)
	if !found {
		return id, Point{}, Point{}, false
	}
	return id, e.dragOrigin, o.Position(), true
}

// CancelDrag stops the current drag and puts the overlay back where it was.
func (e *Editor) CancelDrag() {
	if !e.dragging {
		return
	}
	e.SetPosition(e.dragID, e.dragOrigin)
	e.dragging = false
	e.dragID = noSelection
}

// Delete removes overlay id and clears the selection. It returns the
// removed overlay and its former index in paint order.
func (e *Editor) Delete(id int) (Overlay, int, bool) {
	idx := e.indexOf(id)
	if idx == -1 {
		return Overlay{}, -1, false
	}
	removed := e.overlays[idx]
	e.overlays = append(e.overlays[:idx], e.overlays[idx+1:]...)
	e.selected = noSelection
	if e.dragging && e.dragID == id {
		e.dragging = false
		e.dragID = noSelection
	}
	e.touch()
	return removed, idx, true
}

// Restore puts a previously removed overlay back at index, keeping its id.
func (e *Editor) Restore(o Overlay, index int) {
	if e.indexOf(o.ID) != -1 {
		return
	}
	if index < 0 || index > len(e.overlays) {
		index = len(e.overlays)
	}
	e.overlays = append(e.overlays, Overlay{})
	copy(e.overlays[index+1:], e.overlays[index:])
	e.overlays[index] = o
	if o.ID >= e.nextID {
		e.nextID = o.ID + 1
	}
	e.touch()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
