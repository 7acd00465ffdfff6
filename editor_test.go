package main

import (
	"image"
	"testing"
)

func newTestEditor(w, h int) *Editor {
	e := NewEditor(defaultTextSize)
	e.SetImage(image.NewRGBA(image.Rect(0, 0, w, h)))
	return e
}

// addOverlay places text at pt as a fresh overlay. The previous overlay is
// deselected first, otherwise SetText would rename it.
func addOverlay(e *Editor, text string, pt Point) Overlay {
	e.Deselect()
	e.SetText(text)
	o, _ := e.Click(pt)
	return o
}

func TestEditor_ClickAddsOverlay(t *testing.T) {
	e := newTestEditor(400, 300)
	e.SetText("HI")

	o, added := e.Click(Point{X: 100, Y: 100})
	if !added {
		t.Fatal("Click() did not add an overlay")
	}
	want := Overlay{ID: 0, X: 100, Y: 100, Text: "HI", Size: 80, Rotation: 0}
	if o != want {
		t.Errorf("Click() = %+v, want %+v", o, want)
	}
	if got := e.Selected(); got != 0 {
		t.Errorf("Selected() = %d, want 0", got)
	}
	if got := e.PendingText(); got != "" {
		t.Errorf("PendingText() = %q, want empty after placing", got)
	}
}

func TestEditor_ClickWithoutTextDeselects(t *testing.T) {
	e := newTestEditor(400, 300)
	e.SetText("A")
	e.Click(Point{X: 10, Y: 10})

	if _, added := e.Click(Point{X: 50, Y: 50}); added {
		t.Fatal("Click() with empty pending text added an overlay")
	}
	if got := e.Selected(); got != noSelection {
		t.Errorf("Selected() = %d, want none", got)
	}
	if got := e.OverlayCount(); got != 1 {
		t.Errorf("OverlayCount() = %d, want 1", got)
	}
}

func TestEditor_ClickOutsideAddMode(t *testing.T) {
	e := newTestEditor(400, 300)
	e.SetAddMode(false)
	e.SetText("A")

	if _, added := e.Click(Point{X: 10, Y: 10}); added {
		t.Error("Click() added an overlay outside add mode")
	}
}

func TestEditor_IDsUniqueAndIncreasing(t *testing.T) {
	e := newTestEditor(400, 300)
	for i := 0; i < 5; i++ {
		addOverlay(e, string(rune('a'+i)), Point{X: float64(i), Y: 0})
	}
	e.Delete(2)
	e.SetText("y")
	o, _ := e.Click(Point{})
	if o.ID != 5 {
		t.Errorf("new ID after delete = %d, want 5", o.ID)
	}

	var texts string
	for _, o := range e.Overlays() {
		texts += o.Text
	}
	if texts != "abdey" {
		t.Errorf("overlay texts = %q, want %q", texts, "abdey")
	}

	seen := map[int]bool{}
	prev := -1
	for _, o := range e.Overlays() {
		if seen[o.ID] {
			t.Fatalf("duplicate ID %d", o.ID)
		}
		seen[o.ID] = true
		if o.ID <= prev {
			t.Errorf("IDs not increasing in paint order: %d after %d", o.ID, prev)
		}
		prev = o.ID
	}
}

func TestEditor_SelectLoadsText(t *testing.T) {
	e := newTestEditor(400, 300)
	e.SetText("first")
	e.Click(Point{})
	e.Deselect()

	if !e.Select(0) {
		t.Fatal("Select(0) = false")
	}
	if got := e.PendingText(); got != "first" {
		t.Errorf("PendingText() = %q, want %q", got, "first")
	}

	e.SetText("changed")
	o, _ := e.Overlay(0)
	if o.Text != "changed" {
		t.Errorf("selected overlay text = %q, want %q", o.Text, "changed")
	}
	if e.Select(42) {
		t.Error("Select(42) = true for a missing overlay")
	}
}

func TestEditor_SetTextRenamesSelection(t *testing.T) {
	e := newTestEditor(400, 300)
	e.SetText("a")
	e.Click(Point{})
	e.SetText("b")
	if o, _ := e.Overlay(0); o.Text != "b" {
		t.Errorf("selected overlay text = %q, want %q", o.Text, "b")
	}

	e.Deselect()
	e.SetText("c")
	if o, _ := e.Overlay(0); o.Text != "b" {
		t.Errorf("deselected overlay text = %q, want %q", o.Text, "b")
	}
}

func TestEditor_SizeAndRotationNeedSelection(t *testing.T) {
	e := newTestEditor(400, 300)
	e.SetText("A")
	e.Click(Point{})
	e.Deselect()
	before := e.Overlays()

	if e.SetSize(120) {
		t.Error("SetSize() = true with nothing selected")
	}
	if e.SetRotation(45) {
		t.Error("SetRotation() = true with nothing selected")
	}
	if after := e.Overlays(); after[0] != before[0] {
		t.Errorf("overlay changed without selection: %+v -> %+v", before[0], after[0])
	}
}

func TestEditor_SizeAndRotationClamp(t *testing.T) {
	tests := []struct {
		name         string
		size, rot    float64
		wantSize     float64
		wantRotation float64
	}{
		{"in range", 120, 45, 120, 45},
		{"too small", 1, -300, minTextSize, minRotation},
		{"too large", 9000, 400, maxTextSize, maxRotation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(400, 300)
			e.SetText("A")
			e.Click(Point{})
			e.SetSize(tt.size)
			e.SetRotation(tt.rot)
			o, _ := e.SelectedOverlay()
			if o.Size != tt.wantSize || o.Rotation != tt.wantRotation {
				t.Errorf("got size %v rotation %v, want %v %v", o.Size, o.Rotation, tt.wantSize, tt.wantRotation)
			}
		})
	}
}

func TestEditor_DragKeepsGrabOffset(t *testing.T) {
	grabs := []Point{{X: 100, Y: 100}, {X: 90, Y: 112}, {X: 130, Y: 70}}
	for _, grab := range grabs {
		e := newTestEditor(400, 300)
		e.SetText("A")
		e.Click(Point{X: 100, Y: 100})
		e.Deselect()

		if !e.StartDrag(0, grab) {
			t.Fatal("StartDrag() = false")
		}
		if e.Selected() != 0 {
			t.Errorf("StartDrag() did not select the overlay")
		}
		e.DragTo(Point{X: grab.X + 25, Y: grab.Y - 10})
		id, from, to, ok := e.EndDrag()
		if !ok || id != 0 {
			t.Fatalf("EndDrag() = %d, %v", id, ok)
		}
		if from != (Point{X: 100, Y: 100}) {
			t.Errorf("from = %+v, want (100,100)", from)
		}
		if to != (Point{X: 125, Y: 90}) {
			t.Errorf("grab %+v: to = %+v, want (125,90)", grab, to)
		}
		if e.Dragging() {
			t.Error("still dragging after EndDrag()")
		}
	}
}

func TestEditor_CancelDragRestores(t *testing.T) {
	e := newTestEditor(400, 300)
	e.SetText("A")
	e.Click(Point{X: 50, Y: 60})
	e.StartDrag(0, Point{X: 50, Y: 60})
	e.DragTo(Point{X: 200, Y: 200})
	e.CancelDrag()

	o, _ := e.Overlay(0)
	if o.Position() != (Point{X: 50, Y: 60}) {
		t.Errorf("position after cancel = %+v, want (50,60)", o.Position())
	}
	if e.DragTo(Point{X: 1, Y: 1}) {
		t.Error("DragTo() = true without an active drag")
	}
}

func TestEditor_DeleteAndRestore(t *testing.T) {
	e := newTestEditor(400, 300)
	for _, s := range []string{"a", "b", "c"} {
		addOverlay(e, s, Point{})
	}

	removed, idx, ok := e.Delete(1)
	if !ok || idx != 1 || removed.Text != "b" {
		t.Fatalf("Delete(1) = %+v, %d, %v", removed, idx, ok)
	}
	if e.Selected() != noSelection {
		t.Error("selection not cleared by Delete()")
	}
	if _, _, ok := e.Delete(1); ok {
		t.Error("second Delete(1) = true")
	}

	e.Restore(removed, idx)
	var texts string
	for _, o := range e.Overlays() {
		texts += o.Text
	}
	if texts != "abc" {
		t.Errorf("paint order after restore = %q, want %q", texts, "abc")
	}
}

func TestEditor_CycleSelection(t *testing.T) {
	e := newTestEditor(400, 300)
	if e.CycleSelection() {
		t.Error("CycleSelection() = true with no overlays")
	}
	for _, s := range []string{"a", "b"} {
		addOverlay(e, s, Point{})
	}
	e.Deselect()

	want := []int{0, 1, 0}
	for _, id := range want {
		e.CycleSelection()
		if got := e.Selected(); got != id {
			t.Errorf("Selected() = %d, want %d", got, id)
		}
	}
}

func TestEditor_StaleLoadIgnored(t *testing.T) {
	e := NewEditor(defaultTextSize)
	first := e.BeginLoad()
	second := e.BeginLoad()

	if e.FinishLoad(first, image.NewRGBA(image.Rect(0, 0, 10, 10))) {
		t.Error("FinishLoad() accepted a stale generation")
	}
	if e.HasImage() {
		t.Error("stale load installed an image")
	}
	if !e.FinishLoad(second, image.NewRGBA(image.Rect(0, 0, 20, 30))) {
		t.Fatal("FinishLoad() rejected the current generation")
	}
	if w, h := e.Dimensions(); w != 20 || h != 30 {
		t.Errorf("Dimensions() = %dx%d, want 20x30", w, h)
	}
}

func TestEditor_VersionBumps(t *testing.T) {
	e := newTestEditor(10, 10)
	v := e.Version()
	e.SetText("A")
	e.Click(Point{})
	if e.Version() == v {
		t.Error("Version() unchanged after adding an overlay")
	}
}
