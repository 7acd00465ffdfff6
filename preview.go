package main

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

const (
	canvasTopRow = 1
	footerRows   = 2
	handleGlyph  = "✥"
	deleteGlyph  = "✕"
	ansiReset    = "\x1b[0m"
)

var (
	handleStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#333333")).Background(lipgloss.Color("#FFFFFF"))
	selectedHandleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#1E5EFF")).Bold(true)
	deleteStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#D7263D")).Bold(true)
)

// previewCells scales img to cols x pixelRows and packs it into half-block
// cells: each cell shows two vertically stacked pixels, the top one as
// background and the bottom one as foreground of ▄.
func previewCells(img image.Image, cols, pixelRows int) [][]string {
	if img == nil || cols <= 0 || pixelRows <= 0 {
		return nil
	}
	bounds := img.Bounds()
	var scaled image.Image = img
	if bounds.Dx() != cols || bounds.Dy() != pixelRows {
		dst := image.NewRGBA(image.Rect(0, 0, cols, pixelRows))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		scaled = dst
	}
	origin := scaled.Bounds().Min

	rows := make([][]string, 0, (pixelRows+1)/2)
	for y := 0; y < pixelRows; y += 2 {
		row := make([]string, cols)
		for x := 0; x < cols; x++ {
			topR, topG, topB := rgbAt(scaled, origin.X+x, origin.Y+y)
			var botR, botG, botB uint8
			if y+1 < pixelRows {
				botR, botG, botB = rgbAt(scaled, origin.X+x, origin.Y+y+1)
			}
			row[x] = fmt.Sprintf("\x1b[48;2;%d;%d;%dm\x1b[38;2;%d;%d;%dm▄",
				topR, topG, topB, botR, botG, botB)
		}
		rows = append(rows, row)
	}
	return rows
}

func rgbAt(img image.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

// canvasArea is the number of terminal columns and rows left for the image.
func (m *model) canvasArea() (int, int) {
	rows := m.height - canvasTopRow - footerRows
	if rows < 0 {
		rows = 0
	}
	cols := m.width
	if cols < 0 {
		cols = 0
	}
	return cols, rows
}

// viewport fits the image into the canvas area and centres it horizontally.
func (m *model) viewport() Viewport {
	w, h := m.editor.Dimensions()
	cols, rows := m.canvasArea()
	rw, rh := FitViewport(w, h, cols, rows*2)
	return Viewport{
		Left:           float64((cols - rw) / 2),
		Top:            float64(canvasTopRow * 2),
		RenderedWidth:  float64(rw),
		RenderedHeight: float64(rh),
		PixelWidth:     float64(w),
		PixelHeight:    float64(h),
	}
}

// pointAt converts a terminal cell to image-pixel space.
func (m *model) pointAt(col, row int) Point {
	sx, sy := cellToScreen(col, row)
	return m.viewport().ToImage(sx, sy)
}

func (m *model) cellInCanvas(col, row int) bool {
	sx, sy := cellToScreen(col, row)
	return m.viewport().Contains(sx, sy)
}

// handleCell is the terminal cell an overlay's drag handle sits on.
func (m *model) handleCell(o Overlay) (int, int) {
	return screenToCell(m.viewport().ToScreen(o.Position()))
}

func (m *model) deleteCell(o Overlay) (int, int) {
	col, row := m.handleCell(o)
	return col + 1, row - 1
}

// overlayAtCell returns the topmost overlay whose handle is on (col, row),
// or noSelection. Handles are hidden, and so not hit, in preview mode.
func (m *model) overlayAtCell(col, row int) int {
	if m.editor.Preview() {
		return noSelection
	}
	overlays := m.editor.Overlays()
	for i := len(overlays) - 1; i >= 0; i-- {
		hc, hr := m.handleCell(overlays[i])
		if hc == col && hr == row {
			return overlays[i].ID
		}
	}
	return noSelection
}

func (m *model) deleteAffordanceAt(col, row int) bool {
	if m.editor.Preview() {
		return false
	}
	o, ok := m.editor.SelectedOverlay()
	if !ok {
		return false
	}
	dc, dr := m.deleteCell(o)
	return dc == col && dr == row
}

// refreshPreview re-renders the composite and its cells when the editor or
// the canvas size changed since the last call.
func (m *model) refreshPreview() *previewCache {
	if m.cache == nil {
		m.cache = &previewCache{}
	}
	c := m.cache
	if !m.editor.HasImage() {
		c.composite = nil
		c.cells = nil
		return c
	}
	vp := m.viewport()
	cols, pixelRows := int(vp.RenderedWidth), int(vp.RenderedHeight)
	version := m.editor.Version()
	if c.composite == nil || c.version != version {
		c.composite = m.renderer.Render(m.editor.Image(), m.editor.Overlays())
		c.version = version
		c.cells = nil
	}
	if c.cells == nil || c.cols != cols || c.rows != pixelRows {
		c.cells = previewCells(c.composite, cols, pixelRows)
		c.cols = cols
		c.rows = pixelRows
	}
	return c
}

// renderCanvas returns the canvas area lines with handles, the delete
// affordance and the keyboard cursor drawn over the preview.
func (m *model) renderCanvas() []string {
	cols, rows := m.canvasArea()
	lines := make([]string, rows)
	if !m.editor.HasImage() {
		for i := range lines {
			lines[i] = strings.Repeat(" ", cols)
		}
		if rows > 0 {
			lines[rows/2] = fitLine(centerText("Press 'o' to choose an image", cols), cols)
		}
		return lines
	}

	cache := m.refreshPreview()
	vp := m.viewport()
	left := int(vp.Left)

	marks := make(map[[2]int]string)
	if !m.editor.Preview() {
		for _, o := range m.editor.Overlays() {
			col, row := m.handleCell(o)
			style := handleStyle
			if o.ID == m.editor.Selected() {
				style = selectedHandleStyle
			}
			marks[[2]int{col, row}] = style.Render(handleGlyph)
		}
		if o, ok := m.editor.SelectedOverlay(); ok {
			col, row := m.deleteCell(o)
			marks[[2]int{col, row}] = deleteStyle.Render(deleteGlyph)
		}
	}
	if m.showCursor() {
		if _, taken := marks[[2]int{m.cursorX, m.cursorY}]; !taken {
			marks[[2]int{m.cursorX, m.cursorY}] = ansiReset + "█"
		}
	}

	for r := 0; r < rows; r++ {
		absRow := canvasTopRow + r
		var b strings.Builder
		for c := 0; c < cols; c++ {
			if mark, ok := marks[[2]int{c, absRow}]; ok {
				b.WriteString(ansiReset)
				b.WriteString(mark)
				continue
			}
			if r < len(cache.cells) && c >= left && c-left < len(cache.cells[r]) {
				b.WriteString(cache.cells[r][c-left])
				continue
			}
			b.WriteString(ansiReset)
			b.WriteByte(' ')
		}
		b.WriteString(ansiReset)
		lines[r] = b.String()
	}
	return lines
}

func centerText(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
