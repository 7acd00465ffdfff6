package main

import "math"

// Viewport describes where the canvas is drawn on screen. Left, Top and the
// rendered size are in screen units; the pixel size is the canvas size in
// image pixels.
type Viewport struct {
	Left           float64
	Top            float64
	RenderedWidth  float64
	RenderedHeight float64
	PixelWidth     float64
	PixelHeight    float64
}

func (v Viewport) Valid() bool {
	return v.RenderedWidth > 0 && v.RenderedHeight > 0 && v.PixelWidth > 0 && v.PixelHeight > 0
}

// ToImage maps a screen point to image-pixel space.
func (v Viewport) ToImage(sx, sy float64) Point {
	if !v.Valid() {
		return Point{}
	}
	return Point{
		X: (sx - v.Left) * (v.PixelWidth / v.RenderedWidth),
		Y: (sy - v.Top) * (v.PixelHeight / v.RenderedHeight),
	}
}

// ToScreen maps an image-pixel point back to screen space.
func (v Viewport) ToScreen(p Point) (float64, float64) {
	if !v.Valid() {
		return v.Left, v.Top
	}
	return v.Left + p.X*(v.RenderedWidth/v.PixelWidth),
		v.Top + p.Y*(v.RenderedHeight/v.PixelHeight)
}

func (v Viewport) Contains(sx, sy float64) bool {
	return sx >= v.Left && sx < v.Left+v.RenderedWidth &&
		sy >= v.Top && sy < v.Top+v.RenderedHeight
}

// FitViewport returns the largest size that fits inside maxW x maxH while
// keeping the w:h aspect ratio.
func FitViewport(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0
	}
	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	fw := int(math.Floor(float64(w) * scale))
	fh := int(math.Floor(float64(h) * scale))
	if fw < 1 {
		fw = 1
	}
	if fh < 1 {
		fh = 1
	}
	return fw, fh
}

// In the terminal one screen unit is a column horizontally and half a row
// vertically, because the preview packs two pixel rows into each cell.

func cellToScreen(col, row int) (float64, float64) {
	return float64(col) + 0.5, float64(row*2) + 1
}

func screenToCell(sx, sy float64) (int, int) {
	return int(math.Floor(sx)), int(math.Floor(sy / 2))
}
