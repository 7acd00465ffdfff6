package main

import (
	"math"
	"testing"
)

func TestFitViewport(t *testing.T) {
	tests := []struct {
		name             string
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{"shrink wide", 800, 400, 100, 100, 100, 50},
		{"shrink tall", 400, 800, 100, 100, 50, 100},
		{"grow", 40, 30, 80, 120, 80, 60},
		{"exact", 100, 100, 100, 100, 100, 100},
		{"tiny", 1000, 1, 10, 10, 10, 1},
		{"empty image", 0, 10, 10, 10, 0, 0},
		{"no room", 10, 10, 0, 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitViewport(tt.w, tt.h, tt.maxW, tt.maxH)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("FitViewport() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestViewport_ToImageScales(t *testing.T) {
	// 400x300 image shown at 200x150 with its corner at (10, 4).
	v := Viewport{Left: 10, Top: 4, RenderedWidth: 200, RenderedHeight: 150, PixelWidth: 400, PixelHeight: 300}

	got := v.ToImage(60, 54)
	if got != (Point{X: 100, Y: 100}) {
		t.Errorf("ToImage(60,54) = %+v, want (100,100)", got)
	}
}

func TestViewport_RoundTrip(t *testing.T) {
	v := Viewport{Left: 3, Top: 2, RenderedWidth: 123, RenderedHeight: 77, PixelWidth: 1024, PixelHeight: 641}
	points := []Point{{0, 0}, {512, 320.5}, {1023, 640}, {17.25, 3.5}}

	for _, p := range points {
		sx, sy := v.ToScreen(p)
		back := v.ToImage(sx, sy)
		if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
			t.Errorf("round trip %+v -> %+v", p, back)
		}
	}
}

func TestViewport_Invalid(t *testing.T) {
	var v Viewport
	if v.Valid() {
		t.Error("zero Viewport reported valid")
	}
	if got := v.ToImage(5, 5); got != (Point{}) {
		t.Errorf("ToImage() on invalid viewport = %+v", got)
	}
}

func TestViewport_Contains(t *testing.T) {
	v := Viewport{Left: 10, Top: 2, RenderedWidth: 20, RenderedHeight: 10, PixelWidth: 20, PixelHeight: 10}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 2, true},
		{29.9, 11.9, true},
		{30, 5, false},
		{9.9, 5, false},
		{15, 12, false},
	}
	for _, tt := range tests {
		if got := v.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v,%v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCellScreenMapping(t *testing.T) {
	for _, cell := range [][2]int{{0, 0}, {5, 3}, {79, 23}} {
		sx, sy := cellToScreen(cell[0], cell[1])
		col, row := screenToCell(sx, sy)
		if col != cell[0] || row != cell[1] {
			t.Errorf("cell %v -> (%v,%v) -> (%d,%d)", cell, sx, sy, col, row)
		}
	}
}
