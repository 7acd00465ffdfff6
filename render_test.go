package main

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	fonts, err := LoadFontSet([]string{"sans-serif"}, nil)
	if err != nil {
		t.Fatalf("LoadFontSet() error: %v", err)
	}
	return NewRenderer(fonts, defaultStroke)
}

func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func TestRenderer_NoOverlaysCopiesImage(t *testing.T) {
	r := testRenderer(t)
	bg := color.RGBA{R: 128, G: 64, B: 32, A: 255}
	out := r.Render(solidImage(40, 30, bg), nil)

	if got := out.Bounds(); got.Dx() != 40 || got.Dy() != 30 {
		t.Fatalf("bounds = %v, want 40x30", got)
	}
	if got := out.RGBAAt(20, 15); got != bg {
		t.Errorf("pixel = %v, want %v", got, bg)
	}
}

func TestRenderer_DrawsOutlinedText(t *testing.T) {
	r := testRenderer(t)
	bg := color.RGBA{R: 128, G: 64, B: 32, A: 255}
	overlays := []Overlay{{ID: 0, X: 100, Y: 100, Text: "HI", Size: 80}}
	out := r.Render(solidImage(400, 300, bg), overlays)

	if got := out.Bounds(); got.Dx() != 400 || got.Dy() != 300 {
		t.Fatalf("bounds = %v, want 400x300", got)
	}

	var white, black bool
	for y := 30; y <= 105; y++ {
		for x := 40; x <= 160; x++ {
			c := out.RGBAAt(x, y)
			switch {
			case c.R > 230 && c.G > 230 && c.B > 230:
				white = true
			case c.R < 25 && c.G < 25 && c.B < 25:
				black = true
			}
		}
	}
	if !white {
		t.Error("no white fill near the anchor")
	}
	if !black {
		t.Error("no black outline near the anchor")
	}

	for _, p := range []image.Point{{350, 250}, {5, 5}, {100, 200}} {
		if got := out.RGBAAt(p.X, p.Y); got != bg {
			t.Errorf("pixel %v = %v, want untouched %v", p, got, bg)
		}
	}
}

func TestRenderer_DoesNotModifyInput(t *testing.T) {
	r := testRenderer(t)
	bg := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	img := solidImage(200, 120, bg)
	r.Render(img, []Overlay{{X: 100, Y: 80, Text: "TOP", Size: 60, Rotation: 15}})

	if got := img.RGBAAt(100, 60); got != bg {
		t.Errorf("source image modified: %v", got)
	}
}

func TestOverlay_Lines(t *testing.T) {
	o := Overlay{Text: "TOP\n\nBOTTOM"}
	lines := o.Lines()
	if len(lines) != 3 || lines[0] != "TOP" || lines[1] != "" || lines[2] != "BOTTOM" {
		t.Errorf("Lines() = %q", lines)
	}
}
