package main

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/fogleman/gg"
)

// Renderer composites overlays onto an image. It carries configuration
// only; Render has no side effects.
type Renderer struct {
	fonts  *FontSet
	stroke float64
}

func NewRenderer(fonts *FontSet, stroke float64) *Renderer {
	if stroke <= 0 {
		stroke = defaultStroke
	}
	return &Renderer{fonts: fonts, stroke: stroke}
}

// Render draws img at the origin of a canvas the size of img, then each
// overlay in order so later overlays end up on top.
func (r *Renderer) Render(img image.Image, overlays []Overlay) *image.RGBA {
	b := img.Bounds()
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.DrawImage(img, -b.Min.X, -b.Min.Y)

	for _, o := range overlays {
		r.drawOverlay(dc, o)
	}
	return toRGBA(dc.Image())
}

// drawOverlay translates to the overlay anchor and rotates around it. Each
// line is centred horizontally with its baseline at i*lineHeight.
func (r *Renderer) drawOverlay(dc *gg.Context, o Overlay) {
	dc.Push()
	defer dc.Pop()

	dc.Translate(o.X, o.Y)
	dc.Rotate(gg.Radians(o.Rotation))
	dc.SetFontFace(r.fonts.Face(o.Size))

	lineHeight := o.Size * lineHeightFactor
	for i, line := range o.Lines() {
		if line == "" {
			continue
		}
		r.drawOutlined(dc, line, 0, float64(i)*lineHeight)
	}
}

// drawOutlined paints s in white over black copies offset within the stroke
// radius, which gives the outline gg has no text stroke for.
func (r *Renderer) drawOutlined(dc *gg.Context, s string, x, y float64) {
	n := int(math.Ceil(r.stroke / 2))
	dc.SetColor(color.Black)
	for dy := -n; dy <= n; dy++ {
		for dx := -n; dx <= n; dx++ {
			if dx == 0 && dy == 0 || dx*dx+dy*dy > n*n {
				continue
			}
			dc.DrawStringAnchored(s, x+float64(dx), y+float64(dy), 0.5, 0)
		}
	}
	dc.SetColor(color.White)
	dc.DrawStringAnchored(s, x, y, 0.5, 0)
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba
}
