package main

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/fogleman/gg"
)

var errNoImage = errors.New("no image loaded")

// composite renders the current session.
func (m *model) composite() (*image.RGBA, error) {
	if !m.editor.HasImage() {
		return nil, errNoImage
	}
	return m.renderer.Render(m.editor.Image(), m.editor.Overlays()), nil
}

func (m *model) exportPNG(filename string) error {
	img, err := m.composite()
	if err != nil {
		return err
	}
	if err := gg.SavePNG(filename, img); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	logger.Info("exported", "path", filename, "overlays", m.editor.OverlayCount())
	return nil
}

// dataURL encodes the current render the way a browser canvas would hand
// it out: a base64 PNG data URL.
func (m *model) dataURL() (string, error) {
	img, err := m.composite()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	dc := gg.NewContextForRGBA(img)
	if err := dc.EncodePNG(&buf); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
