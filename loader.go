package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	// Register decoders for the formats the picker offers.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	tea "github.com/charmbracelet/bubbletea"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".tif", ".tiff"}

type imageLoadedMsg struct {
	generation uint64
	path       string
	img        image.Image
	err        error
}

func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("decoding %s: empty image", filepath.Base(path))
	}
	logger.Debug("decoded image", "path", path, "format", format, "width", b.Dx(), "height", b.Dy())
	return img, nil
}

// loadImageCmd decodes path off the update loop and reports back tagged
// with the load generation it was started for.
func loadImageCmd(path string, generation uint64) tea.Cmd {
	return func() tea.Msg {
		img, err := decodeImageFile(path)
		return imageLoadedMsg{generation: generation, path: path, img: img, err: err}
	}
}

func isImageFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range imageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// scanImageFiles lists the image files in dir, sorted by name.
func scanImageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := []string{}
	for _, entry := range entries {
		if !entry.IsDir() && isImageFile(entry.Name()) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
