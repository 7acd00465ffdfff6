package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

const genericSansSerif = "sans-serif"

// FontSet resolves a font preference list to one TrueType font and hands
// out faces of that font per pixel size.
type FontSet struct {
	font   *truetype.Font
	source string
	faces  map[float64]font.Face
}

// LoadFontSet picks the first usable entry of preference. Entries are file
// paths or family names looked up in dirs; "sans-serif" and an exhausted
// list both fall back to the embedded Go Bold face.
func LoadFontSet(preference, dirs []string) (*FontSet, error) {
	var index map[string]string
	for _, name := range preference {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if strings.EqualFold(name, genericSansSerif) {
			break
		}
		path := name
		if !isFontFile(path) {
			if index == nil {
				index = indexFontDirs(dirs)
			}
			var ok bool
			if path, ok = lookupFont(index, name); !ok {
				logger.Debug("font not found", "name", name)
				continue
			}
		}
		f, err := parseFontFile(path)
		if err != nil {
			logger.Debug("font unusable", "path", path, "err", err)
			continue
		}
		return newFontSet(f, path), nil
	}

	f, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return newFontSet(f, "Go Bold"), nil
}

func newFontSet(f *truetype.Font, source string) *FontSet {
	return &FontSet{
		font:   f,
		source: source,
		faces:  make(map[float64]font.Face),
	}
}

// Source names the font file (or the embedded fallback) in use.
func (s *FontSet) Source() string {
	return s.source
}

// Face returns a face whose em size is size pixels.
func (s *FontSet) Face(size float64) font.Face {
	if face, ok := s.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(s.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	s.faces[size] = face
	return face
}

func parseFontFile(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f, nil
}

func isFontFile(name string) bool {
	if !strings.HasSuffix(strings.ToLower(name), ".ttf") {
		return false
	}
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}

// indexFontDirs maps normalised file names (no extension) to .ttf paths.
// The first file seen for a name wins.
func indexFontDirs(dirs []string) map[string]string {
	index := make(map[string]string)
	for _, dir := range dirs {
		filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".ttf") {
				return nil
			}
			key := normalizeFontName(strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())))
			if _, seen := index[key]; !seen {
				index[key] = path
			}
			return nil
		})
	}
	return index
}

// lookupFont prefers an exact family match ("Impact" -> impact.ttf), then
// the regular face of the family ("Bangers" -> Bangers-Regular.ttf).
func lookupFont(index map[string]string, name string) (string, bool) {
	key := normalizeFontName(name)
	if path, ok := index[key]; ok {
		return path, true
	}
	for _, suffix := range []string{"regular", "bold"} {
		if path, ok := index[key+suffix]; ok {
			return path, true
		}
	}
	return "", false
}

func normalizeFontName(name string) string {
	name = strings.ToLower(name)
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(name)
}

func defaultFontDirs() []string {
	home, _ := os.UserHomeDir()
	var dirs []string
	switch runtime.GOOS {
	case "darwin":
		dirs = []string{"/Library/Fonts", "/System/Library/Fonts", "/System/Library/Fonts/Supplemental"}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
	case "windows":
		dirs = []string{filepath.Join(os.Getenv("WINDIR"), "Fonts")}
	default:
		dirs = []string{"/usr/share/fonts", "/usr/local/share/fonts"}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".fonts"), filepath.Join(home, ".local", "share", "fonts"))
		}
	}
	return dirs
}
