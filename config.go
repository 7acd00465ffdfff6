package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const configFileName = ".jmemerc"

type Config struct {
	SaveDirectory string
	ExportName    string
	Confirmations bool
	AddMode       bool
	TextSize      float64
	StrokeWidth   float64
	Fonts         []string
	FontDirs      []string
}

func defaultConfig() *Config {
	return &Config{
		SaveDirectory: "",
		ExportName:    defaultExportName,
		Confirmations: true,
		AddMode:       true,
		TextSize:      defaultTextSize,
		StrokeWidth:   defaultStroke,
		Fonts:         append([]string(nil), defaultFonts...),
		FontDirs:      defaultFontDirs(),
	}
}

func loadConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultConfig()
	}

	file, err := os.Open(filepath.Join(homeDir, configFileName))
	if err != nil {
		return defaultConfig()
	}
	defer file.Close()

	return parseConfig(file, homeDir)
}

// parseConfig reads key = value lines. Unknown keys and malformed values
// are ignored so a bad line never keeps the editor from starting.
func parseConfig(r io.Reader, homeDir string) *Config {
	config := defaultConfig()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "savedirectory", "save_directory", "savedir":
			config.SaveDirectory = expandPath(value, homeDir)
		case "filename", "export_name", "exportname":
			if value != "" {
				config.ExportName = value
			}
		case "confirmations", "confirm":
			config.Confirmations = strings.ToLower(value) == "true"
		case "addmode", "add_mode":
			config.AddMode = strings.ToLower(value) == "true"
		case "textsize", "text_size", "size":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				config.TextSize = clamp(v, minTextSize, maxTextSize)
			}
		case "strokewidth", "stroke_width", "stroke":
			if v, err := strconv.ParseFloat(value, 64); err == nil && v > 0 {
				config.StrokeWidth = v
			}
		case "fonts", "font":
			if list := splitList(value); len(list) > 0 {
				config.Fonts = list
			}
		case "fontdirs", "font_dirs":
			dirs := splitList(value)
			for i := range dirs {
				dirs[i] = expandPath(dirs[i], homeDir)
			}
			if len(dirs) > 0 {
				config.FontDirs = dirs
			}
		}
	}

	return config
}

func expandPath(value, homeDir string) string {
	if strings.HasPrefix(value, "~") && homeDir != "" {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

// splitList splits a comma separated list, dropping quotes the way a CSS
// font-family list is usually written.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.Trim(strings.TrimSpace(item), `'"`)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// GetSavePath places filename in the save directory, creating the
// directory when needed.
func (c *Config) GetSavePath(filename string) (string, error) {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename, nil
	}
	if err := os.MkdirAll(c.SaveDirectory, 0755); err != nil {
		logger.Error("creating save directory", "dir", c.SaveDirectory, "err", err)
		return "", fmt.Errorf("creating save directory: %w", err)
	}
	return filepath.Join(c.SaveDirectory, filename), nil
}
