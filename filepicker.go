package main

import (
	"os"

	"github.com/sahilm/fuzzy"
)

// filterFiles ranks files against pattern, best match first. An empty
// pattern keeps the directory order.
func filterFiles(pattern string, files []string) []string {
	if pattern == "" {
		return append([]string(nil), files...)
	}
	matches := fuzzy.Find(pattern, files)
	out := make([]string, len(matches))
	for i, match := range matches {
		out[i] = match.Str
	}
	return out
}

func (m *model) scanImages() {
	m.fileList = []string{}
	dir, err := os.Getwd()
	if err == nil {
		if files, scanErr := scanImageFiles(dir); scanErr == nil {
			m.fileList = files
		} else {
			err = scanErr
		}
	}
	if err != nil {
		logger.Warn("scanning images", "err", err)
	}
	m.refilterFiles()
}

func (m *model) refilterFiles() {
	m.filteredFiles = filterFiles(m.filename, m.fileList)
	if len(m.filteredFiles) > 0 {
		m.selectedFileIndex = 0
	} else {
		m.selectedFileIndex = -1
	}
}

// chosenFile is the highlighted match, or the typed name when nothing
// matches.
func (m *model) chosenFile() string {
	if m.selectedFileIndex >= 0 && m.selectedFileIndex < len(m.filteredFiles) {
		return m.filteredFiles[m.selectedFileIndex]
	}
	return m.filename
}
