package main

import (
	"os/exec"
	"runtime"
	"strings"
	"unicode"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-runewidth"
	"golang.org/x/net/html"
)

// readClipboardText prefers pbpaste's plain-text flavour on macOS, where
// the clipboard package would return rich text for copies out of browsers.
func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		for _, args := range [][]string{{"-Prefer", "txt"}, nil} {
			if out, err := exec.Command("pbpaste", args...).Output(); err == nil {
				return string(out), nil
			}
		}
	}
	return clipboard.ReadAll()
}

func writeClipboardText(text string) error {
	return clipboard.WriteAll(text)
}

func looksLikeHTML(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if !strings.HasPrefix(t, "<") {
		return false
	}
	for _, tag := range []string{"<html", "<body", "<div", "<p", "<span", "<br"} {
		if strings.Contains(t, tag) {
			return true
		}
	}
	return false
}

// htmlText flattens an HTML fragment to its text, breaking lines at block
// elements. Unparseable input is returned unchanged.
func htmlText(raw string) string {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return raw
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "head":
				return
			case "br":
				b.WriteByte('\n')
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "p", "div", "li", "tr", "h1", "h2", "h3", "h4", "h5", "h6":
				b.WriteByte('\n')
			}
		}
	}
	walk(doc)
	return strings.TrimSpace(b.String())
}

// cleanClipboardText turns pasted rich text into plain overlay text with
// \n line breaks. Tabs become spaces since overlays have no tab stops.
func cleanClipboardText(text string) string {
	if text == "" {
		return text
	}
	switch {
	case looksLikeHTML(text):
		text = htmlText(text)
	case strings.Contains(text, `{\rtf`):
		text = rtfText(text)
	}
	text = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\t", " ").Replace(text)
	text = strings.Map(func(r rune) rune {
		if r != '\n' && unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
	return strings.TrimRight(text, "\n")
}

// rtfText keeps the plain text of an RTF document. Control words are
// dropped except \par and \line, which become newlines; escaped braces and
// backslashes are kept as literals.
func rtfText(rtf string) string {
	var b strings.Builder
	r := []rune(rtf)
	for i := 0; i < len(r); i++ {
		switch r[i] {
		case '{', '}':
			continue
		case '\\':
		default:
			b.WriteRune(r[i])
			continue
		}

		if i+1 >= len(r) {
			break
		}
		next := r[i+1]
		if !unicode.IsLetter(next) {
			if next == '\\' || next == '{' || next == '}' {
				b.WriteRune(next)
			}
			i++
			continue
		}

		j := i + 1
		for j < len(r) && unicode.IsLetter(r[j]) {
			j++
		}
		word := string(r[i+1 : j])
		for j < len(r) && (unicode.IsDigit(r[j]) || r[j] == '-') {
			j++
		}
		if word == "par" || word == "line" {
			b.WriteByte('\n')
		}
		// A single space delimits the control word and is not text.
		if j < len(r) && r[j] == ' ' {
			j++
		}
		i = j - 1
	}
	return b.String()
}

// fitLine truncates s to width terminal cells and pads it to exactly width.
func fitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(s, width, "…")
	return runewidth.FillRight(s, width)
}
