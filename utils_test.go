package main

import "testing"

func TestCleanClipboardText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "ONE DOES NOT", "ONE DOES NOT"},
		{"tabs and crlf", "a\tb\r\nc\n\n", "a b\nc"},
		{"carriage returns", "top\rbottom", "top\nbottom"},
		{"control chars", "x\x07y", "xy"},
		{"html", "<div>Tom &amp; Jerry</div>", "Tom & Jerry"},
		{"rtf", `{\rtf1\ansi hello\par world}`, "hello\nworld"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanClipboardText(tt.input); got != tt.want {
				t.Errorf("cleanClipboardText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFitLine(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"hi", 4, "hi  "},
		{"hello", 3, "he…"},
		{"exact", 5, "exact"},
		{"x", 0, ""},
	}
	for _, tt := range tests {
		if got := fitLine(tt.s, tt.width); got != tt.want {
			t.Errorf("fitLine(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestInsertRunes(t *testing.T) {
	got := string(insertRunes([]rune("HELLO"), 2, []rune("--")))
	if got != "HE--LLO" {
		t.Errorf("insertRunes() = %q", got)
	}
}
