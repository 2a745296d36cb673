package debug

import (
	"strings"
	"testing"
)

func TestTreeWriterLine(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{
			name:   "root layer",
			depth:  0,
			format: "FRAME %q 1280x2000",
			args:   []any{"body"},
			want:   "FRAME \"body\" 1280x2000\n",
		},
		{
			name:   "nested layer",
			depth:  2,
			format: "RECTANGLE %q fills=%d",
			args:   []any{"hero", 1},
			want:   "    RECTANGLE \"hero\" fills=1\n",
		},
		{
			name:   "no arguments",
			depth:  1,
			format: "VECTOR",
			want:   "  VECTOR\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriterTextBlock(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		label string
		value string
		want  string
	}{
		{
			name:  "plain text",
			depth: 1,
			label: "characters",
			value: "Sign up",
			want:  "  characters: \"Sign up\"\n",
		},
		{
			name:  "empty value stays unquoted",
			depth: 0,
			label: "characters",
			value: "",
			want:  "characters: \n",
		},
		{
			name:  "newlines are escaped",
			depth: 0,
			label: "characters",
			value: "line one\nline two",
			want:  "characters: \"line one\\nline two\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.TextBlock(tt.depth, tt.label, tt.value)
			if got := tw.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriterSceneShape(t *testing.T) {
	// The shape a scene dump takes: one line per layer, text content indented
	// under its layer.
	tw := NewTreeWriter()
	tw.Line(0, "FRAME %q", "body")
	tw.Line(1, "TEXT %q", "h1")
	tw.TextBlock(2, "characters", "Pricing & Plans")
	tw.Line(1, "RECTANGLE %q", "img")

	want := strings.Join([]string{
		`FRAME "body"`,
		`  TEXT "h1"`,
		`    characters: "Pricing & Plans"`,
		`  RECTANGLE "img"`,
	}, "\n") + "\n"
	if got := tw.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTreeWriterEmpty(t *testing.T) {
	tw := NewTreeWriter()
	if tw.String() != "" {
		t.Errorf("fresh writer not empty: %q", tw.String())
	}
}
