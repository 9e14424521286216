package parser

import (
	"reflect"
	"strings"
	"testing"
)

func TestReassemble(t *testing.T) {
	isBoundary := func(line string) bool {
		return strings.HasPrefix(line, ">")
	}

	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "single record",
			lines: []string{"> first"},
			want:  []string{"> first"},
		},
		{
			name:  "continuation joins with space",
			lines: []string{"> first", "part two", "part three"},
			want:  []string{"> first part two part three"},
		},
		{
			name:  "boundary flushes previous record",
			lines: []string{"> first", "tail", "> second"},
			want:  []string{"> first tail", "> second"},
		},
		{
			name:  "blank lines ignored",
			lines: []string{"> first", "", "   ", "> second"},
			want:  []string{"> first", "> second"},
		},
		{
			name:  "continuation before first boundary discarded",
			lines: []string{"orphan tail", "> first"},
			want:  []string{"> first"},
		},
		{
			name:  "empty input",
			lines: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reassemble(tt.lines, isBoundary)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("reassemble() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	got := splitLines("a\r\nb\nc\r")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitLines() = %v, want %v", got, want)
	}
}
