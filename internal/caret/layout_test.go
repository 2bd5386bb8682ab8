package caret

import (
	"reflect"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []Line
	}{
		{"empty", "", 5, []Line{{0, 0, 0}}},
		{"fits", "abc", 5, []Line{{0, 3, 3}}},
		{"word wrap hangs the space", "hello world", 5, []Line{{0, 6, 5}, {6, 11, 5}}},
		{"word moves down", "ab cdef", 5, []Line{{0, 3, 3}, {3, 7, 4}}},
		{"long word breaks", "abcdefgh", 3, []Line{{0, 3, 3}, {3, 6, 3}, {6, 8, 2}}},
		{"hard newline", "ab\ncd", 10, []Line{{0, 2, 2}, {3, 5, 2}}},
		{"trailing newline", "ab\n", 10, []Line{{0, 2, 2}, {3, 3, 0}}},
		{"wide runes", "日本語", 4, []Line{{0, 2, 4}, {2, 3, 2}}},
		{"tab stop", "a\tb", 10, []Line{{0, 3, 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap([]rune(tt.text), tt.width, 4).Lines
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Wrap(%q, %d) = %v, want %v", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrappedPosition(t *testing.T) {
	tests := []struct {
		text            string
		width, offset   int
		wantRow, wantCol int
	}{
		{"hello world", 5, 0, 0, 0},
		{"hello world", 5, 5, 0, 5},
		{"hello world", 5, 6, 1, 0},
		{"hello world", 5, 11, 1, 5},
		{"ab\ncd", 10, 2, 0, 2},
		{"ab\ncd", 10, 3, 1, 0},
		{"ab\n", 10, 3, 1, 0},
	}
	for _, tt := range tests {
		w := Wrap([]rune(tt.text), tt.width, 4)
		row, col := w.Position(tt.offset)
		if row != tt.wantRow || col != tt.wantCol {
			t.Errorf("Position(%q, %d) = (%d, %d), want (%d, %d)",
				tt.text, tt.offset, row, col, tt.wantRow, tt.wantCol)
		}
	}
}

func TestWrappedOffsetAt(t *testing.T) {
	w := Wrap([]rune("hello world"), 5, 4)
	tests := []struct {
		row  int
		x    float64
		want int
	}{
		{0, 0, 0},
		{0, 2, 2},
		{0, 100, 6},
		{1, 2, 8},
		{1, 2.5, 8},
		{5, 0, 6},
		{-1, 1, 1},
	}
	for _, tt := range tests {
		if got := w.OffsetAt(tt.row, tt.x); got != tt.want {
			t.Errorf("OffsetAt(%d, %v) = %d, want %d", tt.row, tt.x, got, tt.want)
		}
	}
}

func TestWrappedRowsExpandTabs(t *testing.T) {
	rows := Wrap([]rune("a\tb\ncd"), 10, 4).Rows()
	want := []string{"a   b", "cd"}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Rows() = %q, want %q", rows, want)
	}
}
