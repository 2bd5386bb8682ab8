package caret

import (
	"math/rand"
	"testing"

	"github.com/Gaurav-Gosain/stickyboard/internal/geom"
	uv "github.com/charmbracelet/ultraviolet"
)

var testFont = FontSpec{ContentWidth: 20, LineHeight: 1, PaddingX: 1, PaddingY: 1}

// container sits at (10, 5) so every test also checks the relative offset.
var testContainer = uv.Rect(10, 5, 22, 6)

func query(x, y float64, text string) Query {
	return Query{
		ClickX:    x,
		ClickY:    y,
		Container: testContainer,
		Buffer:    []rune(text),
		Font:      testFont,
	}
}

func TestLocateScenarios(t *testing.T) {
	m := CellMeasurer{}
	tests := []struct {
		name string
		x, y float64
		text string
		want int
	}{
		// The end of "hello" is (5+pad, 1+pad) relative to the container.
		{"end of hello", 10 + 6, 5 + 2, "hello", 5},
		{"origin", 10 + 1, 5 + 1, "hello", 0},
		{"midpoint between hel and hell", 10 + 4.5, 5 + 2, "hello", 3},
		{"far below and right", 500, 500, "hello", 5},
		{"far below wrapped text", 10 + 4, 500, "the quick brown fox jumps over the lazy dog", 43},
		{"empty buffer", 15, 7, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Locate(query(tt.x, tt.y, tt.text), m)
			if got != tt.want {
				t.Errorf("Locate(%v, %v, %q) = %d, want %d", tt.x, tt.y, tt.text, got, tt.want)
			}
		})
	}
}

func TestLocateDegenerateContainer(t *testing.T) {
	q := query(12, 6, "hello")
	q.Container = uv.Rectangle{}
	if got := Locate(q, CellMeasurer{}); got != 0 {
		t.Errorf("Locate with empty container = %d, want 0", got)
	}
	if got := Locate(query(12, 6, "hello"), nil); got != 0 {
		t.Errorf("Locate with nil measurer = %d, want 0", got)
	}
}

func TestLocateBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	words := []string{"a", "note", "sticky", "日本", "\n", "\t", "wrap", "  "}
	m := CellMeasurer{}

	for i := 0; i < 300; i++ {
		text := ""
		for j := rng.Intn(12); j > 0; j-- {
			text += words[rng.Intn(len(words))] + " "
		}
		x := rng.Float64()*60 - 10
		y := rng.Float64()*30 - 5
		got := Locate(query(x, y, text), m)
		if n := len([]rune(text)); got < 0 || got > n {
			t.Fatalf("Locate(%v, %v, %q) = %d, want within [0, %d]", x, y, text, got, n)
		}
	}
}

type countingMeasurer struct {
	opened, closed, measured int
}

func (c *countingMeasurer) Open(font FontSpec) Surface {
	c.opened++
	return &countingSurface{c: c, inner: CellMeasurer{}.Open(font)}
}

type countingSurface struct {
	c     *countingMeasurer
	inner Surface
}

func (s *countingSurface) Measure(prefix []rune) geom.Size {
	s.c.measured++
	return s.inner.Measure(prefix)
}

func (s *countingSurface) Close() { s.c.closed++ }

func TestLocateMeasuresEveryPrefixAndCloses(t *testing.T) {
	c := &countingMeasurer{}
	Locate(query(12, 7, "hello"), c)

	if c.opened != 1 || c.closed != 1 {
		t.Errorf("opened %d closed %d surfaces, want 1 and 1", c.opened, c.closed)
	}
	if c.measured != 6 {
		t.Errorf("measured %d prefixes, want 6", c.measured)
	}
}

func TestLocateTieGoesToLowerOffset(t *testing.T) {
	// Every prefix measures the same, so the first one must win.
	flat := measurerFunc(func(prefix []rune) geom.Size { return geom.Size{Width: 4, Height: 4} })
	if got := Locate(query(13, 8, "abcdef"), flat); got != 0 {
		t.Errorf("Locate with identical extents = %d, want 0", got)
	}
}

type measurerFunc func(prefix []rune) geom.Size

func (f measurerFunc) Open(FontSpec) Surface       { return f }
func (f measurerFunc) Measure(p []rune) geom.Size { return f(p) }
func (f measurerFunc) Close()                     {}

func TestCellMeasurerExtent(t *testing.T) {
	font := FontSpec{ContentWidth: 5, PaddingX: 1, PaddingY: 2}
	prefix := []rune("hello wo")

	tests := []struct {
		extent Extent
		want   geom.Size
	}{
		{CaretExtent, geom.Size{Width: 2 + 2, Height: 2 + 4}},
		{BoxExtent, geom.Size{Width: 5 + 2, Height: 2 + 4}},
	}
	for _, tt := range tests {
		t.Run(tt.extent.String(), func(t *testing.T) {
			s := CellMeasurer{Extent: tt.extent}.Open(font)
			defer s.Close()
			if got := s.Measure(prefix); got != tt.want {
				t.Errorf("Measure(%q) = %+v, want %+v", string(prefix), got, tt.want)
			}
		})
	}
}

func TestChainFallsBackToScan(t *testing.T) {
	chain := ForName(StrategyAuto, CellMeasurer{})

	tests := []struct {
		name string
		x, y int
		want int
	}{
		{"inside first row", 10 + 1 + 3, 5 + 1, 3},
		{"second row start", 10 + 1, 5 + 2, 11},
		{"far below the text", 10 + 1 + 14, 500, 25},
		{"left of the padding", 10, 5 + 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQuery(tt.x, tt.y, testContainer, "0123456789 abcdefghij klm", testFont)
			if got := chain.Locate(q); got != tt.want {
				t.Errorf("Locate(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestGridAgreesWithScanOnOneRow(t *testing.T) {
	text := "sticky notes"
	scan := Scan{Measurer: CellMeasurer{}}
	for col := 0; col <= len(text)+2; col++ {
		q := NewQuery(10+1+col, 5+1, testContainer, text, testFont)
		g, ok := Grid{}.Offset(q)
		if !ok {
			t.Fatalf("Grid declined column %d", col)
		}
		s, _ := scan.Offset(q)
		if g != s {
			t.Errorf("column %d: grid = %d, scan = %d", col, g, s)
		}
	}
}
