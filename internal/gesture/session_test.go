package gesture

import (
	"math"
	"math/rand"
	"testing"

	"github.com/Gaurav-Gosain/stickyboard/internal/geom"
)

func TestUpdateDragIsPureTranslation(t *testing.T) {
	tests := []struct {
		name       string
		start, pos geom.Point
		dx, dy     float64
	}{
		{"right and down", geom.Pt(10, 10), geom.Pt(3, 4), 5, 2},
		{"left and up", geom.Pt(40, 12), geom.Pt(30, 8), -12, -7},
		{"no travel", geom.Pt(1, 1), geom.Pt(0, 0), 0, 0},
		{"off screen", geom.Pt(0, 0), geom.Pt(2, 2), -50, -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := BeginDrag(tt.start.X, tt.start.Y, tt.pos)
			got := UpdateDrag(s, tt.start.X+tt.dx, tt.start.Y+tt.dy)
			want := geom.Pt(tt.pos.X+tt.dx, tt.pos.Y+tt.dy)
			if got != want {
				t.Errorf("UpdateDrag() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestUpdateResize(t *testing.T) {
	cons := Constraints{MinWidth: 150, MaxWidth: 600, MinHeight: 100, MaxHeight: 400}

	tests := []struct {
		name   string
		dir    Direction
		dx, dy float64
		want   geom.Size
	}{
		{"west edge dragged right shrinks to min", West, 100, 0, geom.Size{Width: 150, Height: 200}},
		{"west edge dragged left grows", West, -50, 0, geom.Size{Width: 250, Height: 200}},
		{"east grows", East, 30, 99, geom.Size{Width: 230, Height: 200}},
		{"south grows", South, 30, 50, geom.Size{Width: 200, Height: 250}},
		{"north shrinks", North, 0, 40, geom.Size{Width: 200, Height: 160}},
		{"south east clamps both", SouthEast, 1000, 1000, geom.Size{Width: 600, Height: 400}},
		{"north west clamps both", NorthWest, 1000, 1000, geom.Size{Width: 150, Height: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := BeginResize(500, 500, tt.dir, 200, 200, cons)
			got := UpdateResize(s, 500+tt.dx, 500+tt.dy)
			if got != tt.want {
				t.Errorf("UpdateResize(%s, %v, %v) = %+v, want %+v", tt.dir, tt.dx, tt.dy, got, tt.want)
			}
		})
	}
}

func TestUpdateResizeStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cons := Constraints{MinWidth: 10, MaxWidth: 60, MinHeight: 5, MaxHeight: 30}

	for i := 0; i < 500; i++ {
		dir := AllDirections[rng.Intn(len(AllDirections))]
		s := BeginResize(0, 0, dir, 20, 10, cons)
		got := UpdateResize(s, rng.Float64()*400-200, rng.Float64()*400-200)
		if got.Width < cons.MinWidth || got.Width > cons.MaxWidth ||
			got.Height < cons.MinHeight || got.Height > cons.MaxHeight {
			t.Fatalf("UpdateResize(%s) = %+v, outside %+v", dir, got, cons)
		}
	}
}

func TestUpdateResizeAspectLocked(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	cons := Constraints{
		MinWidth: 10, MaxWidth: 80,
		MinHeight: 8, MaxHeight: 50,
		AspectRatioLocked: true,
		Ratio:             0.5,
	}
	if err := cons.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	for i := 0; i < 500; i++ {
		dir := AllDirections[rng.Intn(len(AllDirections))]
		s := BeginResize(0, 0, dir, 40, 20, cons)
		got := UpdateResize(s, rng.Float64()*200-100, rng.Float64()*200-100)
		if math.Abs(got.Height-got.Width*0.5) > 1e-9 {
			t.Fatalf("UpdateResize(%s) = %+v, height is not width*0.5", dir, got)
		}
		if got.Width < cons.MinWidth || got.Width > cons.MaxWidth ||
			got.Height < cons.MinHeight || got.Height > cons.MaxHeight {
			t.Fatalf("UpdateResize(%s) = %+v, outside %+v", dir, got, cons)
		}
	}
}

func TestRatioFromStartSize(t *testing.T) {
	s := BeginResize(0, 0, SouthEast, 20, 10, Constraints{AspectRatioLocked: true})
	got := UpdateResize(s, 10, 0)
	want := geom.Size{Width: 30, Height: 15}
	if got != want {
		t.Errorf("UpdateResize() = %+v, want %+v", got, want)
	}
}

func TestAnchorKeepsOppositeEdge(t *testing.T) {
	start := geom.Pt(10, 10)
	tests := []struct {
		dir  Direction
		size geom.Size
		want geom.Point
	}{
		{SouthEast, geom.Size{Width: 30, Height: 30}, geom.Pt(10, 10)},
		{West, geom.Size{Width: 15, Height: 20}, geom.Pt(15, 10)},
		{NorthWest, geom.Size{Width: 25, Height: 25}, geom.Pt(5, 5)},
	}
	for _, tt := range tests {
		s := BeginResize(0, 0, tt.dir, 20, 20, Constraints{})
		if got := Anchor(s, start, tt.size); got != tt.want {
			t.Errorf("Anchor(%s, %+v) = %+v, want %+v", tt.dir, tt.size, got, tt.want)
		}
	}
}

func TestConstraintsValidate(t *testing.T) {
	tests := []struct {
		name    string
		cons    Constraints
		wantErr bool
	}{
		{"valid", Constraints{MinWidth: 1, MaxWidth: 2, MinHeight: 1, MaxHeight: 2}, false},
		{"unbounded max", Constraints{MinWidth: 10, MinHeight: 10}, false},
		{"min over max", Constraints{MinWidth: 5, MaxWidth: 4}, true},
		{"negative min", Constraints{MinHeight: -1}, true},
		{"ratio conflicts", Constraints{MinWidth: 10, MaxWidth: 20, MaxHeight: 5, AspectRatioLocked: true, Ratio: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cons.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"se", SouthEast, false},
		{"W", West, false},
		{" nw ", NorthWest, false},
		{"ns", 0, true},
		{"x", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, %v; want %v, wantErr %v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
	for _, d := range AllDirections {
		if got, err := ParseDirection(d.String()); err != nil || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v; want %v", d.String(), got, err, d)
		}
	}
}
