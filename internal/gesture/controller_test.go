package gesture

import (
	"testing"

	"github.com/Gaurav-Gosain/stickyboard/internal/geom"
)

var noteCons = Constraints{MinWidth: 10, MaxWidth: 60, MinHeight: 5, MaxHeight: 30}

func TestControllerDragLifecycle(t *testing.T) {
	hub := &Hub{}
	c := NewController(hub, "a")

	if !c.BeginDrag(5, 5, geom.Pt(2, 3)) {
		t.Fatal("BeginDrag() = false on an idle controller")
	}
	if owner, ok := hub.Owner(); !ok || owner != "a" {
		t.Fatalf("hub.Owner() = %q, %v; want a, true", owner, ok)
	}

	u, ok := c.Move(8, 4)
	if !ok || u.Kind != Dragging || u.Position != geom.Pt(5, 2) {
		t.Errorf("Move() = %+v, %v; want dragging to (5, 2)", u, ok)
	}

	ended, seq := c.End()
	if ended != Dragging {
		t.Errorf("End() = %v, want dragging", ended)
	}
	if hub.Active() {
		t.Error("hub still holds a capture after End()")
	}
	if !c.Busy() {
		t.Error("click guard not armed after a drag")
	}
	c.ExpireGuard(seq)
	if c.Busy() {
		t.Error("click guard still armed after ExpireGuard")
	}
	if _, ok := c.Move(9, 9); ok {
		t.Error("Move() after End() produced an update")
	}
}

func TestControllerMutualExclusion(t *testing.T) {
	c := NewController(&Hub{}, "a")

	if !c.BeginResize(0, 0, SouthEast, geom.Pt(0, 0), geom.Size{Width: 20, Height: 10}, noteCons) {
		t.Fatal("BeginResize() = false on an idle controller")
	}
	if c.BeginDrag(0, 0, geom.Pt(0, 0)) {
		t.Error("BeginDrag() succeeded while resizing")
	}

	u, ok := c.Move(5, 5)
	if !ok || u.Kind != Resizing {
		t.Fatalf("Move() = %+v, %v; want a resize update", u, ok)
	}
	if u.Size != (geom.Size{Width: 25, Height: 15}) || u.Position != geom.Pt(0, 0) {
		t.Errorf("Move() = %+v, want 25x15 at the origin", u)
	}

	c.End()
	if !c.BeginDrag(0, 0, geom.Pt(0, 0)) {
		t.Error("BeginDrag() refused after the resize ended")
	}
	if c.BeginResize(0, 0, East, geom.Pt(0, 0), geom.Size{Width: 20, Height: 10}, noteCons) {
		t.Error("BeginResize() succeeded while dragging")
	}
}

func TestHubReleasesStaleCapture(t *testing.T) {
	var stale []string
	hub := &Hub{OnStale: func(owner string) { stale = append(stale, owner) }}
	a := NewController(hub, "a")
	b := NewController(hub, "b")

	a.BeginDrag(0, 0, geom.Pt(0, 0))
	b.BeginDrag(0, 0, geom.Pt(0, 0))

	if len(stale) != 1 || stale[0] != "a" {
		t.Fatalf("stale owners = %v, want [a]", stale)
	}
	if a.State() != Idle {
		t.Errorf("a.State() = %v after losing its capture, want idle", a.State())
	}
	if _, ok := a.Move(3, 3); ok {
		t.Error("a.Move() produced an update without a capture")
	}
	if owner, _ := hub.Owner(); owner != "b" {
		t.Errorf("hub.Owner() = %q, want b", owner)
	}
}

func TestCaptureReleaseIsIdempotent(t *testing.T) {
	hub := &Hub{}
	first := hub.Acquire("a")
	first.Release()
	first.Release()

	second := hub.Acquire("b")
	first.Release()
	if !second.Held() {
		t.Error("releasing an old capture dropped the live one")
	}
	hub.ReleaseAll()
	if second.Held() || hub.Active() {
		t.Error("ReleaseAll() left a capture held")
	}

	var nilCapture *Capture
	nilCapture.Release()
}

func TestGuardIgnoresOutdatedExpiry(t *testing.T) {
	c := NewController(&Hub{}, "a")

	c.BeginDrag(0, 0, geom.Pt(0, 0))
	_, first := c.End()
	c.BeginDrag(0, 0, geom.Pt(0, 0))
	_, second := c.End()

	c.ExpireGuard(first)
	if !c.Busy() {
		t.Error("an outdated expiry disarmed the guard")
	}
	c.ExpireGuard(second)
	if c.Busy() {
		t.Error("Busy() = true after the latest expiry")
	}
}

func TestCancelDoesNotArmGuard(t *testing.T) {
	hub := &Hub{}
	c := NewController(hub, "a")
	c.BeginResize(0, 0, East, geom.Pt(0, 0), geom.Size{Width: 20, Height: 10}, noteCons)
	c.Cancel()

	if c.Busy() || hub.Active() || c.State() != Idle {
		t.Error("Cancel() left state behind")
	}
	if ended, seq := c.End(); ended != Idle || seq != 0 {
		t.Errorf("End() on idle = %v, %d; want idle, 0", ended, seq)
	}
}

func TestBeginResizeRefusesInfeasibleConstraints(t *testing.T) {
	tests := []struct {
		name string
		cons Constraints
	}{
		{"width range empty", Constraints{MinWidth: 50, MaxWidth: 40}},
		{"ratio misses height range", Constraints{MinWidth: 40, MaxWidth: 80, MinHeight: 5, MaxHeight: 20, AspectRatioLocked: true, Ratio: 0.75}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Hub{}
			c := NewController(h, "a")
			if c.BeginResize(0, 0, SouthEast, geom.Pt(0, 0), geom.Size{Width: 40, Height: 30}, tt.cons) {
				t.Error("BeginResize() = true, want false")
			}
			if c.State() != Idle || h.Active() {
				t.Errorf("state = %v, capture held = %v; want idle with no capture", c.State(), h.Active())
			}
		})
	}
}
