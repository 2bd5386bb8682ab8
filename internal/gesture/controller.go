package gesture

import "github.com/Gaurav-Gosain/stickyboard/internal/geom"

// State of a Controller.
type State int

const (
	Idle State = iota
	Dragging
	Resizing
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	default:
		return "idle"
	}
}

// Update is the geometry produced by one pointer motion.
type Update struct {
	Kind     State
	Position geom.Point
	Size     geom.Size
}

// Controller runs one widget's gestures. Dragging and resizing are
// mutually exclusive, and each holds a Hub capture from begin to end.
type Controller struct {
	hub   *Hub
	owner string

	state   State
	capture *Capture
	drag    DragSession
	resize  ResizeSession
	origin  geom.Point

	guardSeq   uint64
	guardArmed bool
}

// NewController returns an idle controller taking captures from hub on
// behalf of owner.
func NewController(hub *Hub, owner string) *Controller {
	return &Controller{hub: hub, owner: owner}
}

// State returns the current state. A controller whose capture was taken
// away reports Idle.
func (c *Controller) State() State {
	if c.state != Idle && !c.capture.Held() {
		c.reset()
	}
	return c.state
}

// BeginDrag starts moving a widget at pos. It refuses while another
// gesture is running.
func (c *Controller) BeginDrag(px, py float64, pos geom.Point) bool {
	if c.State() != Idle {
		return false
	}
	c.drag = BeginDrag(px, py, pos)
	c.capture = c.hub.Acquire(c.owner)
	c.state = Dragging
	return true
}

// BeginResize starts resizing a widget at pos with the given size. It
// refuses while another gesture is running.
func (c *Controller) BeginResize(px, py float64, dir Direction, pos geom.Point, size geom.Size, cons Constraints) bool {
	if c.State() != Idle || dir == 0 || cons.Validate() != nil {
		return false
	}
	c.resize = BeginResize(px, py, dir, size.Width, size.Height, cons)
	c.origin = pos
	c.capture = c.hub.Acquire(c.owner)
	c.state = Resizing
	return true
}

// Move feeds a pointer motion to the running gesture.
func (c *Controller) Move(px, py float64) (Update, bool) {
	switch c.State() {
	case Dragging:
		return Update{Kind: Dragging, Position: UpdateDrag(c.drag, px, py)}, true
	case Resizing:
		size := UpdateResize(c.resize, px, py)
		return Update{
			Kind:     Resizing,
			Position: Anchor(c.resize, c.origin, size),
			Size:     size,
		}, true
	}
	return Update{}, false
}

// End finishes the running gesture, releases its capture and arms the
// click guard. It returns the state that ended and the guard sequence to
// pass to ExpireGuard once the suppression delay has passed.
func (c *Controller) End() (State, uint64) {
	ended := c.State()
	c.capture.Release()
	c.reset()
	if ended == Idle {
		return Idle, 0
	}
	c.guardSeq++
	c.guardArmed = true
	return ended, c.guardSeq
}

// Cancel abandons any gesture without arming the guard.
func (c *Controller) Cancel() {
	c.capture.Release()
	c.reset()
}

// ExpireGuard disarms the click guard if seq is the latest arming.
func (c *Controller) ExpireGuard(seq uint64) {
	if seq == c.guardSeq {
		c.guardArmed = false
	}
}


// Busy reports whether a gesture is running or its trailing click is
// still being suppressed.
func (c *Controller) Busy() bool { return c.State() != Idle || c.guardArmed }

func (c *Controller) reset() {
	c.state = Idle
	c.capture = nil
	c.drag = DragSession{}
	c.resize = ResizeSession{}
}
