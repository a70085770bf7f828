package app

import (
	"strings"
	"time"
)

// HintDuration is how long the drag hint stays up without interaction.
const HintDuration = 4500 * time.Millisecond

// ResizeDebounce delays applying window resizes until they settle.
const ResizeDebounce = 100 * time.Millisecond

// clickSlop is the pointer travel, in logical units, beyond which a press
// counts as a drag rather than a click.
const clickSlop = 5

const hintText = "Drag to rotate"

// Hint tracks the intro hint. It hides on the first movement or after its
// duration, whichever comes first, and never returns.
type Hint struct {
	until     time.Time
	dismissed bool
}

// NewHint shows the hint from now for d.
func NewHint(now time.Time, d time.Duration) *Hint {
	return &Hint{until: now.Add(d)}
}

// Dismiss hides the hint for good.
func (h *Hint) Dismiss() {
	h.dismissed = true
}

// Visible reports whether the hint should be shown at now.
func (h *Hint) Visible(now time.Time) bool {
	return !h.dismissed && now.Before(h.until)
}

// Debouncer coalesces bursts of resize events into the last size.
type Debouncer struct {
	delay         time.Duration
	deadline      time.Time
	width, height int
	pending       bool
}

// NewDebouncer returns a debouncer that fires delay after the last Trigger.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger records a size and restarts the delay.
func (d *Debouncer) Trigger(now time.Time, width, height int) {
	d.width, d.height = width, height
	d.deadline = now.Add(d.delay)
	d.pending = true
}

// Due returns the settled size once the delay has passed since the last
// Trigger. It reports each settled size once.
func (d *Debouncer) Due(now time.Time) (width, height int, ok bool) {
	if !d.pending || now.Before(d.deadline) {
		return 0, 0, false
	}
	d.pending = false
	return d.width, d.height, true
}

// ClickTracker tells clicks from drags. Only a press that starts while the
// sphere is at rest can be a click; pressing a spinning sphere just stops it.
type ClickTracker struct {
	startX, startY float32
	travel         float32
	down           bool
	idle           bool
}

// Down starts tracking a press. idle reports whether the sphere was at rest
// when the press began.
func (c *ClickTracker) Down(x, y float32, idle bool) {
	c.startX, c.startY = x, y
	c.travel = 0
	c.down = true
	c.idle = idle
}

// Move records the farthest distance from the press point.
func (c *ClickTracker) Move(x, y float32) {
	if !c.down {
		return
	}
	dx, dy := x-c.startX, y-c.startY
	if d := dx*dx + dy*dy; d > c.travel {
		c.travel = d
	}
}

// Up ends the press and reports whether it was a click.
func (c *ClickTracker) Up() bool {
	if !c.down {
		return false
	}
	c.down = false
	return c.idle && c.travel <= clickSlop*clickSlop
}

// Cancel drops the current press.
func (c *ClickTracker) Cancel() {
	c.down = false
}

// FormatTitle composes the window title from the base title, the active
// item caption and the hint.
func FormatTitle(base, caption string, hint bool) string {
	parts := []string{base}
	if caption != "" {
		parts = append(parts, caption)
	}
	if hint {
		parts = append(parts, hintText)
	}
	return strings.Join(parts, " | ")
}
