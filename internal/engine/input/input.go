// Package input translates SDL2 events into pointer, key and window events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a translated event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventPointerMove
	EventPointerDown
	EventPointerUp
	EventPointerLeave
)

// touchMouseID marks mouse events SDL synthesizes from touches
// (SDL_TOUCH_MOUSEID). Touches are handled as finger events instead.
const touchMouseID = 0xFFFFFFFF

// Event is a translated input event. Pointer positions are in logical
// window units.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	X      float32
	Y      float32
}

// Input polls SDL and buffers this frame's events.
type Input struct {
	events []Event

	// Window size in logical units, used to place touch events
	width, height int
}

// New creates an input handler.
func New() *Input {
	return &Input{events: make([]Event, 0, 16)}
}

// SetSize records the logical window size for touch coordinates.
func (i *Input) SetSize(width, height int) {
	i.width, i.height = width, height
}

// Update polls all pending SDL events. Returns true on quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := i.translate(event); ok {
			i.events = append(i.events, e)
			if e.Type == EventQuit {
				quit = true
			}
		}
	}
	return quit
}

// translate converts one SDL event. Events the menu has no use for report
// false.
func (i *Input) translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		case sdl.WINDOWEVENT_LEAVE, sdl.WINDOWEVENT_FOCUS_LOST:
			return Event{Type: EventPointerLeave}, true
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			return Event{Type: EventKeyDown, Key: e.Keysym.Scancode}, true
		}

	case *sdl.MouseMotionEvent:
		if e.Which == touchMouseID {
			return Event{}, false
		}
		return Event{Type: EventPointerMove, X: float32(e.X), Y: float32(e.Y)}, true

	case *sdl.MouseButtonEvent:
		if e.Button != sdl.BUTTON_LEFT || e.Which == touchMouseID {
			return Event{}, false
		}
		t := EventPointerDown
		if e.Type == sdl.MOUSEBUTTONUP {
			t = EventPointerUp
		}
		return Event{Type: t, X: float32(e.X), Y: float32(e.Y)}, true

	case *sdl.TouchFingerEvent:
		x, y := e.X*float32(i.width), e.Y*float32(i.height)
		switch e.Type {
		case sdl.FINGERDOWN:
			return Event{Type: EventPointerDown, X: x, Y: y}, true
		case sdl.FINGERUP:
			return Event{Type: EventPointerUp, X: x, Y: y}, true
		case sdl.FINGERMOTION:
			return Event{Type: EventPointerMove, X: x, Y: y}, true
		}
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed reports whether scancode went down this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}
