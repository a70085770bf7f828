package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestTranslate(t *testing.T) {
	in := New()
	in.SetSize(800, 600)

	tests := []struct {
		name  string
		event sdl.Event
		want  Event
		ok    bool
	}{
		{"quit", &sdl.QuitEvent{Type: sdl.QUIT}, Event{Type: EventQuit}, true},
		{
			"resize",
			&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESIZED, Data1: 640, Data2: 480},
			Event{Type: EventWindowResize, Width: 640, Height: 480}, true,
		},
		{
			"leave",
			&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_LEAVE},
			Event{Type: EventPointerLeave}, true,
		},
		{
			"left down",
			&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, X: 10, Y: 20},
			Event{Type: EventPointerDown, X: 10, Y: 20}, true,
		},
		{
			"left up",
			&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT, X: 11, Y: 21},
			Event{Type: EventPointerUp, X: 11, Y: 21}, true,
		},
		{
			"right button ignored",
			&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_RIGHT},
			Event{}, false,
		},
		{
			"motion",
			&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 5, Y: 6},
			Event{Type: EventPointerMove, X: 5, Y: 6}, true,
		},
		{
			"synthetic touch mouse ignored",
			&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, Which: touchMouseID},
			Event{}, false,
		},
		{
			"finger down scaled",
			&sdl.TouchFingerEvent{Type: sdl.FINGERDOWN, X: 0.5, Y: 0.25},
			Event{Type: EventPointerDown, X: 400, Y: 150}, true,
		},
		{
			"key down",
			&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_F12}},
			Event{Type: EventKeyDown, Key: sdl.SCANCODE_F12}, true,
		},
		{
			"key repeat ignored",
			&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_F12}},
			Event{}, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := in.translate(tt.event)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("translate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestIsKeyPressed(t *testing.T) {
	in := New()
	in.events = append(in.events, Event{Type: EventKeyDown, Key: sdl.SCANCODE_ESCAPE})

	if !in.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
		t.Error("escape should be pressed")
	}
	if in.IsKeyPressed(sdl.SCANCODE_F12) {
		t.Error("F12 should not be pressed")
	}
}
