// Package input translates SDL2 events into viewer events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType is the kind of a translated event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventWindowExpose
	EventKeyDown
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
}

// Input collects events for one iteration of the event loop.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Wait blocks until at least one event arrives, then drains the queue.
// There is no frame timer: the viewer only wakes up for events.
func (i *Input) Wait() []Event {
	i.events = i.events[:0]

	if event := sdl.WaitEvent(); event != nil {
		i.translate(event)
	}
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		i.translate(event)
	}

	return i.events
}

// Events returns the events from the last Wait.
func (i *Input) Events() []Event {
	return i.events
}

func (i *Input) translate(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.events = append(i.events, Event{Type: EventQuit})

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			i.events = append(i.events, Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			})
		case sdl.WINDOWEVENT_EXPOSED:
			i.events = append(i.events, Event{Type: EventWindowExpose})
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			i.events = append(i.events, Event{
				Type: EventKeyDown,
				Key:  e.Keysym.Scancode,
			})
		}

	case *sdl.MouseMotionEvent:
		move := Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
		}
		// Consecutive moves collapse into the latest one.
		if n := len(i.events); n > 0 && i.events[n-1].Type == EventMouseMove {
			i.events[n-1] = move
			return
		}
		i.events = append(i.events, move)

	case *sdl.MouseButtonEvent:
		t := EventMouseUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			t = EventMouseDown
		}
		i.events = append(i.events, Event{
			Type:   t,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			Button: e.Button,
		})
	}
}
