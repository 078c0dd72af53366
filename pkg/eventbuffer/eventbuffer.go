package eventbuffer

import (
	"fmt"
	"sort"
)

// EventBuffer holds the input events of a simulation. EventsDuration is the
// total duration the events span (the finish time of the validated replay).
// ControlNames maps the name indexes stored in events to control names; a
// slot is empty when the game did not register that control.
type EventBuffer struct {
	EventsDuration int32
	ControlNames   [NumControls]string
	Events         []Event
}

// New creates an event buffer with no registered controls.
func New(eventsDuration int32) *EventBuffer {
	return &EventBuffer{EventsDuration: eventsDuration}
}

// ControlID returns the name table index for a control name, or -1 when
// the control is not registered in this buffer.
func (b *EventBuffer) ControlID(name string) int {
	for i, n := range b.ControlNames {
		if n == name {
			return i
		}
	}
	return -1
}

// AddBinary appends a press/release event for a binary control at the
// given race time.
func (b *EventBuffer) AddBinary(raceTime int32, name string, pressed bool) error {
	id := b.ControlID(name)
	if id == -1 {
		return fmt.Errorf("control %q is not registered in this buffer", name)
	}
	b.Events = append(b.Events, NewBinaryEvent(raceTime, id, pressed))
	return nil
}

// AddAnalog appends an analog control event at the given race time.
func (b *EventBuffer) AddAnalog(raceTime int32, name string, value int32) error {
	id := b.ControlID(name)
	if id == -1 {
		return fmt.Errorf("control %q is not registered in this buffer", name)
	}
	b.Events = append(b.Events, NewAnalogEvent(raceTime, id, value))
	return nil
}

// Filter selects events for Find.
type Filter struct {
	// Name selects events of a single control when non-empty.
	Name string
	// HasRaceTime enables filtering on RaceTime.
	HasRaceTime bool
	// RaceTime selects events at an exact race time.
	RaceTime int32
}

// Find returns pointers to the events matching the filter, in buffer order.
// The pointers alias the buffer and stay valid until Events is modified.
func (b *EventBuffer) Find(f Filter) []*Event {
	nameID := -1
	if f.Name != "" {
		nameID = b.ControlID(f.Name)
		if nameID == -1 {
			return nil
		}
	}

	var out []*Event
	for i := range b.Events {
		e := &b.Events[i]
		if nameID != -1 && e.NameIndex() != nameID {
			continue
		}
		if f.HasRaceTime && e.RaceTime() != f.RaceTime {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Clear removes all events except the race running events. A race running
// event must stay in the buffer for the game to start the race.
func (b *EventBuffer) Clear() {
	runningID := b.ControlID(RaceStartName)
	kept := b.Events[:0]
	for _, e := range b.Events {
		if runningID != -1 && e.NameIndex() == runningID {
			kept = append(kept, e)
		}
	}
	b.Events = kept
}

// Copy returns a deep copy of the buffer.
func (b *EventBuffer) Copy() *EventBuffer {
	out := &EventBuffer{
		EventsDuration: b.EventsDuration,
		ControlNames:   b.ControlNames,
		Events:         make([]Event, len(b.Events)),
	}
	copy(out.Events, b.Events)
	return out
}

// Sort orders events by descending raw time, the order the game keeps the
// buffer in. The sort is stable.
func (b *EventBuffer) Sort() {
	sort.SliceStable(b.Events, func(i, j int) bool {
		return b.Events[i].Time > b.Events[j].Time
	})
}
