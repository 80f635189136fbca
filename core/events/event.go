package events

// Event represents a structured state change emitted by the store.
type Event interface {
	EventType() string
}

// Emitter broadcasts events to downstream subscribers (loggers, auditors).
type Emitter interface {
	Emit(Event)
}

// NoopEmitter satisfies the Emitter interface while discarding all events. It
// is the default wherever a component only optionally exposes events.
type NoopEmitter struct{}

// Emit implements the Emitter interface.
func (NoopEmitter) Emit(Event) {}
