package engine

// EventType identifies what happened during a tick.
type EventType int

const (
	EventCollect EventType = iota // Player picked up a collectible or power-up
	EventStomp                    // Player defeated an enemy from above
	EventHit                      // Player touched an enemy and took damage
)

// String returns the name of the event type.
func (t EventType) String() string {
	switch t {
	case EventCollect:
		return "collect"
	case EventStomp:
		return "stomp"
	case EventHit:
		return "hit"
	default:
		return "unknown"
	}
}

// Event is a single interaction produced by a tick.
type Event struct {
	Type     EventType
	Kind     Kind   // Kind of the entity involved
	EntityID string // ID of the entity involved
	Sprite   string // Sprite hint of the entity involved
}

// Handler receives tick events. Calls happen synchronously, in emission
// order, once per event.
type Handler interface {
	OnCollect(kind Kind, id, sprite string)
	OnHit()
}

// StompHandler is optionally implemented by a Handler that wants to be told
// about stomps. Stomps never produce OnHit.
type StompHandler interface {
	OnStomp(id string)
}

// TickHandler is optionally implemented by a Handler that wants a snapshot
// after every scheduled tick, delivered after that tick's events.
type TickHandler interface {
	OnTick(snap Snapshot)
}

// HandlerFuncs adapts plain functions to Handler. Nil fields are skipped.
type HandlerFuncs struct {
	Collect func(kind Kind, id, sprite string)
	Hit     func()
	Stomp   func(id string)
	Tick    func(snap Snapshot)
}

// OnCollect implements Handler.
func (h HandlerFuncs) OnCollect(kind Kind, id, sprite string) {
	if h.Collect != nil {
		h.Collect(kind, id, sprite)
	}
}

// OnHit implements Handler.
func (h HandlerFuncs) OnHit() {
	if h.Hit != nil {
		h.Hit()
	}
}

// OnStomp implements StompHandler.
func (h HandlerFuncs) OnStomp(id string) {
	if h.Stomp != nil {
		h.Stomp(id)
	}
}

// OnTick implements TickHandler.
func (h HandlerFuncs) OnTick(snap Snapshot) {
	if h.Tick != nil {
		h.Tick(snap)
	}
}

// Dispatch delivers events to h in order. A nil handler drops them.
func Dispatch(h Handler, events []Event) {
	if h == nil {
		return
	}
	stomper, _ := h.(StompHandler)
	for _, ev := range events {
		switch ev.Type {
		case EventCollect:
			h.OnCollect(ev.Kind, ev.EntityID, ev.Sprite)
		case EventHit:
			h.OnHit()
		case EventStomp:
			if stomper != nil {
				stomper.OnStomp(ev.EntityID)
			}
		}
	}
}
