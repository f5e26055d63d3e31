package session

type EventKind int

const (
	EventInsert EventKind = iota
	EventBackspace
	EventDelete
	EventLeft
	EventRight
	EventHome
	EventEnd
	EventUp
	EventDown
	EventPageUp
	EventPageDown
	EventResize
	EventAccept // tab
	EventConfirm
	EventCancel
)

// Event is one discrete input. Rune is set for EventInsert, Height for
// EventResize.
type Event struct {
	Kind   EventKind
	Rune   rune
	Height int
}

func Insert(r rune) Event      { return Event{Kind: EventInsert, Rune: r} }
func Resize(height int) Event  { return Event{Kind: EventResize, Height: height} }
func Key(kind EventKind) Event { return Event{Kind: kind} }

// Status tells the caller whether the session is still running.
type Status int

const (
	Running Status = iota
	Launch
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Launch:
		return "launch"
	case Cancelled:
		return "cancelled"
	default:
		return "running"
	}
}
