package autoclick

const (
	EventTypeSyn uint16 = 0x00
	EventTypeKey uint16 = 0x01

	SynReportCode  uint16 = 0
	LeftButtonCode uint16 = 0x110
)

// Event is one synthetic input event in evdev vocabulary. The click worker
// only ever emits left-button key events framed by sync reports; injectors
// translate them to whatever their platform needs.
type Event struct {
	Type  uint16
	Code  uint16
	Value int32
}

// KeyEvent is the raw identity of a physical key as delivered by a Source:
// a printable character, a named key, or neither when the platform cannot
// resolve the key. At most one of Rune and Name is set.
type KeyEvent struct {
	Rune rune
	Name string
}

type Injector interface {
	WriteEvents(events ...Event) error
	Close() error
}

// Source delivers every physical key press and release through the given
// callbacks, serially on a delivery goroutine, until Stop is called.
type Source interface {
	Start(press, release func(KeyEvent)) error
	Stop() error
}

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
