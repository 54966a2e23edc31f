package editor

// EventKind identifies an input event.
type EventKind int

const (
	ButtonDown EventKind = iota
	ButtonUp
	Motion
	Scroll
	KeyDown
	Quit
)

type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Key is an editor command bound to a keyboard key.
type Key int

const (
	KeyNone Key = iota
	KeyBrush1
	KeyBrush2
	KeyBrush3
	KeyBrush4
	KeyToggleGrid
	KeyCyclePreset
	KeyPanLeft
	KeyPanRight
	KeyPanUp
	KeyPanDown
	KeyFill
	KeyClear
	KeyCenter
	KeyZoomIn
	KeyZoomOut
	KeyPrevTile
	KeyNextTile
	KeySave
	KeyLoad
	KeyCopy
	KeyQuit
)

func (k Key) String() string {
	switch k {
	case KeyBrush1, KeyBrush2, KeyBrush3, KeyBrush4:
		return "brush"
	case KeyToggleGrid:
		return "grid"
	case KeyCyclePreset:
		return "preset"
	case KeyPanLeft, KeyPanRight, KeyPanUp, KeyPanDown:
		return "pan"
	case KeyFill:
		return "fill"
	case KeyClear:
		return "clear"
	case KeyCenter:
		return "center"
	case KeyZoomIn, KeyZoomOut:
		return "zoom"
	case KeyPrevTile, KeyNextTile:
		return "tile"
	case KeySave:
		return "save"
	case KeyLoad:
		return "load"
	case KeyCopy:
		return "copy"
	case KeyQuit:
		return "quit"
	default:
		return "none"
	}
}

// Event is one input event. X and Y are canvas-relative pixels and are set
// on every event. Delta is the scroll amount, positive away from the user.
type Event struct {
	Kind   EventKind
	Button Button
	Key    Key
	X, Y   float64
	Delta  float64
	Shift  bool
}
