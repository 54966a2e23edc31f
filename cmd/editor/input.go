package main

import (
	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/bitmapper/editor"
)

type keyBinding struct {
	key  ebiten.Key
	ctrl bool
	cmd  editor.Key
}

var keyBindings = []keyBinding{
	{key: ebiten.KeyDigit1, cmd: editor.KeyBrush1},
	{key: ebiten.KeyDigit2, cmd: editor.KeyBrush2},
	{key: ebiten.KeyDigit3, cmd: editor.KeyBrush3},
	{key: ebiten.KeyDigit4, cmd: editor.KeyBrush4},
	{key: ebiten.KeyG, cmd: editor.KeyToggleGrid},
	{key: ebiten.KeyTab, cmd: editor.KeyCyclePreset},
	{key: ebiten.KeyArrowLeft, cmd: editor.KeyPanLeft},
	{key: ebiten.KeyArrowRight, cmd: editor.KeyPanRight},
	{key: ebiten.KeyArrowUp, cmd: editor.KeyPanUp},
	{key: ebiten.KeyArrowDown, cmd: editor.KeyPanDown},
	{key: ebiten.KeyF, cmd: editor.KeyFill},
	{key: ebiten.KeyDelete, cmd: editor.KeyClear},
	{key: ebiten.KeyC, cmd: editor.KeyCenter},
	{key: ebiten.KeyEqual, cmd: editor.KeyZoomIn},
	{key: ebiten.KeyNumpadAdd, cmd: editor.KeyZoomIn},
	{key: ebiten.KeyMinus, cmd: editor.KeyZoomOut},
	{key: ebiten.KeyNumpadSubtract, cmd: editor.KeyZoomOut},
	{key: ebiten.KeyBracketLeft, cmd: editor.KeyPrevTile},
	{key: ebiten.KeyBracketRight, cmd: editor.KeyNextTile},
	{key: ebiten.KeyS, ctrl: true, cmd: editor.KeySave},
	{key: ebiten.KeyL, ctrl: true, cmd: editor.KeyLoad},
	{key: ebiten.KeyC, ctrl: true, cmd: editor.KeyCopy},
	{key: ebiten.KeyEscape, cmd: editor.KeyQuit},
}

var mouseButtons = []struct {
	eb  ebiten.MouseButton
	btn editor.Button
}{
	{ebiten.MouseButtonLeft, editor.ButtonLeft},
	{ebiten.MouseButtonMiddle, editor.ButtonMiddle},
	{ebiten.MouseButtonRight, editor.ButtonRight},
}

func ctrlPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

// inputState turns polled ebiten input into editor events.
type inputState struct {
	lastX, lastY int
	seen         bool
}

// poll returns this frame's events. Presses only start on the canvas, left
// of canvasW, and never under a sidebar widget. Releases are always
// reported so a stroke that leaves the canvas still ends.
func (in *inputState) poll(canvasW int) []editor.Event {
	var events []editor.Event
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	onCanvas := mx >= 0 && mx < canvasW && !ebuiinput.UIHovered

	if !in.seen || mx != in.lastX || my != in.lastY {
		events = append(events, editor.Event{Kind: editor.Motion, X: x, Y: y, Shift: shift})
		in.lastX, in.lastY, in.seen = mx, my, true
	}

	for _, b := range mouseButtons {
		if onCanvas && inpututil.IsMouseButtonJustPressed(b.eb) {
			events = append(events, editor.Event{Kind: editor.ButtonDown, Button: b.btn, X: x, Y: y, Shift: shift})
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			events = append(events, editor.Event{Kind: editor.ButtonUp, Button: b.btn, X: x, Y: y, Shift: shift})
		}
	}

	if _, wy := ebiten.Wheel(); wy != 0 && onCanvas {
		events = append(events, editor.Event{Kind: editor.Scroll, Delta: wy, X: x, Y: y})
	}

	ctrl := ctrlPressed()
	for _, kb := range keyBindings {
		if kb.ctrl != ctrl || !inpututil.IsKeyJustPressed(kb.key) {
			continue
		}
		events = append(events, editor.Event{Kind: editor.KeyDown, Key: kb.cmd, Shift: shift})
	}
	return events
}
