package widget

// Action is the kind of pointer gesture.
type Action int

const (
	Press Action = iota
	Move
	Release
)

func (a Action) String() string {
	switch a {
	case Press:
		return "press"
	case Move:
		return "move"
	case Release:
		return "release"
	}
	return "unknown"
}

// Button identifies the pointer button of a press. Releases and moves may
// carry ButtonNone; the widget remembers which button started the gesture.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

// TargetKind says what a pointer event landed on.
type TargetKind int

const (
	TargetDocument TargetKind = iota
	TargetAnchor
	TargetMenu
	TargetMenuRow
)

// Target is the hit-tested element under the pointer. Row is only
// meaningful for TargetMenuRow.
type Target struct {
	Kind TargetKind
	Row  int
}

// Document is the target for anything outside the widget.
var Document = Target{Kind: TargetDocument}

// Anchor is the target for the button itself.
var Anchor = Target{Kind: TargetAnchor}

// MenuRow returns the target for row i of the open menu.
func MenuRow(i int) Target {
	return Target{Kind: TargetMenuRow, Row: i}
}

// Event is one observed pointer gesture in screen cells.
type Event struct {
	Action Action
	Button Button
	X, Y   int
	Target Target
}

// Write is a pending persistence request produced by a transition.
type Write struct {
	Key   string
	Value any
}

// Result reports what a transition did. Consumed events must not reach the
// host surface underneath the widget; PreventDefault suppresses the host's
// default action for the gesture (selection, context menu).
type Result struct {
	Writes         []Write
	Consumed       bool
	PreventDefault bool
}
