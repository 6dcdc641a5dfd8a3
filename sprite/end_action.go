package sprite

import "fmt"

// EndAction is applied when playback runs past the last frame of an
// animation. It is one of Loop, Pause, Stop or Transition.
type EndAction interface {
	endAction()
	String() string
}

// Loop restarts the animation from its first frame.
type Loop struct{}

// Pause holds the last frame and pauses the animator.
type Pause struct{}

// Stop rewinds to the first frame and stops the animator.
type Stop struct{}

// Transition continues with another animation of the same sheet.
type Transition struct {
	Target AnimHandle
}

func (Loop) endAction()       {}
func (Pause) endAction()      {}
func (Stop) endAction()       {}
func (Transition) endAction() {}

func (Loop) String() string         { return "loop" }
func (Pause) String() string        { return "pause" }
func (Stop) String() string         { return "stop" }
func (t Transition) String() string { return "transition:" + t.Target.String() }

// EndKind names an end action before handles exist, as used in build options
// and configuration files.
type EndKind uint8

const (
	EndLoop EndKind = iota
	EndPause
	EndStop
	EndTransition
)

func (k EndKind) String() string {
	switch k {
	case EndLoop:
		return "loop"
	case EndPause:
		return "pause"
	case EndStop:
		return "stop"
	case EndTransition:
		return "transition"
	}
	return fmt.Sprintf("EndKind(%d)", uint8(k))
}

// ParseEndKind accepts the names returned by EndKind.String, plus "next" as
// an alias for "transition".
func ParseEndKind(s string) (EndKind, error) {
	switch s {
	case "loop":
		return EndLoop, nil
	case "pause":
		return EndPause, nil
	case "stop":
		return EndStop, nil
	case "transition", "next":
		return EndTransition, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidEndAction, s)
}

// EndSpec describes an end action by animation name. Next is only used by
// EndTransition.
type EndSpec struct {
	Kind EndKind
	Next string
}
