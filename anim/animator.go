// Package anim plays the animations of a sprite.Spritesheet. An Animator is
// owned by one entity and is advanced by the host once per tick; it reports
// every completed animation cycle as an Event.
package anim

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/milk9111/sheetanim/sprite"
)

var (
	ErrUnbound          = errors.New("anim: animator is not bound to a spritesheet")
	ErrNilSheet         = errors.New("anim: nil spritesheet")
	ErrInvalidHandle    = errors.New("anim: handle does not belong to the bound spritesheet")
	ErrInvalidTimeScale = errors.New("anim: time scale must be positive and finite")
)

// Status is the playback state of an Animator.
type Status uint8

const (
	Unbound Status = iota
	Playing
	Paused
	Stopped
)

func (s Status) String() string {
	switch s {
	case Unbound:
		return "unbound"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Event reports one completed cycle of an animation.
type Event struct {
	Entity any // identity supplied by the caller of Advance
	Sheet  uuid.UUID
	Anim   sprite.AnimHandle
}

// Animator is the playback state of one entity. The zero value is an unbound
// animator showing frame 0; Advance does nothing until Bind is called.
//
// An Animator is not safe for concurrent use. The spritesheet it is bound to
// is only read, never modified.
type Animator struct {
	sheet   *sprite.Spritesheet
	cur     sprite.AnimHandle
	frame   int
	elapsed time.Duration // time spent on the current frame
	status  Status
	pending sprite.AnimHandle // played at the next cycle boundary instead of the end action
	scale   float64           // 0 means 1
}

// New returns an animator bound to sheet and playing h.
func New(sheet *sprite.Spritesheet, h sprite.AnimHandle) (*Animator, error) {
	a := &Animator{}
	if err := a.Bind(sheet, h); err != nil {
		return nil, err
	}
	return a, nil
}

// Bind attaches sheet and starts playing h from its first frame. Binding an
// already bound animator resets it completely. On error nothing changes.
func (a *Animator) Bind(sheet *sprite.Spritesheet, h sprite.AnimHandle) error {
	if sheet == nil {
		return ErrNilSheet
	}
	anim, ok := sheet.Animation(h)
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidHandle, h)
	}
	a.sheet = sheet
	a.cur = h
	a.frame = anim.From
	a.elapsed = 0
	a.status = Playing
	a.pending = sprite.AnimHandle{}
	return nil
}

// Unbind detaches the spritesheet and returns to the zero state, keeping the
// time scale.
func (a *Animator) Unbind() {
	*a = Animator{scale: a.scale}
}

// SetAnim switches to h within the bound sheet, starting from its first
// frame. The playback status is kept. A handle that does not belong to the
// bound sheet, for example one taken from a sheet that has since been
// reloaded, is rejected and the animator is left untouched.
func (a *Animator) SetAnim(h sprite.AnimHandle) error {
	if a.sheet == nil {
		return ErrUnbound
	}
	anim, ok := a.sheet.Animation(h)
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidHandle, h)
	}
	a.cur = h
	a.frame = anim.From
	a.elapsed = 0
	a.pending = sprite.AnimHandle{}
	return nil
}

// SetAnimByName is SetAnim with the handle looked up by name.
func (a *Animator) SetAnimByName(name string) error {
	if a.sheet == nil {
		return ErrUnbound
	}
	h, err := a.sheet.HandleOf(name)
	if err != nil {
		return err
	}
	return a.SetAnim(h)
}

// Queue makes h play once the current cycle completes, instead of the
// current animation's end action. The completion event is still emitted.
func (a *Animator) Queue(h sprite.AnimHandle) error {
	if a.sheet == nil {
		return ErrUnbound
	}
	if !a.sheet.Anims().Contains(h) {
		return fmt.Errorf("%w: %s", ErrInvalidHandle, h)
	}
	a.pending = h
	return nil
}

// Pending returns the queued animation, if any.
func (a *Animator) Pending() (sprite.AnimHandle, bool) {
	return a.pending, !a.pending.IsZero()
}

// IsCurAnim reports whether h is the current animation.
func (a *Animator) IsCurAnim(h sprite.AnimHandle) bool {
	return a.sheet != nil && a.cur == h
}

// RestartAnim rewinds the current animation to its first frame without
// changing the playback status.
func (a *Animator) RestartAnim() {
	anim, ok := a.current()
	if !ok {
		return
	}
	a.frame = anim.From
	a.elapsed = 0
	a.pending = sprite.AnimHandle{}
}

// Play resumes a paused or stopped animator.
func (a *Animator) Play() {
	if a.sheet != nil {
		a.status = Playing
	}
}

// Pause freezes the animator on the current frame.
func (a *Animator) Pause() {
	if a.sheet != nil {
		a.status = Paused
	}
}

// Stop rewinds to the first frame and freezes the animator.
func (a *Animator) Stop() {
	if a.sheet == nil {
		return
	}
	a.RestartAnim()
	a.status = Stopped
}

// SetTimeScale changes the playback speed: 2 plays twice as fast, 0.5 at
// half speed.
func (a *Animator) SetTimeScale(scale float64) error {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidTimeScale, scale)
	}
	a.scale = scale
	return nil
}

func (a *Animator) TimeScale() float64 {
	if a.scale == 0 {
		return 1
	}
	return a.scale
}

func (a *Animator) Sheet() *sprite.Spritesheet { return a.sheet }

// Anim returns the current animation handle; the zero handle when unbound.
func (a *Animator) Anim() sprite.AnimHandle { return a.cur }

// FrameIndex returns the absolute index of the displayed frame in the sheet.
func (a *Animator) FrameIndex() int { return a.frame }

// Status returns Unbound when no sheet is bound, the playback status otherwise.
func (a *Animator) Status() Status {
	if a.sheet == nil {
		return Unbound
	}
	return a.status
}

// Frame returns the displayed frame.
func (a *Animator) Frame() (sprite.Frame, bool) {
	if a.sheet == nil {
		return sprite.Frame{}, false
	}
	return a.sheet.Frame(a.frame), true
}

func (a *Animator) current() (sprite.Animation, bool) {
	if a.sheet == nil {
		return sprite.Animation{}, false
	}
	return a.sheet.Animation(a.cur)
}
