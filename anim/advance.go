package anim

import (
	"math"
	"time"

	"github.com/milk9111/sheetanim/sprite"
)

// Advance moves playback forward by dt, scaled by the animator's time scale
// and the current animation's own one, and returns one Event per animation
// cycle completed during the step, in order. entity is copied into the events
// as-is.
//
// Nothing happens unless the animator is bound and playing. A single call may
// step over many frames and cycles; leftover time always carries over, also
// into the target of a Transition, where it runs at the target's speed. Pause
// and Stop discard it.
func (a *Animator) Advance(entity any, dt time.Duration) []Event {
	if a.sheet == nil || a.status != Playing || dt <= 0 {
		return nil
	}
	anim, ok := a.current()
	if !ok {
		return nil
	}

	dt = scaleDuration(dt, a.TimeScale()*anim.Speed())
	if dt > math.MaxInt64-a.elapsed {
		a.elapsed = math.MaxInt64
	} else {
		a.elapsed += dt
	}

	var events []Event
	for {
		d := a.sheet.Frame(a.frame).Duration
		if a.elapsed < d {
			return events
		}
		a.elapsed -= d
		if a.frame < anim.To {
			a.frame++
			continue
		}

		// Cycle boundary.
		events = append(events, a.event(entity))

		if !a.pending.IsZero() {
			next, _ := a.sheet.Animation(a.pending)
			a.pending = sprite.AnimHandle{}
			anim = a.switchTo(anim, next)
			continue
		}

		switch end := anim.End.(type) {
		case sprite.Loop:
			a.frame = anim.From
			// Whole cycles left over: report them without walking every frame.
			if n := a.elapsed / anim.Duration; n > 0 {
				for range n {
					events = append(events, a.event(entity))
				}
				a.elapsed -= n * anim.Duration
			}
		case sprite.Pause:
			a.elapsed = 0
			a.status = Paused
			return events
		case sprite.Stop:
			a.frame = anim.From
			a.elapsed = 0
			a.status = Stopped
			return events
		case sprite.Transition:
			next, _ := a.sheet.Animation(end.Target)
			anim = a.switchTo(anim, next)
		}
	}
}

// switchTo makes next current from its first frame and converts the leftover
// time from the speed of prev to the speed of next.
func (a *Animator) switchTo(prev, next sprite.Animation) sprite.Animation {
	a.cur = next.Handle
	a.frame = next.From
	if ps, ns := prev.Speed(), next.Speed(); ps != ns {
		a.elapsed = scaleDuration(a.elapsed, ns/ps)
	}
	return next
}

func scaleDuration(d time.Duration, f float64) time.Duration {
	if f == 1 {
		return d
	}
	scaled := float64(d) * f
	if scaled >= math.MaxInt64 {
		return math.MaxInt64
	}
	return time.Duration(scaled)
}

func (a *Animator) event(entity any) Event {
	return Event{Entity: entity, Sheet: a.sheet.ID(), Anim: a.cur}
}

// Elapsed returns the playback position inside the current cycle.
func (a *Animator) Elapsed() time.Duration {
	anim, ok := a.current()
	if !ok {
		return 0
	}
	t := a.elapsed
	for i := anim.From; i < a.frame; i++ {
		t += a.sheet.Frame(i).Duration
	}
	return t
}

// Progress returns Elapsed as a fraction of the cycle duration, from 0 at the
// first frame to 1 at the very end.
func (a *Animator) Progress() float64 {
	anim, ok := a.current()
	if !ok || anim.Duration <= 0 {
		return 0
	}
	return float64(a.Elapsed()) / float64(anim.Duration)
}

// Seek moves to position t inside the current animation without emitting
// events or changing the status. Looping animations wrap t; other animations
// clamp it to the end of their last frame, so the cycle completes on the
// next Advance.
func (a *Animator) Seek(t time.Duration) {
	anim, ok := a.current()
	if !ok {
		return
	}
	if t < 0 {
		t = 0
	}
	if t >= anim.Duration {
		if _, loop := anim.End.(sprite.Loop); loop {
			t %= anim.Duration
		} else {
			t = anim.Duration
		}
	}

	a.frame = anim.From
	for a.frame < anim.To {
		d := a.sheet.Frame(a.frame).Duration
		if t < d {
			break
		}
		t -= d
		a.frame++
	}
	a.elapsed = t
}

// SeekProgress is Seek with a position in [0, 1] relative to the cycle
// duration.
func (a *Animator) SeekProgress(p float64) {
	anim, ok := a.current()
	if !ok || math.IsNaN(p) {
		return
	}
	p = min(max(p, 0), 1)
	a.Seek(time.Duration(p * float64(anim.Duration)))
}

// Rebind moves the animator to a reloaded copy of its sheet. The current
// animation is looked up by name in the new sheet; the status, the frame
// offset inside the animation and the time on that frame are kept where the
// new data allows it. If the current animation no longer exists the animator
// keeps playing the old sheet and the lookup error is returned.
func (a *Animator) Rebind(sheet *sprite.Spritesheet) error {
	if sheet == nil {
		return ErrNilSheet
	}
	old, ok := a.current()
	if !ok {
		return ErrUnbound
	}
	h, err := sheet.HandleOf(old.Name)
	if err != nil {
		return err
	}
	next, _ := sheet.Animation(h)

	var pending sprite.AnimHandle
	if p, ok := a.sheet.Animation(a.pending); ok {
		if ph, err := sheet.HandleOf(p.Name); err == nil {
			pending = ph
		}
	}

	offset := a.frame - old.From
	a.sheet = sheet
	a.cur = h
	a.pending = pending
	if offset < next.Len() {
		a.frame = next.From + offset
	} else {
		a.frame = next.From
		a.elapsed = 0
	}
	if a.elapsed >= sheet.Frame(a.frame).Duration {
		a.elapsed = 0
	}
	return nil
}
