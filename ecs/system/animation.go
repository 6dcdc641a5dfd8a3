package system

import (
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sheetanim/anim"
	"github.com/milk9111/sheetanim/assets"
	"github.com/milk9111/sheetanim/ecs"
	"github.com/milk9111/sheetanim/ecs/component"
	"github.com/milk9111/sheetanim/sprite"
)

// SheetSource resolves library keys to loaded sheets. *assets.Library
// implements it.
type SheetSource interface {
	Lookup(key string) (*assets.Entry, bool)
}

// AnimationSystem advances every Animation component by a fixed step per
// tick. It binds animators on first sight, moves them to reloaded sheets and
// publishes completed cycles of entities that want them.
type AnimationSystem struct {
	Step      time.Duration
	Active    bool
	TimeScale float64

	sheets SheetSource
	events *ecs.EventQueue[anim.Event]
}

func NewAnimationSystem(sheets SheetSource, events *ecs.EventQueue[anim.Event]) *AnimationSystem {
	return &AnimationSystem{
		Step:      time.Second / ebiten.DefaultTPS,
		Active:    true,
		TimeScale: 1,
		sheets:    sheets,
		events:    events,
	}
}

func (s *AnimationSystem) Update(w *ecs.World) {
	if s == nil || s.sheets == nil {
		return
	}
	dt := s.step()
	ecs.ForEach(w, component.AnimationComponent.Kind(), func(e ecs.Entity, a *component.Animation) {
		entry, ok := s.sheets.Lookup(a.Sheet)
		if !ok || entry.Sheet == nil {
			return
		}
		if !s.sync(e, a, entry) {
			return
		}
		if !s.Active || dt <= 0 {
			return
		}

		evs := a.Animator.Advance(e, dt)
		if len(evs) == 0 || s.events == nil {
			return
		}
		if ecs.Has(w, e, component.AnimEventSenderComponent.Kind()) || ecs.Has(w, e, component.AnimScriptComponent.Kind()) {
			s.events.Push(evs...)
		}
	})
}

func (s *AnimationSystem) step() time.Duration {
	scale := s.TimeScale
	if !(scale > 0) || math.IsInf(scale, 0) {
		return 0
	}
	return time.Duration(float64(s.Step) * scale)
}

// sync makes sure a is bound to the current sheet of its library entry.
func (s *AnimationSystem) sync(e ecs.Entity, a *component.Animation, entry *assets.Entry) bool {
	cur := a.Animator.Sheet()
	if cur == entry.Sheet {
		return true
	}
	if cur != nil {
		err := a.Animator.Rebind(entry.Sheet)
		if err == nil {
			s.applySpeed(e, a, entry)
			return true
		}
		log.Printf("animation: entity=%s rebind %s: %v", e, entry.Key, err)
	}

	h, ok := initialAnim(entry, a.Initial)
	if !ok {
		log.Printf("animation: entity=%s sheet %s has no animations", e, entry.Key)
		return false
	}
	if err := a.Animator.Bind(entry.Sheet, h); err != nil {
		log.Printf("animation: entity=%s bind %s: %v", e, entry.Key, err)
		return false
	}
	s.applySpeed(e, a, entry)
	return true
}

func (s *AnimationSystem) applySpeed(e ecs.Entity, a *component.Animation, entry *assets.Entry) {
	if err := a.Animator.SetTimeScale(entry.Spec.Speed()); err != nil {
		log.Printf("animation: entity=%s sheet %s: %v", e, entry.Key, err)
	}
}

// initialAnim picks the named animation, then the sheet's configured initial
// one, then the first declared.
func initialAnim(entry *assets.Entry, name string) (sprite.AnimHandle, bool) {
	for _, n := range []string{name, entry.Spec.Initial} {
		if n == "" {
			continue
		}
		if h, err := entry.Sheet.HandleOf(n); err == nil {
			return h, true
		}
		log.Printf("animation: sheet %s: no animation %q", entry.Key, n)
	}
	for h := range entry.Sheet.Anims().Handles() {
		return h, true
	}
	return sprite.AnimHandle{}, false
}
