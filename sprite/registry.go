package sprite

import (
	"fmt"
	"iter"

	"github.com/google/uuid"
)

// Registry maps animation names to handles and handles to animations for a
// single Spritesheet. It is built once and never modified.
//
// When several tags share a name the last declared one wins the name. The
// earlier animations keep their handles and stay reachable through Handles
// and Animation, just not through HandleOf.
type Registry struct {
	sheet  uuid.UUID
	anims  []Animation
	byName map[string]int
}

// HandleOf returns the handle of the animation called name.
func (r *Registry) HandleOf(name string) (AnimHandle, error) {
	i, ok := r.byName[name]
	if !ok {
		return AnimHandle{}, fmt.Errorf("%w: %q", ErrAnimationNotFound, name)
	}
	return r.anims[i].Handle, nil
}

// Animation returns the animation for h. It always succeeds for handles
// minted by this registry and reports false for any other handle.
func (r *Registry) Animation(h AnimHandle) (Animation, bool) {
	if !r.Contains(h) {
		return Animation{}, false
	}
	return r.anims[h.index], true
}

// Contains reports whether h was minted by this registry.
func (r *Registry) Contains(h AnimHandle) bool {
	return r != nil && !h.IsZero() && h.sheet == r.sheet && h.index >= 0 && h.index < len(r.anims)
}

// Len returns the number of animations, including ones shadowed by name.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.anims)
}

// Handles yields every handle in declaration order.
func (r *Registry) Handles() iter.Seq[AnimHandle] {
	return func(yield func(AnimHandle) bool) {
		if r == nil {
			return
		}
		for _, a := range r.anims {
			if !yield(a.Handle) {
				return
			}
		}
	}
}

// Names returns the names reachable through HandleOf, in declaration order
// of the animation that owns each name.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.byName))
	for i, a := range r.anims {
		if r.byName[a.Name] == i {
			names = append(names, a.Name)
		}
	}
	return names
}
