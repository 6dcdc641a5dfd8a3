// Package sprite builds immutable spritesheets from parsed Aseprite data:
// frames with trim-corrected anchors and a registry of named animations.
package sprite

import (
	"image"
	"slices"

	"github.com/google/uuid"
)

// Spritesheet is the immutable result of Build. It is safe to share between
// any number of animators and goroutines. Reloading an asset produces a new
// Spritesheet with a new ID instead of editing an existing one.
type Spritesheet struct {
	id        uuid.UUID
	frames    []Frame
	anims     Registry
	imagePath string
	imageSize image.Point
	anchor    Anchor
}

// ID identifies this sheet instance. Every build gets a fresh ID.
func (s *Spritesheet) ID() uuid.UUID {
	return s.id
}

// FrameCount returns the number of frames in the sheet.
func (s *Spritesheet) FrameCount() int {
	return len(s.frames)
}

// Frame returns the frame at index i. It panics if i is out of range.
func (s *Spritesheet) Frame(i int) Frame {
	return s.frames[i]
}

// Frames returns a copy of the frame sequence.
func (s *Spritesheet) Frames() []Frame {
	return slices.Clone(s.frames)
}

// Anims returns the animation registry.
func (s *Spritesheet) Anims() *Registry {
	return &s.anims
}

// HandleOf is shorthand for s.Anims().HandleOf(name).
func (s *Spritesheet) HandleOf(name string) (AnimHandle, error) {
	return s.anims.HandleOf(name)
}

// Animation is shorthand for s.Anims().Animation(h).
func (s *Spritesheet) Animation(h AnimHandle) (Animation, bool) {
	return s.anims.Animation(h)
}

// ImagePath is the packed image file named by the sheet metadata.
func (s *Spritesheet) ImagePath() string {
	return s.imagePath
}

// ImageSize is the packed image size named by the sheet metadata.
func (s *Spritesheet) ImageSize() image.Point {
	return s.imageSize
}

// Anchor is the pivot the frame corrections were computed for.
func (s *Spritesheet) Anchor() Anchor {
	return s.anchor
}

// DescribeEnd formats end like EndAction.String but names transition
// targets, as in "next:idle".
func (s *Spritesheet) DescribeEnd(end EndAction) string {
	t, ok := end.(Transition)
	if !ok {
		if end == nil {
			return Loop{}.String()
		}
		return end.String()
	}
	if a, ok := s.Animation(t.Target); ok {
		return "next:" + a.Name
	}
	return t.String()
}
