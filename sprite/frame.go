package sprite

import (
	"image"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Frame is one sub-image of a spritesheet.
type Frame struct {
	Index      int
	Source     image.Rectangle // rectangle inside the packed sheet image
	Size       image.Point     // untrimmed frame size
	TrimOffset image.Point     // top-left of the visible part inside the untrimmed frame
	TrimSize   image.Point
	Duration   time.Duration
	Anchor     Anchor
	Correction mgl64.Vec2 // Anchor.Correction for this frame's trim
}

// Trim returns the visible rectangle in untrimmed frame coordinates.
func (f Frame) Trim() image.Rectangle {
	return image.Rectangle{Min: f.TrimOffset, Max: f.TrimOffset.Add(f.TrimSize)}
}

// Pivot returns the draw origin inside the trimmed image: the naive anchor
// point of the trimmed rectangle plus the frame's correction.
func (f Frame) Pivot() mgl64.Vec2 {
	naive := mgl64.Vec2{float64(f.TrimSize.X) * f.Anchor.X, float64(f.TrimSize.Y) * f.Anchor.Y}
	return naive.Add(f.Correction)
}
