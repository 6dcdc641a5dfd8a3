package sprite

import (
	"image"

	"github.com/go-gl/mathgl/mgl64"
)

// Anchor is a pivot expressed as a fraction of the untrimmed frame size, in
// image coordinates: {0, 0} is the top-left corner and {1, 1} the bottom-right.
type Anchor struct {
	X, Y float64
}

var (
	AnchorCenter       = Anchor{X: 0.5, Y: 0.5}
	AnchorTopLeft      = Anchor{X: 0, Y: 0}
	AnchorTopCenter    = Anchor{X: 0.5, Y: 0}
	AnchorTopRight     = Anchor{X: 1, Y: 0}
	AnchorCenterLeft   = Anchor{X: 0, Y: 0.5}
	AnchorCenterRight  = Anchor{X: 1, Y: 0.5}
	AnchorBottomLeft   = Anchor{X: 0, Y: 1}
	AnchorBottomCenter = Anchor{X: 0.5, Y: 1}
	AnchorBottomRight  = Anchor{X: 1, Y: 1}
)

// Vec returns the anchor as a vector.
func (a Anchor) Vec() mgl64.Vec2 {
	return mgl64.Vec2{a.X, a.Y}
}

// Correction computes the per-frame offset that keeps the anchor visually
// stable when frames are trimmed differently. For each axis it is
//
//	size*f - trimOffset - trimSize*f
//
// which for a centered anchor reduces to size/2 - trimOffset - trimSize/2.
// Adding it to the naive pivot of the trimmed rectangle (trimSize*f) yields
// the pivot of the untrimmed frame in trimmed-rectangle coordinates.
func (a Anchor) Correction(size, trimOffset, trimSize image.Point) mgl64.Vec2 {
	f := a.Vec()
	return mgl64.Vec2{
		float64(size.X)*f.X() - float64(trimOffset.X) - float64(trimSize.X)*f.X(),
		float64(size.Y)*f.Y() - float64(trimOffset.Y) - float64(trimSize.Y)*f.Y(),
	}
}
