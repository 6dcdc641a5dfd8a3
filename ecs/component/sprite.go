package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is what the render system draws. Origin is the pivot inside the
// source rectangle; it lands on the entity's transform position. Flipping
// mirrors the image around the pivot.
type Sprite struct {
	Image      *ebiten.Image
	Source     image.Rectangle
	UseSource  bool
	OriginX    float64
	OriginY    float64
	FacingLeft bool
	FlipY      bool
}

var SpriteComponent = NewComponent[Sprite]()
