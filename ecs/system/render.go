package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/sheetanim/ecs"
	"github.com/milk9111/sheetanim/ecs/component"
	"golang.org/x/image/colornames"
)

// RenderSystem draws every entity with a Transform and a Sprite, pivot on
// the transform position. Sprites without an image are drawn as outlined
// placeholders of the source size.
type RenderSystem struct {
	OffsetX    float64
	OffsetY    float64
	Zoom       float64
	ShowPivots bool
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{Zoom: 1}
}

func (r *RenderSystem) Update(w *ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	zoom := r.Zoom
	if zoom <= 0 {
		zoom = 1
	}

	entities := ecs.Query(w, component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li := 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		lj := 0
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind()); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())

		sx, sy := spriteScale(t, s)
		x := (t.X - r.OffsetX) * zoom
		y := (t.Y - r.OffsetY) * zoom

		if s.Image == nil {
			r.drawPlaceholder(screen, s, x, y, sx*zoom, sy*zoom)
		} else {
			img := s.Image
			if s.UseSource {
				if sub, ok := s.Image.SubImage(s.Source).(*ebiten.Image); ok {
					img = sub
				}
			}

			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(-s.OriginX, -s.OriginY)
			op.GeoM.Scale(sx, sy)
			op.GeoM.Rotate(t.Rotation)
			op.GeoM.Scale(zoom, zoom)
			op.GeoM.Translate(x, y)
			op.Filter = ebiten.FilterNearest
			screen.DrawImage(img, op)
		}

		if r.ShowPivots {
			vector.StrokeLine(screen, float32(x-4), float32(y), float32(x+4), float32(y), 1, colornames.Yellow, false)
			vector.StrokeLine(screen, float32(x), float32(y-4), float32(x), float32(y+4), 1, colornames.Yellow, false)
		}
	}
}

// spriteScale returns the per-axis scale of the transform with the sprite's
// flips applied. A zero transform scale counts as 1.
func spriteScale(t *component.Transform, s *component.Sprite) (sx, sy float64) {
	sx, sy = t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	if s.FacingLeft {
		sx = -sx
	}
	if s.FlipY {
		sy = -sy
	}
	return sx, sy
}

// placeholderRect returns the screen rectangle covered by the sprite's source
// when its pivot is drawn at (x, y) with scale (sx, sy).
func placeholderRect(s *component.Sprite, x, y, sx, sy float64) (left, top, w, h float64, ok bool) {
	size := s.Source.Size()
	if size.X <= 0 || size.Y <= 0 {
		return 0, 0, 0, 0, false
	}
	left = x - s.OriginX*sx
	top = y - s.OriginY*sy
	w = float64(size.X) * sx
	h = float64(size.Y) * sy
	if w < 0 {
		left, w = left+w, -w
	}
	if h < 0 {
		top, h = top+h, -h
	}
	return left, top, w, h, true
}

func (r *RenderSystem) drawPlaceholder(screen *ebiten.Image, s *component.Sprite, x, y, sx, sy float64) {
	left, top, w, h, ok := placeholderRect(s, x, y, sx, sy)
	if !ok {
		return
	}
	vector.DrawFilledRect(screen, float32(left), float32(top), float32(w), float32(h), colornames.Slategray, false)
	vector.StrokeRect(screen, float32(left), float32(top), float32(w), float32(h), 1, colornames.Magenta, false)
}
