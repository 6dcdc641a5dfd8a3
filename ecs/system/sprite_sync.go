package system

import (
	"github.com/milk9111/sheetanim/ecs"
	"github.com/milk9111/sheetanim/ecs/component"
)

// SpriteSyncSystem copies the displayed frame of every animator into the
// entity's Sprite: sheet image, source rectangle and pivot.
type SpriteSyncSystem struct {
	sheets SheetSource
}

func NewSpriteSyncSystem(sheets SheetSource) *SpriteSyncSystem {
	return &SpriteSyncSystem{sheets: sheets}
}

func (s *SpriteSyncSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.AnimationComponent.Kind(), component.SpriteComponent.Kind(), func(_ ecs.Entity, a *component.Animation, spr *component.Sprite) {
		frame, ok := a.Animator.Frame()
		if !ok {
			return
		}
		if s != nil && s.sheets != nil {
			if entry, ok := s.sheets.Lookup(a.Sheet); ok && entry.Sheet == a.Animator.Sheet() {
				spr.Image = entry.Image
			}
		}
		spr.Source = frame.Source
		spr.UseSource = true

		pivot := frame.Pivot()
		spr.OriginX = pivot.X()
		spr.OriginY = pivot.Y()
	})
}
