package config

import (
	"testing"

	"github.com/milk9111/sheetanim/aseprite"
	"github.com/milk9111/sheetanim/sprite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSheet(t *testing.T) {
	data := []byte(`
image: knight_v2.png
anchor: bottom_center
time_scale: 1.5
initial: idle
script: knight.tengo
animations:
  die: stop
  bow: pause
  idle: loop
  attack: next:idle
  jump: {end: transition, next: fall}
  fall: {time_scale: 0.5}
  swing: {end: next, next: idle, time_scale: 2}
`)
	spec, err := ParseSheet(data)
	require.NoError(t, err)

	assert.Equal(t, "knight_v2.png", spec.Image)
	require.NotNil(t, spec.Anchor)
	assert.Equal(t, sprite.AnchorBottomCenter, spec.Anchor.Anchor)
	assert.Equal(t, 1.5, spec.Speed())
	assert.Equal(t, "idle", spec.Initial)
	assert.Equal(t, "knight.tengo", spec.Script)

	assert.Equal(t, map[string]EndActionSpec{
		"die":    {EndSpec: sprite.EndSpec{Kind: sprite.EndStop}},
		"bow":    {EndSpec: sprite.EndSpec{Kind: sprite.EndPause}},
		"idle":   {EndSpec: sprite.EndSpec{Kind: sprite.EndLoop}},
		"attack": {EndSpec: sprite.EndSpec{Kind: sprite.EndTransition, Next: "idle"}},
		"jump":   {EndSpec: sprite.EndSpec{Kind: sprite.EndTransition, Next: "fall"}},
		"fall":   {EndSpec: sprite.EndSpec{Kind: sprite.EndLoop}, TimeScale: 0.5},
		"swing":  {EndSpec: sprite.EndSpec{Kind: sprite.EndTransition, Next: "idle"}, TimeScale: 2},
	}, spec.Animations)
}

func TestParseSheet_AnchorMapping(t *testing.T) {
	spec, err := ParseSheet([]byte("anchor: {x: 0.25, y: 1}\n"))
	require.NoError(t, err)
	assert.Equal(t, sprite.Anchor{X: 0.25, Y: 1}, spec.Anchor.Anchor)
	assert.Equal(t, 1.0, spec.Speed())
}

func TestParseSheet_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"unknown_anchor", "anchor: middle\n", ErrInvalidAnchor},
		{"partial_anchor", "anchor: {x: 0.5}\n", ErrInvalidAnchor},
		{"anchor_list", "anchor: [1, 2]\n", ErrInvalidAnchor},
		{"unknown_end", "animations: {idle: pingpong}\n", sprite.ErrInvalidEndAction},
		{"transition_without_target", "animations: {idle: next}\n", sprite.ErrInvalidEndAction},
		{"target_on_loop", "animations: {idle: {end: loop, next: run}}\n", sprite.ErrInvalidEndAction},
		{"negative_time_scale", "time_scale: -2\n", ErrInvalidTimeScale},
		{"negative_anim_time_scale", "animations: {idle: {time_scale: -1}}\n", ErrInvalidTimeScale},
		{"nan_anim_time_scale", "animations: {idle: {end: loop, time_scale: .nan}}\n", ErrInvalidTimeScale},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSheet([]byte(tc.data))
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := ParseSheet([]byte("animations: [\n"))
	assert.Error(t, err)
}

func TestSheetSpec_Options(t *testing.T) {
	src := &aseprite.Sheet{
		Frames: []aseprite.Frame{
			{Frame: aseprite.Rect{W: 8, H: 8}, SpriteSourceSize: aseprite.Rect{W: 4, H: 8}, SourceSize: aseprite.Size{W: 8, H: 8}, Duration: 10},
			{Frame: aseprite.Rect{W: 8, H: 8}, SpriteSourceSize: aseprite.Rect{W: 8, H: 8}, SourceSize: aseprite.Size{W: 8, H: 8}, Duration: 10},
		},
		Tags: []aseprite.Tag{
			{Name: "idle", From: 0, To: 0},
			{Name: "attack", From: 1, To: 1},
		},
		Meta: aseprite.Meta{Image: "a.png"},
	}

	spec, err := ParseSheet([]byte("image: b.png\nanchor: top_left\nanimations:\n  attack: {end: next, next: idle, time_scale: 2}\n"))
	require.NoError(t, err)

	s, err := sprite.Build(src, spec.Options()...)
	require.NoError(t, err)
	assert.Equal(t, "b.png", s.ImagePath())
	assert.Equal(t, sprite.AnchorTopLeft, s.Anchor())

	idle, _ := s.HandleOf("idle")
	attack, _ := s.HandleOf("attack")
	a, _ := s.Animation(attack)
	assert.Equal(t, sprite.Transition{Target: idle}, a.End)
	assert.Equal(t, 2.0, a.Speed())
	a, _ = s.Animation(idle)
	assert.Equal(t, 1.0, a.Speed())

	empty := SheetSpec{}
	assert.Empty(t, empty.Options())
}
