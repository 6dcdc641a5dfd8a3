// Package config decodes the YAML sidecar that accompanies a spritesheet and
// carries what the Aseprite export cannot: the pivot, end actions, playback
// speed and the script that reacts to finished animations.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/milk9111/sheetanim/sprite"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidAnchor    = errors.New("config: invalid anchor")
	ErrInvalidTimeScale = errors.New("config: invalid time scale")
)

// SheetSpec is the content of a "<sheet>.yaml" sidecar file:
//
//	image: knight.png
//	anchor: bottom_center
//	time_scale: 1.5
//	initial: idle
//	script: knight.tengo
//	animations:
//	  die: stop
//	  bow: pause
//	  attack: next:idle
//	  jump: {end: transition, next: fall}
//	  run: {time_scale: 1.25}
//	  attack_fast: {end: transition, next: idle, time_scale: 2}
type SheetSpec struct {
	Image      string                   `yaml:"image"`
	Anchor     *AnchorSpec              `yaml:"anchor"`
	TimeScale  float64                  `yaml:"time_scale"`
	Initial    string                   `yaml:"initial"`
	Script     string                   `yaml:"script"`
	Animations map[string]EndActionSpec `yaml:"animations"`
}

// Decode unmarshals YAML into T.
func Decode[T any](data []byte) (T, error) {
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		var zero T
		return zero, fmt.Errorf("config: unmarshal: %w", err)
	}
	return spec, nil
}

// ParseSheet decodes and checks a sheet sidecar.
func ParseSheet(data []byte) (SheetSpec, error) {
	spec, err := Decode[SheetSpec](data)
	if err != nil {
		return SheetSpec{}, err
	}
	if s := spec.TimeScale; s < 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return SheetSpec{}, fmt.Errorf("%w: %v", ErrInvalidTimeScale, s)
	}
	return spec, nil
}

// Options converts the sidecar into spritesheet build options.
func (s SheetSpec) Options() []sprite.Option {
	var opts []sprite.Option
	if s.Anchor != nil {
		opts = append(opts, sprite.WithAnchor(s.Anchor.Anchor))
	}
	if s.Image != "" {
		opts = append(opts, sprite.WithImage(s.Image))
	}
	if len(s.Animations) > 0 {
		ends := make(map[string]sprite.EndSpec, len(s.Animations))
		for name, a := range s.Animations {
			ends[name] = a.EndSpec
		}
		opts = append(opts, sprite.WithEndActions(ends))
		for name, a := range s.Animations {
			if a.TimeScale != 0 {
				opts = append(opts, sprite.WithAnimTimeScale(name, a.TimeScale))
			}
		}
	}
	return opts
}

// Speed returns the time scale, defaulting to 1.
func (s SheetSpec) Speed() float64 {
	if s.TimeScale == 0 {
		return 1
	}
	return s.TimeScale
}

var anchorPresets = map[string]sprite.Anchor{
	"center":        sprite.AnchorCenter,
	"top_left":      sprite.AnchorTopLeft,
	"top_center":    sprite.AnchorTopCenter,
	"top_right":     sprite.AnchorTopRight,
	"center_left":   sprite.AnchorCenterLeft,
	"center_right":  sprite.AnchorCenterRight,
	"bottom_left":   sprite.AnchorBottomLeft,
	"bottom_center": sprite.AnchorBottomCenter,
	"bottom_right":  sprite.AnchorBottomRight,
}

// AnchorSpec is either a preset name such as "bottom_center" or a mapping
// with x and y fractions.
type AnchorSpec struct {
	sprite.Anchor
}

func (a *AnchorSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		p, ok := anchorPresets[strings.ToLower(strings.TrimSpace(value.Value))]
		if !ok {
			return fmt.Errorf("%w: unknown preset %q", ErrInvalidAnchor, value.Value)
		}
		a.Anchor = p
		return nil
	case yaml.MappingNode:
		var raw struct {
			X *float64 `yaml:"x"`
			Y *float64 `yaml:"y"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		if raw.X == nil || raw.Y == nil {
			return fmt.Errorf("%w: x and y are required", ErrInvalidAnchor)
		}
		a.Anchor = sprite.Anchor{X: *raw.X, Y: *raw.Y}
		return nil
	}
	return fmt.Errorf("%w: expected name or mapping", ErrInvalidAnchor)
}

// EndActionSpec is an end action written either as a string ("loop",
// "pause", "stop", "next:<name>") or as a mapping
// {end: transition, next: name, time_scale: 2}. The mapping form may leave out
// end, which then means loop.
type EndActionSpec struct {
	sprite.EndSpec
	TimeScale float64 // 0 means 1
}

func (e *EndActionSpec) UnmarshalYAML(value *yaml.Node) error {
	var kind, next string
	switch value.Kind {
	case yaml.ScalarNode:
		kind = value.Value
		if k, n, ok := strings.Cut(value.Value, ":"); ok {
			kind, next = k, n
		}
	case yaml.MappingNode:
		var raw struct {
			End       string  `yaml:"end"`
			Next      string  `yaml:"next"`
			TimeScale float64 `yaml:"time_scale"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		kind, next = raw.End, raw.Next
		if kind == "" {
			kind = "loop"
		}
		if s := raw.TimeScale; s < 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidTimeScale, s)
		}
		e.TimeScale = raw.TimeScale
	default:
		return fmt.Errorf("%w: expected string or mapping", sprite.ErrInvalidEndAction)
	}

	k, err := sprite.ParseEndKind(strings.ToLower(strings.TrimSpace(kind)))
	if err != nil {
		return err
	}
	next = strings.TrimSpace(next)
	if k == sprite.EndTransition && next == "" {
		return fmt.Errorf("%w: transition without target", sprite.ErrInvalidEndAction)
	}
	if k != sprite.EndTransition && next != "" {
		return fmt.Errorf("%w: %s does not take a target", sprite.ErrInvalidEndAction, k)
	}
	e.EndSpec = sprite.EndSpec{Kind: k, Next: next}
	return nil
}
