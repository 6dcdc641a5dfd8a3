package sprite

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/milk9111/sheetanim/aseprite"
)

type options struct {
	anchor    Anchor
	imagePath string
	ends      map[string]EndSpec
	scales    map[string]float64
}

// Option configures Build.
type Option func(*options)

// WithAnchor sets the pivot used for anchor correction. The default is
// AnchorCenter.
func WithAnchor(a Anchor) Option {
	return func(o *options) {
		o.anchor = a
	}
}

// WithImage overrides the image path from the sheet metadata.
func WithImage(path string) Option {
	return func(o *options) {
		o.imagePath = path
	}
}

// WithEndAction sets the end action of the animation called name. Animations
// without one loop.
func WithEndAction(name string, spec EndSpec) Option {
	return func(o *options) {
		if o.ends == nil {
			o.ends = make(map[string]EndSpec)
		}
		o.ends[name] = spec
	}
}

// WithEndActions is WithEndAction for every entry of ends.
func WithEndActions(ends map[string]EndSpec) Option {
	return func(o *options) {
		for name, spec := range ends {
			WithEndAction(name, spec)(o)
		}
	}
}

// WithAnimTimeScale makes the animation called name play scale times faster
// than its frame durations say. It stacks with the animator's own time scale.
func WithAnimTimeScale(name string, scale float64) Option {
	return func(o *options) {
		if o.scales == nil {
			o.scales = make(map[string]float64)
		}
		o.scales[name] = scale
	}
}

// Load parses Aseprite JSON and builds a Spritesheet from it.
func Load(data []byte, opts ...Option) (*Spritesheet, error) {
	src, err := aseprite.Parse(data)
	if err != nil {
		return nil, err
	}
	return Build(src, opts...)
}

// Build turns a parsed sheet into a Spritesheet. Every tag becomes an
// animation whose handle follows declaration order. End actions are resolved
// by name against the new sheet; a transition to a name the sheet does not
// define fails the whole build.
func Build(src *aseprite.Sheet, opts ...Option) (*Spritesheet, error) {
	o := options{anchor: AnchorCenter}
	for _, opt := range opts {
		opt(&o)
	}

	if err := src.Validate(); err != nil {
		return nil, err
	}

	s := &Spritesheet{
		id:        uuid.New(),
		frames:    make([]Frame, len(src.Frames)),
		imagePath: src.Meta.Image,
		imageSize: src.Meta.Size.Point(),
		anchor:    o.anchor,
	}
	if o.imagePath != "" {
		s.imagePath = o.imagePath
	}

	for i, f := range src.Frames {
		size := f.SourceSize.Point()
		trim := f.SpriteSourceSize.Rectangle()
		s.frames[i] = Frame{
			Index:      i,
			Source:     f.Frame.Rectangle(),
			Size:       size,
			TrimOffset: trim.Min,
			TrimSize:   trim.Size(),
			Duration:   f.Time(),
			Anchor:     o.anchor,
			Correction: o.anchor.Correction(size, trim.Min, trim.Size()),
		}
	}

	s.anims = Registry{
		sheet:  s.id,
		anims:  make([]Animation, len(src.Tags)),
		byName: make(map[string]int, len(src.Tags)),
	}
	for i, tag := range src.Tags {
		var total time.Duration
		for _, f := range s.frames[tag.From : tag.To+1] {
			total += f.Duration
		}
		s.anims.anims[i] = Animation{
			Handle:    AnimHandle{sheet: s.id, index: i},
			Name:      tag.Name,
			From:      tag.From,
			To:        tag.To,
			End:       Loop{},
			Direction: tag.Direction,
			Duration:  total,
		}
		s.anims.byName[tag.Name] = i
	}

	// Sorted so that the reported error does not depend on map order.
	for _, name := range slices.Sorted(maps.Keys(o.ends)) {
		i, ok := s.anims.byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAnimation, name)
		}
		end, err := s.resolveEnd(o.ends[name])
		if err != nil {
			return nil, fmt.Errorf("animation %q: %w", name, err)
		}
		s.anims.anims[i].End = end
	}

	for _, name := range slices.Sorted(maps.Keys(o.scales)) {
		i, ok := s.anims.byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAnimation, name)
		}
		scale := o.scales[name]
		if !(scale > 0) || math.IsInf(scale, 0) {
			return nil, fmt.Errorf("animation %q: %w: %v", name, ErrInvalidTimeScale, scale)
		}
		s.anims.anims[i].TimeScale = scale
	}

	return s, nil
}

func (s *Spritesheet) resolveEnd(spec EndSpec) (EndAction, error) {
	switch spec.Kind {
	case EndLoop:
		return Loop{}, nil
	case EndPause:
		return Pause{}, nil
	case EndStop:
		return Stop{}, nil
	case EndTransition:
		h, err := s.anims.HandleOf(spec.Next)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTransitionTarget, spec.Next)
		}
		return Transition{Target: h}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidEndAction, spec.Kind)
}
