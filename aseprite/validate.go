package aseprite

import (
	"fmt"
	"math"
	"time"
)

// maxDurationMS is the longest frame duration representable as a time.Duration.
const maxDurationMS = float64(math.MaxInt64 / int64(time.Millisecond))

// Validate checks the structural invariants of s. Parse calls it before
// returning, so it only needs to be called on sheets assembled by hand.
func (s *Sheet) Validate() error {
	if s == nil || len(s.Frames) == 0 {
		return fieldError(ErrMalformedInput, "frames", "no frames")
	}
	for i, f := range s.Frames {
		if err := f.validate(fmt.Sprintf("frames[%d]", i)); err != nil {
			return err
		}
	}
	for i, t := range s.Tags {
		if err := t.validate(fmt.Sprintf("meta.frameTags[%d]", i), len(s.Frames)); err != nil {
			return err
		}
	}
	return nil
}

func (f Frame) validate(path string) error {
	r := f.Frame
	if r.X < 0 || r.Y < 0 || r.W <= 0 || r.H <= 0 {
		return fieldError(ErrMalformedInput, path+".frame", "bad rectangle %+v", r)
	}
	if f.SourceSize.W <= 0 || f.SourceSize.H <= 0 {
		return fieldError(ErrMalformedInput, path+".sourceSize", "bad size %+v", f.SourceSize)
	}
	t := f.SpriteSourceSize
	if t.X < 0 || t.Y < 0 || t.W < 0 || t.H < 0 {
		return fieldError(ErrMalformedInput, path+".spriteSourceSize", "bad rectangle %+v", t)
	}
	if t.X+t.W > f.SourceSize.W || t.Y+t.H > f.SourceSize.H {
		return fieldError(ErrMalformedInput, path+".spriteSourceSize",
			"trim %+v exceeds source size %dx%d", t, f.SourceSize.W, f.SourceSize.H)
	}
	d := f.Duration
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 || d > maxDurationMS || f.Time() <= 0 {
		return fieldError(ErrInvalidDuration, path+".duration", "%v", d)
	}
	return nil
}

func (t Tag) validate(path string, frames int) error {
	if t.From > t.To {
		return fieldError(ErrEmptyRange, path, "%q from %d to %d", t.Name, t.From, t.To)
	}
	if t.From < 0 || t.To >= frames {
		return fieldError(ErrOutOfBounds, path, "%q range [%d,%d] with %d frames", t.Name, t.From, t.To, frames)
	}
	return nil
}
