// Package aseprite reads the JSON data Aseprite writes next to an exported
// spritesheet image. Only the "Array" frame layout is understood; the "Hash"
// layout, where frames are keyed by file name, is rejected.
package aseprite

import (
	"image"
	"time"
)

// Direction is the playback direction stored on a frame tag. It is kept for
// reference only, playback of every tag is forward.
type Direction string

const (
	Forward         Direction = "forward"
	Reverse         Direction = "reverse"
	PingPong        Direction = "pingpong"
	PingPongReverse Direction = "pingpong_reverse"
)

// Rect is an x/y/w/h rectangle as written by Aseprite.
type Rect struct {
	X, Y, W, H int
}

// Rectangle converts r to an image.Rectangle.
func (r Rect) Rectangle() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Size is a w/h pair as written by Aseprite.
type Size struct {
	W, H int
}

func (s Size) Point() image.Point {
	return image.Pt(s.W, s.H)
}

// Frame is one entry of the "frames" array.
type Frame struct {
	Filename         string
	Frame            Rect // location inside the packed sheet image
	Rotated          bool
	Trimmed          bool
	SpriteSourceSize Rect // visible part inside the untrimmed frame
	SourceSize       Size // untrimmed frame size
	Duration         float64
}

// Time returns the frame duration. Aseprite writes milliseconds.
func (f Frame) Time() time.Duration {
	return time.Duration(f.Duration * float64(time.Millisecond))
}

// Tag is one entry of "meta.frameTags". From and To are inclusive.
type Tag struct {
	Name      string
	From      int
	To        int
	Direction Direction
	Color     string
}

// Len returns the number of frames covered by the tag.
func (t Tag) Len() int {
	return t.To - t.From + 1
}

type Meta struct {
	App     string
	Version string
	Image   string
	Format  string
	Size    Size
	Scale   string
}

// Sheet is the validated content of a spritesheet JSON file.
type Sheet struct {
	Frames []Frame
	Tags   []Tag
	Meta   Meta
}
