package sprite

import (
	"time"

	"github.com/milk9111/sheetanim/aseprite"
)

// Animation is a named, inclusive range of frames with an end action.
type Animation struct {
	Handle    AnimHandle
	Name      string
	From      int
	To        int
	End       EndAction
	Direction aseprite.Direction
	Duration  time.Duration // one full cycle, unscaled
	TimeScale float64       // 0 means 1
}

// Speed returns the playback speed multiplier of the animation.
func (a Animation) Speed() float64 {
	if a.TimeScale == 0 {
		return 1
	}
	return a.TimeScale
}

// Len returns the number of frames in the animation.
func (a Animation) Len() int {
	return a.To - a.From + 1
}

// Contains reports whether the absolute frame index lies inside the animation.
func (a Animation) Contains(frame int) bool {
	return frame >= a.From && frame <= a.To
}
