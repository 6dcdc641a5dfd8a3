package component

import "github.com/milk9111/sheetanim/anim"

// Animation plays a sheet from the asset library. Sheet is the library key;
// the animator is bound lazily by the animation system, starting with Initial
// or, when that is empty, the sheet's configured initial animation.
type Animation struct {
	Sheet    string
	Initial  string
	Animator anim.Animator
}

var AnimationComponent = NewComponent[Animation]()
