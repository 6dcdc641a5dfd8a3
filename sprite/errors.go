package sprite

import "errors"

var (
	ErrAnimationNotFound       = errors.New("sprite: animation not found")
	ErrUnknownAnimation        = errors.New("sprite: option for unknown animation")
	ErrUnknownTransitionTarget = errors.New("sprite: unknown transition target")
	ErrInvalidEndAction        = errors.New("sprite: invalid end action")
	ErrInvalidTimeScale        = errors.New("sprite: animation time scale must be positive and finite")
)
