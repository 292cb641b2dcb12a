package renderer

import "errors"

var (
	ErrInvalidConfig    = errors.New("renderer: invalid configuration")
	ErrDegenerateCamera = errors.New("renderer: degenerate camera orientation")
	ErrPixelOverwrite   = errors.New("renderer: pixel written by more than one partition")
	ErrPixelMissing     = errors.New("renderer: pixel not written by any partition")
	ErrInterrupted      = errors.New("renderer: interrupted while rendering")
	ErrWorkerPanic      = errors.New("renderer: worker panicked")
)
