package soft

import "errors"

var (
	ErrClosed          = errors.New("soft: context closed")
	ErrForeignNode     = errors.New("soft: node belongs to another context or host")
	ErrOutputIndex     = errors.New("soft: output index out of range")
	ErrFFTSize         = errors.New("soft: fft size must be a power of two in [32, 32768]")
	ErrChannels        = errors.New("soft: channel count must be in [1, 32]")
	ErrForeignMedia    = errors.New("soft: media source is not a *soft.Media")
	ErrMediaBound      = errors.New("soft: media already bound to a source node")
	ErrNoMedia         = errors.New("soft: media has no playable data")
	ErrPlaybackBlocked = errors.New("soft: playback blocked")
)
