package preamp

import "errors"

var (
	ErrNoHost    = errors.New("preamp: no audio host configured")
	ErrNoContext = errors.New("preamp: audio context unavailable")
)
