package preamp

import "context"

// ContextState is the run state of a processing context.
type ContextState int

const (
	StateSuspended ContextState = iota
	StateRunning
	StateClosed
)

// String returns the Web Audio name of the state.
func (s ContextState) String() string {
	switch s {
	case StateSuspended:
		return "suspended"
	case StateRunning:
		return "running"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// FilterType selects the response of a biquad filter node.
type FilterType int

const (
	LowShelf FilterType = iota
	HighShelf
	Peaking
)

// String returns the Web Audio name of the filter type.
func (t FilterType) String() string {
	switch t {
	case LowShelf:
		return "lowshelf"
	case HighShelf:
		return "highshelf"
	case Peaking:
		return "peaking"
	default:
		return "unknown"
	}
}

// MediaSource is a playable media handle owned by the caller.
type MediaSource interface {
	// Play starts playback. It may fail, for example when the host blocks
	// playback that was not triggered by a user gesture.
	Play(ctx context.Context) error
	Pause()
	Paused() bool
	// CurrentTime is the playback position in seconds.
	CurrentTime() float64
	SetCurrentTime(seconds float64)
	// Volume is the output gain in [0, 1].
	Volume() float64
	SetVolume(v float64)
}

// Host supplies processing contexts.
type Host interface {
	NewContext() (Context, error)
}

// HostFunc adapts a function to [Host].
type HostFunc func() (Context, error)

// NewContext calls f.
func (f HostFunc) NewContext() (Context, error) { return f() }

// Context is a processing graph host.
type Context interface {
	State() ContextState
	// Resume leaves the suspended state.
	Resume(ctx context.Context) error
	// CurrentTime is the context clock in seconds, used as ramp start time.
	CurrentTime() float64
	// Destination is the audible output.
	Destination() Node

	NewMediaElementSource(m MediaSource) (Node, error)
	NewStereoPanner() (Panner, error)
	NewBiquadFilter(t FilterType) (Filter, error)
	NewChannelSplitter(channels int) (Node, error)
	NewAnalyser() (Analyser, error)
}

// Node is a vertex of the processing graph.
type Node interface {
	// Connect feeds output of n into the first input of dst.
	Connect(dst Node, output int) error
}

// Param is an automatable node parameter.
type Param interface {
	Value() float64
	SetValue(v float64)
	// SetTargetAtTime starts an exponential approach to target beginning at
	// startTime (context seconds) with the given time constant. A later call
	// retargets the approach.
	SetTargetAtTime(target, startTime, timeConstant float64)
}

// Panner is a stereo balance node.
type Panner interface {
	Node
	Pan() Param
}

// Filter is a biquad filter node.
type Filter interface {
	Node
	Frequency() Param
	Q() Param
	Gain() Param
}

// Analyser exposes frequency-magnitude readouts of its input.
type Analyser interface {
	Node
	// SetFFTSize sets the analysis window size in samples.
	SetFFTSize(n int) error
	// FrequencyBinCount is half the window size.
	FrequencyBinCount() int
	// ByteFrequencyData fills dst with per-bin magnitudes scaled to 0–255.
	ByteFrequencyData(dst []byte)
}
