package soft

import (
	"context"
	"sync"

	"github.com/cwbudde/algo-preamp/preamp"
)

// Context is a software processing graph. All methods are safe for
// concurrent use; rendering and parameter changes are serialized.
type Context struct {
	mu    sync.Mutex
	cfg   Config
	state preamp.ContextState
	frame int64
	pass  uint64

	dest      *destination
	analysers []*Analyser
	media     []*Media

	out    [2][]float64
	outPos int
}

var _ preamp.Context = (*Context)(nil)

// New returns a context configured by opts.
func New(opts ...Option) *Context {
	cfg := ApplyOptions(opts...)
	c := &Context{
		cfg:    cfg,
		state:  cfg.StartState,
		outPos: cfg.Quantum,
	}
	c.out = c.stereo()
	c.dest = &destination{}
	c.dest.init(c, 1, 2)
	return c
}

// NewHost returns a host that creates a fresh context per call.
func NewHost(opts ...Option) preamp.HostFunc {
	return func() (preamp.Context, error) {
		return New(opts...), nil
	}
}

// AsHost returns a host that always hands out c.
func (c *Context) AsHost() preamp.HostFunc {
	return func() (preamp.Context, error) {
		if c.State() == preamp.StateClosed {
			return nil, ErrClosed
		}
		return c, nil
	}
}

// SampleRate returns the context sample rate in Hz.
func (c *Context) SampleRate() float64 { return c.cfg.SampleRate }

// State returns the run state.
func (c *Context) State() preamp.ContextState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Resume starts the clock.
func (c *Context) Resume(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == preamp.StateClosed {
		return ErrClosed
	}
	c.state = preamp.StateRunning
	return nil
}

// Suspend stops the clock; Render outputs silence until Resume.
func (c *Context) Suspend() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == preamp.StateClosed {
		return ErrClosed
	}
	c.state = preamp.StateSuspended
	return nil
}

// Close stops the context permanently and releases the media bound to it,
// which may then be bound by another context.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = preamp.StateClosed
	for _, m := range c.media {
		m.unbind()
	}
	c.media = nil
	return nil
}

// CurrentTime returns the start time in seconds of the next quantum.
func (c *Context) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now()
}

func (c *Context) now() float64 {
	return float64(c.frame) / c.cfg.SampleRate
}

// Destination returns the audible output node.
func (c *Context) Destination() preamp.Node { return c.dest }

// NewMediaElementSource binds m, which must be a *Media not bound before.
func (c *Context) NewMediaElementSource(m preamp.MediaSource) (preamp.Node, error) {
	media, ok := m.(*Media)
	if !ok {
		return nil, ErrForeignMedia
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == preamp.StateClosed {
		return nil, ErrClosed
	}
	if err := media.bind(); err != nil {
		return nil, err
	}
	c.media = append(c.media, media)
	n := &mediaSource{media: media}
	n.init(c, 1, 2)
	return n, nil
}

// NewStereoPanner returns an equal-power panner with pan 0.
func (c *Context) NewStereoPanner() (preamp.Panner, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == preamp.StateClosed {
		return nil, ErrClosed
	}
	n := &Panner{pan: newParam(c, 0, -1, 1)}
	n.init(c, 1, 2)
	return n, nil
}

// NewBiquadFilter returns a filter of type t at 350 Hz, Q 1, gain 0 dB.
func (c *Context) NewBiquadFilter(t preamp.FilterType) (preamp.Filter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == preamp.StateClosed {
		return nil, ErrClosed
	}
	n := newBiquadFilter(c, t)
	return n, nil
}

// NewChannelSplitter returns a splitter whose output k carries input
// channel k as mono.
func (c *Context) NewChannelSplitter(channels int) (preamp.Node, error) {
	if channels < 1 || channels > 32 {
		return nil, ErrChannels
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == preamp.StateClosed {
		return nil, ErrClosed
	}
	n := &splitter{}
	n.init(c, channels, 1)
	return n, nil
}

// NewAnalyser returns an analyser with a 2048-sample window.
func (c *Context) NewAnalyser() (preamp.Analyser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == preamp.StateClosed {
		return nil, ErrClosed
	}
	a := &Analyser{}
	a.init(c, 1, 2)
	if err := a.resize(2048); err != nil {
		return nil, err
	}
	c.analysers = append(c.analysers, a)
	return a, nil
}

// Render writes the next len(left) frames of destination output. right must
// be at least as long as left. A context that is not running renders silence
// and does not advance its clock.
func (c *Context) Render(left, right []float64) {
	right = right[:len(left)]

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != preamp.StateRunning {
		clear(left)
		clear(right)
		return
	}

	q := c.cfg.Quantum
	for written := 0; written < len(left); {
		if c.outPos == q {
			c.renderQuantum()
			c.outPos = 0
		}
		n := copy(left[written:], c.out[0][c.outPos:])
		copy(right[written:written+n], c.out[1][c.outPos:c.outPos+n])
		c.outPos += n
		written += n
	}
}

func (c *Context) renderQuantum() {
	c.pass++
	c.pull(c.dest)
	// Analysers process even when nothing downstream pulls them.
	for _, a := range c.analysers {
		c.pull(a)
	}
	o := c.dest.outputs[0]
	copy(c.out[0], o[0])
	copy(c.out[1], o[1])
	c.frame += int64(c.cfg.Quantum)
}

func (c *Context) stereo() [2][]float64 {
	return [2][]float64{
		make([]float64, c.cfg.Quantum),
		make([]float64, c.cfg.Quantum),
	}
}
