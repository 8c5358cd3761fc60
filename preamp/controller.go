package preamp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
)

// ToneState is the caller-set tone configuration.
type ToneState struct {
	Bass     float64 // dB
	Treble   float64 // dB
	Loudness bool
	Balance  float64 // [-1, 1]
}

// Levels is a per-channel level readout: the mean of the analyser's
// byte-resolution frequency bins, in [0, 255].
type Levels struct {
	Left  float64
	Right float64
}

type graph struct {
	ctx       Context
	source    Node
	balance   Panner
	bass      Filter
	treble    Filter
	bands     [NumBands]Filter
	splitter  Node
	analysers [2]Analyser
	bins      [2][]byte
}

// Controller owns the processing graph built around a media source and
// translates control calls into parameter updates on its nodes.
//
// Controller methods are safe for concurrent use.
type Controller struct {
	mu    sync.Mutex
	media MediaSource
	host  Host
	cfg   Config
	log   *slog.Logger

	g     *graph
	tone  ToneState
	gains [NumBands]float64

	// resuming is set while a context resume started by Play is pending.
	resuming bool
}

// NewController returns a controller for media whose graph will be built on
// host. The graph is not created until Initialize.
func NewController(media MediaSource, host Host, opts ...Option) *Controller {
	cfg := ApplyOptions(opts...)
	return &Controller{
		media: media,
		host:  host,
		cfg:   cfg,
		log:   cfg.Logger,
	}
}

// Initialize builds the processing graph. It is a no-op once a graph exists.
// A failure is logged and leaves the controller un-initialized. A context
// that failed part way through is closed when it implements io.Closer.
//
// A later call retries with a new context. Whether the media can be bound
// again depends on the host: host/soft releases it when the failed context
// is closed, browsers never release a media element once a source was
// created for it.
func (c *Controller) Initialize() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.g != nil {
		return
	}

	ac, err := c.newContext()
	if err != nil {
		c.log.Error("failed to initialize audio graph", "err", err)
		return
	}
	g, err := c.build(ac)
	if err != nil {
		c.log.Error("failed to initialize audio graph", "err", err)
		if cl, ok := ac.(io.Closer); ok {
			if cerr := cl.Close(); cerr != nil {
				c.log.Warn("failed to close audio context", "err", cerr)
			}
		}
		return
	}
	c.g = g
	c.gains = [NumBands]float64{}
	c.log.Info("audio graph initialized",
		"bands", NumBands,
		"analyser_size", c.cfg.AnalyserSize,
		"state", g.ctx.State().String())
}

// Initialized reports whether the graph has been built.
func (c *Controller) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.g != nil
}

func (c *Controller) newContext() (Context, error) {
	if c.host == nil {
		return nil, ErrNoHost
	}
	ac, err := c.host.NewContext()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoContext, err)
	}
	if ac == nil {
		return nil, ErrNoContext
	}
	return ac, nil
}

func (c *Controller) build(ac Context) (*graph, error) {
	var err error
	g := &graph{ctx: ac}
	for ch := range g.analysers {
		a, err := ac.NewAnalyser()
		if err != nil {
			return nil, fmt.Errorf("create analyser %d: %w", ch, err)
		}
		if err := a.SetFFTSize(c.cfg.AnalyserSize); err != nil {
			return nil, fmt.Errorf("analyser %d size %d: %w", ch, c.cfg.AnalyserSize, err)
		}
		g.analysers[ch] = a
		g.bins[ch] = make([]byte, a.FrequencyBinCount())
	}

	if g.source, err = ac.NewMediaElementSource(c.media); err != nil {
		return nil, fmt.Errorf("create media source: %w", err)
	}
	if g.balance, err = ac.NewStereoPanner(); err != nil {
		return nil, fmt.Errorf("create panner: %w", err)
	}
	if g.bass, err = newBiquad(ac, LowShelf, BassFrequency); err != nil {
		return nil, err
	}
	if g.treble, err = newBiquad(ac, HighShelf, TrebleFrequency); err != nil {
		return nil, err
	}

	chain := make([]Node, 0, 4+NumBands)
	chain = append(chain, g.source, g.balance, g.bass, g.treble)
	for b := range g.bands {
		f, err := newBiquad(ac, Peaking, Band(b).Frequency())
		if err != nil {
			return nil, err
		}
		f.Q().SetValue(BandQ)
		f.Gain().SetValue(0)
		g.bands[b] = f
		chain = append(chain, f)
	}

	for i := 1; i < len(chain); i++ {
		if err := chain[i-1].Connect(chain[i], 0); err != nil {
			return nil, fmt.Errorf("connect chain stage %d: %w", i, err)
		}
	}

	last := chain[len(chain)-1]
	if g.splitter, err = ac.NewChannelSplitter(2); err != nil {
		return nil, fmt.Errorf("create splitter: %w", err)
	}
	if err := last.Connect(g.splitter, 0); err != nil {
		return nil, fmt.Errorf("connect splitter: %w", err)
	}
	for ch, a := range g.analysers {
		if err := g.splitter.Connect(a, ch); err != nil {
			return nil, fmt.Errorf("connect analyser %d: %w", ch, err)
		}
	}
	if err := last.Connect(ac.Destination(), 0); err != nil {
		return nil, fmt.Errorf("connect destination: %w", err)
	}

	return g, nil
}

func newBiquad(ac Context, t FilterType, freq float64) (Filter, error) {
	f, err := ac.NewBiquadFilter(t)
	if err != nil {
		return nil, fmt.Errorf("create %s filter at %g Hz: %w", t, freq, err)
	}
	f.Frequency().SetValue(freq)
	return f, nil
}

// ramp moves p smoothly toward v. Callers hold c.mu and have a graph.
func (c *Controller) ramp(p Param, v float64) {
	p.SetTargetAtTime(v, c.g.ctx.CurrentTime(), c.cfg.TimeConstant)
}

// SetCustomFilter sets the gain in dB of the equalizer band centered at freq.
// Frequencies that are not a band center, and NaN gains, are ignored.
func (c *Controller) SetCustomFilter(freq, gainDB float64) {
	b, ok := BandAt(freq)
	if !ok || math.IsNaN(gainDB) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.g == nil {
		return
	}
	c.gains[b] = gainDB
	c.ramp(c.g.bands[b].Gain(), gainDB)
}

// BandGain returns the gain in dB last requested for the band centered at
// freq, which the band filter may still be approaching. ok is false for an
// unknown band or an un-initialized controller.
func (c *Controller) BandGain(freq float64) (gainDB float64, ok bool) {
	b, ok := BandAt(freq)
	if !ok {
		return 0, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.g == nil {
		return 0, false
	}
	return c.gains[b], true
}

// UpdateEQ records the bass and treble baseline in dB and the loudness switch,
// then applies the effective tone to the shelving filters.
func (c *Controller) UpdateEQ(bassDB, trebleDB float64, loudness bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tone.Bass = bassDB
	c.tone.Treble = trebleDB
	c.tone.Loudness = loudness

	if c.g == nil {
		return
	}
	bass, treble := c.effectiveTone()
	c.ramp(c.g.bass.Gain(), bass)
	c.ramp(c.g.treble.Gain(), treble)
}

// EffectiveTone returns the bass and treble gains in dB derived from the
// recorded tone state and the current media volume.
func (c *Controller) EffectiveTone() (bassDB, trebleDB float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.effectiveTone()
}

func (c *Controller) effectiveTone() (float64, float64) {
	return Loudness(c.tone.Bass, c.tone.Treble, c.media.Volume(), c.tone.Loudness)
}

// Tone returns the recorded tone state.
func (c *Controller) Tone() ToneState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tone
}

// Play starts resuming a suspended context and requests media playback
// without waiting for the resume, which a host may leave pending until a
// user gesture. The media's playback error is returned unchanged; a failed
// resume is logged.
func (c *Controller) Play(ctx context.Context) error {
	c.mu.Lock()
	if c.g != nil && !c.resuming && c.g.ctx.State() == StateSuspended {
		c.resuming = true
		go c.resume(context.WithoutCancel(ctx), c.g.ctx)
	}
	c.mu.Unlock()

	return c.media.Play(ctx)
}

func (c *Controller) resume(ctx context.Context, ac Context) {
	err := ac.Resume(ctx)

	c.mu.Lock()
	c.resuming = false
	c.mu.Unlock()

	if err != nil {
		c.log.Warn("failed to resume audio context", "err", err)
	}
}

// Pause pauses the media.
func (c *Controller) Pause() {
	c.media.Pause()
}

// Stop pauses the media and rewinds it to the start.
func (c *Controller) Stop() {
	c.media.Pause()
	c.media.SetCurrentTime(0)
}

// SetVolume sets the media volume, clamped to [0, 1]. NaN is ignored.
func (c *Controller) SetVolume(level float64) {
	if math.IsNaN(level) {
		return
	}
	c.media.SetVolume(clamp(level, 0, 1))
}

// Volume returns the media volume.
func (c *Controller) Volume() float64 {
	return c.media.Volume()
}

// SetBalance sets the stereo balance, clamped to [-1, 1] (full left to full
// right). NaN is ignored.
func (c *Controller) SetBalance(value float64) {
	if math.IsNaN(value) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.tone.Balance = clamp(value, -1, 1)
	if c.g == nil {
		return
	}
	c.ramp(c.g.balance.Pan(), c.tone.Balance)
}

// Balance returns the recorded balance.
func (c *Controller) Balance() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tone.Balance
}

// Levels returns the current per-channel level readout, or zero levels when
// the graph does not exist.
func (c *Controller) Levels() Levels {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.g == nil {
		return Levels{}
	}
	var out [2]float64
	for ch, a := range c.g.analysers {
		buf := c.g.bins[ch]
		a.ByteFrequencyData(buf)
		out[ch] = meanBytes(buf)
	}
	return Levels{Left: out[0], Right: out[1]}
}

func meanBytes(b []byte) float64 {
	if len(b) == 0 {
		return 0
	}
	sum := 0
	for _, v := range b {
		sum += int(v)
	}
	return float64(sum) / float64(len(b))
}

func clamp(v, minV, maxV float64) float64 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
