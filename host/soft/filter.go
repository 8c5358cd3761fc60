package soft

import (
	"math"

	"github.com/cwbudde/algo-preamp/preamp"
)

// BiquadFilter is a second-order filter node processing each channel with
// its own section. Coefficients are redesigned when a parameter changes;
// the delay lines carry over.
type BiquadFilter struct {
	nodeBase
	kind preamp.FilterType

	freq, q, gain *Param

	sections [2]section
	designed [3]float64
}

var _ preamp.Filter = (*BiquadFilter)(nil)

func newBiquadFilter(c *Context, t preamp.FilterType) *BiquadFilter {
	nyquist := c.cfg.SampleRate / 2
	f := &BiquadFilter{
		kind: t,
		freq: newParam(c, 350, 0, nyquist),
		q:    newParam(c, 1, math.Inf(-1), math.Inf(1)),
		gain: newParam(c, 0, -1541, 1541),
	}
	f.init(c, 1, 2)
	f.designed = [3]float64{math.NaN(), math.NaN(), math.NaN()}
	return f
}

// Type returns the filter response type.
func (f *BiquadFilter) Type() preamp.FilterType { return f.kind }

func (f *BiquadFilter) Frequency() preamp.Param { return f.freq }
func (f *BiquadFilter) Q() preamp.Param         { return f.q }
func (f *BiquadFilter) Gain() preamp.Param      { return f.gain }

func (f *BiquadFilter) Connect(dst preamp.Node, output int) error {
	return connectNodes(f, dst, output)
}

func (f *BiquadFilter) process(in [2][]float64, t float64) {
	params := [3]float64{f.freq.at(t), f.q.at(t), f.gain.at(t)}
	if params != f.designed {
		c := f.design(params[0], params[1], params[2])
		f.sections[0].coefficients = c
		f.sections[1].coefficients = c
		f.designed = params
	}

	for ch := range f.sections {
		out := f.outputs[0][ch]
		copy(out, in[ch])
		f.sections[ch].processBlock(out)
	}
}

func (f *BiquadFilter) design(freq, q, gainDB float64) coefficients {
	sr := f.ctx.cfg.SampleRate
	switch f.kind {
	case preamp.LowShelf:
		return designLowShelf(freq, gainDB, sr)
	case preamp.HighShelf:
		return designHighShelf(freq, gainDB, sr)
	case preamp.Peaking:
		return designPeaking(freq, q, gainDB, sr)
	default:
		return identity
	}
}

// MagnitudeDB returns the response magnitude at freq for the current
// parameter values.
func (f *BiquadFilter) MagnitudeDB(freq float64) float64 {
	f.ctx.mu.Lock()
	defer f.ctx.mu.Unlock()
	c := f.design(f.freq.clamped(), f.q.clamped(), f.gain.clamped())
	return c.magnitudeDB(freq, f.ctx.cfg.SampleRate)
}
