package soft

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-preamp/preamp"
	"github.com/cwbudde/algo-vecmath"
)

const (
	minFFTSize = 32
	maxFFTSize = 32768
)

// Analyser records the mono down-mix of its input and reports
// Blackman-windowed FFT magnitudes. Audio passes through unchanged.
type Analyser struct {
	nodeBase

	size   int
	ring   []float64
	write  int
	window []float64
	plan   *algofft.Plan[complex128]

	frame    []float64
	spectrum []complex128
	fftIn    []complex128
	re, im   []float64
	mag      []float64
	smoothed []float64

	// analysedAt is the context frame of the last analysis; -1 forces one.
	analysedAt int64
}

var _ preamp.Analyser = (*Analyser)(nil)

func (a *Analyser) Connect(dst preamp.Node, output int) error {
	return connectNodes(a, dst, output)
}

// SetFFTSize sets the analysis window and resets the smoothed spectrum.
func (a *Analyser) SetFFTSize(n int) error {
	a.ctx.mu.Lock()
	defer a.ctx.mu.Unlock()
	return a.resize(n)
}

// FFTSize returns the analysis window size.
func (a *Analyser) FFTSize() int {
	a.ctx.mu.Lock()
	defer a.ctx.mu.Unlock()
	return a.size
}

// FrequencyBinCount returns half the window size.
func (a *Analyser) FrequencyBinCount() int {
	a.ctx.mu.Lock()
	defer a.ctx.mu.Unlock()
	return a.size / 2
}

func (a *Analyser) resize(n int) error {
	if n < minFFTSize || n > maxFFTSize || n&(n-1) != 0 {
		return fmt.Errorf("%w: %d", ErrFFTSize, n)
	}
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return fmt.Errorf("analyser fft plan: %w", err)
	}

	bins := n / 2
	a.size = n
	a.plan = plan
	a.ring = make([]float64, n)
	a.write = 0
	a.window = blackman(n)
	a.frame = make([]float64, n)
	a.fftIn = make([]complex128, n)
	a.spectrum = make([]complex128, n)
	a.re = make([]float64, bins)
	a.im = make([]float64, bins)
	a.mag = make([]float64, bins)
	a.smoothed = make([]float64, bins)
	a.analysedAt = -1
	return nil
}

func (a *Analyser) process(in [2][]float64, _ float64) {
	copy(a.outputs[0][0], in[0])
	copy(a.outputs[0][1], in[1])

	for i := range in[0] {
		a.ring[a.write] = 0.5 * (in[0][i] + in[1][i])
		a.write++
		if a.write == a.size {
			a.write = 0
		}
	}
}

// ByteFrequencyData writes the smoothed magnitude of each bin, mapped
// linearly from [MinDecibels, MaxDecibels] to [0, 255]. Repeated calls
// within one quantum return the same data.
func (a *Analyser) ByteFrequencyData(dst []byte) {
	a.ctx.mu.Lock()
	defer a.ctx.mu.Unlock()

	if a.analysedAt != a.ctx.frame {
		a.analyse()
		a.analysedAt = a.ctx.frame
	}

	cfg := a.ctx.cfg
	scale := 255 / (cfg.MaxDecibels - cfg.MinDecibels)
	n := min(len(dst), len(a.smoothed))
	for k := range n {
		db := 20 * math.Log10(a.smoothed[k])
		v := math.Floor(scale * (db - cfg.MinDecibels))
		switch {
		case math.IsNaN(v) || v < 0:
			dst[k] = 0
		case v > 255:
			dst[k] = 255
		default:
			dst[k] = byte(v)
		}
	}
}

func (a *Analyser) analyse() {
	// Oldest sample first.
	n := copy(a.frame, a.ring[a.write:])
	copy(a.frame[n:], a.ring[:a.write])
	vecmath.MulBlockInPlace(a.frame, a.window)

	for i, x := range a.frame {
		a.fftIn[i] = complex(x, 0)
	}
	if err := a.plan.Forward(a.spectrum, a.fftIn); err != nil {
		return
	}

	for k := range a.re {
		a.re[k] = real(a.spectrum[k])
		a.im[k] = imag(a.spectrum[k])
	}
	vecmath.Magnitude(a.mag, a.re, a.im)

	tau := a.ctx.cfg.Smoothing
	inv := 1 / float64(a.size)
	for k, m := range a.mag {
		v := tau*a.smoothed[k] + (1-tau)*m*inv
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		a.smoothed[k] = v
	}
}

func blackman(n int) []float64 {
	const (
		a0 = 0.42
		a1 = 0.5
		a2 = 0.08
	)
	w := make([]float64, n)
	for i := range w {
		x := 2 * math.Pi * float64(i) / float64(n)
		w[i] = a0 - a1*math.Cos(x) + a2*math.Cos(2*x)
	}
	return w
}
