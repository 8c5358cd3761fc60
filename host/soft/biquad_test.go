package soft

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-preamp/internal/testutil"
	"github.com/cwbudde/algo-preamp/preamp"
)

func TestDesignPeaking(t *testing.T) {
	const sr = 48000
	c := designPeaking(1000, 1.4, 6, sr)

	testutil.RequireNearlyEqual(t, "gain at center", c.magnitudeDB(1000, sr), 6, 1e-9)
	if g := c.magnitudeDB(20, sr); math.Abs(g) > 0.1 {
		t.Errorf("gain far below center = %g dB, want ~0", g)
	}
	if g := c.magnitudeDB(20000, sr); math.Abs(g) > 0.1 {
		t.Errorf("gain far above center = %g dB, want ~0", g)
	}
}

func TestDesignPeakingZeroGainIsFlat(t *testing.T) {
	c := designPeaking(125, 1.4, 0, 48000)
	for _, f := range []float64{30, 125, 1000, 10000} {
		testutil.RequireNearlyEqual(t, "gain", c.magnitudeDB(f, 48000), 0, 1e-9)
	}
}

func TestDesignShelves(t *testing.T) {
	const sr = 48000

	low := designLowShelf(200, 8, sr)
	testutil.RequireNearlyEqual(t, "low shelf at DC side", low.magnitudeDB(10, sr), 8, 0.05)
	testutil.RequireNearlyEqual(t, "low shelf at corner", low.magnitudeDB(200, sr), 4, 1e-6)
	testutil.RequireNearlyEqual(t, "low shelf passband", low.magnitudeDB(15000, sr), 0, 0.05)

	high := designHighShelf(3000, -6, sr)
	testutil.RequireNearlyEqual(t, "high shelf top", high.magnitudeDB(23000, sr), -6, 0.1)
	testutil.RequireNearlyEqual(t, "high shelf at corner", high.magnitudeDB(3000, sr), -3, 1e-6)
	testutil.RequireNearlyEqual(t, "high shelf passband", high.magnitudeDB(30, sr), 0, 0.05)
}

func TestDesignInvalidFrequencyIsIdentity(t *testing.T) {
	for _, f := range []float64{0, -1, 24000, 30000, math.NaN()} {
		if c := designPeaking(f, 1, 6, 48000); c != identity {
			t.Errorf("designPeaking(%g) = %+v, want identity", f, c)
		}
		if c := designLowShelf(f, 6, 48000); c != identity {
			t.Errorf("designLowShelf(%g) = %+v, want identity", f, c)
		}
	}
}

func TestSectionImpulse(t *testing.T) {
	s := section{coefficients: coefficients{b0: 0.25, b1: 0.5, b2: 0.25, a1: -0.2, a2: 0.04}}
	buf := []float64{1, 0, 0, 0}
	s.processBlock(buf)

	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i := range want {
		testutil.RequireNearlyEqual(t, "y", buf[i], want[i], 1e-12)
	}
}

func TestBiquadFilterKeepsStateAcrossRedesign(t *testing.T) {
	c := New(WithStartState(preamp.StateRunning))
	q := c.cfg.Quantum
	f := newBiquadFilter(c, preamp.Peaking)
	f.freq.value = 1000
	f.gain.value = 6

	f.process([2][]float64{
		testutil.DeterministicNoise(1, 0.5, q),
		testutil.DeterministicNoise(2, 0.5, q),
	}, 0)
	if f.sections[0].d0 == 0 && f.sections[0].d1 == 0 {
		t.Fatal("no state after noise burst")
	}

	// Continue the old delay line with the new design.
	want := f.sections[0]
	want.coefficients = designPeaking(1000, 1, 3, c.cfg.SampleRate)
	wantOut := make([]float64, q)
	want.processBlock(wantOut)

	f.gain.value = 3
	f.process([2][]float64{make([]float64, q), make([]float64, q)}, 0)

	testutil.RequireNearlyEqual(t, "d0", f.sections[0].d0, want.d0, 1e-15)
	testutil.RequireNearlyEqual(t, "d1", f.sections[0].d1, want.d1, 1e-15)
	for i, v := range f.outputs[0][0] {
		testutil.RequireNearlyEqual(t, "ringing", v, wantOut[i], 1e-15)
	}
}

func TestBiquadFilterMagnitudeDB(t *testing.T) {
	c := New()
	f, err := c.NewBiquadFilter(preamp.Peaking)
	if err != nil {
		t.Fatal(err)
	}
	f.Frequency().SetValue(4000)
	f.Q().SetValue(1.4)
	f.Gain().SetValue(-9)

	bf := f.(*BiquadFilter)
	testutil.RequireNearlyEqual(t, "MagnitudeDB", bf.MagnitudeDB(4000), -9, 1e-9)
	if bf.Type() != preamp.Peaking {
		t.Fatalf("Type = %s", bf.Type())
	}
}
