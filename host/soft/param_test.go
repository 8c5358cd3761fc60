package soft

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-preamp/preamp"
)

func TestParamSetTargetAtTime(t *testing.T) {
	c := New()
	p := newParam(c, 0, math.Inf(-1), math.Inf(1))

	p.SetTargetAtTime(10, 0.01, 0.01)

	if got := p.at(0); got != 0 {
		t.Fatalf("value before start = %g, want 0", got)
	}
	if got := p.at(0.01); got != 0 {
		t.Fatalf("value at start = %g, want 0", got)
	}
	want := 10 * (1 - math.Exp(-1))
	if got := p.at(0.02); math.Abs(got-want) > 1e-12 {
		t.Fatalf("value after one time constant = %g, want %g", got, want)
	}
	if got := p.at(0.06); math.Abs(got-10) > 0.1 {
		t.Fatalf("value after 5 time constants = %g, want ~10", got)
	}
}

func TestParamRetarget(t *testing.T) {
	c := New()
	p := newParam(c, 0, math.Inf(-1), math.Inf(1))

	p.SetTargetAtTime(10, 0, 0.01)
	mid := p.at(0.01)

	p.SetTargetAtTime(-5, 0.01, 0.01)
	if got := p.at(0.01); got != mid {
		t.Fatalf("retarget jumped: %g, want %g", got, mid)
	}
	if got := p.at(1); math.Abs(got+5) > 1e-9 {
		t.Fatalf("retargeted value = %g, want -5", got)
	}
}

func TestParamZeroTimeConstantJumps(t *testing.T) {
	c := New()
	p := newParam(c, 1, math.Inf(-1), math.Inf(1))

	p.SetTargetAtTime(3, 0, 0)
	if got := p.at(0); got != 3 {
		t.Fatalf("value = %g, want 3", got)
	}
	if p.ramping {
		t.Fatal("jump left automation active")
	}
}

func TestParamSetValueCancelsRamp(t *testing.T) {
	c := New()
	p := newParam(c, 0, -1, 1)

	p.SetTargetAtTime(1, 0, 1)
	p.SetValue(-0.5)
	if got := p.at(10); got != -0.5 {
		t.Fatalf("value = %g, want -0.5", got)
	}

	p.SetValue(4)
	if got := p.Value(); got != 1 {
		t.Fatalf("clamped value = %g, want 1", got)
	}
}

func TestParamRampDuringRender(t *testing.T) {
	c := New(WithStartState(preamp.StateRunning))
	f, err := c.NewBiquadFilter(preamp.Peaking)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Connect(c.Destination(), 0); err != nil {
		t.Fatal(err)
	}

	f.Gain().SetTargetAtTime(12, c.CurrentTime(), 0.01)
	l := make([]float64, int(0.06*c.SampleRate()))
	r := make([]float64, len(l))
	c.Render(l, r)

	if got := f.Gain().Value(); math.Abs(got-12) > 0.12 {
		t.Fatalf("gain after 6 time constants = %g, want within 1%% of 12", got)
	}
}
