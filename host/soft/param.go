package soft

import (
	"math"

	"github.com/cwbudde/algo-preamp/preamp"
)

// Param is an automatable parameter evaluated once per render quantum.
type Param struct {
	ctx      *Context
	value    float64
	min, max float64

	ramping bool
	started bool
	target  float64
	start   float64
	tau     float64
	v0      float64
}

var _ preamp.Param = (*Param)(nil)

func newParam(c *Context, v, minV, maxV float64) *Param {
	return &Param{ctx: c, value: v, min: minV, max: maxV}
}

// Value returns the value at the last rendered quantum, or the value set
// since.
func (p *Param) Value() float64 {
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	return p.clamped()
}

// SetValue sets the value immediately and cancels a pending approach.
func (p *Param) SetValue(v float64) {
	if math.IsNaN(v) {
		return
	}
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.ramping = false
	p.value = v
}

// SetTargetAtTime approaches target from startTime on with time constant tau:
//
//	v(t) = target + (v(startTime) - target) * exp(-(t - startTime) / tau)
//
// tau <= 0 jumps to target at startTime. A new call replaces the approach in
// progress, continuing from the current value.
func (p *Param) SetTargetAtTime(target, startTime, tau float64) {
	if math.IsNaN(target) || math.IsNaN(startTime) {
		return
	}
	p.ctx.mu.Lock()
	defer p.ctx.mu.Unlock()
	p.ramping = true
	p.started = false
	p.target = target
	p.start = startTime
	p.tau = tau
}

// at advances automation to time t and returns the effective value.
// Callers hold the context lock.
func (p *Param) at(t float64) float64 {
	if p.ramping && t >= p.start {
		if !p.started {
			p.v0 = p.value
			p.started = true
		}
		if p.tau <= 0 {
			p.value = p.target
			p.ramping = false
		} else {
			p.value = p.target + (p.v0-p.target)*math.Exp(-(t-p.start)/p.tau)
		}
	}
	return p.clamped()
}

func (p *Param) clamped() float64 {
	return math.Min(math.Max(p.value, p.min), p.max)
}
