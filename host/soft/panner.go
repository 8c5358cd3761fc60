package soft

import (
	"math"

	"github.com/cwbudde/algo-preamp/preamp"
)

// Panner is an equal-power stereo panner.
type Panner struct {
	nodeBase
	pan *Param
}

var _ preamp.Panner = (*Panner)(nil)

// Pan is the position in [-1, 1], full left to full right.
func (p *Panner) Pan() preamp.Param { return p.pan }

func (p *Panner) Connect(dst preamp.Node, output int) error {
	return connectNodes(p, dst, output)
}

func (p *Panner) process(in [2][]float64, t float64) {
	pan := p.pan.at(t)
	x := pan
	if pan <= 0 {
		x = pan + 1
	}
	gainL := math.Cos(x * math.Pi / 2)
	gainR := math.Sin(x * math.Pi / 2)

	outL, outR := p.outputs[0][0], p.outputs[0][1]
	for i := range outL {
		l, r := in[0][i], in[1][i]
		if pan <= 0 {
			outL[i] = l + r*gainL
			outR[i] = r * gainR
		} else {
			outL[i] = l * gainL
			outR[i] = r + l*gainR
		}
	}
}
