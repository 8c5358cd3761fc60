//go:build js && wasm

package webaudio

import (
	"fmt"
	"syscall/js"

	"github.com/cwbudde/algo-preamp/preamp"
)

type jsNode interface {
	value() js.Value
}

type node struct {
	v js.Value
}

func (n *node) value() js.Value { return n.v }

func (n *node) Connect(dst preamp.Node, output int) (err error) {
	defer catch(&err)

	d, ok := dst.(jsNode)
	if !ok {
		return ErrForeignNode
	}
	n.v.Call("connect", d.value(), output)
	return nil
}

// param wraps an AudioParam. Range errors thrown by the browser are dropped;
// the parameter keeps its previous value.
type param struct {
	v js.Value
}

func (p param) Value() float64 { return p.v.Get("value").Float() }

func (p param) SetValue(v float64) {
	defer catch(new(error))
	p.v.Set("value", v)
}

func (p param) SetTargetAtTime(target, startTime, timeConstant float64) {
	defer catch(new(error))
	p.v.Call("setTargetAtTime", target, startTime, timeConstant)
}

type panner struct {
	node
}

func (p *panner) Pan() preamp.Param { return param{p.v.Get("pan")} }

type filter struct {
	node
}

func (f *filter) Frequency() preamp.Param { return param{f.v.Get("frequency")} }
func (f *filter) Q() preamp.Param         { return param{f.v.Get("Q")} }
func (f *filter) Gain() preamp.Param      { return param{f.v.Get("gain")} }

type analyser struct {
	node
	bins js.Value
}

func (a *analyser) SetFFTSize(n int) (err error) {
	defer catch(&err)
	a.v.Set("fftSize", n)
	if got := a.v.Get("fftSize").Int(); got != n {
		return fmt.Errorf("webaudio: fftSize %d not accepted, have %d", n, got)
	}
	return nil
}

func (a *analyser) FrequencyBinCount() int { return a.v.Get("frequencyBinCount").Int() }

func (a *analyser) ByteFrequencyData(dst []byte) {
	if a.bins.IsUndefined() || a.bins.Length() != len(dst) {
		a.bins = js.Global().Get("Uint8Array").New(len(dst))
	}
	a.v.Call("getByteFrequencyData", a.bins)
	js.CopyBytesToGo(dst, a.bins)
}
