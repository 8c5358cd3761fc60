// Package hosttest provides a recording fake of the preamp host interfaces.
package hosttest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cwbudde/algo-preamp/preamp"
)

// ErrInjected is returned by operations configured to fail.
var ErrInjected = errors.New("hosttest: injected failure")

// Node kinds recorded by the fake.
const (
	KindDestination = "destination"
	KindSource      = "source"
	KindPanner      = "panner"
	KindSplitter    = "splitter"
	KindAnalyser    = "analyser"
)

// Ramp is one recorded SetTargetAtTime call.
type Ramp struct {
	Target       float64
	Start        float64
	TimeConstant float64
}

// Param records values and ramps. A ramp sets the value immediately.
type Param struct {
	Name  string
	V     float64
	Ramps []Ramp
}

func (p *Param) Value() float64     { return p.V }
func (p *Param) SetValue(v float64) { p.V = v }

func (p *Param) SetTargetAtTime(target, start, tc float64) {
	p.Ramps = append(p.Ramps, Ramp{Target: target, Start: start, TimeConstant: tc})
	p.V = target
}

// Edge is one recorded connection.
type Edge struct {
	From   *Node
	To     *Node
	Output int
}

// Node is a fake graph node of any kind.
type Node struct {
	Kind string // KindSource, preamp.FilterType.String(), ...
	ID   int

	ctx *Context

	Freq, QParam, GainParam, PanParam Param

	FFTSize int
	Bins    []byte
	Media   preamp.MediaSource
}

func (n *Node) String() string {
	if n.Kind == "peaking" || n.Kind == "lowshelf" || n.Kind == "highshelf" {
		return fmt.Sprintf("%s:%g", n.Kind, n.Freq.V)
	}
	return n.Kind
}

// Connect records an edge.
func (n *Node) Connect(dst preamp.Node, output int) error {
	if n.ctx.FailConnect {
		return ErrInjected
	}
	to, ok := dst.(*Node)
	if !ok {
		return fmt.Errorf("hosttest: foreign node %T", dst)
	}
	n.ctx.Edges = append(n.ctx.Edges, Edge{From: n, To: to, Output: output})
	return nil
}

func (n *Node) Frequency() preamp.Param { return &n.Freq }
func (n *Node) Q() preamp.Param         { return &n.QParam }
func (n *Node) Gain() preamp.Param      { return &n.GainParam }
func (n *Node) Pan() preamp.Param       { return &n.PanParam }

// SetFFTSize records the window size; Bins is resized to n/2.
func (n *Node) SetFFTSize(size int) error {
	if size < 32 || size&(size-1) != 0 {
		return fmt.Errorf("hosttest: invalid fft size %d", size)
	}
	n.FFTSize = size
	n.Bins = make([]byte, size/2)
	return nil
}

func (n *Node) FrequencyBinCount() int { return len(n.Bins) }

func (n *Node) ByteFrequencyData(dst []byte) { copy(dst, n.Bins) }

// Context is a fake processing context. State, Resume and Close may run on
// other goroutines than the test; the remaining fields are set up before use.
type Context struct {
	StateV    preamp.ContextState
	Time      float64
	ResumeErr error
	// ResumeBlock, when non-nil, keeps Resume pending until it is closed or
	// the resume context is done.
	ResumeBlock chan struct{}

	// FailOn makes creation of the named node kind fail.
	FailOn      string
	FailConnect bool

	Nodes []*Node
	Edges []Edge

	mu      sync.Mutex
	resumes int
	closes  int
	resumed chan struct{}
	dest    *Node
}

func (c *Context) State() preamp.ContextState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.StateV
}

func (c *Context) Resume(ctx context.Context) error {
	c.mu.Lock()
	c.resumes++
	block := c.ResumeBlock
	c.mu.Unlock()

	err := c.ResumeErr
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			err = ctx.Err()
		}
	}

	c.mu.Lock()
	if err == nil {
		c.StateV = preamp.StateRunning
	}
	done := c.resumedLocked()
	c.mu.Unlock()

	select {
	case done <- struct{}{}:
	default:
	}
	return err
}

// Resumed delivers a value each time a Resume call returns.
func (c *Context) Resumed() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resumedLocked()
}

func (c *Context) resumedLocked() chan struct{} {
	if c.resumed == nil {
		c.resumed = make(chan struct{}, 16)
	}
	return c.resumed
}

// ResumeCount returns the number of Resume calls started.
func (c *Context) ResumeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resumes
}

// Close marks the context closed.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closes++
	c.StateV = preamp.StateClosed
	return nil
}

// CloseCount returns the number of Close calls.
func (c *Context) CloseCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closes
}

func (c *Context) CurrentTime() float64 { return c.Time }

func (c *Context) Destination() preamp.Node {
	if c.dest == nil {
		c.dest = &Node{Kind: KindDestination, ctx: c, ID: -1}
	}
	return c.dest
}

func (c *Context) newNode(kind string) (*Node, error) {
	if c.FailOn == kind {
		return nil, ErrInjected
	}
	n := &Node{Kind: kind, ID: len(c.Nodes), ctx: c}
	c.Nodes = append(c.Nodes, n)
	return n, nil
}

func (c *Context) NewMediaElementSource(m preamp.MediaSource) (preamp.Node, error) {
	n, err := c.newNode(KindSource)
	if err != nil {
		return nil, err
	}
	n.Media = m
	return n, nil
}

func (c *Context) NewStereoPanner() (preamp.Panner, error) {
	n, err := c.newNode(KindPanner)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (c *Context) NewBiquadFilter(t preamp.FilterType) (preamp.Filter, error) {
	n, err := c.newNode(t.String())
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (c *Context) NewChannelSplitter(int) (preamp.Node, error) {
	n, err := c.newNode(KindSplitter)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (c *Context) NewAnalyser() (preamp.Analyser, error) {
	n, err := c.newNode(KindAnalyser)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// NodesOf returns the created nodes of kind in creation order.
func (c *Context) NodesOf(kind string) []*Node {
	var out []*Node
	for _, n := range c.Nodes {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// Host counts context creations and hands out Ctx, or fails with Err.
type Host struct {
	Ctx      *Context
	Err      error
	Contexts int
}

// NewHost returns a host with a suspended context.
func NewHost() *Host {
	return &Host{Ctx: &Context{StateV: preamp.StateSuspended}}
}

func (h *Host) NewContext() (preamp.Context, error) {
	h.Contexts++
	if h.Err != nil {
		return nil, h.Err
	}
	return h.Ctx, nil
}
