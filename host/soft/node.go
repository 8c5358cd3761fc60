package soft

import "github.com/cwbudde/algo-preamp/preamp"

type edge struct {
	src    node
	output int
}

type node interface {
	preamp.Node
	base() *nodeBase
	// process fills the node outputs for one quantum from its mixed
	// stereo input.
	process(in [2][]float64, t float64)
}

// nodeBase holds the connections and per-quantum buffers of a node. Every
// output is a stereo buffer; mono outputs only use channel 0.
type nodeBase struct {
	ctx      *Context
	inputs   []edge
	outputs  [][2][]float64
	channels []int
	in       [2][]float64
	pass     uint64
}

func (b *nodeBase) base() *nodeBase { return b }

func (b *nodeBase) init(c *Context, outputs, channels int) {
	b.ctx = c
	b.in = c.stereo()
	b.outputs = make([][2][]float64, outputs)
	b.channels = make([]int, outputs)
	for i := range b.outputs {
		b.outputs[i] = c.stereo()
		b.channels[i] = channels
	}
}

// connect records an edge from src output to b. Callers hold the context
// lock.
func (b *nodeBase) connect(src node, output int) error {
	sb := src.base()
	if sb.ctx != b.ctx {
		return ErrForeignNode
	}
	if output < 0 || output >= len(sb.outputs) {
		return ErrOutputIndex
	}
	for _, e := range b.inputs {
		if e.src == src && e.output == output {
			return nil
		}
	}
	b.inputs = append(b.inputs, edge{src: src, output: output})
	return nil
}

func connectNodes(src node, dst preamp.Node, output int) error {
	d, ok := dst.(node)
	if !ok {
		return ErrForeignNode
	}
	c := src.base().ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == preamp.StateClosed {
		return ErrClosed
	}
	return d.base().connect(src, output)
}

// pull renders n for the current pass after its inputs. Mono inputs are
// up-mixed to both channels. A node revisited within one pass, as in a
// cycle, yields its previous buffers.
func (c *Context) pull(n node) {
	b := n.base()
	if b.pass == c.pass {
		return
	}
	b.pass = c.pass

	clear(b.in[0])
	clear(b.in[1])
	for _, e := range b.inputs {
		c.pull(e.src)
		sb := e.src.base()
		out := sb.outputs[e.output]
		right := out[1]
		if sb.channels[e.output] == 1 {
			right = out[0]
		}
		for i, v := range out[0] {
			b.in[0][i] += v
			b.in[1][i] += right[i]
		}
	}
	n.process(b.in, c.now())
}

type destination struct {
	nodeBase
}

func (d *destination) Connect(dst preamp.Node, output int) error {
	return connectNodes(d, dst, output)
}

func (d *destination) process(in [2][]float64, _ float64) {
	copy(d.outputs[0][0], in[0])
	copy(d.outputs[0][1], in[1])
}

type splitter struct {
	nodeBase
}

func (s *splitter) Connect(dst preamp.Node, output int) error {
	return connectNodes(s, dst, output)
}

func (s *splitter) process(in [2][]float64, _ float64) {
	for k, out := range s.outputs {
		if k < 2 {
			copy(out[0], in[k])
		} else {
			clear(out[0])
		}
	}
}
