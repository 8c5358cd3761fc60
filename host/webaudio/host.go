//go:build js && wasm

package webaudio

import (
	"context"
	"errors"
	"fmt"
	"syscall/js"

	"github.com/cwbudde/algo-preamp/preamp"
)

var (
	ErrUnsupported = errors.New("webaudio: AudioContext not available")
	ErrForeignNode = errors.New("webaudio: node is not a Web Audio node")
	ErrRejected    = errors.New("webaudio: promise rejected")
	ErrJS          = errors.New("webaudio: javascript exception")
)

// Host creates browser audio contexts.
type Host struct{}

var _ preamp.Host = Host{}

// NewContext constructs an AudioContext.
func (Host) NewContext() (_ preamp.Context, err error) {
	defer catch(&err)

	ctor := js.Global().Get("AudioContext")
	if ctor.IsUndefined() {
		ctor = js.Global().Get("webkitAudioContext")
	}
	if ctor.IsUndefined() {
		return nil, ErrUnsupported
	}
	return &Context{v: ctor.New()}, nil
}

// Context wraps an AudioContext.
type Context struct {
	v js.Value
}

var _ preamp.Context = (*Context)(nil)

func (c *Context) State() preamp.ContextState {
	switch c.v.Get("state").String() {
	case "running":
		return preamp.StateRunning
	case "closed":
		return preamp.StateClosed
	default:
		return preamp.StateSuspended
	}
}

func (c *Context) Resume(ctx context.Context) (err error) {
	defer catch(&err)
	return await(ctx, c.v.Call("resume"))
}

// Close starts closing the context and does not wait for the returned
// promise; it may run on the goroutine serving a JavaScript callback.
func (c *Context) Close() (err error) {
	defer catch(&err)
	c.v.Call("close")
	return nil
}

func (c *Context) CurrentTime() float64 { return c.v.Get("currentTime").Float() }

func (c *Context) Destination() preamp.Node { return &node{v: c.v.Get("destination")} }

func (c *Context) NewMediaElementSource(m preamp.MediaSource) (_ preamp.Node, err error) {
	defer catch(&err)

	media, ok := m.(*Media)
	if !ok {
		return nil, fmt.Errorf("webaudio: media %T is not an HTMLMediaElement", m)
	}
	return &node{v: c.v.Call("createMediaElementSource", media.el)}, nil
}

func (c *Context) NewStereoPanner() (_ preamp.Panner, err error) {
	defer catch(&err)
	return &panner{node{v: c.v.Call("createStereoPanner")}}, nil
}

func (c *Context) NewBiquadFilter(t preamp.FilterType) (_ preamp.Filter, err error) {
	defer catch(&err)

	v := c.v.Call("createBiquadFilter")
	v.Set("type", t.String())
	return &filter{node{v: v}}, nil
}

func (c *Context) NewChannelSplitter(channels int) (_ preamp.Node, err error) {
	defer catch(&err)
	return &node{v: c.v.Call("createChannelSplitter", channels)}, nil
}

func (c *Context) NewAnalyser() (_ preamp.Analyser, err error) {
	defer catch(&err)
	return &analyser{node: node{v: c.v.Call("createAnalyser")}}, nil
}

// catch converts a thrown JavaScript exception into *err.
func catch(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(js.Error); ok {
		*err = fmt.Errorf("%w: %s", ErrJS, e.Error())
		return
	}
	panic(r)
}

// await blocks until p settles or ctx is done. Values that are not
// thenables count as already resolved. It must not run on the goroutine
// serving a JavaScript callback.
func await(ctx context.Context, p js.Value) error {
	if p.Type() != js.TypeObject || p.Get("then").Type() != js.TypeFunction {
		return nil
	}

	done := make(chan error, 1)
	var onResolve, onReject js.Func
	settle := func(err error) {
		done <- err
		onResolve.Release()
		onReject.Release()
	}
	onResolve = js.FuncOf(func(js.Value, []js.Value) any {
		settle(nil)
		return nil
	})
	onReject = js.FuncOf(func(_ js.Value, args []js.Value) any {
		settle(rejection(args))
		return nil
	})
	p.Call("then", onResolve, onReject)

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func rejection(args []js.Value) error {
	if len(args) == 0 {
		return ErrRejected
	}
	reason := args[0]
	if reason.Type() == js.TypeObject && reason.Get("name").Type() == js.TypeString {
		return fmt.Errorf("%w: %s: %s", ErrRejected, reason.Get("name").String(), reason.Get("message").String())
	}
	return fmt.Errorf("%w: %s", ErrRejected, reason.String())
}
