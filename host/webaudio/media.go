//go:build js && wasm

package webaudio

import (
	"context"
	"syscall/js"

	"github.com/cwbudde/algo-preamp/preamp"
)

// Media wraps an HTMLMediaElement (<audio> or <video>).
type Media struct {
	el js.Value
}

var _ preamp.MediaSource = (*Media)(nil)

// NewMedia wraps el.
func NewMedia(el js.Value) *Media {
	return &Media{el: el}
}

// Play calls play() and waits for its promise. A rejection, such as a
// NotAllowedError from autoplay policy, is returned wrapping ErrRejected.
func (m *Media) Play(ctx context.Context) (err error) {
	defer catch(&err)
	return await(ctx, m.el.Call("play"))
}

func (m *Media) Pause()                   { m.el.Call("pause") }
func (m *Media) Paused() bool             { return m.el.Get("paused").Bool() }
func (m *Media) CurrentTime() float64     { return m.el.Get("currentTime").Float() }
func (m *Media) SetCurrentTime(t float64) { m.el.Set("currentTime", t) }
func (m *Media) Volume() float64          { return m.el.Get("volume").Float() }
func (m *Media) SetVolume(v float64)      { m.el.Set("volume", v) }
