package soft

import (
	"context"
	"math"
	"sync"

	"github.com/go-audio/audio"

	"github.com/cwbudde/algo-preamp/preamp"
)

// Media plays an interleaved PCM buffer at the context sample rate. Mono
// buffers feed both channels. Volume scales the output before it enters the
// graph.
type Media struct {
	mu      sync.Mutex
	buf     *audio.FloatBuffer
	frame   int
	paused  bool
	ended   bool
	volume  float64
	blocked bool
	bound   bool
}

var _ preamp.MediaSource = (*Media)(nil)

// NewMedia returns paused media at full volume positioned at the start of buf.
func NewMedia(buf *audio.FloatBuffer) *Media {
	return &Media{buf: buf, paused: true, volume: 1}
}

// BlockPlayback makes Play fail with ErrPlaybackBlocked while block is true,
// like a browser refusing autoplay.
func (m *Media) BlockPlayback(block bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocked = block
}

// Play starts playback, from the start again if the media had ended.
func (m *Media) Play(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.blocked {
		return ErrPlaybackBlocked
	}
	if m.frames() == 0 {
		return ErrNoMedia
	}
	if m.ended {
		m.frame = 0
		m.ended = false
	}
	m.paused = false
	return nil
}

func (m *Media) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = true
}

func (m *Media) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

// Ended reports whether playback ran to the end of the buffer.
func (m *Media) Ended() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ended
}

// CurrentTime returns the position in seconds at the buffer sample rate.
func (m *Media) CurrentTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	sr := m.sampleRate()
	if sr == 0 {
		return 0
	}
	return float64(m.frame) / sr
}

// SetCurrentTime seeks to seconds, clamped to the buffer.
func (m *Media) SetCurrentTime(seconds float64) {
	if math.IsNaN(seconds) {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	f := int(math.Round(seconds * m.sampleRate()))
	m.frame = max(0, min(f, m.frames()))
	m.ended = false
}

func (m *Media) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// SetVolume sets the output gain, clamped to [0, 1].
func (m *Media) SetVolume(v float64) {
	if math.IsNaN(v) {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = math.Min(math.Max(v, 0), 1)
}

func (m *Media) bind() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bound {
		return ErrMediaBound
	}
	m.bound = true
	return nil
}

func (m *Media) unbind() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bound = false
}

func (m *Media) channels() int {
	if m.buf == nil || m.buf.Format == nil || m.buf.Format.NumChannels < 1 {
		return 1
	}
	return m.buf.Format.NumChannels
}

func (m *Media) sampleRate() float64 {
	if m.buf == nil || m.buf.Format == nil {
		return 0
	}
	return float64(m.buf.Format.SampleRate)
}

func (m *Media) frames() int {
	if m.buf == nil || m.buf.Format == nil {
		return 0
	}
	return len(m.buf.Data) / m.channels()
}

// read writes the next frames into left and right, silence when paused.
// Reaching the end pauses and marks the media ended.
func (m *Media) read(left, right []float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := 0
	if !m.paused {
		ch := m.channels()
		total := m.frames()
		for ; i < len(left) && m.frame < total; i++ {
			idx := m.frame * ch
			l := m.buf.Data[idx]
			r := l
			if ch > 1 {
				r = m.buf.Data[idx+1]
			}
			left[i] = l * m.volume
			right[i] = r * m.volume
			m.frame++
		}
		if m.frame >= total {
			m.paused = true
			m.ended = true
		}
	}
	clear(left[i:])
	clear(right[i:])
}

type mediaSource struct {
	nodeBase
	media *Media
}

func (s *mediaSource) Connect(dst preamp.Node, output int) error {
	return connectNodes(s, dst, output)
}

func (s *mediaSource) process(_ [2][]float64, _ float64) {
	s.media.read(s.outputs[0][0], s.outputs[0][1])
}
