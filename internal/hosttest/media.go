package hosttest

import "context"

// Media is a fake media element.
type Media struct {
	PlayErr error
	Plays   int
	Pauses  int

	paused bool
	time   float64
	volume float64
}

// NewMedia returns a paused media element at full volume.
func NewMedia() *Media {
	return &Media{paused: true, volume: 1}
}

func (m *Media) Play(ctx context.Context) error {
	m.Plays++
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.PlayErr != nil {
		return m.PlayErr
	}
	m.paused = false
	return nil
}

func (m *Media) Pause() {
	m.Pauses++
	m.paused = true
}

func (m *Media) Paused() bool             { return m.paused }
func (m *Media) CurrentTime() float64     { return m.time }
func (m *Media) SetCurrentTime(t float64) { m.time = t }
func (m *Media) Volume() float64          { return m.volume }
func (m *Media) SetVolume(v float64)      { m.volume = v }
