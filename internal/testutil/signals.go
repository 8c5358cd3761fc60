package testutil

import (
	"math"
	"math/rand"

	"github.com/go-audio/audio"
)

// DeterministicSine generates a sine wave starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Interleave packs per-channel signals of equal length into a PCM buffer.
func Interleave(sampleRate int, channels ...[]float64) *audio.FloatBuffer {
	frames := 0
	if len(channels) > 0 {
		frames = len(channels[0])
	}
	data := make([]float64, frames*len(channels))
	for f := range frames {
		for ch, s := range channels {
			data[f*len(channels)+ch] = s[f]
		}
	}
	return &audio.FloatBuffer{
		Format: &audio.Format{NumChannels: len(channels), SampleRate: sampleRate},
		Data:   data,
	}
}

// StereoSine returns a buffer with the same sine on both channels.
func StereoSine(freqHz float64, sampleRate int, amplitude float64, frames int) *audio.FloatBuffer {
	s := DeterministicSine(freqHz, float64(sampleRate), amplitude, frames)
	return Interleave(sampleRate, s, s)
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
