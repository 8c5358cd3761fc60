package main

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var errNotWAV = errors.New("not a PCM WAV file")

// readWAV decodes a whole PCM WAV file into samples in [-1, 1].
func readWAV(path string) (*audio.FloatBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%s: %w", path, errNotWAV)
	}
	ib, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: decode: %w", path, err)
	}
	if ib.Format == nil || ib.Format.NumChannels < 1 || ib.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("%s: %w", path, errNotWAV)
	}

	depth := int(dec.BitDepth)
	if depth < 8 || depth > 32 {
		return nil, fmt.Errorf("%s: unsupported bit depth %d", path, depth)
	}
	scale := 1 / math.Ldexp(1, depth-1)

	fb := &audio.FloatBuffer{
		Format: &audio.Format{NumChannels: ib.Format.NumChannels, SampleRate: ib.Format.SampleRate},
		Data:   make([]float64, len(ib.Data)),
	}
	for i, v := range ib.Data {
		fb.Data[i] = float64(v) * scale
	}
	return fb, nil
}

// writeWAV encodes left and right as interleaved stereo PCM, clipping to
// full scale.
func writeWAV(path string, left, right []float64, sampleRate, bitDepth int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	full := math.Ldexp(1, bitDepth-1) - 1
	ib := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: sampleRate},
		Data:           make([]int, 2*len(left)),
		SourceBitDepth: bitDepth,
	}
	for i := range left {
		ib.Data[2*i] = quantize(left[i], full)
		ib.Data[2*i+1] = quantize(right[i], full)
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, 2, 1)
	if err := enc.Write(ib); err != nil {
		return fmt.Errorf("%s: encode: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%s: finalize: %w", path, err)
	}
	return nil
}

func quantize(x, full float64) int {
	return int(math.Round(math.Max(-1, math.Min(1, x)) * full))
}
