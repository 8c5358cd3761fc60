package main

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-preamp/host/soft"
	"github.com/cwbudde/algo-preamp/preamp"
)

const renderBlock = 1024

type renderCmd struct {
	toneFlags

	BitDepth int     `default:"16" help:"Output bit depth (16 or 24)."`
	Tail     float64 `default:"0.5" help:"Seconds of silence rendered after the input for filter tails."`
	In       string  `arg:"" type:"existingfile" help:"Input WAV file."`
	Out      string  `arg:"" type:"path" help:"Output WAV file."`
}

func (r *renderCmd) Run(log *slog.Logger) error {
	if r.BitDepth != 16 && r.BitDepth != 24 {
		return fmt.Errorf("bit depth %d: want 16 or 24", r.BitDepth)
	}
	buf, err := readWAV(r.In)
	if err != nil {
		return err
	}
	sr := float64(buf.Format.SampleRate)
	frames := len(buf.Data)/buf.Format.NumChannels + int(r.Tail*sr)

	c, ctl, err := newChain(sr, soft.NewMedia(buf), r.toneFlags, log)
	if err != nil {
		return err
	}
	defer c.Close()

	left, right, peak := renderAll(c, ctl, frames)
	if err := writeWAV(r.Out, left, right, buf.Format.SampleRate, r.BitDepth); err != nil {
		return err
	}

	bass, treble := ctl.EffectiveTone()
	fmt.Printf("%s: %d frames at %d Hz, bass %+.2f dB, treble %+.2f dB\n",
		r.Out, frames, buf.Format.SampleRate, bass, treble)
	fmt.Printf("peak level: left %.1f, right %.1f (of 255)\n", peak.Left, peak.Right)
	return nil
}

// renderAll renders frames of output in blocks and returns them with the
// highest level readout seen after any block.
func renderAll(c *soft.Context, ctl *preamp.Controller, frames int) (left, right []float64, peak preamp.Levels) {
	left = make([]float64, frames)
	right = make([]float64, frames)
	for i := 0; i < frames; i += renderBlock {
		end := min(i+renderBlock, frames)
		c.Render(left[i:end], right[i:end])

		lv := ctl.Levels()
		peak.Left = max(peak.Left, lv.Left)
		peak.Right = max(peak.Right, lv.Right)
	}
	return left, right, peak
}
