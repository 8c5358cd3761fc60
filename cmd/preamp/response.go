package main

import (
	"fmt"
	"log/slog"
	"math"
	"math/cmplx"
	"os"
	"text/tabwriter"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/go-audio/audio"

	"github.com/cwbudde/algo-preamp/host/soft"
	"github.com/cwbudde/algo-preamp/preamp"
)

const responseSize = 1 << 15

type responseCmd struct {
	toneFlags

	SampleRate float64   `default:"48000" help:"Context sample rate in Hz."`
	Freq       []float64 `help:"Frequencies to report instead of the band centres."`
}

type responseRow struct {
	Freq        float64
	Left, Right float64 // dB
}

func (r *responseCmd) Run(log *slog.Logger) error {
	freqs := r.Freq
	if len(freqs) == 0 {
		freqs = preamp.BandFrequencies()
	}

	rows, bass, treble, err := measureResponse(r.toneFlags, r.SampleRate, freqs, log)
	if err != nil {
		return err
	}
	return printResponse(rows, bass, treble)
}

// measureResponse renders a unit impulse through the chain and reads the
// magnitude of each channel's FFT at the bin nearest each frequency.
func measureResponse(t toneFlags, sampleRate float64, freqs []float64, log *slog.Logger) ([]responseRow, float64, float64, error) {
	impulse := &audio.FloatBuffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: int(sampleRate)},
		Data:   make([]float64, responseSize),
	}
	impulse.Data[0] = 1

	c, ctl, err := newChain(sampleRate, soft.NewMedia(impulse), t, log)
	if err != nil {
		return nil, 0, 0, err
	}
	defer c.Close()

	left := make([]float64, responseSize)
	right := make([]float64, responseSize)
	c.Render(left, right)

	plan, err := algofft.NewPlan64(responseSize)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("fft plan: %w", err)
	}
	specL, err := spectrum(plan, left)
	if err != nil {
		return nil, 0, 0, err
	}
	specR, err := spectrum(plan, right)
	if err != nil {
		return nil, 0, 0, err
	}

	rows := make([]responseRow, 0, len(freqs))
	for _, f := range freqs {
		k := int(math.Round(f * responseSize / sampleRate))
		if k < 0 || k > responseSize/2 {
			return nil, 0, 0, fmt.Errorf("frequency %g Hz outside [0, %g]", f, sampleRate/2)
		}
		rows = append(rows, responseRow{
			Freq:  f,
			Left:  20 * math.Log10(cmplx.Abs(specL[k])),
			Right: 20 * math.Log10(cmplx.Abs(specR[k])),
		})
	}

	bass, treble := ctl.EffectiveTone()
	return rows, bass, treble, nil
}

func spectrum(plan *algofft.Plan[complex128], x []float64) ([]complex128, error) {
	in := make([]complex128, len(x))
	for i, v := range x {
		in[i] = complex(v, 0)
	}
	out := make([]complex128, len(x))
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("fft: %w", err)
	}
	return out, nil
}

func printResponse(rows []responseRow, bass, treble float64) error {
	fmt.Printf("effective tone: bass %+.2f dB, treble %+.2f dB\n\n", bass, treble)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Freq [Hz]\tLeft [dB]\tRight [dB]\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "---------\t---------\t----------\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%g\t%.2f\t%.2f\n", r.Freq, r.Left, r.Right); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return tw.Flush()
}
