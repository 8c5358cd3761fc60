// Command preamp runs the preamp chain offline on the software audio host.
//
// Usage:
//
//	preamp response [flags]
//	preamp render [flags] IN.wav OUT.wav
//
// Examples:
//
//	preamp response --bass 6 --loudness --volume 0.3
//	preamp response --band 1000=4 --band 64=-3 --balance -0.5
//	preamp render --treble 3 in.wav out.wav
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-preamp/host/soft"
	"github.com/cwbudde/algo-preamp/preamp"
)

// CLI defines the command-line interface.
type CLI struct {
	Verbose bool `short:"v" help:"Log audio graph events."`

	Response responseCmd `cmd:"" help:"Print the chain's magnitude response at each band frequency."`
	Render   renderCmd   `cmd:"" help:"Process a WAV file through the chain."`
}

// toneFlags are the controller settings shared by all commands.
type toneFlags struct {
	Volume   float64            `default:"1" help:"Media volume in [0, 1]."`
	Bass     float64            `help:"Bass shelf gain in dB."`
	Treble   float64            `help:"Treble shelf gain in dB."`
	Loudness bool               `help:"Apply loudness compensation."`
	Balance  float64            `help:"Stereo balance in [-1, 1]."`
	Band     map[string]float64 `short:"b" placeholder:"FREQ=DB" help:"Band gain in dB, repeatable."`
}

var errInit = errors.New("audio graph initialization failed")

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("preamp"),
		kong.Description("Offline preamp chain: tone controls, 10-band EQ, balance and level meters."),
		kong.UsageOnError(),
	)

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx.FatalIfErrorf(ctx.Run(log))
}

// newChain builds a running controller over media on a software context at
// sampleRate and applies t. The context starts running and parameters jump
// instead of ramping, so the settings hold from the first rendered frame.
func newChain(sampleRate float64, media *soft.Media, t toneFlags, log *slog.Logger) (*soft.Context, *preamp.Controller, error) {
	c := soft.New(soft.WithSampleRate(sampleRate), soft.WithStartState(preamp.StateRunning))
	ctl := preamp.NewController(media, c.AsHost(),
		preamp.WithTimeConstant(0),
		preamp.WithLogger(log))

	ctl.Initialize()
	if !ctl.Initialized() {
		return nil, nil, errInit
	}

	for key, gain := range t.Band {
		freq, err := strconv.ParseFloat(key, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("band %q: %w", key, err)
		}
		if _, ok := preamp.BandAt(freq); !ok {
			return nil, nil, fmt.Errorf("no band at %g Hz, have %v", freq, preamp.BandFrequencies())
		}
		ctl.SetCustomFilter(freq, gain)
	}

	ctl.SetVolume(t.Volume)
	ctl.SetBalance(t.Balance)
	// Loudness depends on the volume set above.
	ctl.UpdateEQ(t.Bass, t.Treble, t.Loudness)

	if err := ctl.Play(context.Background()); err != nil {
		return nil, nil, fmt.Errorf("start playback: %w", err)
	}
	return c, ctl, nil
}
