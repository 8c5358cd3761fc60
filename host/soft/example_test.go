package soft_test

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-preamp/host/soft"
	"github.com/cwbudde/algo-preamp/internal/testutil"
	"github.com/cwbudde/algo-preamp/preamp"
)

func ExampleContext_Render() {
	c := soft.New(soft.WithStartState(preamp.StateRunning))
	m := soft.NewMedia(testutil.StereoSine(1000, 48000, 0.5, 48000))

	ctl := preamp.NewController(m, c.AsHost())
	ctl.Initialize()
	ctl.SetVolume(0.35)
	ctl.UpdateEQ(0, 0, true)
	if err := ctl.Play(context.Background()); err != nil {
		fmt.Println(err)
		return
	}

	left := make([]float64, 4800)
	right := make([]float64, 4800)
	c.Render(left, right)

	bass, treble := ctl.EffectiveTone()
	fmt.Printf("time: %.4f s\n", c.CurrentTime())
	fmt.Printf("tone: bass %+.1f dB, treble %+.1f dB\n", bass, treble)
	// Output:
	// time: 0.1013 s
	// tone: bass +4.0 dB, treble +2.0 dB
}
