package preamp

import "testing"

func TestBandAt(t *testing.T) {
	for i, f := range BandFrequencies() {
		b, ok := BandAt(f)
		if !ok || int(b) != i {
			t.Errorf("BandAt(%g) = %d, %v; want %d", f, b, ok, i)
		}
		if b.Frequency() != f {
			t.Errorf("Band(%d).Frequency() = %g, want %g", b, b.Frequency(), f)
		}
	}

	for _, f := range []float64{0, 31, 999, 1000.5, 20000, -32} {
		if _, ok := BandAt(f); ok {
			t.Errorf("BandAt(%g) matched", f)
		}
	}
}

func TestBandFrequenciesAscending(t *testing.T) {
	fs := BandFrequencies()
	if len(fs) != NumBands {
		t.Fatalf("len = %d, want %d", len(fs), NumBands)
	}
	for i := 1; i < len(fs); i++ {
		if fs[i] <= fs[i-1] {
			t.Fatalf("not ascending at %d: %v", i, fs)
		}
	}

	fs[0] = 1
	if BandFrequencies()[0] != 32 {
		t.Fatal("BandFrequencies exposes internal storage")
	}
}

func TestBandFrequencyOutOfRange(t *testing.T) {
	if Band(-1).Frequency() != 0 || Band(NumBands).Frequency() != 0 {
		t.Fatal("out-of-range band has a frequency")
	}
}

func TestApplyOptions(t *testing.T) {
	cfg := ApplyOptions()
	if cfg.AnalyserSize != 1024 || cfg.TimeConstant != 0.01 || cfg.Logger == nil {
		t.Fatalf("defaults = %+v", cfg)
	}

	cfg = ApplyOptions(WithAnalyserSize(-1), WithTimeConstant(-1), WithLogger(nil), nil)
	if cfg.AnalyserSize != 1024 || cfg.TimeConstant != 0.01 {
		t.Fatalf("invalid options applied: %+v", cfg)
	}

	cfg = ApplyOptions(WithAnalyserSize(2048), WithTimeConstant(0))
	if cfg.AnalyserSize != 2048 || cfg.TimeConstant != 0 {
		t.Fatalf("options not applied: %+v", cfg)
	}
}
