package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	c := DeterministicNoise(43, 1.0, 64)
	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestInterleave(t *testing.T) {
	buf := Interleave(44100, []float64{1, 2, 3}, []float64{-1, -2, -3})
	if buf.Format.NumChannels != 2 || buf.Format.SampleRate != 44100 {
		t.Fatalf("format = %+v", buf.Format)
	}
	want := []float64{1, -1, 2, -2, 3, -3}
	if len(buf.Data) != len(want) {
		t.Fatalf("len = %d, want %d", len(buf.Data), len(want))
	}
	for i := range want {
		if buf.Data[i] != want[i] {
			t.Fatalf("data[%d] = %v, want %v", i, buf.Data[i], want[i])
		}
	}
}

func TestRMS(t *testing.T) {
	if RMS(nil) != 0 {
		t.Fatal("RMS(nil) != 0")
	}
	s := DeterministicSine(1000, 48000, 1, 4800)
	RequireNearlyEqual(t, "RMS", RMS(s), 1/math.Sqrt2, 1e-9)
}
