package preamp

// Band identifies one of the graphic equalizer bands.
type Band int

const (
	Band32 Band = iota
	Band64
	Band125
	Band250
	Band500
	Band1k
	Band2k
	Band4k
	Band8k
	Band16k

	NumBands = int(Band16k) + 1
)

const (
	// BandQ is the quality factor of every equalizer band.
	BandQ = 1.4

	BassFrequency   = 200.0
	TrebleFrequency = 3000.0
)

var bandFrequencies = [NumBands]float64{32, 64, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}

// Frequency returns the center frequency of b in Hz.
func (b Band) Frequency() float64 {
	if b < 0 || int(b) >= NumBands {
		return 0
	}
	return bandFrequencies[b]
}

// BandAt returns the band centered exactly at freq.
func BandAt(freq float64) (Band, bool) {
	for i, f := range bandFrequencies {
		if f == freq {
			return Band(i), true
		}
	}
	return 0, false
}

// BandFrequencies returns the band centers in ascending order.
func BandFrequencies() []float64 {
	out := make([]float64, NumBands)
	copy(out, bandFrequencies[:])
	return out
}
