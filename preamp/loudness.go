package preamp

import "math"

const (
	// LoudnessKnee is the volume at and above which no compensation applies.
	LoudnessKnee = 0.7

	loudnessBassDB   = 8.0
	loudnessTrebleDB = 4.0
)

// LoudnessIntensity returns the compensation amount in [0, 1] for a volume
// in [0, 1]. It is 1 at silence and reaches 0 at [LoudnessKnee].
func LoudnessIntensity(volume float64) float64 {
	return math.Max(0, (LoudnessKnee-volume)/LoudnessKnee)
}

// Loudness returns the bass and treble gains in dB to apply for the given
// baseline gains and playback volume. With active false the baseline is
// returned unchanged.
func Loudness(bassDB, trebleDB, volume float64, active bool) (bass, treble float64) {
	if !active {
		return bassDB, trebleDB
	}
	k := LoudnessIntensity(volume)
	return bassDB + k*loudnessBassDB, trebleDB + k*loudnessTrebleDB
}
