// Package soft is a pure-Go audio processing host for package preamp.
//
// A [Context] renders a pull-based node graph in fixed quanta. Parameters
// follow Web Audio automation semantics, biquad filters use the RBJ cookbook
// designs, the stereo panner uses the equal-power law, and analysers produce
// byte-scaled frequency magnitudes from a Blackman-windowed FFT. [Media] plays
// an in-memory PCM buffer.
//
// Use [NewHost] or [Context.AsHost] to hand a context to a preamp.Controller
// and [Context.Render] to pull stereo output.
package soft
