// Package preamp controls a fixed stereo pre-amplifier chain hosted by an
// external audio processing graph.
//
// A [Controller] builds the chain once on [Controller.Initialize]:
//
//	source → balance → bass shelf → treble shelf → 32 Hz … 16 kHz peaking bands
//	       → splitter → analyser L / analyser R
//	       → destination
//
// and maps simple control calls (volume, balance, band gain, bass/treble with
// loudness compensation) onto parameters of the graph nodes. Filtering,
// panning and spectral analysis are performed by the host behind the [Host]
// and [Context] interfaces; package host/soft provides a pure-Go host and
// host/webaudio binds the browser Web Audio API.
//
// Graph-dependent calls made before initialization, or after it failed, are
// no-ops. Media calls (play, pause, stop, volume) always reach the
// [MediaSource].
package preamp
