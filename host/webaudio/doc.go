// Package webaudio implements the preamp host interfaces over the browser
// Web Audio API and HTMLMediaElement. It builds only for js/wasm.
//
// [Host] picks AudioContext, falling back to webkitAudioContext, so callers
// and package preamp carry no environment detection of their own.
package webaudio
