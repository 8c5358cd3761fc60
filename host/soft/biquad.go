package soft

import (
	"math"
	"math/cmplx"
)

// coefficients of one second-order section, a0 normalized to 1, in the
// Direct Form II Transposed convention:
//
//	y  = b0*x + d0
//	d0 = b1*x - a1*y + d1
//	d1 = b2*x - a2*y
type coefficients struct {
	b0, b1, b2 float64
	a1, a2     float64
}

var identity = coefficients{b0: 1}

type section struct {
	coefficients
	d0, d1 float64
}

func (s *section) processBlock(buf []float64) {
	b0, b1, b2 := s.b0, s.b1, s.b2
	a1, a2 := s.a1, s.a2
	d0, d1 := s.d0, s.d1

	for i, x := range buf {
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	s.d0, s.d1 = flushDenormal(d0), flushDenormal(d1)
}

func flushDenormal(x float64) float64 {
	if x > -1e-30 && x < 1e-30 {
		return 0
	}
	return x
}

// response returns H(e^jw) at freq Hz.
func (c coefficients) response(freq, sampleRate float64) complex128 {
	w := 2 * math.Pi * freq / sampleRate
	z1 := cmplx.Exp(complex(0, -w))
	z2 := z1 * z1
	num := complex(c.b0, 0) + complex(c.b1, 0)*z1 + complex(c.b2, 0)*z2
	den := 1 + complex(c.a1, 0)*z1 + complex(c.a2, 0)*z2
	return num / den
}

func (c coefficients) magnitudeDB(freq, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.response(freq, sampleRate)))
}

// RBJ cookbook designs. Shelves use slope S = 1, as Web Audio does.

func designPeaking(freq, q, gainDB, sampleRate float64) coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok || q <= 0 {
		return identity
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a := math.Pow(10, gainDB/40)

	return normalize(
		1+alpha*a, -2*cw, 1-alpha*a,
		1+alpha/a, -2*cw, 1-alpha/a,
	)
}

func designLowShelf(freq, gainDB, sampleRate float64) coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return identity
	}

	cw := math.Cos(w0)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * math.Sin(w0) / math.Sqrt2

	return normalize(
		a*((a+1)-(a-1)*cw+beta), 2*a*((a-1)-(a+1)*cw), a*((a+1)-(a-1)*cw-beta),
		(a+1)+(a-1)*cw+beta, -2*((a-1)+(a+1)*cw), (a+1)+(a-1)*cw-beta,
	)
}

func designHighShelf(freq, gainDB, sampleRate float64) coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return identity
	}

	cw := math.Cos(w0)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * math.Sin(w0) / math.Sqrt2

	return normalize(
		a*((a+1)+(a-1)*cw+beta), -2*a*((a-1)+(a+1)*cw), a*((a+1)+(a-1)*cw-beta),
		(a+1)-(a-1)*cw+beta, 2*((a-1)-(a+1)*cw), (a+1)-(a-1)*cw-beta,
	)
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || freq <= 0 || freq >= sampleRate/2 || math.IsNaN(freq) {
		return 0, false
	}
	return 2 * math.Pi * freq / sampleRate, true
}

func normalize(b0, b1, b2, a0, a1, a2 float64) coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return identity
	}
	inv := 1 / a0
	return coefficients{
		b0: b0 * inv,
		b1: b1 * inv,
		b2: b2 * inv,
		a1: a1 * inv,
		a2: a2 * inv,
	}
}
