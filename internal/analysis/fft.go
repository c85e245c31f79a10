package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// FFT is the discrete Fourier transform of a real series of any length.
func FFT(data []float64) []complex128 {
	return fft.FFTReal(data)
}

func PowerSpectrum(data []float64) []float64 {
	coeffs := FFT(data)
	ps := make([]float64, len(coeffs)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}

	return ps
}

// DominantPeriod estimates the main oscillation period of evenly spaced
// samples. The mean is removed, a Hann window applied and the series zero
// padded to a power of two.
// ok is false for series that are too short, non-finite or flat.
func DominantPeriod(samples []float64, dt float64) (period float64, ok bool) {
	if len(samples) < 4 || dt <= 0 {
		return 0, false
	}

	mean := 0.0
	for _, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		mean += v
	}
	mean /= float64(len(samples))

	n := 1
	for n < len(samples) {
		n *= 2
	}
	padded := make([]float64, n)
	for i, v := range samples {
		padded[i] = v - mean
	}

	window.Apply(padded[:len(samples)], window.Hann)

	ps := PowerSpectrum(padded)

	maxPower, maxIdx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower, maxIdx = ps[i], i
		}
	}
	if maxIdx == 0 || maxPower < 1e-12 {
		return 0, false
	}

	return float64(n) * dt / float64(maxIdx), true
}
