package analysis

import (
	"math"
	"math/bits"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform with an iterative radix-2
// Cooley-Tukey pass. Input is zero-padded to the next power of two.
func FFT(data []float64) []complex128 {
	n := nextPow2(len(data))
	buf := make([]complex128, n)
	for i, v := range data {
		buf[i] = complex(v, 0)
	}

	shift := bits.UintSize - uint(bits.Len(uint(n-1)))
	for i := range buf {
		j := int(bits.Reverse(uint(i)) >> shift)
		if j > i {
			buf[i], buf[j] = buf[j], buf[i]
		}
	}

	for size := 2; size <= n; size *= 2 {
		half := size / 2
		step := cmplx.Exp(complex(0, -2*math.Pi/float64(size)))
		for start := 0; start < n; start += size {
			w := complex(1, 0)
			for k := 0; k < half; k++ {
				even := buf[start+k]
				odd := buf[start+k+half] * w
				buf[start+k] = even + odd
				buf[start+k+half] = even - odd
				w *= step
			}
		}
	}

	return buf
}

// PowerSpectrum returns the magnitude of the positive-frequency half of
// the transform.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(data)
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// DominantFrequency locates the strongest non-DC spectral peak of an
// evenly sampled signal and returns it in rad/s. Parabolic interpolation
// around the peak bin sharpens the estimate beyond the bin resolution.
func DominantFrequency(data []float64, sampleRate float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0
	}

	peak := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[peak] {
			peak = i
		}
	}

	bin := float64(peak)
	if peak > 1 && peak < len(ps)-1 {
		denom := ps[peak-1] - 2*ps[peak] + ps[peak+1]
		if denom != 0 {
			bin += 0.5 * (ps[peak-1] - ps[peak+1]) / denom
		}
	}

	n := 2 * len(ps) // padded signal length
	hz := bin * sampleRate / float64(n)
	return 2 * math.Pi * hz
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
