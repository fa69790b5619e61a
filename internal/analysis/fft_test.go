package analysis

import (
	"math"
	"testing"
)

func TestFFT_Impulse(t *testing.T) {
	// The transform of a unit impulse is flat.
	data := []float64{1, 0, 0, 0}
	got := FFT(data)

	for i, c := range got {
		if math.Abs(real(c)-1) > 1e-12 || math.Abs(imag(c)) > 1e-12 {
			t.Errorf("bin %d = %v, want 1+0i", i, c)
		}
	}
}

func TestFFT_Parseval(t *testing.T) {
	data := []float64{1, -2, 3, 0.5, -1, 2, 0, 4}

	timeEnergy := 0.0
	for _, v := range data {
		timeEnergy += v * v
	}

	freqEnergy := 0.0
	for _, c := range FFT(data) {
		m := real(c)*real(c) + imag(c)*imag(c)
		freqEnergy += m
	}
	freqEnergy /= float64(len(data))

	if math.Abs(timeEnergy-freqEnergy)/timeEnergy > 1e-10 {
		t.Errorf("Parseval mismatch: time %v vs freq %v", timeEnergy, freqEnergy)
	}
}

func TestPowerSpectrum_PadsToPowerOfTwo(t *testing.T) {
	// 6 samples pad to 8; the spectrum is the positive-frequency half.
	data := []float64{1, 2, 3, 4, 5, 6}
	ps := PowerSpectrum(data)
	if len(ps) != 4 {
		t.Errorf("spectrum length = %d, want 4", len(ps))
	}
}

func TestDominantPeriod_Sine(t *testing.T) {
	const (
		period  = 32.0
		dt      = 1.0
		samples = 256
	)
	data := make([]float64, samples)
	for i := range data {
		data[i] = 5 * math.Sin(2*math.Pi*float64(i)*dt/period)
	}

	got := DominantPeriod(data, dt)
	if math.Abs(got-period)/period > 0.1 {
		t.Errorf("dominant period = %v, want ~%v", got, period)
	}
}

func TestDominantPeriod_Degenerate(t *testing.T) {
	if got := DominantPeriod([]float64{1, 1}, 1); got != 0 {
		t.Errorf("short input: got %v, want 0", got)
	}
	if got := DominantPeriod(make([]float64, 64), 1); got != 0 {
		t.Errorf("constant input: got %v, want 0", got)
	}
	if got := DominantPeriod([]float64{1, 2, 3, 4}, 0); got != 0 {
		t.Errorf("zero dt: got %v, want 0", got)
	}
}
