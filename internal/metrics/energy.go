package metrics

import (
	"math"

	"github.com/san-kum/vibsim/internal/dynamo"
)

// EnergyDrift tracks the worst relative deviation of total mechanical
// energy from its initial value over a run. For an undamped chain this
// is purely integration error.
type EnergyDrift struct {
	name          string
	dyn           dynamo.System
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(dyn dynamo.System) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		dyn:  dyn,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, t float64) {
	h, ok := e.dyn.(dynamo.Hamiltonian)
	if !ok {
		return
	}

	energy := h.Energy(x)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// PeakDisplacement records the largest excursion of one state component
// from a reference value, e.g. a mass position from its equilibrium.
type PeakDisplacement struct {
	name string
	idx  int
	ref  float64
	peak float64
}

func NewPeakDisplacement(name string, idx int, ref float64) *PeakDisplacement {
	return &PeakDisplacement{name: name, idx: idx, ref: ref}
}

func (p *PeakDisplacement) Name() string { return p.name }

func (p *PeakDisplacement) Observe(x dynamo.State, t float64) {
	if p.idx >= len(x) {
		return
	}
	p.peak = math.Max(p.peak, math.Abs(x[p.idx]-p.ref))
}

func (p *PeakDisplacement) Value() float64 { return p.peak }

func (p *PeakDisplacement) Reset() { p.peak = 0 }
