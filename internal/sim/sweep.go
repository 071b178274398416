package sim

import (
	"context"
	"sync"

	"github.com/san-kum/vibsim/internal/dynamo"
)

// Sweep runs independent simulations over a set of initial states, one
// goroutine per run. Factories are invoked per worker so integrator
// scratch buffers are never shared.
type Sweep struct {
	newSystem     func() dynamo.System
	newIntegrator func() dynamo.Integrator
}

func NewSweep(newSystem func() dynamo.System, newIntegrator func() dynamo.Integrator) *Sweep {
	return &Sweep{newSystem: newSystem, newIntegrator: newIntegrator}
}

func (sw *Sweep) Run(ctx context.Context, inits []dynamo.State, cfg Config) ([]*Trajectory, error) {
	results := make([]*Trajectory, len(inits))
	errs := make([]error, len(inits))

	var wg sync.WaitGroup
	for i := range inits {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			s := New(sw.newSystem(), sw.newIntegrator())
			results[idx], errs[idx] = s.Run(ctx, inits[idx], cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}

	return results, nil
}
