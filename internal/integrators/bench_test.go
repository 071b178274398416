package integrators

import (
	"testing"

	"github.com/san-kum/vibsim/internal/dynamo"
	"github.com/san-kum/vibsim/internal/physics"
)

func benchSystem() dynamo.System {
	return physics.NewTwoMassSpring(physics.DefaultParams())
}

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler()
	dyn := benchSystem()
	x := dynamo.State{0.3, 0, 0.6, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	dyn := benchSystem()
	x := dynamo.State{0.3, 0, 0.6, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
	}
}

func BenchmarkRK45(b *testing.B) {
	integrator := NewRK45()
	dyn := benchSystem()
	x := dynamo.State{0.3, 0, 0.6, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
	}
}
