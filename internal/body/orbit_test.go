package body_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitlab/internal/body"
	"github.com/san-kum/orbitlab/internal/vec"
)

var _ = Describe("circular two-body orbit", func() {
	const (
		centralMass = 1.989e30
		radius      = 1.496e11
		dt          = 3600.0
	)

	var bodies []*body.Body

	BeforeEach(func() {
		// Circular orbit speed v = sqrt(G*M/r).
		v := math.Sqrt(body.G * centralMass / radius)
		bodies = []*body.Body{
			body.New("star", centralMass, vec.Zero(3), vec.Zero(3)),
			body.New("planet", 5.972e24, vec.New3(radius, 0, 0), vec.New3(0, v, 0)),
		}
	})

	step := func(n int) {
		for s := 0; s < n; s++ {
			for i, b := range bodies {
				b.StepEulerCromer(bodies, i, dt)
			}
		}
	}

	It("keeps the orbital radius bounded over many steps", func() {
		step(24 * 365)

		r := bodies[1].Pos.Sub(bodies[0].Pos).Magnitude()
		Expect(r).To(BeNumerically(">", radius*0.9))
		Expect(r).To(BeNumerically("<", radius*1.1))
	})

	It("bounds the energy drift of the semi-implicit method", func() {
		e0 := body.TotalEnergy(bodies)
		step(24 * 100)
		e1 := body.TotalEnergy(bodies)

		Expect(e0).To(BeNumerically("<", 0))
		Expect(math.Abs((e1 - e0) / e0)).To(BeNumerically("<", 1e-2))
	})

	It("conserves total momentum to within integration error", func() {
		p0 := body.TotalMomentum(bodies)
		step(24 * 100)
		p1 := body.TotalMomentum(bodies)

		// Pairwise forces are equal and opposite; drift comes only from the
		// sequential update ordering and stays small against the planet's
		// own momentum.
		scale := bodies[1].Mass * bodies[1].Vel.Magnitude()
		Expect(p1.Sub(p0).Magnitude() / scale).To(BeNumerically("<", 1e-3))
	})

	It("remains finite for the full default dataset", func() {
		bodies = body.DefaultSolarSystem()
		step(24 * 30)

		for _, b := range bodies {
			Expect(b.IsFinite()).To(BeTrue(), "%s diverged", b.Name)
		}
	})
})
