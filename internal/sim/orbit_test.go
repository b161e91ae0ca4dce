package sim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/solarsim/internal/physics"
	"github.com/san-kum/solarsim/internal/render"
	"github.com/san-kum/solarsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	sunMass = 1.9885e30
	orbitR  = 5.79e10
)

var _ = Describe("Simulation", func() {
	var (
		s       *sim.Simulation
		planet  *physics.Body
		surface *render.Blank
	)

	build := func(dt float64, velocity r3.Vec) {
		var err error
		s, err = sim.New(dt)
		Expect(err).NotTo(HaveOccurred())

		_, err = s.AddBody(physics.Descriptor{Name: "Sun", Kind: physics.Star, Mass: sunMass, Radius: 696340})
		Expect(err).NotTo(HaveOccurred())

		planet, err = s.AddBody(physics.Descriptor{
			Name:     "Mercury",
			Mass:     0.33e24,
			Radius:   2439.7,
			Position: r3.Vec{X: orbitR},
			Velocity: velocity,
		})
		Expect(err).NotTo(HaveOccurred())

		surface = render.NewBlank()
	}

	circular := r3.Vec{Y: math.Sqrt(physics.G * sunMass / orbitR)}
	period := 2 * math.Pi * math.Sqrt(orbitR*orbitR*orbitR/(physics.G*sunMass))

	DescribeTable("circular orbit stays in a radius band over one period",
		func(dt, tolerance float64) {
			build(dt, circular)
			steps := int(period/dt) + 1

			for i := 0; i < steps; i++ {
				s.Update()
				r := planet.Distance()
				Expect(r).To(BeNumerically("~", orbitR, orbitR*tolerance), "step %d", i)
			}
		},
		Entry("one day", sim.Day, 0.05),
		Entry("one hour", sim.Hour, 0.005),
	)

	Context("Mercury with its observed orbital speed", func() {
		BeforeEach(func() {
			build(sim.Day, r3.Vec{Y: 47400})
		})

		It("completes its trail shortly after one Mercury year", func() {
			completedAt := 0
			for i := 1; i <= 200 && completedAt == 0; i++ {
				s.Update()
				s.Draw(surface)
				if planet.Trail().Completed() {
					completedAt = i
				}
			}

			Expect(completedAt).To(BeNumerically(">=", 88))
			Expect(completedAt).To(BeNumerically("<=", 110))
		})

		It("grows the trail monotonically and freezes it after completion", func() {
			prev := 0
			frozen := -1
			for i := 1; i <= 200; i++ {
				s.Update()
				s.Draw(surface)

				n := planet.Trail().Len()
				Expect(n).To(BeNumerically(">=", prev))
				Expect(n).To(BeNumerically("<=", i))

				if frozen >= 0 {
					Expect(n).To(Equal(frozen))
				} else if planet.Trail().Completed() {
					frozen = n
				}
				prev = n
			}
			Expect(frozen).To(BeNumerically(">", 0))
		})

		It("keeps the star fixed while the planet moves", func() {
			star := s.Bodies()[0]
			for i := 0; i < 30; i++ {
				s.Update()
			}
			Expect(star.Pos).To(Equal(r3.Vec{}))
			Expect(planet.Pos).NotTo(Equal(r3.Vec{X: orbitR}))
			Expect(planet.IsValid()).To(BeTrue())
		})
	})

	It("samples every moving body each frame and leaves the star unsampled", func() {
		build(sim.Day, circular)
		for i := 0; i < 3; i++ {
			s.Update()
			s.Draw(surface)
		}

		for _, b := range s.Bodies() {
			want := 3
			if b.IsStar() {
				want = 0
			}
			Expect(b.Trail().Len()).To(Equal(want), b.Name())
		}
	})
})
