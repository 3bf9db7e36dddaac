package physics_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/physics"
)

type countingMetric struct {
	observed int
	resets   int
}

func (c *countingMetric) Name() string             { return "count" }
func (c *countingMetric) Observe(dynamo.Snapshot) { c.observed++ }
func (c *countingMetric) Value() float64           { return float64(c.observed) }
func (c *countingMetric) Reset()                   { c.observed = 0; c.resets++ }

func pair(d, m float64) []*physics.Body {
	return []*physics.Body{
		physics.MustBody([]float64{d, 0, 0}, []float64{0, 0, 0}, m),
		physics.MustBody([]float64{-d, 0, 0}, []float64{0, 0, 0}, m),
	}
}

var _ = Describe("Simulate", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("matches the hand-computed first step of a symmetric pair", func() {
		sys, err := physics.NewSystem(params3D(1, 0.1), pair(1, 1)...)
		Expect(err).NotTo(HaveOccurred())

		traj, err := sys.Simulate(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(traj.Times).To(HaveLen(2))
		Expect(traj.Times[1]).To(BeNumerically("~", 0.1, 1e-15))

		v0 := traj.Velocities[0][1]
		Expect(v0[0]).To(BeNumerically("~", -0.025, 1e-15))
		Expect(v0[1]).To(Equal(0.0))
		Expect(v0[2]).To(Equal(0.0))

		// position drifts with the pre-kick velocity, which was zero
		Expect(traj.Positions[0][1]).To(Equal(dynamo.Vector{1, 0, 0}))
		Expect(traj.Positions[1][1]).To(Equal(dynamo.Vector{-1, 0, 0}))
		Expect(traj.Velocities[1][1][0]).To(BeNumerically("~", 0.025, 1e-15))
	})

	It("takes no steps when Steps is zero", func() {
		bodies := []*physics.Body{
			physics.MustBody([]float64{1, 2, 3}, []float64{1, 0, 0}, 1),
			physics.MustBody([]float64{-4, 0, 5}, []float64{0, 1, 0}, 2),
		}
		sys, err := physics.NewSystem(params3D(0, 0.1), bodies...)
		Expect(err).NotTo(HaveOccurred())

		_, err = sys.Simulate(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(sys.T()).To(Equal([]float64{0}))
		for i, b := range bodies {
			Expect(sys.R()[i]).To(Equal([]dynamo.Vector{b.Position0()}))
			Expect(sys.V()[i]).To(Equal([]dynamo.Vector{b.Velocity0()}))
		}
	})

	It("brings a symmetric pair together while conserving momentum", func() {
		sys, err := physics.NewSystem(params3D(50, 0.01), pair(1, 3)...)
		Expect(err).NotTo(HaveOccurred())

		traj, err := sys.Simulate(ctx)
		Expect(err).NotTo(HaveOccurred())

		sep := traj.Separation(0, 1)
		Expect(sep[1]).To(Equal(sep[0]))
		for n := 1; n < len(sep)-1; n++ {
			Expect(sep[n+1]).To(BeNumerically("<", sep[n]), "step %d", n)
		}

		for n := range traj.Times {
			vel := []dynamo.Vector{traj.Velocities[0][n], traj.Velocities[1][n]}
			Expect(physics.Momentum(traj.Masses, vel).Norm()).To(BeNumerically("<", 1e-12), "step %d", n)
		}
	})

	It("keeps a lone body exactly at rest", func() {
		lone := physics.MustBody([]float64{3, -1, 2}, []float64{0, 0, 0}, 7)
		sys, err := physics.NewSystem(params3D(100, 0.05), lone)
		Expect(err).NotTo(HaveOccurred())

		traj, err := sys.Simulate(ctx)
		Expect(err).NotTo(HaveOccurred())
		for n := range traj.Times {
			Expect(traj.Positions[0][n]).To(Equal(dynamo.Vector{3, -1, 2}))
		}
	})

	It("spaces times by Dt starting at zero", func() {
		sys, err := physics.NewSystem(params3D(10, 0.25), pair(5, 1)...)
		Expect(err).NotTo(HaveOccurred())
		_, err = sys.Simulate(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(sys.T()).To(HaveLen(11))
		for n, t := range sys.T() {
			Expect(t).To(BeNumerically("~", 0.25*float64(n), 1e-12))
		}
		for i := range sys.R() {
			Expect(sys.R()[i]).To(HaveLen(11))
			Expect(sys.R()[i][10]).To(HaveLen(3))
		}
	})

	DescribeTable("validates parameters before running",
		func(mutate func(*physics.Params), kind dynamo.Kind) {
			p := params3D(10, 0.1)
			mutate(&p)
			sys, err := physics.NewSystem(p, pair(1, 1)...)
			Expect(err).NotTo(HaveOccurred())

			var calls int
			sys.AddObserver(dynamo.ObserverFunc(func(dynamo.Snapshot) { calls++ }))

			_, err = sys.Simulate(ctx)
			Expect(dynamo.KindOf(err)).To(Equal(kind))
			Expect(calls).To(BeZero())
			Expect(sys.T()).To(BeNil())
		},
		Entry("NaN G", func(p *physics.Params) { p.G = math.NaN() }, dynamo.TypeKind),
		Entry("infinite G", func(p *physics.Params) { p.G = math.Inf(1) }, dynamo.TypeKind),
		Entry("negative Steps", func(p *physics.Params) { p.Steps = -1 }, dynamo.TypeKind),
		Entry("NaN Dt", func(p *physics.Params) { p.Dt = math.NaN() }, dynamo.TypeKind),
		Entry("unknown integrator", func(p *physics.Params) { p.Integrator = "rk4" }, dynamo.ValueKind),
		Entry("negative workers", func(p *physics.Params) { p.Workers = -1 }, dynamo.ValueKind),
	)

	It("fails fast on a zero-mass body", func() {
		bodies := []*physics.Body{
			physics.MustBody([]float64{1, 0, 0}, []float64{0, 0, 0}, 1),
			physics.MustBody([]float64{-1, 0, 0}, []float64{0, 0, 0}, 0),
		}
		sys, err := physics.NewSystem(params3D(10, 0.1), bodies...)
		Expect(err).NotTo(HaveOccurred())
		_, err = sys.Simulate(ctx)
		Expect(err).To(MatchError(dynamo.ErrDegenerate))
	})

	It("reports the step and bodies when two bodies meet", func() {
		bodies := []*physics.Body{
			physics.MustBody([]float64{1, 0, 0}, []float64{-10, 0, 0}, 1),
			physics.MustBody([]float64{-1, 0, 0}, []float64{10, 0, 0}, 1),
		}
		p := params3D(5, 0.1)
		p.G = 0
		sys, err := physics.NewSystem(p, bodies...)
		Expect(err).NotTo(HaveOccurred())

		_, err = sys.Simulate(ctx)
		Expect(err).To(MatchError(dynamo.ErrDegenerate))

		var simErr *dynamo.SimulationError
		Expect(err).To(BeAssignableToTypeOf(simErr))
		simErr = err.(*dynamo.SimulationError)
		Expect(simErr.Step).To(Equal(1))
		Expect(simErr.Time).To(BeNumerically("~", 0.1, 1e-15))
		Expect(simErr.Bodies).To(Equal([]int{0, 1}))
	})

	It("restarts from the initial state on every call", func() {
		sys, err := physics.NewSystem(params3D(20, 0.01), pair(1, 1)...)
		Expect(err).NotTo(HaveOccurred())

		first, err := sys.Simulate(ctx)
		Expect(err).NotTo(HaveOccurred())
		second, err := sys.Simulate(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(second.Positions).To(Equal(first.Positions))
		Expect(second.Velocities).To(Equal(first.Velocities))
	})

	It("never mutates the bodies it was given", func() {
		bodies := pair(1, 1)
		sys, err := physics.NewSystem(params3D(20, 0.01), bodies...)
		Expect(err).NotTo(HaveOccurred())
		_, err = sys.Simulate(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(bodies[0].PositionT()).To(Equal(dynamo.Vector{1, 0, 0}))
		Expect(bodies[0].VelocityT()).To(Equal(dynamo.Vector{0, 0, 0}))

		pos, vel := sys.Current(0)
		Expect(pos).To(Equal(sys.R()[0][20]))
		Expect(vel).To(Equal(sys.V()[0][20]))

		snap, err := sys.Snapshot()
		Expect(err).NotTo(HaveOccurred())
		Expect(snap[0].PositionT()).To(Equal(pos))
		Expect(snap[0].Position0()).To(Equal(dynamo.Vector{1, 0, 0}))
	})

	It("produces identical results with parallel force evaluation", func() {
		var bodies []*physics.Body
		for i := 0; i < 20; i++ {
			angle := 2 * math.Pi * float64(i) / 20
			bodies = append(bodies, physics.MustBody(
				[]float64{10 * math.Cos(angle), 10 * math.Sin(angle), float64(i%3) - 1},
				[]float64{-math.Sin(angle), math.Cos(angle), 0},
				1+float64(i%4),
			))
		}

		serial, err := physics.NewSystem(params3D(30, 0.01), bodies...)
		Expect(err).NotTo(HaveOccurred())
		p := params3D(30, 0.01)
		p.Workers = 4
		parallel, err := physics.NewSystem(p, bodies...)
		Expect(err).NotTo(HaveOccurred())

		a, err := serial.Simulate(ctx)
		Expect(err).NotTo(HaveOccurred())
		b, err := parallel.Simulate(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Positions).To(Equal(a.Positions))
	})

	It("conserves momentum under every integrator", func() {
		for _, name := range []string{"euler", "symplectic", "leapfrog"} {
			bodies := []*physics.Body{
				physics.MustBody([]float64{0, 0, 0}, []float64{0, -0.1, 0}, 10),
				physics.MustBody([]float64{5, 0, 0}, []float64{0, 1, 0}, 1),
				physics.MustBody([]float64{-7, 1, 0}, []float64{0.2, -0.5, 0.1}, 0.5),
			}
			p := params3D(200, 0.01)
			p.Integrator = name
			sys, err := physics.NewSystem(p, bodies...)
			Expect(err).NotTo(HaveOccurred())

			initial := sys.Momentum()
			traj, err := sys.Simulate(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(traj.Integrator).To(Equal(name))
			Expect(sys.Momentum().Sub(initial).Norm()).To(BeNumerically("<", 1e-10), name)
		}
	})

	It("runs metrics and observers on every recorded step", func() {
		sys, err := physics.NewSystem(params3D(7, 0.1), pair(2, 1)...)
		Expect(err).NotTo(HaveOccurred())

		metric := &countingMetric{}
		sys.AddMetric(metric)
		var steps []int
		sys.AddObserver(dynamo.ObserverFunc(func(s dynamo.Snapshot) { steps = append(steps, s.Step) }))

		traj, err := sys.Simulate(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(metric.resets).To(Equal(1))
		Expect(traj.Metrics).To(HaveKeyWithValue("count", 8.0))
		Expect(steps).To(Equal([]int{0, 1, 2, 3, 4, 5, 6, 7}))
	})

	It("stops when the context is canceled", func() {
		sys, err := physics.NewSystem(params3D(1000, 0.001), pair(1, 1)...)
		Expect(err).NotTo(HaveOccurred())

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err = sys.Simulate(cctx)
		Expect(err).To(MatchError(dynamo.ErrContextCanceled))
		Expect(err).To(MatchError(context.Canceled))
		Expect(sys.T()).To(BeNil())
	})

	It("drops the previous trajectory when a rerun is canceled", func() {
		sys, err := physics.NewSystem(params3D(10, 0.01), pair(1, 1)...)
		Expect(err).NotTo(HaveOccurred())
		_, err = sys.Simulate(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(sys.R()).NotTo(BeNil())

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err = sys.Simulate(cctx)
		Expect(err).To(MatchError(context.Canceled))

		Expect(sys.Trajectory()).To(BeNil())
		Expect(sys.T()).To(BeNil())
		Expect(sys.R()).To(BeNil())
		Expect(sys.V()).To(BeNil())
		pos, vel := sys.Current(0)
		Expect(pos).To(Equal(dynamo.Vector{1, 0, 0}))
		Expect(vel).To(Equal(dynamo.Vector{0, 0, 0}))
	})

	It("restores the initial state after a run stops on coincident bodies", func() {
		bodies := []*physics.Body{
			physics.MustBody([]float64{1, 0, 0}, []float64{-10, 0, 0}, 1),
			physics.MustBody([]float64{-1, 0, 0}, []float64{10, 0, 0}, 1),
		}
		p := params3D(5, 0.1)
		p.G = 0
		sys, err := physics.NewSystem(p, bodies...)
		Expect(err).NotTo(HaveOccurred())

		_, err = sys.Simulate(ctx)
		Expect(err).To(MatchError(dynamo.ErrDegenerate))
		Expect(sys.R()).To(BeNil())
		pos, vel := sys.Current(1)
		Expect(pos).To(Equal(dynamo.Vector{-1, 0, 0}))
		Expect(vel).To(Equal(dynamo.Vector{10, 0, 0}))
	})

	It("hands out copies of the recorded outputs", func() {
		sys, err := physics.NewSystem(params3D(3, 0.1), pair(1, 1)...)
		Expect(err).NotTo(HaveOccurred())
		traj, err := sys.Simulate(ctx)
		Expect(err).NotTo(HaveOccurred())

		sys.T()[1] = 42
		sys.R()[0][1][0] = 42
		sys.V()[0][1][0] = 42

		Expect(traj.Times[1]).To(BeNumerically("~", 0.1, 1e-15))
		Expect(sys.R()[0][1]).To(Equal(traj.Positions[0][1]))
		Expect(traj.Positions[0][1][0]).NotTo(Equal(42.0))
		Expect(traj.Velocities[0][1][0]).NotTo(Equal(42.0))
	})
})
