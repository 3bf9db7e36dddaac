package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/physics"
)

func params3D(steps int, dt float64) physics.Params {
	p := physics.DefaultParams()
	p.G = 1
	p.Dim = 3
	p.Steps = steps
	p.Dt = dt
	return p
}

var _ = Describe("System", func() {
	It("indexes bodies in argument order", func() {
		a := physics.MustBody([]float64{1, 0, 0}, []float64{0, 0, 0}, 1)
		b := physics.MustBody([]float64{-1, 0, 0}, []float64{0, 0, 0}, 2)
		sys, err := physics.NewSystem(params3D(1, 0.1), a, b)
		Expect(err).NotTo(HaveOccurred())
		Expect(sys.Len()).To(Equal(2))
		Expect(sys.Body(0)).To(BeIdenticalTo(a))
		Expect(sys.Body(1)).To(BeIdenticalTo(b))
		Expect(sys.Masses()).To(Equal([]float64{1, 2}))
		Expect(sys.String()).To(Equal("System in 3 dimension with 2 bodies"))
	})

	It("leaves T and R unset before simulation", func() {
		sys, err := physics.NewSystem(params3D(1, 0.1), physics.MustBody([]float64{0, 0, 0}, []float64{0, 0, 0}, 1))
		Expect(err).NotTo(HaveOccurred())
		Expect(sys.T()).To(BeNil())
		Expect(sys.R()).To(BeNil())
		Expect(sys.V()).To(BeNil())
		Expect(sys.Trajectory()).To(BeNil())
	})

	It("rejects a body whose dimension differs from the configured one", func() {
		flat := physics.MustBody([]float64{0, 0}, []float64{0, 0}, 1)
		_, err := physics.NewSystem(params3D(1, 0.1), flat)
		Expect(err).To(MatchError(dynamo.ErrShape))
	})

	It("rejects a missing body", func() {
		ok := physics.MustBody([]float64{0, 0, 0}, []float64{0, 0, 0}, 1)
		_, err := physics.NewSystem(params3D(1, 0.1), ok, nil)
		Expect(err).To(MatchError(dynamo.ErrType))
	})

	It("rejects a non-positive dimension", func() {
		p := params3D(1, 0.1)
		p.Dim = 0
		_, err := physics.NewSystem(p)
		Expect(err).To(MatchError(dynamo.ErrShape))
	})

	It("reads the initial state, not the current state, of its bodies", func() {
		b := physics.MustBody([]float64{1, 2, 3}, []float64{0, 0, 0}, 1)
		Expect(b.SetPositionT([]float64{9, 9, 9})).To(Succeed())
		sys, err := physics.NewSystem(params3D(0, 0.1), b)
		Expect(err).NotTo(HaveOccurred())
		pos, _ := sys.Current(0)
		Expect(pos).To(Equal(dynamo.Vector{1, 2, 3}))
	})
})
