package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/physics"
)

var _ = Describe("LotkaVolterra", func() {
	var lv *physics.LotkaVolterra

	BeforeEach(func() {
		lv = physics.NewLotkaVolterra()
	})

	It("exposes a two dimensional state with no control", func() {
		Expect(lv.StateDim()).To(Equal(2))
		Expect(lv.ControlDim()).To(Equal(0))
		Expect(lv.DefaultState()).To(Equal(dynamo.State{10, 5}))
	})

	It("applies the bilinear rate law", func() {
		dx := lv.Derive(dynamo.State{10, 5}, nil, 0)
		// 1*10 - 0.1*10*5 = 5 ; 0.1*10*5 - 1.5*5 = -2.5
		Expect(dx[0]).To(BeNumerically("~", 5.0, 1e-12))
		Expect(dx[1]).To(BeNumerically("~", -2.5, 1e-12))
	})

	It("ignores the time argument", func() {
		x := dynamo.State{3, 7}
		Expect(lv.Derive(x, nil, 0)).To(Equal(lv.Derive(x, nil, 42.5)))
	})

	DescribeTable("returns finite derivatives for finite non-negative input",
		func(alpha, beta, delta, gamma, x, y float64) {
			m := &physics.LotkaVolterra{Alpha: alpha, Beta: beta, Delta: delta, Gamma: gamma}
			dx := m.Derive(dynamo.State{x, y}, nil, 0)
			Expect(dx.IsValid()).To(BeTrue())
		},
		Entry("origin", 1.0, 0.1, 0.1, 1.5, 0.0, 0.0),
		Entry("defaults", 1.0, 0.1, 0.1, 1.5, 10.0, 5.0),
		Entry("slider maxima", 3.0, 1.0, 1.0, 3.0, 1e6, 1e6),
		Entry("slider minima", 0.1, 0.01, 0.01, 0.1, 0.5, 0.25),
		Entry("zero parameters", 0.0, 0.0, 0.0, 0.0, 10.0, 5.0),
	)

	It("vanishes at the coexistence equilibrium", func() {
		eq, ok := lv.Equilibrium()
		Expect(ok).To(BeTrue())
		Expect(eq[0]).To(BeNumerically("~", 15.0, 1e-12))
		Expect(eq[1]).To(BeNumerically("~", 10.0, 1e-12))

		dx := lv.Derive(eq, nil, 0)
		Expect(dx.Norm()).To(BeNumerically("<", 1e-12))
	})

	It("has no equilibrium when decoupled", func() {
		lv.Beta, lv.Delta = 0, 0
		_, ok := lv.Equilibrium()
		Expect(ok).To(BeFalse())

		dx := lv.Derive(dynamo.State{10, 5}, nil, 0)
		Expect(dx[0]).To(Equal(lv.Alpha * 10))
		Expect(dx[1]).To(Equal(-lv.Gamma * 5))
	})

	It("reports NaN energy outside the positive quadrant", func() {
		Expect(math.IsNaN(lv.Energy(dynamo.State{0, 5}))).To(BeTrue())
		Expect(math.IsNaN(lv.Energy(dynamo.State{10, -1}))).To(BeTrue())
		Expect(math.IsNaN(lv.Energy(dynamo.State{10, 5}))).To(BeFalse())
	})

	It("has a linear period of 2π/√(αγ)", func() {
		Expect(lv.LinearPeriod()).To(BeNumerically("~", 2*math.Pi/math.Sqrt(1.5), 1e-12))
		lv.Gamma = 0
		Expect(math.IsInf(lv.LinearPeriod(), 1)).To(BeTrue())
	})

	Describe("parameters", func() {
		It("round-trips every named parameter", func() {
			for i, name := range physics.ParamNames {
				Expect(lv.SetParam(name, float64(i+1))).To(Succeed())
			}
			Expect(lv.GetParams()).To(Equal(map[string]float64{
				"alpha": 1, "beta": 2, "delta": 3, "gamma": 4,
			}))
		})

		It("rejects unknown names", func() {
			err := lv.SetParam("sigma", 1)
			Expect(err).To(MatchError(dynamo.ErrUnknownParam))
		})

		It("implements the configurable interface", func() {
			var sys dynamo.System = lv
			_, ok := sys.(dynamo.Configurable)
			Expect(ok).To(BeTrue())
			_, ok = sys.(dynamo.Hamiltonian)
			Expect(ok).To(BeTrue())
		})
	})
})
