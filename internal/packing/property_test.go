package packing

import (
	"math"
	"math/rand/v2"
	"testing"

	. "github.com/onsi/gomega"
)

func randomInstance(rng *rand.Rand, capacity float64, items int) Instance {
	weights := make([]float64, items)
	for i := range weights {
		weights[i] = float64(1 + rng.IntN(int(capacity)))
	}
	return Instance{Name: "random", Capacity: capacity, Weights: weights}
}

func TestConstructorsProduceValidPackings(t *testing.T) {
	g := NewWithT(t)
	rng := rand.New(rand.NewPCG(7, 11))

	for round := 0; round < 50; round++ {
		inst := randomInstance(rng, 150, 20+rng.IntN(100))

		var total float64
		for _, w := range inst.Weights {
			total += w
		}
		lowerBound := int(math.Ceil(total / inst.Capacity))

		for _, c := range Builtin() {
			s, err := c.GenerateSolution(inst)
			g.Expect(err).NotTo(HaveOccurred(), c.Name())

			seen := make(map[int]int, len(inst.Weights))
			for box, items := range s.Boxes() {
				g.Expect(s.Load(box)).To(BeNumerically("<=", inst.Capacity+capacityTolerance), "%s box %d", c.Name(), box)
				g.Expect(items).NotTo(BeEmpty())
				for _, item := range items {
					seen[item]++
					g.Expect(s.Weight(item)).To(Equal(inst.Weights[item]))
				}
			}
			g.Expect(seen).To(HaveLen(len(inst.Weights)), c.Name())
			for item, count := range seen {
				g.Expect(count).To(Equal(1), "%s item %d", c.Name(), item)
			}
			g.Expect(s.BoxCount()).To(BeNumerically(">=", lowerBound))

			again, err := c.GenerateSolution(inst)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(again.Boxes()).To(Equal(s.Boxes()), "%s is not deterministic", c.Name())
		}
	}
}

func TestGenerateSolutionLeavesInstanceUntouched(t *testing.T) {
	g := NewWithT(t)

	weights := []float64{4, 9, 1, 7}
	inst := Instance{Name: "readonly", Capacity: 10, Weights: weights}
	for _, c := range Builtin() {
		_, err := c.GenerateSolution(inst)
		g.Expect(err).NotTo(HaveOccurred())
	}
	g.Expect(inst.Weights).To(Equal([]float64{4, 9, 1, 7}))
}
