package packing

// Instance is a single bin packing problem as read from a benchmark file.
// BestKnown is carried for reporting only; no constructor reads it.
type Instance struct {
	Name      string
	Capacity  float64
	Weights   []float64
	BestKnown int
}

// Constructor builds a complete packing for an instance in a single greedy pass.
type Constructor interface {
	Name() string
	GenerateSolution(inst Instance) (*Solution, error)
}

// BinSelector picks the box an item of the given weight should go into,
// creating a new box on the solution when none of the existing ones fit.
type BinSelector interface {
	SelectBox(s *Solution, weight float64) int
}

// Ordering returns the original item indices in the order they should be packed.
type Ordering func(weights []float64) []int
