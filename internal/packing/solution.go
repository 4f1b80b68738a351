package packing

import "fmt"

// capacityTolerance absorbs rounding when fractional weights sum exactly to the capacity.
const capacityTolerance = 1e-9

// Solution tracks which box every item went into and how full each box is.
//
// Boxes are indexed contiguously from zero in creation order and are never removed,
// so a box exists exactly when its index is below BoxCount.
type Solution struct {
	boxSize float64
	weights []float64
	boxes   [][]int
}

// NewSolution returns an empty solution for itemCount items and boxes of boxSize.
func NewSolution(boxSize float64, itemCount int) (*Solution, error) {
	if itemCount <= 0 {
		return nil, fmt.Errorf("%w: item count must be positive, got %d", ErrInvalidArgument, itemCount)
	}
	return &Solution{
		boxSize: boxSize,
		weights: make([]float64, itemCount),
	}, nil
}

// CreateBox opens a new empty box and returns its index.
func (s *Solution) CreateBox() int {
	s.boxes = append(s.boxes, nil)
	return len(s.boxes) - 1
}

// SpaceAvailable returns the free capacity of box. Boxes that have not been
// created yet report the full box size.
func (s *Solution) SpaceAvailable(box int) float64 {
	return s.boxSize - s.Load(box)
}

// HasSpace reports whether weight fits into the free capacity of box.
func (s *Solution) HasSpace(box int, weight float64) bool {
	return s.SpaceAvailable(box)+capacityTolerance >= weight
}

// AddObject places item with the given weight into box.
//
// It returns false without touching the solution when the box has not been
// created or cannot hold the weight. Callers must not place the same item twice.
func (s *Solution) AddObject(item int, weight float64, box int) (bool, error) {
	switch {
	case item < 0 || item >= len(s.weights):
		return false, fmt.Errorf("%w: item index %d outside [0, %d)", ErrInvalidArgument, item, len(s.weights))
	case weight <= 0:
		return false, fmt.Errorf("%w: weight must be positive, got %g", ErrInvalidArgument, weight)
	case box < 0:
		return false, fmt.Errorf("%w: box index must be non-negative, got %d", ErrInvalidArgument, box)
	}

	if !s.exists(box) || !s.HasSpace(box, weight) {
		return false, nil
	}

	s.boxes[box] = append(s.boxes[box], item)
	s.weights[item] = weight
	return true, nil
}

// Load returns the total weight placed in box.
func (s *Solution) Load(box int) float64 {
	if !s.exists(box) {
		return 0
	}
	var load float64
	for _, item := range s.boxes[box] {
		load += s.weights[item]
	}
	return load
}

func (s *Solution) BoxSize() float64 { return s.boxSize }

func (s *Solution) ItemCount() int { return len(s.weights) }

// BoxCount is the number of boxes used so far.
func (s *Solution) BoxCount() int { return len(s.boxes) }

// Weight returns the weight recorded for item, or zero while it is unplaced.
func (s *Solution) Weight(item int) float64 {
	if item < 0 || item >= len(s.weights) {
		return 0
	}
	return s.weights[item]
}

// Box returns a copy of the item indices placed in box, in placement order.
func (s *Solution) Box(box int) []int {
	if !s.exists(box) {
		return nil
	}
	out := make([]int, len(s.boxes[box]))
	copy(out, s.boxes[box])
	return out
}

// Boxes returns a deep copy of every box's contents.
func (s *Solution) Boxes() [][]int {
	out := make([][]int, len(s.boxes))
	for i := range s.boxes {
		out[i] = s.Box(i)
	}
	return out
}

func (s *Solution) exists(box int) bool {
	return box >= 0 && box < len(s.boxes)
}
