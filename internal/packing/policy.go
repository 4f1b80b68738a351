package packing

import (
	"cmp"
	"slices"
)

type firstFit struct{}

// FirstFit selects the lowest-indexed box with enough free space.
func FirstFit() BinSelector { return firstFit{} }

func (firstFit) SelectBox(s *Solution, weight float64) int {
	for box := 0; box < s.BoxCount(); box++ {
		if s.HasSpace(box, weight) {
			return box
		}
	}
	return s.CreateBox()
}

type bestFit struct{}

// BestFit selects the fitting box with the least free space. Ties go to the
// lowest index.
func BestFit() BinSelector { return bestFit{} }

func (bestFit) SelectBox(s *Solution, weight float64) int {
	best := -1
	var bestSpace float64
	for box := 0; box < s.BoxCount(); box++ {
		if !s.HasSpace(box, weight) {
			continue
		}
		if space := s.SpaceAvailable(box); best < 0 || space < bestSpace {
			best, bestSpace = box, space
		}
	}
	if best < 0 {
		return s.CreateBox()
	}
	return best
}

// Identity packs items in the order they appear in the instance.
func Identity(weights []float64) []int {
	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	return order
}

// Descending packs the heaviest items first. Equal weights keep their original order.
func Descending(weights []float64) []int {
	order := Identity(weights)
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(weights[b], weights[a])
	})
	return order
}
