package packing

import "fmt"

type greedyConstructor struct {
	name     string
	ordering Ordering
	selector BinSelector
}

// NewConstructor composes an ordering and a bin selection policy into a Constructor.
func NewConstructor(name string, ordering Ordering, selector BinSelector) Constructor {
	if ordering == nil {
		ordering = Identity
	}
	return &greedyConstructor{
		name:     name,
		ordering: ordering,
		selector: selector,
	}
}

func (c *greedyConstructor) Name() string {
	return c.name
}

// GenerateSolution places every item of inst, one at a time, without revisiting
// earlier placements. Any item heavier than the capacity aborts the construction.
func (c *greedyConstructor) GenerateSolution(inst Instance) (*Solution, error) {
	solution, err := NewSolution(inst.Capacity, len(inst.Weights))
	if err != nil {
		return nil, err
	}

	for _, item := range c.ordering(inst.Weights) {
		weight := inst.Weights[item]
		box := c.selector.SelectBox(solution, weight)
		added, err := solution.AddObject(item, weight, box)
		if err != nil {
			return nil, err
		}
		if !added {
			return nil, fmt.Errorf("%w: item %d weighs %g, capacity is %g", ErrInfeasible, item, weight, inst.Capacity)
		}
	}

	return solution, nil
}
