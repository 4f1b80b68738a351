package instance

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/eugenenazirov/binpack/internal/packing"
)

type document struct {
	Name      string    `mapstructure:"name"`
	Capacity  float64   `mapstructure:"capacity"`
	Weights   []float64 `mapstructure:"weights"`
	BestKnown int       `mapstructure:"bestKnown"`
}

// Decode converts a generic JSON object into an instance and validates it.
func Decode(raw map[string]any) (packing.Instance, error) {
	var doc document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &doc,
	})
	if err != nil {
		return packing.Instance{}, fmt.Errorf("build decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return packing.Instance{}, fmt.Errorf("%w: %v", ErrInvalidInstance, err)
	}

	inst := packing.Instance{
		Name:      doc.Name,
		Capacity:  doc.Capacity,
		Weights:   doc.Weights,
		BestKnown: doc.BestKnown,
	}
	if err := Validate(inst); err != nil {
		return packing.Instance{}, err
	}
	return inst, nil
}

// ParseJSON accepts either {"instances": [...]} or a single instance object.
func ParseJSON(data []byte) ([]packing.Instance, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	list, ok := raw["instances"]
	if !ok {
		inst, err := Decode(raw)
		if err != nil {
			return nil, err
		}
		return []packing.Instance{inst}, nil
	}

	items, ok := list.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: instances must be an array", ErrMalformed)
	}
	instances := make([]packing.Instance, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: instances[%d] must be an object", ErrMalformed, i)
		}
		inst, err := Decode(obj)
		if err != nil {
			return nil, fmt.Errorf("instances[%d]: %w", i, err)
		}
		instances = append(instances, inst)
	}
	return instances, nil
}

// Validate checks the fields every constructor relies on. Weights above the
// capacity are accepted here; constructors report them as infeasible.
func Validate(inst packing.Instance) error {
	switch {
	case inst.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInstance)
	case inst.Capacity <= 0:
		return fmt.Errorf("%w: %s: capacity must be positive", ErrInvalidInstance, inst.Name)
	case len(inst.Weights) == 0:
		return fmt.Errorf("%w: %s: at least one weight is required", ErrInvalidInstance, inst.Name)
	}
	for i, w := range inst.Weights {
		if w <= 0 {
			return fmt.Errorf("%w: %s: weight %d must be positive, got %g", ErrInvalidInstance, inst.Name, i, w)
		}
	}
	return nil
}
