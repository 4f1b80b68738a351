package instance

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eugenenazirov/binpack/internal/packing"
)

// LoadFile reads all instances from path. Files ending in .json are read as
// JSON documents, anything else as OR-Library text.
func LoadFile(path string) ([]packing.Instance, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		instances, err := ParseJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return instances, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	instances, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return instances, nil
}

// LoadFiles concatenates the instances of every path, in order.
func LoadFiles(paths []string) ([]packing.Instance, error) {
	var all []packing.Instance
	for _, path := range paths {
		instances, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, instances...)
	}
	return all, nil
}
