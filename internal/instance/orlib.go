package instance

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/eugenenazirov/binpack/internal/packing"
)

// Parse reads every problem of an OR-Library binpack file:
//
//	P                      number of problems
//	name                   problem identifier
//	capacity n best        bin capacity, item count, bins in best known solution
//	weight                 n lines, one item weight each
func Parse(r io.Reader) ([]packing.Instance, error) {
	lines := &lineReader{scanner: bufio.NewScanner(r)}

	first, err := lines.next()
	if err != nil {
		return nil, fmt.Errorf("%w: missing problem count", ErrMalformed)
	}
	count, err := strconv.Atoi(first)
	if err != nil || count < 0 {
		return nil, fmt.Errorf("%w: line %d: invalid problem count %q", ErrMalformed, lines.number, first)
	}

	instances := make([]packing.Instance, 0, count)
	for p := 0; p < count; p++ {
		inst, err := parseProblem(lines)
		if err != nil {
			return nil, fmt.Errorf("problem %d of %d: %w", p+1, count, err)
		}
		instances = append(instances, inst)
	}

	if err := lines.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read instances: %w", err)
	}
	return instances, nil
}

func parseProblem(lines *lineReader) (packing.Instance, error) {
	name, err := lines.next()
	if err != nil {
		return packing.Instance{}, fmt.Errorf("%w: missing problem name", ErrMalformed)
	}

	header, err := lines.next()
	if err != nil {
		return packing.Instance{}, fmt.Errorf("%w: %s: missing definition line", ErrMalformed, name)
	}
	capacity, items, best, err := ParseDefinition(header)
	if err != nil {
		return packing.Instance{}, fmt.Errorf("%s: line %d: %w", name, lines.number, err)
	}

	weights := make([]float64, 0, items)
	for i := 0; i < items; i++ {
		line, err := lines.next()
		if err != nil {
			return packing.Instance{}, fmt.Errorf("%w: %s: expected %d weights, found %d", ErrMalformed, name, items, i)
		}
		weight, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return packing.Instance{}, fmt.Errorf("%w: %s: line %d: invalid weight %q", ErrMalformed, name, lines.number, line)
		}
		weights = append(weights, weight)
	}

	return packing.Instance{
		Name:      name,
		Capacity:  capacity,
		Weights:   weights,
		BestKnown: best,
	}, nil
}

// ParseDefinition splits a "capacity items best" line. The capacity may be
// fractional, the other two fields must be integers.
func ParseDefinition(line string) (capacity float64, items, best int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: definition %q must have 3 fields, has %d", ErrMalformed, line, len(fields))
	}
	if capacity, err = strconv.ParseFloat(fields[0], 64); err != nil {
		return 0, 0, 0, fmt.Errorf("%w: invalid capacity %q", ErrMalformed, fields[0])
	}
	if items, err = strconv.Atoi(fields[1]); err != nil || items < 0 {
		return 0, 0, 0, fmt.Errorf("%w: invalid item count %q", ErrMalformed, fields[1])
	}
	if best, err = strconv.Atoi(fields[2]); err != nil {
		return 0, 0, 0, fmt.Errorf("%w: invalid best known bin count %q", ErrMalformed, fields[2])
	}
	return capacity, items, best, nil
}

// lineReader yields trimmed, non-blank lines and remembers the current line number.
type lineReader struct {
	scanner *bufio.Scanner
	number  int
}

func (l *lineReader) next() (string, error) {
	for l.scanner.Scan() {
		l.number++
		if line := strings.TrimSpace(l.scanner.Text()); line != "" {
			return line, nil
		}
	}
	if err := l.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
