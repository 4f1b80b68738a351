package packing

import (
	"fmt"
	"strings"
)

const (
	FirstFitName           = "first-fit"
	BestFitName            = "best-fit"
	FirstFitDescendingName = "first-fit-descending"
	BestFitDescendingName  = "best-fit-descending"
)

var aliases = map[string]string{
	"ff":  FirstFitName,
	"bf":  BestFitName,
	"ffd": FirstFitDescendingName,
	"bfd": BestFitDescendingName,
}

// Builtin returns the four greedy heuristics in their canonical order.
func Builtin() []Constructor {
	return []Constructor{
		NewConstructor(FirstFitName, Identity, FirstFit()),
		NewConstructor(BestFitName, Identity, BestFit()),
		NewConstructor(FirstFitDescendingName, Descending, FirstFit()),
		NewConstructor(BestFitDescendingName, Descending, BestFit()),
	}
}

// Names lists the canonical heuristic names.
func Names() []string {
	builtin := Builtin()
	names := make([]string, len(builtin))
	for i, c := range builtin {
		names[i] = c.Name()
	}
	return names
}

// Lookup resolves a heuristic by canonical name or short alias, case-insensitively.
func Lookup(name string) (Constructor, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	for _, c := range Builtin() {
		if c.Name() == key {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownHeuristic, name)
}

// LookupAll resolves every name, failing on the first unknown one.
func LookupAll(names []string) ([]Constructor, error) {
	out := make([]Constructor, 0, len(names))
	for _, name := range names {
		c, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
