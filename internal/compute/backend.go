package compute

import (
	"fmt"
	"sort"
)

// Summer accumulates a stream of terms. Implementations are not safe for
// concurrent use.
type Summer interface {
	Name() string
	Add(v float64)
	Sum() float64
	Reset()
}

const Default = "naive"

var summers = map[string]func() Summer{
	"naive":    func() Summer { return NewNaive() },
	"kahan":    func() Summer { return NewKahan() },
	"pairwise": func() Summer { return NewPairwise() },
}

// New returns a fresh summer by name. An empty name selects Default.
func New(name string) (Summer, error) {
	if name == "" {
		name = Default
	}
	fn, ok := summers[name]
	if !ok {
		return nil, fmt.Errorf("unknown summation: %s (available: %v)", name, Names())
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(summers))
	for name := range summers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
