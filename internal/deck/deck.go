package deck

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInvalidGrid is returned when a grid cannot be filled with pairs.
var ErrInvalidGrid = errors.New("invalid grid")

// PairCount validates a rows x columns grid and returns how many pairs it holds.
func PairCount(rows, columns int) (int, error) {
	if rows < 1 || columns < 1 {
		return 0, fmt.Errorf("%w: %dx%d has no cells", ErrInvalidGrid, rows, columns)
	}
	cells := rows * columns
	if cells%2 != 0 {
		return 0, fmt.Errorf("%w: %dx%d has an odd number of cells", ErrInvalidGrid, rows, columns)
	}
	return cells / 2, nil
}

// Generate returns 2*pairCount values in random order where each of the
// values 1..pairCount appears exactly twice.
func Generate(pairCount int, rng *rand.Rand) ([]int, error) {
	values, err := Ordered(pairCount)
	if err != nil {
		return nil, err
	}
	Shuffle(values, rng)
	return values, nil
}

// Ordered returns the unshuffled pair values: 1, 1, 2, 2, ...
func Ordered(pairCount int) ([]int, error) {
	if pairCount < 1 {
		return nil, fmt.Errorf("%w: need at least one pair, got %d", ErrInvalidGrid, pairCount)
	}
	values := make([]int, 0, pairCount*2)
	for i := 1; i <= pairCount; i++ {
		values = append(values, i, i)
	}
	return values, nil
}

// Shuffle permutes values in place. Each index i swaps with a uniformly
// chosen index in [i, n).
func Shuffle[T any](values []T, rng *rand.Rand) {
	n := len(values)
	for i := 0; i < n; i++ {
		j := i + rng.Intn(n-i)
		values[i], values[j] = values[j], values[i]
	}
}

// Dealer produces the value sequence for a round.
type Dealer func(pairCount int) ([]int, error)

// NewDealer returns a Dealer that shuffles with rng.
func NewDealer(rng *rand.Rand) Dealer {
	return func(pairCount int) ([]int, error) {
		return Generate(pairCount, rng)
	}
}

// FixedDealer deals the given values verbatim. The length must match the grid.
func FixedDealer(values ...int) Dealer {
	return func(pairCount int) ([]int, error) {
		if len(values) != pairCount*2 {
			return nil, fmt.Errorf("%w: fixed deck has %d values, grid needs %d", ErrInvalidGrid, len(values), pairCount*2)
		}
		out := make([]int, len(values))
		copy(out, values)
		return out, nil
	}
}
