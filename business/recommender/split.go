package recommender

import (
	"fmt"
	"math"
	"math/rand"

	"myLaptopDesk/domain"
)

// splitIndices shuffles 0..n-1 with a fixed seed and holds out the first
// ceil(n*testFraction) indices. The training side is never empty.
func splitIndices(n int, testFraction float64, seed int64) (train, test []int, err error) {
	testCount := int(math.Ceil(float64(n) * testFraction))
	if n-testCount < 1 {
		return nil, nil, fmt.Errorf("%w: %d rows leave no training partition", domain.ErrInsufficientData, n)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return perm[testCount:], perm[:testCount], nil
}
