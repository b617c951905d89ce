package recommender

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// knn is a k-nearest-neighbour classifier over Euclidean distance. It keeps
// only the training partition and is read-only after construction.
type knn struct {
	k      int
	points [][]float64
	labels []int
}

func newKNN(k int, points [][]float64, labels []int) (*knn, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("knn: no training points")
	}
	if len(points) != len(labels) {
		return nil, fmt.Errorf("knn: %d points but %d labels", len(points), len(labels))
	}
	if k > len(points) {
		k = len(points)
	}
	return &knn{k: k, points: points, labels: labels}, nil
}

type neighbor struct {
	index    int
	distance float64
}

func (m *knn) nearest(x []float64) []neighbor {
	all := make([]neighbor, len(m.points))
	for i, p := range m.points {
		all[i] = neighbor{index: i, distance: floats.Distance(x, p, 2)}
	}
	// stable: equal distances keep training order
	sort.SliceStable(all, func(a, b int) bool {
		return all[a].distance < all[b].distance
	})
	return all[:m.k]
}

// Predict returns the majority label among the k nearest points. Ties go to
// the label with the smaller summed distance, then to the smaller code.
func (m *knn) Predict(x []float64) int {
	type tally struct {
		votes int
		dist  float64
	}
	tallies := make(map[int]*tally)
	for _, n := range m.nearest(x) {
		label := m.labels[n.index]
		t, ok := tallies[label]
		if !ok {
			t = &tally{}
			tallies[label] = t
		}
		t.votes++
		t.dist += n.distance
	}

	best, bestTally := -1, (*tally)(nil)
	for label, t := range tallies {
		switch {
		case bestTally == nil,
			t.votes > bestTally.votes,
			t.votes == bestTally.votes && t.dist < bestTally.dist,
			t.votes == bestTally.votes && t.dist == bestTally.dist && label < best:
			best, bestTally = label, t
		}
	}
	return best
}
