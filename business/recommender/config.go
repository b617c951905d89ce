package recommender

type Config struct {
	// number of neighbours voting on a prediction
	Neighbors int

	// share of the encoded rows held out from the classifier
	TestFraction float64

	// seed of the train/test permutation
	SplitSeed int64
}

const (
	defaultNeighbors    = 5
	defaultTestFraction = 0.2
	defaultSplitSeed    = 42
)

func DefaultConfig() Config {
	return Config{
		Neighbors:    defaultNeighbors,
		TestFraction: defaultTestFraction,
		SplitSeed:    defaultSplitSeed,
	}
}

// withDefaults fills zero values. A zero TestFraction is kept: it means every
// row trains the classifier.
func (c Config) withDefaults() Config {
	if c.Neighbors <= 0 {
		c.Neighbors = defaultNeighbors
	}
	if c.TestFraction < 0 || c.TestFraction >= 1 {
		c.TestFraction = defaultTestFraction
	}
	return c
}
