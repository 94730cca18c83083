package metric

import "math"

// L2 is a Kernel based on Euclidean distance.
//
// Like Cosine and Dot, L2 satisfies distance = 1 - similarity: similarity
// is defined as 1 - distance. Euclidean distance between two unit vectors
// ranges [0, 2], which keeps similarity in the documented [-1, 1] range
// for callers that rank by similarity. Vectors are expected
// to be unit-normalized (see NormalizeL2); L2 on un-normalized vectors is
// still a valid distance but similarity loses its [-1, 1] bound.
type L2 struct {
	dimension int
}

// NewL2 creates a Euclidean-distance kernel fixed to the given dimension.
func NewL2(dimension int) *L2 {
	return &L2{dimension: dimension}
}

func (l *L2) Dimension() int { return l.dimension }

func (l *L2) Distance(a, b []float32) (float32, error) {
	if err := checkDims(l.dimension, a, b); err != nil {
		return 0, err
	}

	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return float32(math.Sqrt(float64(sum))), nil
}

func (l *L2) Similarity(a, b []float32) (float32, error) {
	dist, err := l.Distance(a, b)
	if err != nil {
		return 0, err
	}
	return 1 - dist, nil
}
