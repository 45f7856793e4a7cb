package model

import "math"

const (
	sigmoidTableSize = 1000
	maxExp           = 6.0
)

// newSigmoidTable precomputes sigmoid(x) over [-maxExp, maxExp] so the
// training loop never calls a transcendental function.
func newSigmoidTable() []float32 {
	table := make([]float32, sigmoidTableSize)
	for i := range table {
		ex := math.Exp((float64(i)/sigmoidTableSize*2 - 1) * maxExp)
		table[i] = float32(ex / (ex + 1))
	}
	return table
}

// sigmoidLookup maps a pre-activation value to its table entry,
// saturating at the domain edges
func sigmoidLookup(table []float32, f float32) float32 {
	idx := int((f + maxExp) * (sigmoidTableSize / maxExp / 2))
	if idx < 0 {
		idx = 0
	} else if idx >= sigmoidTableSize {
		idx = sigmoidTableSize - 1
	}
	return table[idx]
}
