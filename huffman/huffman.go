package huffman

import "errors"

// sentinel count for not-yet-created internal nodes, larger than any
// realistic corpus frequency sum
const infiniteCount = int64(1e15)

var ErrTooFewLeaves = errors.New("huffman: need at least two leaves")

// Coding holds, for every leaf, its root-to-leaf bit code and the
// internal nodes crossed on the way down. Codes[w][d] is the branch
// taken from internal node Points[w][d], with bit 0 for the smaller
// frequency child of each merge and bit 1 for the larger. Points index
// the output weight matrix: a tree over n leaves has exactly n-1
// internal nodes, numbered so that Points[w][0] is always the root
// (n - 2).
type Coding struct {
	Codes  [][]byte
	Points [][]int
}

// Build constructs the Huffman tree over the given leaf counts and
// materializes per-leaf codes and paths. The counts are expected in
// descending order (the vocabulary's index order); the construction is
// deterministic for a fixed input ordering.
//
// The tree is kept as flat arrays indexed 0..2n-2: leaves first, then
// internal nodes in creation order. Two merge positions scan the
// ascending leaf tail and the ascending internal node stream, so every
// step combines the two globally smallest available nodes without a
// priority queue.
func Build(counts []int64) (*Coding, error) {
	n := len(counts)
	if n < 2 {
		return nil, ErrTooFewLeaves
	}

	count := make([]int64, n*2-1)
	parent := make([]int, n*2-1)
	bit := make([]byte, n*2-1)
	copy(count, counts)
	for i := n; i < n*2-1; i += 1 {
		count[i] = infiniteCount
	}

	pos1 := n - 1
	pos2 := n
	for a := 0; a < n-1; a += 1 {
		var min1, min2 int
		if pos1 >= 0 && count[pos1] < count[pos2] {
			min1 = pos1
			pos1 -= 1
		} else {
			min1 = pos2
			pos2 += 1
		}
		if pos1 >= 0 && count[pos1] < count[pos2] {
			min2 = pos1
			pos1 -= 1
		} else {
			min2 = pos2
			pos2 += 1
		}
		count[n+a] = count[min1] + count[min2]
		parent[min1] = n + a
		parent[min2] = n + a
		bit[min2] = 1
	}
	root := n*2 - 2

	coding := &Coding{
		Codes:  make([][]byte, n),
		Points: make([][]int, n),
	}
	var upCode []byte
	var upPath []int
	for a := 0; a < n; a += 1 {
		// walk leaf to root recording the bottom-up bits and nodes,
		// then reverse into the top-down code and path
		upCode = upCode[:0]
		upPath = upPath[:0]
		for b := a; b != root; b = parent[b] {
			upCode = append(upCode, bit[b])
			upPath = append(upPath, b)
		}

		k := len(upCode)
		code := make([]byte, k)
		point := make([]int, k)
		point[0] = root - n
		for i := 0; i < k; i += 1 {
			code[k-1-i] = upCode[i]
			if i > 0 {
				point[k-i] = upPath[i] - n
			}
		}
		coding.Codes[a] = code
		coding.Points[a] = point
	}
	return coding, nil
}
