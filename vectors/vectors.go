package vectors

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/rtravis/word2vec-go/matrix"
	"github.com/rtravis/word2vec-go/vocab"
)

// Save writes word vectors in the reference toolkit's layout: an ASCII
// header "<vocabSize> <vectorSize>\n" followed by one record per word,
// each the token text, a single space, and the vector values, ending
// with a newline. In binary mode the values are raw little-endian
// float32s back to back; in text mode they are formatted floats.
func Save(fn string, voc *vocab.Vocabulary, vecs *matrix.Float32Matrix, binaryMode bool) error {
	rows, cols := vecs.Shape()
	if rows != voc.Size() {
		return fmt.Errorf("vectors: matrix has %d rows for %d words", rows, voc.Size())
	}

	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%d %d\n", rows, cols)
	for i, word := range voc.Words {
		fmt.Fprintf(w, "%s ", word.Text)
		if binaryMode {
			if err := binary.Write(w, binary.LittleEndian, vecs.Row(i)); err != nil {
				return err
			}
		} else {
			for _, v := range vecs.Row(i) {
				fmt.Fprintf(w, "%f ", v)
			}
		}
		fmt.Fprintf(w, "\n")
	}
	return w.Flush()
}

// Load reads a binary vector file written by Save, returning the words
// in record order and the embedding matrix row-indexed the same way.
func Load(fn string) ([]string, *matrix.Float32Matrix, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	header, err := r.ReadString('\n')
	if err != nil {
		return nil, nil, err
	}
	var rows, cols int
	if _, err := fmt.Sscanf(header, "%d %d", &rows, &cols); err != nil {
		return nil, nil, fmt.Errorf("vectors: bad header %q: %w", header, err)
	}
	if rows <= 0 || cols <= 0 {
		return nil, nil, fmt.Errorf("vectors: bad shape %dx%d", rows, cols)
	}

	words := make([]string, rows)
	vecs := matrix.NewFloat32Matrix(rows, cols)
	for i := 0; i < rows; i += 1 {
		tok, err := r.ReadString(' ')
		if err != nil {
			return nil, nil, fmt.Errorf("vectors: record %d: %w", i, err)
		}
		words[i] = tok[:len(tok)-1]
		if err := binary.Read(r, binary.LittleEndian, vecs.Row(i)); err != nil {
			return nil, nil, fmt.Errorf("vectors: record %d: %w", i, err)
		}
		if _, err := r.ReadByte(); err != nil {
			return nil, nil, fmt.Errorf("vectors: record %d: %w", i, err)
		}
	}
	return words, vecs, nil
}
