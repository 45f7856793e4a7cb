package corpus

import (
	"bufio"
	"log"
	"os"
	"strings"
)

const maxLineBytes = 16 * 1024 * 1024

type Corpus struct {
	Sentences  [][]string
	TokenCount int
}

// load training data from file, one sentence per line, tokens separated
// by spaces or tabs. Blank lines are skipped. The caller gets the I/O
// error back untouched so it can decide how fatal it is.
func (this *Corpus) Load(fn string) error {
	f, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		this.Sentences = append(this.Sentences, tokens)
		this.TokenCount += len(tokens)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	log.Printf("number of sentences %d", len(this.Sentences))
	log.Printf("number of tokens %d", this.TokenCount)
	return nil
}

// Partition splits the sentence stream into n contiguous, non-overlapping
// slices, one per training worker. Sentences are the atomic unit of work
// and are never split across partitions. When there are fewer sentences
// than workers the trailing partitions are empty.
func (this *Corpus) Partition(n int) [][][]string {
	if n <= 0 {
		return nil
	}
	parts := make([][][]string, n)

	total := len(this.Sentences)
	chunk := total / n
	rem := total % n

	start := 0
	for i := 0; i < n; i += 1 {
		size := chunk
		if i < rem {
			size += 1
		}
		parts[i] = this.Sentences[start : start+size]
		start += size
	}
	return parts
}
