package vocab

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// SentenceMarker is the pseudo token standing for a sentence boundary.
// It is pinned at index 0, its count is the sentence count and it is
// exempt from min-count pruning, so the Huffman tree can also code
// sentence endings.
const SentenceMarker = "</s>"

var ErrEmptyVocabulary = errors.New("vocab: no tokens survived the minimum count threshold")

type Word struct {
	Text  string
	Count int64
}

// Vocabulary is the immutable frequency-sorted token table. Indices are
// contiguous, assigned once by Build and stable for the whole training
// run: the downstream Huffman tree and both weight matrices are
// row-indexed by them.
type Vocabulary struct {
	Words []Word
	Index map[string]int
	// TrainWords is the total count over all retained entries,
	// sentence markers included.
	TrainWords int64
}

// Build performs the two counting phases: a full frequency pass over the
// sentences, then pruning, sorting and index assignment. Entries are
// ordered by count descending with ties broken by first appearance, the
// sentence marker excepted. Tokens with count < minCount are dropped
// entirely, not mapped to an unknown bucket.
func Build(sentences [][]string, minCount int) (*Vocabulary, error) {
	counts := make(map[string]int64)
	firstSeen := make(map[string]int)
	for _, sentence := range sentences {
		for _, tok := range sentence {
			if _, ok := counts[tok]; !ok {
				firstSeen[tok] = len(firstSeen)
			}
			counts[tok] += 1
		}
	}

	var kept []Word
	for tok, cn := range counts {
		if cn >= int64(minCount) {
			kept = append(kept, Word{Text: tok, Count: cn})
		}
	}
	if len(kept) == 0 {
		return nil, ErrEmptyVocabulary
	}
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].Count != kept[j].Count {
			return kept[i].Count > kept[j].Count
		}
		return firstSeen[kept[i].Text] < firstSeen[kept[j].Text]
	})

	words := make([]Word, 0, len(kept)+1)
	words = append(words, Word{Text: SentenceMarker, Count: int64(len(sentences))})
	words = append(words, kept...)

	return fromWords(words), nil
}

func fromWords(words []Word) *Vocabulary {
	v := &Vocabulary{
		Words: words,
		Index: make(map[string]int, len(words)),
	}
	for i, w := range words {
		v.Index[w.Text] = i
		v.TrainWords += w.Count
	}
	return v
}

func (v *Vocabulary) Size() int {
	return len(v.Words)
}

// serialize the vocabulary as "word count" lines in index order
func (v *Vocabulary) Save(fn string) error {
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, word := range v.Words {
		fmt.Fprintf(w, "%s %d\n", word.Text, word.Count)
	}
	return w.Flush()
}

// Load reads a vocabulary previously written by Save. The file is
// trusted to already be pruned and sorted; indices are reassigned in
// file order.
func Load(fn string) (*Vocabulary, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []Word
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != 2 {
			return nil, fmt.Errorf("vocab: bad line %q", line)
		}
		cn, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("vocab: bad count in line %q: %w", line, err)
		}
		words = append(words, Word{Text: parts[0], Count: cn})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, ErrEmptyVocabulary
	}
	return fromWords(words), nil
}
