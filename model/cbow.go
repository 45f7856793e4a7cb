package model

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/golang/glog"

	"github.com/rtravis/word2vec-go/corpus"
	"github.com/rtravis/word2vec-go/huffman"
	"github.com/rtravis/word2vec-go/matrix"
	"github.com/rtravis/word2vec-go/util"
	"github.com/rtravis/word2vec-go/vectors"
	"github.com/rtravis/word2vec-go/vocab"
)

func init() {
	Register("cbow", NewCBOW)
}

// how many locally counted words a worker batches before publishing them
// to the shared progress counter and refreshing its learning rate
const progressBatch = 10000

// CBOW trains word embeddings with the continuous bag-of-words
// architecture and a hierarchical softmax output layer.
//
// The two weight matrices are shared by all workers and mutated in place
// without locks: concurrent writes to the same row may race, trading
// bit-for-bit reproducibility for throughput exactly as the reference
// implementation does. The shared progress counter uses a relaxed
// atomic add; it only steers the learning rate decay, so occasional
// staleness is harmless.
type CBOW struct {
	data  *corpus.Corpus
	vocab *vocab.Vocabulary
	cfg   Config

	coding  *huffman.Coding
	syn0    *matrix.Float32Matrix // word vectors, vocabSize x VectorSize
	syn1    *matrix.Float32Matrix // node vectors, (vocabSize-1) x VectorSize
	sigmoid []float32

	wordCountActual int64 // atomic
	start           time.Time
}

func NewCBOW(data *corpus.Corpus, voc *vocab.Vocabulary, cfg Config) Model {
	return &CBOW{
		data:  data,
		vocab: voc,
		cfg:   cfg,
	}
}

func (this *CBOW) Train() error {
	if err := this.cfg.Validate(); err != nil {
		return err
	}

	counts := make([]int64, this.vocab.Size())
	for i, w := range this.vocab.Words {
		counts[i] = w.Count
	}
	coding, err := huffman.Build(counts)
	if err != nil {
		return err
	}
	this.coding = coding
	this.sigmoid = newSigmoidTable()
	this.initNet()

	parts := this.data.Partition(this.cfg.Threads)
	log.Infof("training cbow: vocab %d, vector size %d, threads %d, iterations %d",
		this.vocab.Size(), this.cfg.VectorSize, this.cfg.Threads, this.cfg.Iterations)

	this.start = time.Now()
	var wg sync.WaitGroup
	for id := 0; id < this.cfg.Threads; id += 1 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			this.trainWorker(id, parts[id])
		}(id)
	}
	wg.Wait()

	log.Infof("trained on %d words in %s",
		atomic.LoadInt64(&this.wordCountActual), time.Since(this.start))
	return nil
}

// initNet allocates the weight arenas once, before any worker starts.
// Word vectors are drawn uniformly from a small range scaled down by
// the vector width; node vectors start at zero. The fixed-seed
// generator matches the reference, keeping the initial state
// independent of the configured worker seed.
func (this *CBOW) initNet() {
	size := this.cfg.VectorSize
	this.syn0 = matrix.NewFloat32Matrix(this.vocab.Size(), size)
	this.syn1 = matrix.NewFloat32Matrix(this.vocab.Size()-1, size)

	rng := lcg{state: 1}
	for r := 0; r < this.vocab.Size(); r += 1 {
		row := this.syn0.Row(r)
		for j := range row {
			row[j] = float32((rng.uniform() - 0.5) / float64(size))
		}
	}
}

func (this *CBOW) trainWorker(id int, sentences [][]string) {
	trainWords := this.vocab.TrainWords
	target := int64(this.cfg.Iterations) * trainWords
	sample := this.cfg.Sample

	rng := lcg{state: uint64(this.cfg.Seed) + uint64(id)}
	neu1 := make([]float32, this.cfg.VectorSize)
	neu1e := make([]float32, this.cfg.VectorSize)
	sen := make([]int, 0, this.cfg.MaxSentenceLength)

	alpha := this.cfg.Alpha
	var wordCount, lastWordCount int64

	for iter := 0; iter < this.cfg.Iterations; iter += 1 {
		for _, sentence := range sentences {
			if wordCount-lastWordCount > progressBatch {
				processed := atomic.AddInt64(&this.wordCountActual, wordCount-lastWordCount)
				lastWordCount = wordCount
				alpha = nextAlpha(this.cfg.Alpha, processed, target)
				if log.V(1) {
					elapsed := time.Since(this.start).Seconds() + 1e-3
					log.Infof("alpha: %f  progress: %.2f%%  words/sec: %.2fk",
						alpha,
						float64(processed)/float64(target+1)*100,
						float64(processed)/elapsed/1000)
				}
			}

			sen = this.fillSentence(sen[:0], sentence, &rng, &wordCount, sample, trainWords)
			wordCount += 1 // the sentence boundary marker
			if len(sen) == 0 {
				continue
			}
			for pos := range sen {
				this.trainTarget(sen, pos, alpha, &rng, neu1, neu1e)
			}
		}
	}
	atomic.AddInt64(&this.wordCountActual, wordCount-lastWordCount)
}

// fillSentence maps a tokenized sentence onto vocabulary indices,
// applying frequent word subsampling. Out-of-vocabulary tokens vanish
// entirely: no window slot, no progress count. Subsampled words are
// dropped from the window too but still count as processed input, which
// keeps the learning rate decay on the reference schedule. Sentences
// hitting the configured maximum length are truncated there.
func (this *CBOW) fillSentence(sen []int, sentence []string, rng *lcg,
	wordCount *int64, sample float64, trainWords int64) []int {
	for _, tok := range sentence {
		idx, ok := this.vocab.Index[tok]
		if !ok {
			continue
		}
		*wordCount += 1
		if sample > 0 {
			cn := float64(this.vocab.Words[idx].Count)
			st := sample * float64(trainWords)
			keep := (math.Sqrt(cn/st) + 1) * st / cn
			if keep < rng.uniform() {
				continue
			}
		}
		sen = append(sen, idx)
		if len(sen) >= this.cfg.MaxSentenceLength {
			break
		}
	}
	return sen
}

// trainTarget runs one CBOW forward/backward step for the word at pos:
// average the surviving context vectors, walk the target's Huffman path
// updating each node's output row, then add the accumulated error to
// every context word vector. The same addend goes to each context word
// since the forward pass already divided by the context count.
func (this *CBOW) trainTarget(sen []int, pos int, alpha float64, rng *lcg,
	neu1, neu1e []float32) {
	window := this.cfg.Window
	for j := range neu1 {
		neu1[j] = 0
	}
	for j := range neu1e {
		neu1e[j] = 0
	}

	// randomized effective window radius in [1, window]
	b := int(rng.next() % uint64(window))

	cw := 0
	for a := b; a < window*2+1-b; a += 1 {
		if a == window {
			continue
		}
		c := pos - window + a
		if c < 0 || c >= len(sen) {
			continue
		}
		row := this.syn0.Row(sen[c])
		for j := range neu1 {
			neu1[j] += row[j]
		}
		cw += 1
	}
	if cw == 0 {
		return
	}
	for j := range neu1 {
		neu1[j] /= float32(cw)
	}

	word := sen[pos]
	code := this.coding.Codes[word]
	points := this.coding.Points[word]
	for d := 0; d < len(code); d += 1 {
		row := this.syn1.Row(points[d])
		f := util.Dot(neu1, row)
		// label 0 follows the bit-0 branch; the gradient carries the
		// learning rate already
		g := float32(alpha) * (1 - float32(code[d]) - sigmoidLookup(this.sigmoid, f))
		for j := range neu1e {
			neu1e[j] += g * row[j]
		}
		for j := range row {
			row[j] += g * neu1[j]
		}
	}

	for a := b; a < window*2+1-b; a += 1 {
		if a == window {
			continue
		}
		c := pos - window + a
		if c < 0 || c >= len(sen) {
			continue
		}
		row := this.syn0.Row(sen[c])
		for j := range row {
			row[j] += neu1e[j]
		}
	}
}

// nextAlpha anneals the learning rate linearly with overall progress,
// floored at a ten-thousandth of the starting rate so it never reaches
// zero or goes negative
func nextAlpha(starting float64, processed, target int64) float64 {
	alpha := starting * (1 - float64(processed)/float64(target+1))
	if alpha < starting*0.0001 {
		alpha = starting * 0.0001
	}
	return alpha
}

// Vectors returns the word embedding matrix, nil before Train.
func (this *CBOW) Vectors() *matrix.Float32Matrix {
	return this.syn0
}

// NodeVectors returns the hierarchical softmax output matrix, nil
// before Train. It is not serialized; only the word vectors survive
// training.
func (this *CBOW) NodeVectors() *matrix.Float32Matrix {
	return this.syn1
}

// serialize the trained word vectors in the word2vec toolkit format
func (this *CBOW) SaveVectors(fn string) error {
	return vectors.Save(fn, this.vocab, this.syn0, this.cfg.Binary)
}
