package model

import (
	"fmt"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rtravis/word2vec-go/corpus"
	"github.com/rtravis/word2vec-go/util"
	"github.com/rtravis/word2vec-go/vectors"
	"github.com/rtravis/word2vec-go/vocab"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.VectorSize = 8
	cfg.Window = 3
	cfg.Threads = 1
	cfg.Iterations = 3
	cfg.MinCount = 1
	return cfg
}

func buildVocab(t *testing.T, data *corpus.Corpus, minCount int) *vocab.Vocabulary {
	t.Helper()
	voc, err := vocab.Build(data.Sentences, minCount)
	assert.NoError(t, err)
	return voc
}

// deterministic synthetic corpus cycling over a small word list
func syntheticCorpus(sentences, tokens int) *corpus.Corpus {
	words := []string{"sun", "moon", "star", "sky", "sea", "wave", "wind", "rain"}
	data := &corpus.Corpus{}
	for i := 0; i < sentences; i += 1 {
		var sentence []string
		for j := 0; j < tokens; j += 1 {
			sentence = append(sentence, words[(i*tokens+j*j)%len(words)])
		}
		data.Sentences = append(data.Sentences, sentence)
		data.TokenCount += tokens
	}
	return data
}

func trainCBOW(t *testing.T, data *corpus.Corpus, voc *vocab.Vocabulary, cfg Config) *CBOW {
	t.Helper()
	m := NewCBOW(data, voc, cfg).(*CBOW)
	assert.NoError(t, m.Train())
	return m
}

func TestTrainRejectsInvalidConfig(t *testing.T) {
	data := syntheticCorpus(4, 5)
	voc := buildVocab(t, data, 1)

	bad := []Config{
		func() Config { c := testConfig(); c.VectorSize = 0; return c }(),
		func() Config { c := testConfig(); c.Window = -1; return c }(),
		func() Config { c := testConfig(); c.Threads = 0; return c }(),
		func() Config { c := testConfig(); c.MaxSentenceLength = 0; return c }(),
		func() Config { c := testConfig(); c.Iterations = 0; return c }(),
	}
	for i, cfg := range bad {
		m := NewCBOW(data, voc, cfg)
		assert.ErrorIs(t, m.Train(), ErrInvalidConfig, "case %d", i)
	}
}

func TestEndToEndTinyCorpus(t *testing.T) {
	data := &corpus.Corpus{Sentences: [][]string{
		{"the", "quick", "fox", "jumps"},
		{"the", "lazy", "fox", "sleeps"},
	}, TokenCount: 8}

	voc := buildVocab(t, data, 1)
	// 6 distinct tokens plus the sentence marker
	assert.Equal(t, 7, voc.Size())

	cfg := testConfig()
	cfg.VectorSize = 4
	cfg.Window = 5
	cfg.Iterations = 1
	cfg.Sample = 0
	m := trainCBOW(t, data, voc, cfg)

	fn := filepath.Join(t.TempDir(), "vectors.bin")
	assert.NoError(t, m.SaveVectors(fn))

	words, vecs, err := vectors.Load(fn)
	assert.NoError(t, err)

	rows, cols := vecs.Shape()
	assert.Equal(t, 7, rows)
	assert.Equal(t, 4, cols)
	assert.Equal(t, 7, len(words))

	theIdx := -1
	for i, w := range words {
		if w == "the" {
			theIdx = i
		}
	}
	assert.NotEqual(t, -1, theIdx)
	assert.Equal(t, 4, len(vecs.Row(theIdx)))
}

func TestSingleThreadDeterminism(t *testing.T) {
	data := syntheticCorpus(60, 8)

	run := func() *CBOW {
		voc := buildVocab(t, data, 1)
		cfg := testConfig()
		cfg.Seed = 42
		return trainCBOW(t, data, voc, cfg)
	}

	m1 := run()
	m2 := run()

	rows, _ := m1.Vectors().Shape()
	for r := 0; r < rows; r += 1 {
		assert.Equal(t, m1.Vectors().Row(r), m2.Vectors().Row(r), "word row %d", r)
	}
	nrows, _ := m1.NodeVectors().Shape()
	for r := 0; r < nrows; r += 1 {
		assert.Equal(t, m1.NodeVectors().Row(r), m2.NodeVectors().Row(r), "node row %d", r)
	}
}

func TestMultiThreadStability(t *testing.T) {
	// one highly redundant sentence repeated many times, so two runs
	// converge to close attractors despite race-permitted updates
	data := &corpus.Corpus{}
	sentence := []string{"the", "quick", "brown", "fox", "jumps", "over", "the", "lazy", "dog"}
	for i := 0; i < 400; i += 1 {
		data.Sentences = append(data.Sentences, sentence)
		data.TokenCount += len(sentence)
	}

	run := func() *CBOW {
		voc := buildVocab(t, data, 1)
		cfg := testConfig()
		cfg.Threads = 2
		cfg.Iterations = 10
		cfg.Sample = 0
		return trainCBOW(t, data, voc, cfg)
	}

	m1 := run()
	m2 := run()

	rows, cols := m1.Vectors().Shape()
	for r := 0; r < rows; r += 1 {
		row1 := m1.Vectors().Row(r)
		row2 := m2.Vectors().Row(r)
		for c := 0; c < cols; c += 1 {
			assert.False(t, math.IsNaN(float64(row1[c])))
			assert.False(t, math.IsInf(float64(row1[c]), 0))
		}
		assert.Greater(t, util.CosineSimilarity(row1, row2), 0.9, "word row %d", r)
	}
}

func TestSentenceTruncation(t *testing.T) {
	// 1000 leading tokens cycling a, b, c followed by 500 tokens that
	// must never be consumed
	var sentence []string
	cyc := []string{"a", "b", "c"}
	for i := 0; i < 1000; i += 1 {
		sentence = append(sentence, cyc[i%3])
	}
	for i := 0; i < 500; i += 1 {
		sentence = append(sentence, "zzz")
	}
	data := &corpus.Corpus{Sentences: [][]string{sentence}, TokenCount: 1500}

	run := func(seed int64) *CBOW {
		voc := buildVocab(t, data, 1)
		cfg := testConfig()
		cfg.VectorSize = 4
		cfg.Window = 2
		cfg.Iterations = 1
		cfg.Sample = 0
		cfg.MaxSentenceLength = 1000
		cfg.Seed = seed
		return trainCBOW(t, data, voc, cfg)
	}

	m1 := run(0)
	m2 := run(99)

	voc := buildVocab(t, data, 1)
	zzz := voc.Index["zzz"]
	a := voc.Index["a"]

	// the truncated tail was never a target or context in either run:
	// its row still holds the seed-independent initial values
	assert.Equal(t, m1.Vectors().Row(zzz), m2.Vectors().Row(zzz))
	// the leading tokens did train, and differently per worker seed
	assert.NotEqual(t, m1.Vectors().Row(a), m2.Vectors().Row(a))
}

func TestSingleTokenSentencesGetNoUpdates(t *testing.T) {
	data := &corpus.Corpus{}
	for i := 0; i < 6; i += 1 {
		data.Sentences = append(data.Sentences, []string{"solo"})
		data.TokenCount += 1
	}
	voc := buildVocab(t, data, 1)
	assert.Equal(t, 2, voc.Size())

	cfg := testConfig()
	cfg.VectorSize = 4
	cfg.Sample = 0
	m := trainCBOW(t, data, voc, cfg)

	// a target with no surviving context words is skipped entirely, so
	// the single internal node's output row never moves from zero
	nodeRow := m.NodeVectors().Row(0)
	for _, v := range nodeRow {
		assert.Equal(t, float32(0.0), v)
	}
}

func TestNextAlphaDecay(t *testing.T) {
	const starting = 0.05
	const target = int64(1000000)

	assert.InDelta(t, starting, nextAlpha(starting, 0, target), 1e-6)

	half := nextAlpha(starting, target/2, target)
	assert.InDelta(t, starting/2, half, 1e-4)

	// once the full target has been processed the rate sits at the
	// floor, never zero or negative
	floor := starting * 0.0001
	assert.Equal(t, floor, nextAlpha(starting, target, target))
	assert.Equal(t, floor, nextAlpha(starting, target*2, target))
}

func TestSigmoidTable(t *testing.T) {
	table := newSigmoidTable()
	assert.Equal(t, sigmoidTableSize, len(table))

	assert.InDelta(t, 0.5, sigmoidLookup(table, 0), 0.01)
	assert.Greater(t, sigmoidLookup(table, 100), float32(0.99))
	assert.Less(t, sigmoidLookup(table, -100), float32(0.01))

	// monotone over the whole domain
	prev := float32(-1)
	for f := float32(-8); f <= 8; f += 0.25 {
		cur := sigmoidLookup(table, f)
		assert.GreaterOrEqual(t, cur, prev, "f=%f", f)
		prev = cur
	}
}

func TestProgressCounterReachesTarget(t *testing.T) {
	data := syntheticCorpus(50, 6)
	voc := buildVocab(t, data, 1)

	cfg := testConfig()
	cfg.Sample = 0
	m := trainCBOW(t, data, voc, cfg)

	// every in-vocabulary token and every sentence marker counts once
	// per iteration
	want := int64(cfg.Iterations) * voc.TrainWords
	assert.Equal(t, want, m.wordCountActual)
}

func TestGetModelRegistry(t *testing.T) {
	ctor, err := GetModel("cbow")
	assert.NoError(t, err)
	assert.NotNil(t, ctor)

	_, err = GetModel("skipgram")
	assert.Error(t, err)
	assert.Equal(t, fmt.Sprintf("model %s not registered", "skipgram"), err.Error())
}
