package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/rtravis/word2vec-go/corpus"
	"github.com/rtravis/word2vec-go/model"
	"github.com/rtravis/word2vec-go/vocab"
)

var (
	input       = flag.String("train", "", "input training file")
	output      = flag.String("output", "", "file to save the word vectors")
	modelType   = flag.String("model", "cbow", "model type")
	size        = flag.Int("size", 100, "word vector size")
	window      = flag.Int("window", 5, "context window radius")
	minCount    = flag.Int("min_count", 5, "discard words occurring fewer times than this")
	alpha       = flag.Float64("alpha", 0.05, "starting learning rate")
	sample      = flag.Float64("sample", 1e-3, "subsampling threshold for frequent words, 0 disables")
	threads     = flag.Int("threads", runtime.NumCPU(), "number of training threads")
	iterations  = flag.Int("iter", 5, "number of training iterations")
	maxSentence = flag.Int("max_sentence", 1000, "maximum sentence length in tokens")
	binaryOut   = flag.Bool("binary", true, "save vectors in binary format")
	seed        = flag.Int64("seed", 0, "base random seed for the training workers")
	saveVocab   = flag.String("save_vocab", "", "save the vocabulary to this file")
	readVocab   = flag.String("read_vocab", "", "read the vocabulary from this file instead of counting")
)

func main() {
	flag.Parse()

	// read training data
	data := &corpus.Corpus{}
	if err := data.Load(*input); err != nil {
		log.Fatalf("failed to read training data: %v", err)
	}

	var voc *vocab.Vocabulary
	var err error
	if *readVocab != "" {
		voc, err = vocab.Load(*readVocab)
	} else {
		voc, err = vocab.Build(data.Sentences, *minCount)
	}
	if err != nil {
		log.Fatalf("failed to build vocabulary: %v", err)
	}
	log.Printf("vocabulary size %d", voc.Size())

	if *saveVocab != "" {
		if err := voc.Save(*saveVocab); err != nil {
			log.Fatalf("failed to save vocabulary: %v", err)
		}
	}
	if *output == "" {
		return
	}

	cfg := model.DefaultConfig()
	cfg.VectorSize = *size
	cfg.Window = *window
	cfg.MinCount = *minCount
	cfg.Alpha = *alpha
	cfg.Sample = *sample
	cfg.Threads = *threads
	cfg.Iterations = *iterations
	cfg.MaxSentenceLength = *maxSentence
	cfg.Seed = *seed
	cfg.Binary = *binaryOut

	ctor, err := model.GetModel(*modelType)
	if err != nil {
		log.Fatalf("%v", err)
	}
	m := ctor(data, voc, cfg)
	if err := m.Train(); err != nil {
		log.Fatalf("training failed: %v", err)
	}
	if err := m.SaveVectors(*output); err != nil {
		log.Fatalf("failed to save vectors: %v", err)
	}
}
