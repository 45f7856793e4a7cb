package model

import (
	"fmt"

	"github.com/rtravis/word2vec-go/corpus"
	"github.com/rtravis/word2vec-go/vocab"
)

var constructors = make(map[string]ModelCtor)

// the common interface new embedding trainers should follow
type Model interface {
	// run the full training pass over the corpus
	Train() error
	// serialize the trained word vectors
	SaveVectors(fn string) error
}

// new trainers should register themselves using this function
func Register(modelType string, m ModelCtor) {
	constructors[modelType] = m
}

type ModelCtor func(data *corpus.Corpus, voc *vocab.Vocabulary, cfg Config) Model

func GetModel(modelType string) (ModelCtor, error) {
	if _, ok := constructors[modelType]; !ok {
		return nil, fmt.Errorf("model %s not registered", modelType)
	}
	return constructors[modelType], nil
}
