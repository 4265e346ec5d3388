package search

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

type Weighting string

const (
	WeightingCount Weighting = "count"
	WeightingTFIDF Weighting = "tfidf"
)

var ErrInvalidState = errors.New("invalid vectorizer state")

// Vector is a sparse term vector keyed by vocabulary column.
type Vector map[int]float64

// Vectorizer maps text to term vectors over a vocabulary fixed at Fit time.
// A fitted Vectorizer is read-only and safe for concurrent use.
type Vectorizer struct {
	weighting  Weighting
	vocabulary map[string]int
	idf        []float64
}

// VectorizerState is the persisted form of a fitted Vectorizer.
type VectorizerState struct {
	Weighting  Weighting      `json:"weighting"`
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf,omitempty"`
}

func ParseWeighting(s string) (Weighting, error) {
	switch Weighting(s) {
	case "", WeightingCount:
		return WeightingCount, nil
	case WeightingTFIDF:
		return WeightingTFIDF, nil
	default:
		return "", fmt.Errorf("unknown weighting %q", s)
	}
}

// Fit builds the vocabulary from corpus. Terms are assigned columns in
// ascending lexical order. An empty corpus yields an empty vocabulary.
func Fit(corpus []string, weighting Weighting) *Vectorizer {
	if weighting == "" {
		weighting = WeightingCount
	}

	df := map[string]int{}
	for _, doc := range corpus {
		seen := map[string]struct{}{}
		for _, t := range Analyze(doc) {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	v := &Vectorizer{weighting: weighting, vocabulary: make(map[string]int, len(terms))}
	for i, t := range terms {
		v.vocabulary[t] = i
	}

	if weighting == WeightingTFIDF {
		n := float64(len(corpus))
		v.idf = make([]float64, len(terms))
		for i, t := range terms {
			v.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
		}
	}
	return v
}

// NewVectorizerFromState restores a persisted Vectorizer.
func NewVectorizerFromState(st VectorizerState) (*Vectorizer, error) {
	w, err := ParseWeighting(string(st.Weighting))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if st.Vocabulary == nil {
		return nil, fmt.Errorf("%w: missing vocabulary", ErrInvalidState)
	}

	size := len(st.Vocabulary)
	used := make([]bool, size)
	for term, col := range st.Vocabulary {
		if term == "" || col < 0 || col >= size || used[col] {
			return nil, fmt.Errorf("%w: bad column for term %q", ErrInvalidState, term)
		}
		used[col] = true
	}
	if w == WeightingTFIDF && len(st.IDF) != size {
		return nil, fmt.Errorf("%w: idf has %d entries, vocabulary %d", ErrInvalidState, len(st.IDF), size)
	}

	v := &Vectorizer{weighting: w, vocabulary: make(map[string]int, size)}
	for term, col := range st.Vocabulary {
		v.vocabulary[term] = col
	}
	if w == WeightingTFIDF {
		v.idf = append([]float64(nil), st.IDF...)
	}
	return v, nil
}

func (v *Vectorizer) State() VectorizerState {
	st := VectorizerState{Weighting: v.weighting, Vocabulary: make(map[string]int, len(v.vocabulary))}
	for t, c := range v.vocabulary {
		st.Vocabulary[t] = c
	}
	if v.idf != nil {
		st.IDF = append([]float64(nil), v.idf...)
	}
	return st
}

func (v *Vectorizer) Weighting() Weighting {
	if v == nil {
		return WeightingCount
	}
	return v.weighting
}

func (v *Vectorizer) VocabularySize() int {
	if v == nil {
		return 0
	}
	return len(v.vocabulary)
}

// Terms returns the vocabulary in column order.
func (v *Vectorizer) Terms() []string {
	if v == nil {
		return []string{}
	}
	out := make([]string, len(v.vocabulary))
	for t, c := range v.vocabulary {
		out[c] = t
	}
	return out
}

// Transform vectorizes text. Terms outside the vocabulary are ignored.
func (v *Vectorizer) Transform(text string) Vector {
	out := Vector{}
	if v == nil || len(v.vocabulary) == 0 {
		return out
	}
	for _, t := range Analyze(text) {
		col, ok := v.vocabulary[t]
		if !ok {
			continue
		}
		out[col]++
	}
	if v.weighting == WeightingTFIDF {
		for col, tf := range out {
			out[col] = tf * v.idf[col]
		}
	}
	return out
}

func (v *Vectorizer) TransformAll(texts []string) []Vector {
	out := make([]Vector, len(texts))
	for i, t := range texts {
		out[i] = v.Transform(t)
	}
	return out
}
