package feedback

import (
	"sort"
	"strings"
)

// maxVocabulary caps the feature space: the most document-frequent
// unigrams and bigrams are kept, ties broken lexicographically so a
// retrain over the same corpus builds the same vocabulary.
const maxVocabulary = 2000

// tokenize splits text into lowercased words with punctuation trimmed.
func tokenize(text string) []string {
	words := strings.Fields(text)
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))
		if cleaned != "" {
			tokens = append(tokens, cleaned)
		}
	}
	return tokens
}

// ngrams returns the unigrams and bigrams of a token sequence.
func ngrams(tokens []string) []string {
	grams := make([]string, 0, 2*len(tokens))
	grams = append(grams, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		grams = append(grams, tokens[i]+" "+tokens[i+1])
	}
	return grams
}

// Vectorizer maps text to bag-of-words count vectors over a fixed
// vocabulary. It is immutable after fitting and safe for concurrent use.
type Vectorizer struct {
	vocab map[string]int
	terms []string
}

// fitVectorizer builds a vocabulary from the corpus.
func fitVectorizer(docs []string) *Vectorizer {
	docFreq := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, gram := range ngrams(tokenize(doc)) {
			if !seen[gram] {
				seen[gram] = true
				docFreq[gram]++
			}
		}
	}

	terms := make([]string, 0, len(docFreq))
	for term := range docFreq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if docFreq[terms[i]] != docFreq[terms[j]] {
			return docFreq[terms[i]] > docFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxVocabulary {
		terms = terms[:maxVocabulary]
	}

	vocab := make(map[string]int, len(terms))
	for i, term := range terms {
		vocab[term] = i
	}
	return &Vectorizer{vocab: vocab, terms: terms}
}

// Transform encodes text as a dense count vector over the vocabulary.
func (v *Vectorizer) Transform(text string) []float64 {
	x := make([]float64, len(v.terms))
	for _, gram := range ngrams(tokenize(text)) {
		if col, ok := v.vocab[gram]; ok {
			x[col]++
		}
	}
	return x
}

// Dimension returns the vocabulary size.
func (v *Vectorizer) Dimension() int {
	return len(v.terms)
}

// Term returns the feature name for a column.
func (v *Vectorizer) Term(col int) string {
	return v.terms[col]
}
