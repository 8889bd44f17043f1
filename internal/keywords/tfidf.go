package keywords

import (
	"math"
	"strings"
)

// Corpus is a term-frequency / inverse-document-frequency model over a fixed set of documents.
// Documents are lowercased, tokenized and stop-word filtered; terms are not stemmed.
type Corpus struct {
	docs []map[string]int
}

// NewCorpus builds a corpus where docs[i] is document i.
func NewCorpus(docs ...string) *Corpus {
	c := &Corpus{docs: make([]map[string]int, len(docs))}
	for i, text := range docs {
		freq := make(map[string]int)
		for _, tok := range Tokenize(strings.ToLower(text)) {
			if IsStopWord(tok) {
				continue
			}
			freq[tok]++
		}
		c.docs[i] = freq
	}
	return c
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	return len(c.docs)
}

// TF returns the raw count of term in document doc. Out-of-range documents count 0.
func (c *Corpus) TF(term string, doc int) int {
	if doc < 0 || doc >= len(c.docs) {
		return 0
	}
	return c.docs[doc][term]
}

// IDF returns 1 + ln(N / (1 + df)) where df is the number of documents containing term.
func (c *Corpus) IDF(term string) float64 {
	if len(c.docs) == 0 {
		return 0
	}
	df := 0
	for _, d := range c.docs {
		if d[term] > 0 {
			df++
		}
	}
	return 1 + math.Log(float64(len(c.docs))/float64(1+df))
}

// TFIDF returns the TF-IDF weight of term within document doc.
func (c *Corpus) TFIDF(term string, doc int) float64 {
	tf := c.TF(term, doc)
	if tf == 0 {
		return 0
	}
	return float64(tf) * c.IDF(term)
}
