package keywords

import (
	"sync"

	"github.com/kljensen/snowball/english"
)

// maxCachedStems bounds the stem memo. Request bodies feed it arbitrary
// tokens, so it is cleared once full rather than growing without limit.
const maxCachedStems = 50_000

// stemMemo memoizes stems by token. Stemming is a pure function of the token,
// so the memo is safe to share across concurrent analyses.
type stemMemo struct {
	mu    sync.RWMutex
	limit int
	stems map[string]string
}

func newStemMemo(limit int) *stemMemo {
	return &stemMemo{limit: limit, stems: make(map[string]string)}
}

func (m *stemMemo) stem(token string) string {
	m.mu.RLock()
	s, ok := m.stems[token]
	m.mu.RUnlock()
	if ok {
		return s
	}

	s = english.Stem(token, true)
	m.mu.Lock()
	if len(m.stems) >= m.limit {
		clear(m.stems)
	}
	m.stems[token] = s
	m.mu.Unlock()
	return s
}

func (m *stemMemo) size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.stems)
}

var stemCache = newStemMemo(maxCachedStems)

// Stem reduces a lowercased token to its stem ("managed", "management" -> "manag").
func Stem(token string) string {
	return stemCache.stem(token)
}

// StemSet returns the set of stems of tokens.
func StemSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[Stem(tok)] = struct{}{}
	}
	return set
}
