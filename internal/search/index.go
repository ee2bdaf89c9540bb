// Package search provides a simple, deterministic, concurrency-safe
// in-memory search index over questions. It is intentionally small and
// dependency-free:
//
//   - No logging in the library (callers decide how/what to log)
//   - Unicode-aware tokenization with optional stop-word removal
//   - Mutable index guarded by a RWMutex (questions change; the index
//     follows via Upsert/Remove on the write paths)
//   - Deterministic scoring and sorting (stable order for ties)
//
// Scoring uses Jaccard similarity between the query token set and each
// question's token set: score = |Q ∩ D| / |Q ∪ D|.
package search

import (
	"sort"
	"strings"
	"sync"
)

// Result is a ranked question reference with its similarity score.
type Result struct {
	QuestionID string
	Score      float64
}

// Index is the minimal interface consumed by the question service.
type Index interface {
	Upsert(questionID, title, body string)
	Remove(questionID string)
	TopK(query string, k int) []Result
}

// Option configures a QuestionIndex.
type Option func(*config)

type config struct {
	stopwords map[string]struct{}
	maxDocs   int
}

func defaultConfig() config {
	return config{}
}

// WithStopwords removes the given words from every token set.
func WithStopwords(words []string) Option {
	return func(c *config) {
		m := make(map[string]struct{}, len(words))
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" {
				m[w] = struct{}{}
			}
		}
		if len(m) > 0 {
			c.stopwords = m
		}
	}
}

// WithMaxDocs caps the number of indexed questions (0 = unlimited).
// When the cap is hit, further Upserts of unseen IDs are dropped.
func WithMaxDocs(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDocs = n
		}
	}
}

type doc struct {
	tokens map[string]struct{}
}

// QuestionIndex is the default Index implementation. Safe for concurrent
// use: reads take the read lock, Upsert/Remove the write lock.
type QuestionIndex struct {
	cfg  config
	mu   sync.RWMutex
	docs map[string]doc
}

// NewQuestionIndex constructs an empty index.
func NewQuestionIndex(opts ...Option) *QuestionIndex {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &QuestionIndex{cfg: cfg, docs: make(map[string]doc)}
}

// Upsert (re)indexes one question from its title and body.
func (ix *QuestionIndex) Upsert(questionID, title, body string) {
	toks := tokenSet(title+" "+body, ix.cfg.stopwords)
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if _, seen := ix.docs[questionID]; !seen && ix.cfg.maxDocs > 0 && len(ix.docs) >= ix.cfg.maxDocs {
		return
	}
	ix.docs[questionID] = doc{tokens: toks}
}

// Remove drops a question from the index. Unknown IDs are ignored.
func (ix *QuestionIndex) Remove(questionID string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	delete(ix.docs, questionID)
}

// Len reports the number of indexed questions.
func (ix *QuestionIndex) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

// TopK returns up to k questions ranked by Jaccard similarity to query.
// Zero-score documents are omitted. Ties break on QuestionID for a stable
// order.
func (ix *QuestionIndex) TopK(query string, k int) []Result {
	if k <= 0 {
		return nil
	}
	q := tokenSet(query, ix.cfg.stopwords)
	if len(q) == 0 {
		return nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out := make([]Result, 0, len(ix.docs))
	for id, d := range ix.docs {
		if s := jaccard(q, d.tokens); s > 0 {
			out = append(out, Result{QuestionID: id, Score: s})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].QuestionID < out[j].QuestionID
	})
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// jaccard computes |a ∩ b| / |a ∪ b| over two token sets.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, big := a, b
	if len(big) < len(small) {
		small, big = big, small
	}
	inter := 0
	for t := range small {
		if _, ok := big[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
