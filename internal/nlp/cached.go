package nlp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ppiankov/casebrief/internal/cache"
)

// CachedModel memoises segmentation and analysis of identical text.
// Important sentences are analysed again during export; the cache makes that free.
type CachedModel struct {
	inner Model
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedModel wraps inner with c
func NewCachedModel(inner Model, c cache.Cache, ttl time.Duration) *CachedModel {
	return &CachedModel{inner: inner, cache: c, ttl: ttl}
}

// Sentences returns cached segmentation when available
func (m *CachedModel) Sentences(ctx context.Context, text string) ([]string, error) {
	key := cache.Key("sentences", text)
	var sents []string
	if m.load(key, &sents) {
		return sents, nil
	}

	sents, err := m.inner.Sentences(ctx, text)
	if err != nil {
		return nil, err
	}
	m.store(key, sents)
	return sents, nil
}

// Analyze returns cached analysis when available
func (m *CachedModel) Analyze(ctx context.Context, sentence string) (Analysis, error) {
	key := cache.Key("analysis", sentence)
	var a Analysis
	if m.load(key, &a) {
		return a, nil
	}

	a, err := m.inner.Analyze(ctx, sentence)
	if err != nil {
		return Analysis{}, err
	}
	m.store(key, a)
	return a, nil
}

// IsStop delegates to the wrapped model
func (m *CachedModel) IsStop(word string) bool {
	return m.inner.IsStop(word)
}

func (m *CachedModel) load(key string, out interface{}) bool {
	data, ok := m.cache.Get(key)
	if !ok {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

// store ignores encoding failures; a miss only costs a recomputation
func (m *CachedModel) store(key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = m.cache.Set(key, data, m.ttl)
}
