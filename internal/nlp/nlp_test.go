package nlp

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/casebrief/internal/cache"
	"github.com/ppiankov/casebrief/internal/model"
)

func TestFake_Sentences(t *testing.T) {
	f := NewFake()

	sents, err := f.Sentences(context.Background(), "He did not go. He went to the market!  Trailing text")
	require.NoError(t, err)
	assert.Equal(t, []string{"He did not go.", "He went to the market!", "Trailing text"}, sents)
}

func TestFake_AnalyzeTagsAndEntities(t *testing.T) {
	f := NewFake()
	f.Tags["went"] = "VBD"
	f.Entities = []model.Entity{{Text: "Ravi", Label: "PERSON"}, {Text: "Delhi", Label: "GPE"}}

	a, err := f.Analyze(context.Background(), "Delhi police said Ravi went to Delhi.")
	require.NoError(t, err)

	require.Len(t, a.Entities, 3)
	assert.Equal(t, "Delhi", a.Entities[0].Text)
	assert.Equal(t, "Ravi", a.Entities[1].Text)
	assert.Equal(t, "Delhi", a.Entities[2].Text)

	for _, tok := range a.Tokens {
		if tok.Text == "went" {
			assert.Equal(t, "VBD", tok.Tag)
			assert.False(t, tok.IsNoun())
		}
		if tok.Text == "to" {
			assert.True(t, tok.Stop)
		}
	}
}

func TestFake_FailOn(t *testing.T) {
	f := NewFake()
	f.FailOn = "boom"

	_, err := f.Analyze(context.Background(), "this goes boom")
	assert.ErrorIs(t, err, ErrFake)
	_, err = f.Sentences(context.Background(), "boom.")
	assert.ErrorIs(t, err, ErrFake)
}

func TestToken_IsNoun(t *testing.T) {
	for _, tag := range []string{"NN", "NNS", "NNP", "NNPS"} {
		assert.True(t, Token{Tag: tag}.IsNoun(), tag)
	}
	for _, tag := range []string{"VB", "JJ", "PRP", ""} {
		assert.False(t, Token{Tag: tag}.IsNoun(), tag)
	}
}

func TestCachedModel_MemoisesAnalysis(t *testing.T) {
	f := NewFake()
	f.Entities = []model.Entity{{Text: "Ravi", Label: "PERSON"}}
	m := NewCachedModel(f, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	first, err := m.Analyze(context.Background(), "Ravi was arrested.")
	require.NoError(t, err)
	second, err := m.Analyze(context.Background(), "Ravi was arrested.")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), f.AnalyzeCalls())
	assert.True(t, m.IsStop("the"))
}

func TestCachedModel_ErrorsAreNotCached(t *testing.T) {
	f := NewFake()
	f.FailOn = "bad"
	m := NewCachedModel(f, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	_, err := m.Analyze(context.Background(), "bad sentence")
	require.Error(t, err)
	_, err = m.Analyze(context.Background(), "bad sentence")
	require.Error(t, err)
	assert.Equal(t, int64(2), f.AnalyzeCalls())
}

func TestFake_StructLiteralIsStopConcurrent(t *testing.T) {
	f := &Fake{}

	var wg sync.WaitGroup
	results := make([]bool, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = f.IsStop("the") && !f.IsStop("witness")
		}(i)
	}
	wg.Wait()

	for i, ok := range results {
		assert.True(t, ok, "goroutine %d saw an incomplete stop list", i)
	}
}
