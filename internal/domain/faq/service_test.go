package faq

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/faqbot/pkg/errors"
)

var storeSynonyms = map[string]string{
	"package":  "order",
	"parcel":   "order",
	"delivery": "shipping",
}

func newSampleEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(sampleEntries(), NewNormalizer(storeSynonyms))
	require.NoError(t, err)
	return engine
}

func TestEngineAnswersSampleQuestions(t *testing.T) {
	engine := newSampleEngine(t)

	require.Equal(t, "You can return any product within 30 days of purchase.", engine.Answer("how do I return something I bought"))
	require.Equal(t, "After placing an order, you'll receive an email with tracking details.", engine.Answer("where is my package"))
	require.Equal(t, "Orders can be canceled or changed within 24 hours of placement.", engine.Answer("I want to cancel"))
	require.Equal(t, "Yes, we offer international shipping to select countries.", engine.Answer("international orders?"))
}

func TestEngineMatchReportsEvidence(t *testing.T) {
	engine := newSampleEngine(t)

	match := engine.Match("How can I track my order?")
	require.Equal(t, 3, match.Index)
	require.InDelta(t, 1.0, match.Score, 1e-9)
	require.Equal(t, "How can I track my order?", match.Question)
	require.Equal(t, "track order", match.Normalized)
}

func TestEngineDegenerateQueriesReturnFirstAnswer(t *testing.T) {
	engine := newSampleEngine(t)
	first := sampleEntries()[0].Answer

	for _, query := range []string{"", "the a of", "   ", "xyzzy"} {
		require.Equal(t, first, engine.Answer(query), "query %q", query)
		require.Zero(t, engine.Match(query).Score)
	}
}

func TestEngineDeterministic(t *testing.T) {
	a := newSampleEngine(t)
	b := newSampleEngine(t)
	queries := []string{"shipping", "how long until it arrives", "change order", ""}

	for _, query := range queries {
		want := a.Answer(query)
		for i := 0; i < 5; i++ {
			require.Equal(t, want, a.Answer(query))
		}
		require.Equal(t, want, b.Answer(query))
	}
}

func TestEngineConcurrentReads(t *testing.T) {
	engine := newSampleEngine(t)
	want := engine.Answer("where is my package")

	var wg sync.WaitGroup
	results := make([]string, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = engine.Answer("where is my package")
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		require.Equal(t, want, got)
	}
}

func TestEngineEntriesIsACopy(t *testing.T) {
	engine := newSampleEngine(t)
	entries := engine.Entries()
	require.Equal(t, sampleEntries(), entries)

	entries[0].Answer = "mutated"
	require.Equal(t, sampleEntries()[0].Answer, engine.Entries()[0].Answer)
}

func TestLoadEngine(t *testing.T) {
	engine, err := LoadEngine(context.Background(), Config{Synonyms: storeSynonyms}, stubSource{entries: sampleEntries()}, newTestLogger())
	require.NoError(t, err)
	require.Equal(t, 5, engine.Index().Len())
}

func TestLoadEngineTrimsEntries(t *testing.T) {
	source := stubSource{entries: []Entry{{Question: "  Do you ship abroad? ", Answer: " Yes.\n"}}}
	engine, err := LoadEngine(context.Background(), Config{}, source, newTestLogger())
	require.NoError(t, err)
	require.Equal(t, []Entry{{Question: "Do you ship abroad?", Answer: "Yes."}}, engine.Entries())
}

func TestLoadEngineFailures(t *testing.T) {
	cases := []struct {
		name   string
		source stubSource
		code   string
	}{
		{name: "source error", source: stubSource{err: errors.New("connection refused")}, code: apperrors.CodeSourceUnavailable},
		{name: "empty source", source: stubSource{}, code: apperrors.CodeStartupConfig},
		{name: "blank answer", source: stubSource{entries: []Entry{{Question: "Hours?", Answer: "  "}}}, code: apperrors.CodeStartupConfig},
		{name: "blank question", source: stubSource{entries: []Entry{{Question: "", Answer: "9-5"}}}, code: apperrors.CodeStartupConfig},
		{name: "stop words only", source: stubSource{entries: []Entry{{Question: "What is it?", Answer: "It."}}}, code: apperrors.CodeStartupConfig},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadEngine(context.Background(), Config{}, tc.source, newTestLogger())
			require.Error(t, err)
			require.True(t, apperrors.IsCode(err, tc.code), "got %v", err)
		})
	}
}

func TestServiceAnswer(t *testing.T) {
	svc := NewService(newSampleEngine(t), newTestLogger())

	resp, err := svc.Answer(context.Background(), Request{Question: "How long does delivery take?"})
	require.NoError(t, err)
	require.Equal(t, "How long does delivery take?", resp.Question)
	require.Equal(t, "Shipping typically takes 3 to 5 business days.", resp.Answer)
	require.Equal(t, "How long does shipping take?", resp.MatchedQuestion)
	require.Equal(t, 1, resp.MatchIndex)
	require.InDelta(t, 1.0, resp.Score, 1e-9)

	require.Len(t, svc.Entries(context.Background()), 5)
}

type stubSource struct {
	entries []Entry
	err     error
}

func (s stubSource) Load(context.Context) ([]Entry, error) {
	return s.entries, s.err
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
