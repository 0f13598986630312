package faq

import (
	"context"
	"log/slog"
	"time"

	apperrors "github.com/yanqian/faqbot/pkg/errors"
)

const defaultLoadTimeout = 10 * time.Second

// Engine answers free-text questions with the closest knowledge base entry.
// It is built once and never mutated, so any number of goroutines may call
// it without coordination.
type Engine struct {
	normalizer *Normalizer
	index      *Index
}

// NewEngine fits the index over entries.
func NewEngine(entries []Entry, normalizer *Normalizer) (*Engine, error) {
	if normalizer == nil {
		normalizer = NewNormalizer(nil)
	}
	index, err := BuildIndex(entries, normalizer)
	if err != nil {
		return nil, err
	}
	return &Engine{normalizer: normalizer, index: index}, nil
}

// LoadEngine reads the knowledge base from source and builds the engine.
// Any error is fatal for the caller.
func LoadEngine(ctx context.Context, cfg Config, source KnowledgeSource, logger *slog.Logger) (*Engine, error) {
	timeout := cfg.LoadTimeout
	if timeout <= 0 {
		timeout = defaultLoadTimeout
	}
	loadCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := source.Load(loadCtx)
	if err != nil {
		if IsStartupConfigurationError(err) {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.CodeSourceUnavailable, "load knowledge base", err)
	}
	entries, err := ValidateEntries(raw)
	if err != nil {
		return nil, err
	}
	engine, err := NewEngine(entries, NewNormalizer(cfg.Synonyms))
	if err != nil {
		return nil, err
	}
	logger.Info("faq index built", "component", "faq.engine", "entries", engine.index.Len(), "vocabulary", engine.index.Dimensions())
	return engine, nil
}

// Answer returns the answer of the best matching entry. It always returns
// an answer: a query with no recognized words gets the first entry's answer.
// Callers that need a "no match" outcome should threshold Match().Score.
func (e *Engine) Answer(query string) string {
	return e.Match(query).Answer
}

// Match is Answer with the evidence behind the decision.
func (e *Engine) Match(query string) Match {
	normalized := e.normalizer.Normalize(query)
	i, score := e.index.BestMatch(normalized)
	return Match{
		Index:      i,
		Score:      score,
		Question:   e.index.questions[i],
		Answer:     e.index.answers[i],
		Normalized: normalized,
	}
}

// Entries returns a copy of the knowledge base in index order.
func (e *Engine) Entries() []Entry {
	out := make([]Entry, e.index.Len())
	for i := range out {
		out[i] = e.index.Entry(i)
	}
	return out
}

// Index exposes the fitted vector space.
func (e *Engine) Index() *Index {
	return e.index
}

// Service exposes the FAQ engine to transports.
type Service interface {
	Answer(ctx context.Context, req Request) (Response, error)
	Entries(ctx context.Context) []Entry
}

type service struct {
	engine *Engine
	logger *slog.Logger
}

// NewService wires up the FAQ domain.
func NewService(engine *Engine, logger *slog.Logger) Service {
	return &service{
		engine: engine,
		logger: logger.With("component", "faq.service"),
	}
}

// Answer never fails; the error return keeps the transport contract uniform.
func (s *service) Answer(ctx context.Context, req Request) (Response, error) {
	start := time.Now()
	match := s.engine.Match(req.Question)
	s.logger.DebugContext(ctx, "faq matched", "normalized", match.Normalized, "index", match.Index, "score", match.Score)
	return Response{
		Question:        req.Question,
		Answer:          match.Answer,
		MatchedQuestion: match.Question,
		MatchIndex:      match.Index,
		Score:           match.Score,
		DurationMs:      time.Since(start).Milliseconds(),
	}, nil
}

func (s *service) Entries(_ context.Context) []Entry {
	return s.engine.Entries()
}
