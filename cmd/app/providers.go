package main

import (
	"context"
	"log/slog"

	"github.com/yanqian/faqbot/internal/domain/faq"
	"github.com/yanqian/faqbot/internal/infra/config"
	"github.com/yanqian/faqbot/internal/infra/faqsource"
)

func provideFAQConfig(cfg *config.Config) faq.Config {
	return faq.Config{
		Synonyms:    cfg.FAQ.Synonyms,
		LoadTimeout: cfg.FAQ.LoadTimeout,
	}
}

func provideKnowledgeSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (faq.KnowledgeSource, func(), error) {
	return faqsource.Open(ctx, cfg.FAQ, logger)
}

// provideEngine loads the knowledge base once. Failure aborts startup.
func provideEngine(ctx context.Context, cfg faq.Config, source faq.KnowledgeSource, logger *slog.Logger) (*faq.Engine, error) {
	return faq.LoadEngine(ctx, cfg, source, logger)
}
