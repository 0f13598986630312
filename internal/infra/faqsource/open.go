package faqsource

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/faqbot/internal/domain/faq"
	"github.com/yanqian/faqbot/internal/infra/config"
)

// Open builds the knowledge source selected by cfg.Source. The returned
// cleanup releases any connection the source holds and is never nil.
// Connection failures are returned, not papered over: without its knowledge
// base the service must not start.
func Open(ctx context.Context, cfg config.FAQConfig, logger *slog.Logger) (faq.KnowledgeSource, func(), error) {
	logger = logger.With("component", "faqsource")
	noop := func() {}

	switch cfg.Source {
	case config.SourceBuiltin, "":
		logger.Info("using builtin knowledge base")
		source, err := NewBuiltinSource()
		return source, noop, err
	case config.SourceFile:
		logger.Info("using file knowledge base", "path", cfg.File)
		return NewFileSource(cfg.File), noop, nil
	case config.SourceValkey:
		client, err := valkey.NewClient(buildValkeyOptions(cfg.Valkey.Addr))
		if err != nil {
			return nil, noop, fmt.Errorf("create valkey client: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Do(pingCtx, client.B().Ping().Build()).Error(); err != nil {
			client.Close()
			return nil, noop, fmt.Errorf("valkey ping: %w", err)
		}
		logger.Info("using valkey knowledge base", "addr", cfg.Valkey.Addr, "key", cfg.Valkey.Key)
		return NewValkeySource(client, cfg.Valkey.Key), client.Close, nil
	case config.SourcePostgres:
		poolConfig, err := pgxpool.ParseConfig(cfg.Postgres.DSN)
		if err != nil {
			return nil, noop, fmt.Errorf("invalid postgres dsn: %w", err)
		}
		if cfg.Postgres.MaxConns > 0 {
			poolConfig.MaxConns = cfg.Postgres.MaxConns
		}
		if cfg.Postgres.MinConns > 0 {
			poolConfig.MinConns = cfg.Postgres.MinConns
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, noop, fmt.Errorf("init postgres pool: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("postgres ping: %w", err)
		}
		logger.Info("using postgres knowledge base", "table", cfg.Postgres.Table)
		return NewPostgresSource(pool, cfg.Postgres.Table), pool.Close, nil
	case config.SourceSQLite:
		db, err := OpenSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, noop, fmt.Errorf("sqlite ping: %w", err)
		}
		logger.Info("using sqlite knowledge base", "path", cfg.SQLite.Path, "table", cfg.SQLite.Table)
		return NewSQLiteSource(db, cfg.SQLite.Table), func() { _ = db.Close() }, nil
	case config.SourceObjectStore:
		store := cfg.ObjectStore
		source, err := NewObjectSource(store.Endpoint, store.AccessKey, store.SecretKey, store.Region, store.Bucket, store.Key)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("using object store knowledge base", "bucket", store.Bucket, "key", store.Key)
		return source, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown knowledge base source %q", cfg.Source)
	}
}

func buildValkeyOptions(addr string) valkey.ClientOption {
	if strings.Contains(addr, "://") {
		if opt, err := valkey.ParseURL(addr); err == nil {
			return opt
		}
	}
	return valkey.ClientOption{InitAddress: []string{addr}}
}
