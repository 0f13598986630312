package faqsource

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/faqbot/internal/domain/faq"
)

// PostgresSource reads entries from a table shaped like
//
//	CREATE TABLE faq_entries (
//		id       BIGSERIAL PRIMARY KEY,
//		position INT NOT NULL,
//		question TEXT NOT NULL,
//		answer   TEXT NOT NULL
//	);
type PostgresSource struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresSource constructs the source.
func NewPostgresSource(pool *pgxpool.Pool, table string) *PostgresSource {
	if table == "" {
		table = "faq_entries"
	}
	return &PostgresSource{pool: pool, table: table}
}

// Load implements faq.KnowledgeSource.
func (s *PostgresSource) Load(ctx context.Context) ([]faq.Entry, error) {
	rows, err := s.pool.Query(ctx, selectEntriesSQL(s.table))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[faq.Entry])
}

func selectEntriesSQL(table string) string {
	return "SELECT question, answer FROM " + pgx.Identifier{table}.Sanitize() + " ORDER BY position, id"
}

var _ faq.KnowledgeSource = (*PostgresSource)(nil)
