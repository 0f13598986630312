package faqsource

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver

	"github.com/yanqian/faqbot/internal/domain/faq"
)

// SQLiteSource reads entries from a local SQLite database with the same
// table shape as PostgresSource.
type SQLiteSource struct {
	db    *sql.DB
	table string
}

// OpenSQLite opens the database file at path with the modernc.org/sqlite driver.
func OpenSQLite(path string) (*sql.DB, error) {
	return sql.Open("sqlite", path)
}

// NewSQLiteSource constructs the source.
func NewSQLiteSource(db *sql.DB, table string) *SQLiteSource {
	if table == "" {
		table = "faq_entries"
	}
	return &SQLiteSource{db: db, table: table}
}

// Load implements faq.KnowledgeSource.
func (s *SQLiteSource) Load(ctx context.Context) ([]faq.Entry, error) {
	rows, err := s.db.QueryContext(ctx, selectEntriesSQL(s.table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []faq.Entry
	for rows.Next() {
		var entry faq.Entry
		if err := rows.Scan(&entry.Question, &entry.Answer); err != nil {
			return nil, fmt.Errorf("scan entry %d: %w", len(entries), err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

var _ faq.KnowledgeSource = (*SQLiteSource)(nil)
