package faqsource

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/yanqian/faqbot/internal/domain/faq"
)

//go:embed builtin_faq.yaml
var builtinFAQ []byte

// FileSource reads the knowledge base from a YAML or JSON file.
type FileSource struct {
	path string
}

// NewFileSource constructs a file backed source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load implements faq.KnowledgeSource.
func (s *FileSource) Load(_ context.Context) ([]faq.Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base %s: %w", s.path, err)
	}
	return decodeEntries(data)
}

// StaticSource serves a fixed list of entries.
type StaticSource struct {
	entries []faq.Entry
}

// NewStaticSource copies entries into a source.
func NewStaticSource(entries []faq.Entry) *StaticSource {
	return &StaticSource{entries: append([]faq.Entry(nil), entries...)}
}

// NewBuiltinSource serves the sample store FAQ compiled into the binary.
func NewBuiltinSource() (*StaticSource, error) {
	entries, err := decodeEntries(builtinFAQ)
	if err != nil {
		return nil, err
	}
	return NewStaticSource(entries), nil
}

// Load implements faq.KnowledgeSource.
func (s *StaticSource) Load(_ context.Context) ([]faq.Entry, error) {
	return append([]faq.Entry(nil), s.entries...), nil
}

var (
	_ faq.KnowledgeSource = (*FileSource)(nil)
	_ faq.KnowledgeSource = (*StaticSource)(nil)
)
