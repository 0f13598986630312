package faqsource

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/faqbot/internal/domain/faq"
)

// ValkeySource reads entries from a Valkey list, one JSON entry per element,
// in list order.
type ValkeySource struct {
	client valkey.Client
	key    string
}

// NewValkeySource constructs a source over the list at key.
func NewValkeySource(client valkey.Client, key string) *ValkeySource {
	if key == "" {
		key = "faq:entries"
	}
	return &ValkeySource{client: client, key: key}
}

// Load implements faq.KnowledgeSource.
func (s *ValkeySource) Load(ctx context.Context) ([]faq.Entry, error) {
	cmd := s.client.B().Lrange().Key(s.key).Start(0).Stop(-1).Build()
	items, err := s.client.Do(ctx, cmd).AsStrSlice()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, err
	}
	return decodeListItems(items)
}

func decodeListItems(items []string) ([]faq.Entry, error) {
	entries := make([]faq.Entry, 0, len(items))
	for i, item := range items {
		var entry faq.Entry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("decode list element %d: %w", i, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

var _ faq.KnowledgeSource = (*ValkeySource)(nil)
