package faq

import (
	"context"
	"fmt"
	"strings"
)

// KnowledgeSource supplies the ordered knowledge base once at startup.
type KnowledgeSource interface {
	Load(ctx context.Context) ([]Entry, error)
}

// ValidateEntries trims every entry and rejects an empty knowledge base or a
// row with a blank question or answer. Order is preserved.
func ValidateEntries(entries []Entry) ([]Entry, error) {
	if len(entries) == 0 {
		return nil, startupError("knowledge base has no entries", nil)
	}
	out := make([]Entry, len(entries))
	for i, entry := range entries {
		question := strings.TrimSpace(entry.Question)
		answer := strings.TrimSpace(entry.Answer)
		if question == "" {
			return nil, startupError(fmt.Sprintf("entry %d has an empty question", i), nil)
		}
		if answer == "" {
			return nil, startupError(fmt.Sprintf("entry %d has an empty answer", i), nil)
		}
		out[i] = Entry{Question: question, Answer: answer}
	}
	return out, nil
}
