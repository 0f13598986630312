package faqsource

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yanqian/faqbot/internal/domain/faq"
)

// document is the wrapped form of a knowledge base file.
type document struct {
	Entries []faq.Entry `json:"entries" yaml:"entries"`
}

// decodeEntries accepts either a bare list of entries or an object with an
// "entries" list, encoded as JSON or YAML. Entry order is preserved.
func decodeEntries(data []byte) ([]faq.Entry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	switch trimmed[0] {
	case '[':
		var entries []faq.Entry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("parse knowledge base json: %w", err)
		}
		return entries, nil
	case '{':
		var doc document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("parse knowledge base json: %w", err)
		}
		return doc.Entries, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(trimmed, &root); err != nil {
		return nil, fmt.Errorf("parse knowledge base yaml: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		var entries []faq.Entry
		if err := node.Decode(&entries); err != nil {
			return nil, fmt.Errorf("parse knowledge base yaml: %w", err)
		}
		return entries, nil
	case yaml.MappingNode:
		var doc document
		if err := node.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse knowledge base yaml: %w", err)
		}
		return doc.Entries, nil
	default:
		return nil, errors.New("parse knowledge base yaml: expected a list of entries")
	}
}
