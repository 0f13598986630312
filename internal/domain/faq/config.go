package faq

import "time"

// Config holds runtime knobs for the FAQ engine.
type Config struct {
	// Synonyms folds domain words onto a canonical vocabulary term, e.g. "parcel" -> "order".
	Synonyms    map[string]string
	LoadTimeout time.Duration
}
