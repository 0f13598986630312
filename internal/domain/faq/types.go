package faq

// Entry is one pre-authored question/answer pair. Its identity is its
// position in the knowledge base.
type Entry struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Match is the outcome of matching one query against the index.
type Match struct {
	Index      int
	Score      float64
	Question   string
	Answer     string
	Normalized string
}

// Request encapsulates a FAQ query.
type Request struct {
	Question string `json:"question"`
}

// Response is returned to the HTTP transport.
type Response struct {
	Question        string  `json:"question"`
	Answer          string  `json:"answer"`
	MatchedQuestion string  `json:"matchedQuestion"`
	MatchIndex      int     `json:"matchIndex"`
	Score           float64 `json:"score"`
	DurationMs      int64   `json:"durationMs,omitempty"`
}
