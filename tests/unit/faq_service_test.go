package unit

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/faqbot/internal/domain/faq"
	"github.com/yanqian/faqbot/internal/infra/config"
	"github.com/yanqian/faqbot/internal/infra/faqsource"
	httpiface "github.com/yanqian/faqbot/internal/interface/http"
)

func TestChatAnswersSampleStoreQuestions(t *testing.T) {
	server := newServer(t, newBuiltinEngine(t))

	cases := map[string]string{
		"how do I return something I bought": "You can return any product within 30 days of purchase.",
		"where is my package":                "After placing an order, you'll receive an email with tracking details.",
		"How long does shipping take?":       "Shipping typically takes 3 to 5 business days.",
		"international delivery":             "Yes, we offer international shipping to select countries.",
		"can I change my order":              "Orders can be canceled or changed within 24 hours of placement.",
	}
	for message, want := range cases {
		require.Equal(t, want, chat(t, server, message), "message %q", message)
	}
}

func TestChatDegenerateMessagesGetFirstAnswer(t *testing.T) {
	server := newServer(t, newBuiltinEngine(t))
	first := "You can return any product within 30 days of purchase."

	for _, message := range []string{"", "the a of", "!!!", "qwertyuiop"} {
		require.Equal(t, first, chat(t, server, message), "message %q", message)
	}
}

func TestChatIsDeterministic(t *testing.T) {
	server := newServer(t, newBuiltinEngine(t))
	want := chat(t, server, "how long until my parcel ships")
	for i := 0; i < 5; i++ {
		require.Equal(t, want, chat(t, server, "how long until my parcel ships"))
	}
}

func TestAnswerEndpointReportsMatch(t *testing.T) {
	server := newServer(t, newBuiltinEngine(t))

	body := bytes.NewBufferString(`{"question":"What is your return policy?"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/faq/answer", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp faq.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 0, resp.MatchIndex)
	require.Equal(t, "What is your return policy?", resp.MatchedQuestion)
	require.InDelta(t, 1.0, resp.Score, 1e-9)
}

func TestIndependentEnginesDoNotInterfere(t *testing.T) {
	store := newBuiltinEngine(t)
	other, err := faq.NewEngine([]faq.Entry{
		{Question: "Where is the office?", Answer: "Main street 1."},
		{Question: "What are your opening hours?", Answer: "9 to 5."},
	}, faq.NewNormalizer(nil))
	require.NoError(t, err)

	require.Equal(t, "9 to 5.", other.Answer("opening hours"))
	require.Equal(t, "Shipping typically takes 3 to 5 business days.", store.Answer("how long does delivery take"))
	require.Equal(t, "Main street 1.", other.Answer("where is my package"))
}

func TestShippedDefaultsAnswerSampleStore(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("FAQ_SOURCE", "")
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	source, cleanup, err := faqsource.Open(context.Background(), cfg.FAQ, newTestLogger())
	require.NoError(t, err)
	defer cleanup()

	engine, err := faq.LoadEngine(context.Background(), faq.Config{Synonyms: cfg.FAQ.Synonyms, LoadTimeout: cfg.FAQ.LoadTimeout}, source, newTestLogger())
	require.NoError(t, err)

	require.Equal(t, "You can return any product within 30 days of purchase.", engine.Answer("how do I return something I bought"))
	match := engine.Match("where is my package")
	require.Equal(t, 3, match.Index)
	require.Equal(t, "After placing an order, you'll receive an email with tracking details.", match.Answer)
}

func newBuiltinEngine(t *testing.T) *faq.Engine {
	t.Helper()
	source, err := faqsource.NewBuiltinSource()
	require.NoError(t, err)
	engine, err := faq.LoadEngine(context.Background(), faq.Config{Synonyms: config.DefaultSynonyms()}, source, newTestLogger())
	require.NoError(t, err)
	return engine
}

func newServer(t *testing.T, engine *faq.Engine) *http.Server {
	t.Helper()
	logger := newTestLogger()
	cfg := &config.Config{HTTP: config.HTTPConfig{Address: ":0", ReadTimeout: time.Second, WriteTimeout: time.Second}}
	return httpiface.NewRouter(cfg, httpiface.NewHandler(faq.NewService(engine, logger), logger))
}

func chat(t *testing.T, server *http.Server, message string) string {
	t.Helper()
	payload, err := json.Marshal(httpiface.ChatRequest{Message: message})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp httpiface.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Response
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
