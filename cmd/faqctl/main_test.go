package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/faqbot/internal/domain/faq"
	"github.com/yanqian/faqbot/internal/infra/faqsource"
)

func TestChatLoop(t *testing.T) {
	color.NoColor = true
	source, err := faqsource.NewBuiltinSource()
	require.NoError(t, err)
	entries, err := source.Load(context.Background())
	require.NoError(t, err)
	engine, err := faq.NewEngine(entries, faq.NewNormalizer(map[string]string{"package": "order"}))
	require.NoError(t, err)

	var out bytes.Buffer
	in := strings.NewReader("how do I return something I bought\nwhere is my package\nexit\nnever read\n")
	require.NoError(t, chat(context.Background(), engine, in, newPrinter(&out, true)))

	text := out.String()
	require.Contains(t, text, "Knowledge base: 5 entries")
	require.Contains(t, text, "Bot: You can return any product within 30 days of purchase.")
	require.Contains(t, text, "Bot: After placing an order, you'll receive an email with tracking details.")
	require.Contains(t, text, `matched="How can I track my order?" #3`)
	require.NotContains(t, text, "never read")
}

func TestRunBlankQuestionAnswersOnce(t *testing.T) {
	color.NoColor = true
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("FAQ_SOURCE", "")
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	in := strings.NewReader("where is my package\nexit\n")
	require.NoError(t, run(context.Background(), options{question: "   ", oneShot: true}, in, &out))

	text := out.String()
	require.Contains(t, text, "Bot: You can return any product within 30 days of purchase.")
	require.Contains(t, text, "(score 0.00)")
	require.NotContains(t, text, "Knowledge base:")
}

func TestRunOneShotUsesShippedSynonyms(t *testing.T) {
	color.NoColor = true
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("FAQ_SOURCE", "")
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), options{question: "where is my package", oneShot: true, explain: true}, strings.NewReader(""), &out))
	require.Contains(t, out.String(), `matched="How can I track my order?" #3`)
}
