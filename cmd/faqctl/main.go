package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/yanqian/faqbot/internal/domain/faq"
	"github.com/yanqian/faqbot/internal/infra/config"
	"github.com/yanqian/faqbot/internal/infra/faqsource"
	"github.com/yanqian/faqbot/pkg/logger"
)

var (
	question = flag.String("q", "", "answer a single question and exit")
	explain  = flag.Bool("explain", false, "show the normalized query and the matched question")
)

func main() {
	_ = godotenv.Load()
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := options{question: *question, explain: *explain}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "q" {
			opts.oneShot = true
		}
	})

	if err := run(ctx, opts, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are the parsed command line flags. oneShot is set whenever -q was
// given, even with a blank question.
type options struct {
	question string
	oneShot  bool
	explain  bool
}

func run(ctx context.Context, opts options, in io.Reader, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// keep stdout for answers
	log := logger.NewWithWriter(os.Stderr, config.LogConfig{Level: "warn", Format: "text"})

	source, cleanup, err := faqsource.Open(ctx, cfg.FAQ, log)
	if err != nil {
		return err
	}
	defer cleanup()

	engine, err := faq.LoadEngine(ctx, faq.Config{Synonyms: cfg.FAQ.Synonyms, LoadTimeout: cfg.FAQ.LoadTimeout}, source, log)
	if err != nil {
		return err
	}

	p := newPrinter(out, opts.explain)
	if opts.oneShot {
		p.answer(engine.Match(opts.question))
		return nil
	}
	return chat(ctx, engine, in, p)
}

func chat(ctx context.Context, engine *faq.Engine, in io.Reader, p *printer) error {
	p.banner(engine.Index().Len())
	scanner := bufio.NewScanner(in)
	for {
		if ctx.Err() != nil {
			return nil
		}
		p.prompt()
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := scanner.Text()
		if strings.EqualFold(strings.TrimSpace(line), "exit") {
			return nil
		}
		p.answer(engine.Match(line))
	}
}

type printer struct {
	out     io.Writer
	explain bool
	label   func(a ...interface{}) string
	bot     func(a ...interface{}) string
	dim     func(a ...interface{}) string
}

func newPrinter(out io.Writer, explain bool) *printer {
	return &printer{
		out:     out,
		explain: explain,
		label:   color.New(color.FgGreen, color.Bold).SprintFunc(),
		bot:     color.New(color.FgCyan, color.Bold).SprintFunc(),
		dim:     color.New(color.Faint).SprintFunc(),
	}
}

func (p *printer) banner(entries int) {
	fmt.Fprintln(p.out, p.label("FAQ assistant"))
	fmt.Fprintf(p.out, "Knowledge base: %d entries. Type 'exit' or press Ctrl+D to quit.\n\n", entries)
}

func (p *printer) prompt() {
	fmt.Fprint(p.out, p.label("You: "))
}

func (p *printer) answer(m faq.Match) {
	fmt.Fprintf(p.out, "%s%s %s\n", p.bot("Bot: "), m.Answer, p.dim(fmt.Sprintf("(score %.2f)", m.Score)))
	if p.explain {
		fmt.Fprintf(p.out, "%s\n", p.dim(fmt.Sprintf("  normalized=%q matched=%q #%d", m.Normalized, m.Question, m.Index)))
	}
}
