package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/campuscore/advisor/internal/llm"
	"github.com/campuscore/advisor/pkg/advisor"
	"github.com/campuscore/advisor/pkg/advisor/config"
	"github.com/campuscore/advisor/pkg/advisor/keyword"
	"github.com/campuscore/advisor/pkg/advisor/knowledge"
	"github.com/campuscore/advisor/pkg/advisor/session"
	"github.com/campuscore/advisor/pkg/advisor/store/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to advisor config YAML")
		dbPath     = flag.String("db", "", "Database path (overrides config)")
		query      = flag.String("query", "", "One-shot question (non-interactive mode)")
		verbose    = flag.Bool("verbose", false, "Log analysis warnings to stderr")
	)
	flag.Parse()

	var cfg config.Config
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if cfg.DBPath == "" {
		log.Fatal("--db or --config required")
	}

	logger := zap.NewNop()
	if *verbose {
		dev, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("logger: %v", err)
		}
		logger = dev
		defer logger.Sync()
	}

	ctx := context.Background()

	eng, cleanup, err := buildAdvisor(ctx, cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	// One-shot mode
	if *query != "" {
		answer, err := eng.Ask(ctx, *query)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(answer)
		return
	}

	// Interactive mode
	fmt.Println("===========================================")
	fmt.Println("  Academic Advisor")
	fmt.Println("  Courses, teachers, majors, schedules")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Println(eng.Student().Greeting())
	fmt.Println("Type 'exit' or Ctrl+D to quit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if strings.EqualFold(question, "exit") {
			break
		}

		answer, err := eng.Ask(ctx, question)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Println("Advisor:", answer)
	}

	fmt.Println("\nGoodbye!")
}

func buildAdvisor(ctx context.Context, cfg config.Config, logger *zap.Logger) (*advisor.Advisor, func(), error) {
	db, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	var stopwords []string
	if cfg.StoplistPath != "" {
		sl, err := config.LoadStoplist(cfg.StoplistPath)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("load stoplist: %w", err)
		}
		stopwords = sl.Terms
	} else {
		stopwords = keyword.DefaultStopwords()
	}

	opts := advisor.Options{
		Store:     db,
		Stopwords: stopwords,
		Student: session.Student{
			Name:  cfg.Student.Name,
			ID:    cfg.Student.ID,
			Major: cfg.Student.Major,
			GPA:   cfg.Student.GPA,
		},
		Logger: logger,
	}

	if cfg.LLM.BaseURL != "" && cfg.LLM.ChatModel != "" {
		client := &llm.Client{
			BaseURL:    cfg.LLM.BaseURL,
			APIKey:     cfg.LLM.APIKey,
			ChatModel:  cfg.LLM.ChatModel,
			EmbedModel: cfg.LLM.EmbedModel,
		}
		opts.Phraser = client
		if cfg.LLM.EmbedModel != "" {
			opts.Fallback = knowledge.New(knowledge.Options{
				Store:     db,
				Embedder:  client,
				Answerer:  client,
				ChunkSize: cfg.Knowledge.ChunkSize,
				TopK:      cfg.Knowledge.TopK,
			})
		}
	}

	eng := advisor.New(opts)
	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Warn("close store", zap.Error(err))
		}
	}
	return eng, cleanup, nil
}
