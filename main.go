package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"trustlens/api"
	"trustlens/engine"
	"trustlens/queue"
	"trustlens/storage"
	"trustlens/types"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	mode := flag.String("mode", "serve", "Run mode: serve (HTTP API), worker (Kafka consumer), analyze (one-shot)")
	contentType := flag.String("type", "text", "Content type for analyze mode: text or url")
	input := flag.String("input", "", "Text or URL to analyze in analyze mode")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	eng := engine.NewFromEnv(ctx)
	defer eng.Close()

	archiver := storage.NewArchiverFromEnv(ctx)

	switch *mode {
	case "serve":
		runServer(eng, archiver)
	case "worker":
		runWorker(ctx, eng, archiver)
	case "analyze":
		runAnalyze(ctx, eng, *contentType, *input)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func runServer(eng *engine.Engine, archiver *storage.Archiver) {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	r := api.NewRouter(eng, archiver)
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  POST /api/analyze")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runWorker(ctx context.Context, eng *engine.Engine, archiver *storage.Archiver) {
	brokers := strings.Split(getEnvOrDefault("KAFKA_BROKERS", "localhost:9092"), ",")
	topic := getEnvOrDefault("KAFKA_TOPIC", "trustlens.analysis.requests")
	groupID := getEnvOrDefault("KAFKA_GROUP_ID", "trustlens-workers")

	consumer, err := queue.NewConsumer(queue.ConsumerConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
		Handler: queue.NewAnalysisHandler(eng, archiver),
	})
	if err != nil {
		log.Fatalf("Failed to create Kafka consumer: %v", err)
	}
	defer consumer.Close()

	if err := consumer.Start(ctx); err != nil {
		log.Fatalf("Failed to start Kafka consumer: %v", err)
	}

	<-ctx.Done()
	log.Println("Worker shutting down")
}

func runAnalyze(ctx context.Context, eng *engine.Engine, contentType, input string) {
	if input == "" {
		log.Fatal("analyze mode requires -input")
	}

	var content types.ContentVariant
	switch contentType {
	case "text":
		content = types.TextContent(input)
	case "url":
		content = types.URLContent(input)
	default:
		log.Fatalf("analyze mode supports text and url input, not %q", contentType)
	}

	result := eng.Analyze(ctx, content)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
