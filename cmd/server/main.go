// Package main runs the transaction notification relay:
// - Webhook (HTTP): receives transaction batches, enriches, notifies
// - Commands (HTTP): chat updates driving the wallet label store
// - Stream (optional): WebSocket event feed into the same pipeline
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"solana-tx-relay/internal/command"
	"solana-tx-relay/internal/market"
	"solana-tx-relay/internal/processor"
	"solana-tx-relay/internal/server"
	"solana-tx-relay/internal/storage"
	chstore "solana-tx-relay/internal/storage/clickhouse"
	filestore "solana-tx-relay/internal/storage/file"
	"solana-tx-relay/internal/storage/memory"
	pgstore "solana-tx-relay/internal/storage/postgres"
	"solana-tx-relay/internal/stream"
	"solana-tx-relay/internal/telegram"
)

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	botToken := flag.String("bot-token", os.Getenv("TELEGRAM_BOT_TOKEN"), "Telegram bot token")
	chatID := flag.String("chat-id", os.Getenv("TELEGRAM_CHAT_ID"), "Telegram chat ID for notifications")
	minAmount := flag.Float64("min-amount", envFloat("MIN_AMOUNT_SOL", processor.DefaultMinAmount), "Minimum SOL amount for a notification")
	labelsFile := flag.String("labels-file", envOr("LABELS_FILE", "labels.json"), "Path to the wallet labels JSON file")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string (optional label store backend)")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string (optional notification archive)")
	wsEndpoint := flag.String("ws-endpoint", os.Getenv("SOLANA_WS_ENDPOINT"), "WebSocket event feed endpoint (optional)")
	listenAddr := flag.String("listen-addr", envOr("LISTEN_ADDR", ":8080"), "HTTP listen address")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of file/database backends")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	// Validate required flags
	if *botToken == "" {
		logger.Fatal("--bot-token (TELEGRAM_BOT_TOKEN) is required")
	}
	if *chatID == "" {
		logger.Fatal("--chat-id (TELEGRAM_CHAT_ID) is required")
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create label store
	labels, cleanupLabels, err := createLabelStore(ctx, *labelsFile, *postgresDSN, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create label store: %v", err)
	}
	defer cleanupLabels()

	// Create notification archive
	archive, cleanupArchive, err := createArchive(ctx, *clickhouseDSN, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create notification archive: %v", err)
	}
	defer cleanupArchive()

	notifier := telegram.NewClient(*botToken)
	resolver := market.NewClient()

	proc := processor.New(processor.Options{
		Labels:    labels,
		Market:    resolver,
		Notifier:  notifier,
		Archive:   archive,
		MinAmount: *minAmount,
	})
	commands := command.NewHandler(labels, notifier, nil)
	srv := server.New(proc, commands, *chatID, logger)

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:    *listenAddr,
		Handler: srv.Routes(),
	}

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("HTTP shutdown error: %v", err)
		}
	}()

	// Start optional stream source
	if *wsEndpoint != "" {
		source := stream.NewSource(*wsEndpoint, proc, *chatID, nil)
		go func() {
			if err := source.Run(ctx); err != nil && err != context.Canceled {
				logger.Printf("Stream source error: %v", err)
			}
		}()
	}

	logger.Printf("Listening on %s (min amount %.4f SOL)", *listenAddr, *minAmount)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("HTTP server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createLabelStore picks the label store backend: memory, postgres when a DSN
// is given, otherwise the JSON file store.
func createLabelStore(ctx context.Context, labelsFile, postgresDSN string, useMemory bool) (storage.LabelStore, func(), error) {
	if useMemory {
		return memory.NewLabelStore(), func() {}, nil
	}

	if postgresDSN != "" {
		pool, err := pgstore.NewPool(ctx, postgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return pgstore.NewLabelStore(pool), pool.Close, nil
	}

	store, err := filestore.NewLabelStore(labelsFile)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {}, nil
}

// createArchive picks the notification archive backend: clickhouse when a DSN
// is given, otherwise in-memory.
func createArchive(ctx context.Context, clickhouseDSN string, useMemory bool) (storage.NotificationArchive, func(), error) {
	if clickhouseDSN == "" || useMemory {
		return memory.NewNotificationArchive(), func() {}, nil
	}

	conn, err := chstore.NewConn(ctx, clickhouseDSN)
	if err != nil {
		return nil, nil, err
	}
	return chstore.NewNotificationArchive(conn), func() { conn.Close() }, nil
}

// envOr returns the environment value for key, or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envFloat returns the environment value for key parsed as float64, or
// fallback when unset or unparsable.
func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
