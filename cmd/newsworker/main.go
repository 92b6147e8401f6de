package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spacesedan/newsnlp/config"
	"github.com/spacesedan/newsnlp/internal/clients"
	"github.com/spacesedan/newsnlp/internal/clients/kafka_client"
	"github.com/spacesedan/newsnlp/internal/logging"
	"github.com/spacesedan/newsnlp/internal/news"
	"github.com/spacesedan/newsnlp/internal/scheduler"
)

const kafkaInitRetryDelay = 5 * time.Second

func main() {
	config.LoadEnv(config.AppEnv())

	cfg, err := config.LoadWorkerConfig()
	if err != nil {
		logging.InitLogger("info")
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sources []news.Source
	if cfg.NewsAPIKey != "" {
		sources = append(sources, clients.NewEventRegistryClient(cfg))
	}
	if len(cfg.Feeds) > 0 {
		sources = append(sources, news.NewRSSSource(cfg.Feeds, cfg.ArticleCount))
	}

	publishers := []news.Publisher{news.LogPublisher{}}
	if cfg.Kafka.Enabled() {
		producer := initProducer(ctx, cfg.Kafka)
		if producer == nil {
			return
		}
		defer producer.Close()
		publishers = append(publishers, producer)
	}

	processor := news.NewProcessor(sources, clients.NewNLPClient(cfg.NLPAPIURL, cfg.NLPTimeout), publishers...)
	job := func(ctx context.Context) { processor.Run(ctx) }

	sched := scheduler.New(ctx, cfg.Schedule, cfg.RunTimeout, job)
	if err := sched.Start(); err != nil {
		slog.Error("[Main] Invalid schedule",
			slog.String("spec", cfg.Schedule),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Fetch and process on startup, then on schedule.
	go sched.RunNow()

	<-ctx.Done()
	slog.Info("[Main] Shutting down news worker gracefully...")
	sched.Stop()
}

func initProducer(ctx context.Context, cfg config.KafkaConfig) *kafka_client.Producer {
	for {
		producer, err := kafka_client.NewProducer(ctx, cfg)
		if err == nil {
			return producer
		}

		slog.Warn("[Main] Kafka init failed, retrying...", slog.String("error", err.Error()))
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(kafkaInitRetryDelay):
		}
	}
}
