// Package kafka_client publishes processed news to Kafka.
package kafka_client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/spacesedan/newsnlp/config"
	"github.com/spacesedan/newsnlp/internal/models"
)

// Producer writes every article in its own transaction.
type Producer struct {
	producer *kafka.Producer
	topic    string
}

func NewProducer(ctx context.Context, cfg config.KafkaConfig) (*Producer, error) {
	slog.Info("[KafkaClient] Initializing Kafka Producer...", slog.String("broker", cfg.Broker))

	p, err := kafka.NewProducer(producerConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	if err := p.InitTransactions(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("[KafkaClient] Failed to init transactions: %w", err)
	}

	topic := cfg.ResultsTopic
	if topic == "" {
		topic = KAFKA_TOPIC_NEWS_ANALYSIS
	}

	slog.Info("[KafkaClient] Kafka Producer initialized successfully", slog.String("topic", topic))
	return &Producer{producer: p, topic: topic}, nil
}

func (p *Producer) Close() error {
	slog.Info("[KafkaClient] Flushing Kafka producer before shutdown...")
	if remaining := p.producer.Flush(FLUSH_TIMEOUT_MS); remaining > 0 {
		slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	p.producer.Close()
	slog.Info("[KafkaClient] Kafka producer shut down")
	return nil
}

// Publish sends article keyed by its URL.
func (p *Producer) Publish(ctx context.Context, article models.ProcessedArticle) error {
	value, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to marshal article: %w", err)
	}

	if err := p.produce(ctx, article.Key(), value); err != nil {
		return err
	}

	slog.Info("[KafkaClient] Published article to Kafka transactionally",
		slog.String("topic", p.topic),
		slog.String("key", article.Key()))
	return nil
}

func (p *Producer) produce(ctx context.Context, key string, value []byte) error {
	if err := p.producer.BeginTransaction(); err != nil {
		return fmt.Errorf("[KafkaClient] failed to begin transaction: %w", err)
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny},
		Key:            []byte(key),
		Value:          value,
	}

	err := withRetry(ctx, MAX_RETRIES, RETRY_DELAY, func(attempt int) error {
		err := p.producer.Produce(msg, nil)
		if err != nil {
			slog.Warn("[KafkaClient] Failed to produce message, retrying...",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
		}
		return err
	})
	if err != nil {
		if abortErr := p.producer.AbortTransaction(ctx); abortErr != nil {
			return fmt.Errorf("[KafkaClient] failed to abort transaction after produce error: %w", abortErr)
		}
		return err
	}

	var commitErr error
	for i := 0; i < MAX_RETRIES; i++ {
		if commitErr = p.producer.CommitTransaction(ctx); commitErr == nil {
			return nil
		}
		slog.Warn("[KafkaClient] Failed to commit transaction, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", commitErr.Error()))
	}

	if abortErr := p.producer.AbortTransaction(ctx); abortErr != nil {
		slog.Error("[KafkaClient] Failed to abort transaction after commit error",
			slog.String("error", abortErr.Error()))
	}
	return fmt.Errorf("[KafkaClient] failed to commit transaction after %d retries: %w", MAX_RETRIES, commitErr)
}
