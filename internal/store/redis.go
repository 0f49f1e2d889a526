package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// FeedbackListKey is the Redis list holding one JSON-encoded record per entry.
const FeedbackListKey = "feedback:log"

const redisTimeout = 5 * time.Second

// RedisFeedbackStore appends feedback records to a Redis list. RPUSH keeps
// submission order across processes sharing the same server.
type RedisFeedbackStore struct {
	client *redis.Client
	key    string
	logger logrus.FieldLogger
}

func NewRedisFeedbackStore(redisURL string, logger logrus.FieldLogger) (*RedisFeedbackStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisFeedbackStore{client: client, key: FeedbackListKey, logger: logger}, nil
}

func (s *RedisFeedbackStore) Close() error {
	return s.client.Close()
}

func (s *RedisFeedbackStore) Append(record FeedbackRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal feedback: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := s.client.RPush(ctx, s.key, data).Err(); err != nil {
		s.logger.Errorf("An unexpected error occurred while saving to %s: %v", s.key, err)
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	logFeedbackSaved(s.logger, record)
	return nil
}

func (s *RedisFeedbackStore) All() ([]FeedbackRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	entries, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read feedback: %w", err)
	}

	records := make([]FeedbackRecord, 0, len(entries))
	for _, entry := range entries {
		var rec FeedbackRecord
		if err := json.Unmarshal([]byte(entry), &rec); err != nil {
			s.logger.Errorf("Skipping undecodable feedback entry in %s: %v", s.key, err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
