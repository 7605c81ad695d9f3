package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"labvoice/internal/transcript"
)

// RedisStore keeps reports and summaries as JSON values in Redis.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func reportKey(id string) string {
	return fmt.Sprintf("report:%s", id)
}

func summaryKey(id string) string {
	return fmt.Sprintf("summary:%s", id)
}

func (s *RedisStore) PutReport(ctx context.Context, id string, rec StoredReport) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("store is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("report id is required")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return s.client.Set(ctx, reportKey(id), data, 0).Err()
}

func (s *RedisStore) GetReport(ctx context.Context, id string) (StoredReport, error) {
	if s == nil || s.client == nil {
		return StoredReport{}, fmt.Errorf("store is nil")
	}
	data, err := s.client.Get(ctx, reportKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return StoredReport{}, ErrNotFound
		}
		return StoredReport{}, fmt.Errorf("failed to get report: %w", err)
	}
	var rec StoredReport
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return StoredReport{}, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return rec, nil
}

func (s *RedisStore) ListReportIDs(ctx context.Context) ([]string, error) {
	if s == nil || s.client == nil {
		return nil, fmt.Errorf("store is nil")
	}
	var ids []string
	iter := s.client.Scan(ctx, 0, reportKey("*"), 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), "report:"))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan report keys: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *RedisStore) PutSummary(ctx context.Context, id string, summary transcript.SessionSummary) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("store is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("report id is required")
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	return s.client.Set(ctx, summaryKey(id), data, 0).Err()
}

func (s *RedisStore) GetSummary(ctx context.Context, id string) (transcript.SessionSummary, error) {
	if s == nil || s.client == nil {
		return transcript.SessionSummary{}, fmt.Errorf("store is nil")
	}
	data, err := s.client.Get(ctx, summaryKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return transcript.SessionSummary{}, ErrNotFound
		}
		return transcript.SessionSummary{}, fmt.Errorf("failed to get summary: %w", err)
	}
	var summary transcript.SessionSummary
	if err := json.Unmarshal([]byte(data), &summary); err != nil {
		return transcript.SessionSummary{}, fmt.Errorf("failed to unmarshal summary: %w", err)
	}
	return summary, nil
}
