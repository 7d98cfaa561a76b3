package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kcaldiary/kcaldiary/internal/datex"
	"github.com/kcaldiary/kcaldiary/internal/logging"
	"github.com/kcaldiary/kcaldiary/internal/server/models"
)

const (
	calendarKeyFormat = "calendar:intake:%s:%s"
	calendarTTL       = 7 * 24 * time.Hour
)

// Redis stores each month as a hash keyed by member and month only, one
// field per day.
type Redis struct {
	client *redis.Client
	logger logging.Logger
}

func NewRedis(client *redis.Client, logger logging.Logger) *Redis {
	return &Redis{client: client, logger: logger.With("module", "cache")}
}

func calendarKey(memberID string, month datex.YearMonth) string {
	return fmt.Sprintf(calendarKeyFormat, memberID, month)
}

func (r *Redis) GetMonth(ctx context.Context, memberID string, month datex.YearMonth) (map[time.Time]models.IntakeSummary, error) {
	key := calendarKey(memberID, month)

	fields, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("cache error: %w", err)
	}

	days := make(map[time.Time]models.IntakeSummary, len(fields))
	for field, payload := range fields {
		day, err := datex.ParseDay(field)
		if err != nil {
			r.logger.Error(ctx, "skipping cache field with bad date", "key", key, "field", field, "error", err)
			continue
		}
		var summary models.IntakeSummary
		if err := json.Unmarshal([]byte(payload), &summary); err != nil {
			r.logger.Error(ctx, "skipping undecodable cache field", "key", key, "field", field, "error", err)
			continue
		}
		days[day] = summary
	}

	if err := r.client.Expire(ctx, key, calendarTTL).Err(); err != nil {
		return nil, fmt.Errorf("cache error: %w", err)
	}

	return days, nil
}

func (r *Redis) PutDay(ctx context.Context, memberID string, month datex.YearMonth, day time.Time, summary models.IntakeSummary) error {
	key := calendarKey(memberID, month)

	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("cache error: %w", err)
	}

	if err := r.client.HSet(ctx, key, datex.FormatDay(day), payload).Err(); err != nil {
		return fmt.Errorf("cache error: %w", err)
	}
	if err := r.client.Expire(ctx, key, calendarTTL).Err(); err != nil {
		return fmt.Errorf("cache error: %w", err)
	}

	return nil
}
