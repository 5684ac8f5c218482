package otpstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"scholarship-portal/internal/domain/otp"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "otp:reset:"

// RedisStore shares reset records between instances. Keys outlive the code's
// own expiry by retention so the ledger still observes and reports expired
// codes instead of seeing them vanish.
type RedisStore struct {
	client    *redis.Client
	retention time.Duration
	now       func() time.Time
}

func NewRedisStore(client *redis.Client, retention time.Duration) *RedisStore {
	return &RedisStore{
		client:    client,
		retention: retention,
		now:       time.Now,
	}
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}

func redisKey(email string) string {
	return keyPrefix + email
}

func (s *RedisStore) Get(ctx context.Context, email string) (*otp.Record, error) {
	raw, err := s.client.Get(ctx, redisKey(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, otp.ErrOTPNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get OTP record: %w", err)
	}

	var record otp.Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("failed to decode OTP record: %w", err)
	}
	return &record, nil
}

func (s *RedisStore) Set(ctx context.Context, record *otp.Record) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode OTP record: %w", err)
	}

	ttl := record.ExpiresAt.Sub(s.now()) + s.retention
	if ttl <= 0 {
		return s.Delete(ctx, record.Email)
	}

	if err := s.client.Set(ctx, redisKey(record.Email), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store OTP record: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, redisKey(email)).Err(); err != nil {
		return fmt.Errorf("failed to delete OTP record: %w", err)
	}
	return nil
}
