package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// VerificationService issues short-lived email verification codes backed by
// redis with a TTL, so any API process can verify a code another issued.
type VerificationService struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewVerificationService(rdb *redis.Client, ttl time.Duration) *VerificationService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &VerificationService{rdb: rdb, ttl: ttl}
}

func verificationKey(email string) string {
	return fmt.Sprintf("verify:%s", email)
}

// Issue stores and returns a fresh code for email, replacing any
// outstanding one.
func (s *VerificationService) Issue(ctx context.Context, email string) (string, error) {
	code := uuid.New().String()
	if err := s.rdb.Set(ctx, verificationKey(email), code, s.ttl).Err(); err != nil {
		return "", err
	}
	return code, nil
}

// Confirm consumes the outstanding code for email. The GetDel is atomic:
// a code verifies at most once, and a wrong guess burns it.
func (s *VerificationService) Confirm(ctx context.Context, email, code string) (bool, error) {
	stored, err := s.rdb.GetDel(ctx, verificationKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored == code, nil
}
