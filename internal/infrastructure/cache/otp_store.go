package cache

import (
	"context"
	"errors"
	"time"

	"lazyintern/internal/domain/user"

	"github.com/redis/go-redis/v9"
)

const maxOTPAttempts = 5

var ErrOTPAttemptsExceeded = errors.New("too many verification attempts")

// OTPStore keeps one pending verification code per email. Unlike the JSON
// cache it fails loudly when Redis is down, since a dropped code cannot be
// verified later.
type OTPStore struct {
	r   *Redis
	ttl time.Duration
}

func NewOTPStore(r *Redis, ttl time.Duration) *OTPStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &OTPStore{r: r, ttl: ttl}
}

func otpKey(email string) string {
	return "otp:code:" + user.NormalizeEmail(email)
}

func otpAttemptsKey(email string) string {
	return "otp:attempts:" + user.NormalizeEmail(email)
}

// Save replaces any pending code for email and resets its attempt counter.
func (s *OTPStore) Save(ctx context.Context, email, code string) error {
	if s == nil || s.r.isUnavailable() {
		return ErrUnavailable
	}
	_, err := s.r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, otpKey(email), code, s.ttl)
		p.Del(ctx, otpAttemptsKey(email))
		return nil
	})
	return err
}

// Consume checks code against the pending one. A match deletes it so each code
// works once; a missing or expired code never matches.
func (s *OTPStore) Consume(ctx context.Context, email, code string) (bool, error) {
	if s == nil || s.r.isUnavailable() {
		return false, ErrUnavailable
	}
	c := s.r.client

	attempts, err := c.Incr(ctx, otpAttemptsKey(email)).Result()
	if err != nil {
		return false, err
	}
	if attempts == 1 {
		_ = c.Expire(ctx, otpAttemptsKey(email), s.ttl).Err()
	}
	if attempts > maxOTPAttempts {
		return false, ErrOTPAttemptsExceeded
	}

	stored, err := c.Get(ctx, otpKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if stored != code {
		return false, nil
	}

	if err := c.Del(ctx, otpKey(email), otpAttemptsKey(email)).Err(); err != nil {
		return false, err
	}
	return true, nil
}
