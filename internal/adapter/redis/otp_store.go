package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/repository"
	"github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "otp:"

// consumeScript checks and deletes an OTP hash in one step.
// Returns 0 when the record is missing or expired, 1 on a match and
// 2 on a mismatch. Too many mismatches burn the record.
var consumeScript = redis.NewScript(`
local code = redis.call('HGET', KEYS[1], 'code')
if not code then
  return 0
end
local exp = tonumber(redis.call('HGET', KEYS[1], 'expires_at'))
if exp == nil or exp <= tonumber(ARGV[2]) then
  redis.call('DEL', KEYS[1])
  return 0
end
if code == ARGV[1] then
  redis.call('DEL', KEYS[1])
  return 1
end
local attempts = redis.call('HINCRBY', KEYS[1], 'attempts', 1)
local limit = tonumber(ARGV[3])
if limit > 0 and attempts >= limit then
  redis.call('DEL', KEYS[1])
end
return 2
`)

type OTPStore struct {
	client      *redis.Client
	maxAttempts int
}

func NewOTPStore(client *redis.Client, maxAttempts int) *OTPStore {
	return &OTPStore{client: client, maxAttempts: maxAttempts}
}

func otpKey(email string) string {
	return otpKeyPrefix + email
}

// SaveOTP replaces any previous code for email. ttl only controls when
// Redis purges the key; expiresAt is what ConsumeOTP enforces.
func (s *OTPStore) SaveOTP(ctx context.Context, email, code string, expiresAt time.Time, ttl time.Duration) error {
	key := otpKey(email)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			"code", code,
			"expires_at", expiresAt.UnixMilli(),
			"attempts", 0,
		)
		pipe.PExpire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return wrapErr("save otp", err)
	}
	return nil
}

func (s *OTPStore) ConsumeOTP(ctx context.Context, email, code string, now time.Time) (repository.OTPStatus, error) {
	res, err := consumeScript.Run(ctx, s.client, []string{otpKey(email)}, code, now.UnixMilli(), s.maxAttempts).Int()
	if err != nil {
		return repository.OTPMissing, wrapErr("consume otp", err)
	}

	switch res {
	case 1:
		return repository.OTPMatched, nil
	case 2:
		return repository.OTPMismatched, nil
	default:
		return repository.OTPMissing, nil
	}
}

func (s *OTPStore) DeleteOTP(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, otpKey(email)).Err(); err != nil {
		return wrapErr("delete otp", err)
	}
	return nil
}

func wrapErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", domain.ErrUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrStore, op, err)
}
