package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/repository"
)

const otpDigits = 1_000_000

// OTPIssuer hands out six-digit one-time codes and checks them.
type OTPIssuer struct {
	store repository.OTPStore
	ttl   time.Duration
	now   func() time.Time
	intN  func(n int) int
}

func NewOTPIssuer(store repository.OTPStore, ttl time.Duration) *OTPIssuer {
	return &OTPIssuer{
		store: store,
		ttl:   ttl,
		now:   time.Now,
		intN:  rand.IntN,
	}
}

func (i *OTPIssuer) TTL() time.Duration { return i.ttl }

// Issue generates a code for email, replacing any previous one.
func (i *OTPIssuer) Issue(ctx context.Context, email string) (string, error) {
	code := fmt.Sprintf("%06d", i.intN(otpDigits))
	expiresAt := i.now().Add(i.ttl)
	if err := i.store.SaveOTP(ctx, email, code, expiresAt, i.ttl); err != nil {
		return "", err
	}
	return code, nil
}

// Restore puts a consumed code back with a fresh lifetime and a reset
// attempt counter.
func (i *OTPIssuer) Restore(ctx context.Context, email, code string) error {
	return i.store.SaveOTP(ctx, email, code, i.now().Add(i.ttl), i.ttl)
}

// Verify consumes the code for email. It fails with ErrOTPNotFound when no
// live record exists and with ErrOTPMismatch when the code differs.
func (i *OTPIssuer) Verify(ctx context.Context, email, code string) error {
	status, err := i.store.ConsumeOTP(ctx, email, code, i.now())
	if err != nil {
		return err
	}
	switch status {
	case repository.OTPMatched:
		return nil
	case repository.OTPMismatched:
		return domain.ErrOTPMismatch
	default:
		return domain.ErrOTPNotFound
	}
}

// Check is Verify reduced to a boolean. Only store failures are returned
// as errors.
func (i *OTPIssuer) Check(ctx context.Context, email, code string) (bool, error) {
	status, err := i.store.ConsumeOTP(ctx, email, code, i.now())
	if err != nil {
		return false, err
	}
	return status == repository.OTPMatched, nil
}
