package repository

import (
	"context"
	"time"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository persists campus accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	MarkEmailAsVerified(ctx context.Context, email string) error
}

// OTPStatus is the outcome of consuming a one-time code.
type OTPStatus int

const (
	OTPMissing OTPStatus = iota
	OTPMatched
	OTPMismatched
)

// OTPStore keeps at most one live code per email.
type OTPStore interface {
	SaveOTP(ctx context.Context, email, code string, expiresAt time.Time, ttl time.Duration) error
	// ConsumeOTP compares code with the stored one and deletes the record on
	// a match. Records whose expiry is not after now count as missing.
	ConsumeOTP(ctx context.Context, email, code string, now time.Time) (OTPStatus, error)
	DeleteOTP(ctx context.Context, email string) error
}

// TokenDenylist tracks revoked token ids until their natural expiry.
type TokenDenylist interface {
	// Revoke reports false when the id had already been revoked.
	Revoke(ctx context.Context, jti string, expiresAt time.Time) (bool, error)
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// EntityStore is the backing collection of one campus resource. The id
// argument accepts either a hex ObjectID or a numeric business key.
// Delete returns the ObjectID of the removed record.
type EntityStore[T entity.Entity] interface {
	Insert(ctx context.Context, rec T) error
	FindByID(ctx context.Context, id string) (T, error)
	List(ctx context.Context, skip, limit int64) ([]T, int64, error)
	Replace(ctx context.Context, rec T) error
	Delete(ctx context.Context, id string) (primitive.ObjectID, error)
}
