package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const usersCollection = "users"

type mongoUser struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Email           string             `bson:"email"`
	Password        string             `bson:"password"`
	Role            string             `bson:"role"`
	Profile         domain.Profile     `bson:"profile"`
	IsEmailVerified bool               `bson:"is_email_verified"`
	EmailVerifiedAt *time.Time         `bson:"email_verified_at,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func (m *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID.Hex(),
		Email:        m.Email,
		PasswordHash: m.Password,
		Verified:     m.IsEmailVerified,
		Role:         m.Role,
		Profile:      m.Profile,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromDomain(u *domain.User) *mongoUser {
	id, _ := primitive.ObjectIDFromHex(u.ID)
	return &mongoUser{
		ID:              id,
		Email:           u.Email,
		Password:        u.PasswordHash,
		Role:            u.Role,
		Profile:         u.Profile,
		IsEmailVerified: u.Verified,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

type UserRepository struct {
	coll   *mongo.Collection
	logger *logger.Logger
}

func NewUserRepository(db *mongo.Database, log *logger.Logger) *UserRepository {
	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	coll := db.Collection(usersCollection)
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warn("Failed to create indexes for users collection (may already exist)", zap.Error(err))
	}

	return &UserRepository{
		coll:   coll,
		logger: log.Named("UserRepository"),
	}
}

// CreateUser stores a new account. The password must already be hashed.
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	dbUser := fromDomain(user)
	if dbUser.ID.IsZero() {
		dbUser.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	dbUser.CreatedAt = now
	dbUser.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, dbUser); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Warn("Duplicate email during user creation", zap.String("email", user.Email))
			return nil, domain.ErrDuplicateUser
		}
		r.logger.Error("Database error during user creation", zap.String("email", user.Email), zap.Error(err))
		return nil, wrapStoreErr("insert user", err)
	}

	r.logger.Info("User created", zap.String("userID", dbUser.ID.Hex()))
	return dbUser.toDomain(), nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var dbUser mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&dbUser); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Error("Database error fetching user", zap.Error(err))
		return nil, wrapStoreErr("find user", err)
	}
	return dbUser.toDomain(), nil
}

func (r *UserRepository) MarkEmailAsVerified(ctx context.Context, email string) error {
	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"is_email_verified": true,
		"email_verified_at": now,
		"updated_at":        now,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		r.logger.Error("Database error marking email verified", zap.String("email", email), zap.Error(err))
		return wrapStoreErr("mark verified", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}

	r.logger.Info("Email marked as verified", zap.String("email", email))
	return nil
}

// wrapStoreErr maps driver failures onto domain errors. Deadline errors
// become ErrUnavailable so that callers can retry.
func wrapStoreErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) {
		return fmt.Errorf("%w: %s: %v", domain.ErrUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrStore, op, err)
}
