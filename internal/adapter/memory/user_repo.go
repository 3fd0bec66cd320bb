package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository keys users by their normalized email.
type UserRepository struct {
	mu      sync.Mutex
	byEmail map[string]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byEmail: make(map[string]*domain.User)}
}

func (r *UserRepository) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrDuplicateUser
	}
	u := *user
	if u.ID == "" {
		u.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	r.byEmail[u.Email] = &u

	out := u
	return &out, nil
}

func (r *UserRepository) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byEmail {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *UserRepository) MarkEmailAsVerified(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byEmail[email]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Verified = true
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete removes a user; used to simulate accounts disappearing between
// login and refresh.
func (r *UserRepository) Delete(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byEmail, email)
}
