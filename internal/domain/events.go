package domain

import "time"

const (
	SubjectUserRegistered = "campus.auth.user_registered"
	SubjectUserVerified   = "campus.auth.user_verified"
)

// EntitySubject returns the NATS subject for a lifecycle action on an entity
// collection, e.g. campus.book.created.
func EntitySubject(entity, action string) string {
	return "campus." + entity + "." + action
}

type UserEvent struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EntityEvent struct {
	Entity     string    `json:"entity"`
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}
