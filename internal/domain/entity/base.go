package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entity is implemented by every campus resource through the embedded Base.
type Entity interface {
	GetBase() *Base
}

// Base carries the identity and lifecycle timestamps shared by all
// campus resources.
type Base struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

func (b *Base) GetBase() *Base { return b }

// Stamp assigns a fresh ObjectID when the record has none and refreshes
// the timestamps.
func (b *Base) Stamp(now time.Time) {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}
