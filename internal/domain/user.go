package domain

import "time"

const RoleUser = "user"

type Profile struct {
	FirstName string `json:"firstName,omitempty" bson:"first_name,omitempty" validate:"omitempty,max=50"`
	LastName  string `json:"lastName,omitempty" bson:"last_name,omitempty" validate:"omitempty,max=50"`
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Verified     bool
	Role         string
	Profile      Profile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
