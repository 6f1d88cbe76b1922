package models

import (
	"strings"
	"time"
)

// Voter is the voter card. UserID is what a voter presents at the booth.
type Voter struct {
	ID          string        `json:"_id" bson:"_id" mapstructure:"id"`
	FullName    string        `json:"full_name" bson:"full_name" mapstructure:"full_name"`
	PhoneNumber string        `json:"phone_number" bson:"phone_number" mapstructure:"phone_number"`
	Email       string        `json:"email" bson:"email" mapstructure:"email"`
	Address     string        `json:"address" bson:"address" mapstructure:"address"`
	Birthdate   string        `json:"birthdate" bson:"birthdate" mapstructure:"birthdate"`
	Age         NumericString `json:"age" bson:"age" mapstructure:"age"`
	UserID      string        `json:"user_id" bson:"user_id" mapstructure:"user_id"`
	Image       string        `json:"image,omitempty" bson:"image,omitempty" mapstructure:"image"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt" mapstructure:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" bson:"updatedAt" mapstructure:"updated_at"`
}

func (v *Voter) Normalize() {
	v.FullName = strings.TrimSpace(v.FullName)
	v.Email = strings.ToLower(strings.TrimSpace(v.Email))
	v.PhoneNumber = strings.TrimSpace(v.PhoneNumber)
	v.Address = strings.TrimSpace(v.Address)
}
