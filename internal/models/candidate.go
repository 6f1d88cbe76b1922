package models

import (
	"strings"
	"time"
)

type Candidate struct {
	ID        string    `json:"_id" bson:"_id" mapstructure:"id"`
	FullName  string    `json:"fullName" bson:"fullName" mapstructure:"full_name"`
	BirthDate string    `json:"birthDate" bson:"birthDate" mapstructure:"birth_date"`
	Age       FlexInt   `json:"age" bson:"age" mapstructure:"age"`
	Email     string    `json:"email" bson:"email" mapstructure:"email"`
	Mobile    string    `json:"mobile" bson:"mobile" mapstructure:"mobile"`
	Address   string    `json:"address" bson:"address" mapstructure:"address"`
	Image     string    `json:"image,omitempty" bson:"image,omitempty" mapstructure:"image"`
	VoterIcon string    `json:"voterIcon,omitempty" bson:"voterIcon,omitempty" mapstructure:"voter_icon"`
	Uid       string    `json:"Uid" bson:"Uid" mapstructure:"uid"`
	FormTitle string    `json:"Form_Title" bson:"Form_Title" mapstructure:"form_title"`
	FormID    string    `json:"Form_Id" bson:"Form_Id" mapstructure:"form_id"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" mapstructure:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt" mapstructure:"updated_at"`
}

// Normalize trims the text fields and lowercases the email, so the unique
// email index sees one spelling per address.
func (c *Candidate) Normalize() {
	c.FullName = strings.TrimSpace(c.FullName)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Mobile = strings.TrimSpace(c.Mobile)
	c.Address = strings.TrimSpace(c.Address)
	c.FormTitle = strings.TrimSpace(c.FormTitle)
	c.FormID = strings.TrimSpace(c.FormID)
}
