package models

import "time"

const (
	UserTypeVoter     = "voter"
	UserTypeCandidate = "candidate"
)

// User is a login account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"_id" bson:"_id" mapstructure:"id"`
	Username     string    `json:"UserName" bson:"UserName" mapstructure:"username"`
	Email        string    `json:"Email" bson:"Email" mapstructure:"email"`
	PasswordHash string    `json:"-" bson:"PassWord" mapstructure:"password_hash"`
	UserType     string    `json:"userType" bson:"userType" mapstructure:"user_type"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt" mapstructure:"created_at"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    User   `json:"user"`
	Token   string `json:"token"`
}

// Session is the authenticated caller, carried in the request context.
type Session struct {
	UserID   string    `json:"userId"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	UserType string    `json:"userType"`
	Expires  time.Time `json:"expiresAt"`
}
