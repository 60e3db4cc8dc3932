package models

import "time"

// Credentials submitted by the login form
type Credentials struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Session is the outcome of a successful sign-in
type Session struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Token     string    `json:"-"` // Never return in JSON
	ExpiresAt time.Time `json:"expires_at"`
}
