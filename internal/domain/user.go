package domain

import (
	"net/mail"
	"strings"
)

type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

type User struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  Role   `json:"role"`
}

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// AuthResult is what the backend returns from signup and login
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Credentials) Validate() error {
	c.Email = strings.TrimSpace(strings.ToLower(c.Email))
	if err := ValidateEmail(c.Email); err != nil {
		return err
	}
	if c.Password == "" {
		return ValidationError{Field: "password", Msg: "password is required"}
	}
	return nil
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (r *SignupRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if strings.TrimSpace(r.Name) == "" {
		return ValidationError{Field: "name", Msg: "name is required"}
	}
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	if len(r.Password) < 6 {
		return ValidationError{Field: "password", Msg: "password must be at least 6 characters"}
	}
	return nil
}

func ValidateEmail(email string) error {
	if email == "" {
		return ValidationError{Field: "email", Msg: "email is required"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ValidationError{Field: "email", Msg: "email is invalid", Err: err}
	}
	return nil
}
