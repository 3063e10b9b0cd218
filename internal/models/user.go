package models

import "time"

// Account roles. Transitions are single-step and operator-invoked: a member
// may move themselves to premium-requested, an admin grants premium or admin
// directly. No demotion exists.
const (
	RoleNormal           = "normal"
	RolePremiumRequested = "premium-requested"
	RolePremium          = "premium"
	RoleAdmin            = "admin"
)

// User is a registered member's account record, keyed by email.
type User struct {
	Email        string    `json:"email" bson:"email"`
	Name         string    `json:"name" bson:"name,omitempty"`
	PhotoURL     string    `json:"photoURL" bson:"photo_url,omitempty"`
	Role         string    `json:"role" bson:"role"`
	PasswordHash string    `json:"-" bson:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
	// Password is optional; accounts created through a federated sign-in
	// flow never set one and authenticate by email alone.
	Password string `json:"password,omitempty"`
}

func (r *RegisterRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email is required"
	}
	if r.Password != "" && len(r.Password) < 6 {
		errors["password"] = "Password must be at least 6 characters"
	}

	return errors
}

type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type RoleChangeRequest struct {
	Role string `json:"role"`
}

func (r *RoleChangeRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Role != RolePremium && r.Role != RoleAdmin {
		errors["role"] = "Role must be premium or admin"
	}

	return errors
}

// CreateUserResult mirrors SubmitResult: duplicate signups are a no-op
// success carrying the historical {insertedId: null} sentinel on the wire.
type CreateUserResult struct {
	Inserted   bool
	InsertedID string
}
