package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account is an identity record. The password field only ever holds the
// bcrypt hash and is excluded from JSON output.
type Account struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	FirstName    string `bson:"first_name,omitempty" json:"firstName,omitempty"`
	LastName     string `bson:"last_name,omitempty" json:"lastName,omitempty"`
	Login        string `bson:"login" json:"login"`
	PasswordHash string `bson:"password" json:"-"`
}

// Profile is the caller-facing view of an account, without the credential.
type Profile struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Login     string `json:"login"`
}

// Profile returns the credential-free view of the account.
func (a *Account) Profile() *Profile {
	return &Profile{
		ID:        a.ID.Hex(),
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Login:     a.Login,
	}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Login     string `json:"login"`
	Password  string `json:"password"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token and the profile of the account
type LoginResponse struct {
	Token string   `json:"token"`
	User  *Profile `json:"user"`
}
