package service

import (
	"context"

	"votepulse/internal/domain"
)

// AuthService defines the interface for registration, login and token
// verification
type AuthService interface {
	// Register validates the request, enforces login uniqueness and persists
	// a new account with a hashed credential
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.Profile, error)

	// Login verifies credentials and issues a signed, time-bounded bearer
	// token. Both unknown-login and wrong-password failures return the same
	// error so logins cannot be enumerated.
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)

	// VerifyToken validates a bearer token and resolves the account it
	// identifies
	VerifyToken(ctx context.Context, token string) (*domain.Profile, error)
}

// EngagementService defines the interface for visit tracking and voting
type EngagementService interface {
	// Start hydrates the working state from the backing store and begins the
	// periodic live-set sweep
	Start(ctx context.Context) error

	// Stop halts the sweep and takes a final flush
	Stop(ctx context.Context) error

	// TrackVisit records a visit from the origin and returns current counts
	TrackVisit(ctx context.Context, origin, userAgent string) (*domain.EngagementCounts, error)

	// Counts returns the current counters without recording a visit
	Counts(ctx context.Context) (*domain.EngagementCounts, error)

	// CastVote records a vote for the given choice, one vote per origin
	CastVote(ctx context.Context, origin, choice string) error

	// Results records the origin as a visitor and returns the current tally
	Results(ctx context.Context, origin string) (*domain.Results, error)
}

// Services aggregates all service interfaces
type Services struct {
	Auth       AuthService
	Engagement EngagementService
}
