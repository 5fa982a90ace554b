package handler

import (
	"context"

	"votepulse/internal/domain"
)

// stubAuthService returns canned responses for handler tests
type stubAuthService struct {
	registerProfile *domain.Profile
	registerErr     error
	loginResp       *domain.LoginResponse
	loginErr        error
	verifyProfile   *domain.Profile
	verifyErr       error
}

func (s *stubAuthService) Register(context.Context, *domain.RegisterRequest) (*domain.Profile, error) {
	return s.registerProfile, s.registerErr
}

func (s *stubAuthService) Login(context.Context, *domain.LoginRequest) (*domain.LoginResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubAuthService) VerifyToken(context.Context, string) (*domain.Profile, error) {
	return s.verifyProfile, s.verifyErr
}

// stubEngagementService returns canned responses for handler tests
type stubEngagementService struct {
	counts     *domain.EngagementCounts
	countsErr  error
	voteErr    error
	results    *domain.Results
	resultsErr error

	lastVoteOrigin string
	lastVoteChoice string
	trackedOrigin  string
	trackedAgent   string
}

func (s *stubEngagementService) Start(context.Context) error { return nil }
func (s *stubEngagementService) Stop(context.Context) error  { return nil }

func (s *stubEngagementService) TrackVisit(_ context.Context, origin, userAgent string) (*domain.EngagementCounts, error) {
	s.trackedOrigin = origin
	s.trackedAgent = userAgent
	return s.counts, s.countsErr
}

func (s *stubEngagementService) Counts(context.Context) (*domain.EngagementCounts, error) {
	return s.counts, s.countsErr
}

func (s *stubEngagementService) CastVote(_ context.Context, origin, choice string) error {
	s.lastVoteOrigin = origin
	s.lastVoteChoice = choice
	return s.voteErr
}

func (s *stubEngagementService) Results(context.Context, string) (*domain.Results, error) {
	return s.results, s.resultsErr
}
