package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"votepulse/internal/domain"
	"votepulse/internal/repository"
	apperrors "votepulse/pkg/errors"
	"votepulse/pkg/logger"
	"votepulse/pkg/redis"
)

const (
	liveWindow    = 5 * time.Minute // realtime visitor liveness window
	sweepInterval = 1 * time.Minute // live-set purge cadence
	visitWindow   = 24 * time.Hour  // analytics visit dedup window
)

// resultsMessage accompanies every tally payload
const resultsMessage = "Thank you for participating"

// engagementService keeps the working tally state in memory and persists the
// full document on every mutation. A single mutex guards every read and
// mutation of the working state, including the flush that follows it, so a
// failed flush can roll back before any other caller observes the change.
type engagementService struct {
	tallyRepo   repository.TallyRepository
	visitRepo   repository.VisitRepository
	accountRepo repository.AccountRepository
	cache       *redis.Client // optional, nil disables caching
	logger      *logger.Logger

	mu         sync.Mutex
	support    int64
	oppose     int64
	voters     map[string]struct{}
	live       map[string]time.Time
	visitCount int64

	sweepTicker *time.Ticker
	stopSweep   chan struct{}
	running     bool

	// injectable clock
	now func() time.Time
}

// NewEngagementService creates a new engagement service. The cache client may
// be nil, in which case every read goes straight to the document store.
func NewEngagementService(
	tallyRepo repository.TallyRepository,
	visitRepo repository.VisitRepository,
	accountRepo repository.AccountRepository,
	cache *redis.Client,
	logger *logger.Logger,
) EngagementService {
	return &engagementService{
		tallyRepo:   tallyRepo,
		visitRepo:   visitRepo,
		accountRepo: accountRepo,
		cache:       cache,
		logger:      logger,
		voters:      make(map[string]struct{}),
		live:        make(map[string]time.Time),
		now:         time.Now,
	}
}

// Start hydrates the working state from the persisted tally document and
// begins the periodic live-set sweep
func (s *engagementService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	doc, err := s.tallyRepo.Get(ctx)
	if err != nil {
		return apperrors.NewPersistenceError("Failed to load engagement state", err)
	}
	if doc != nil {
		s.support = doc.Support
		s.oppose = doc.Oppose
		s.visitCount = doc.VisitCount
		s.voters = make(map[string]struct{}, len(doc.Voters))
		for _, v := range doc.Voters {
			s.voters[v] = struct{}{}
		}
		s.live = make(map[string]time.Time, len(doc.Visitors))
		for _, v := range doc.Visitors {
			s.live[v.Origin] = v.SeenAt
		}
	}

	s.sweepTicker = time.NewTicker(sweepInterval)
	s.stopSweep = make(chan struct{})
	s.running = true

	go s.sweepLoop()

	s.logger.WithFields(map[string]interface{}{
		"support":     s.support,
		"oppose":      s.oppose,
		"voters":      len(s.voters),
		"visit_count": s.visitCount,
	}).Info("Engagement service started")

	return nil
}

// Stop halts the sweep loop and takes a final flush
func (s *engagementService) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.sweepTicker.Stop()
	close(s.stopSweep)
	s.running = false

	if err := s.flushLocked(ctx); err != nil {
		s.logger.WithError(err).Error("Final engagement flush failed")
		return err
	}

	s.logger.Info("Engagement service stopped")
	return nil
}

func (s *engagementService) sweepLoop() {
	for {
		select {
		case <-s.sweepTicker.C:
			s.sweepLive()
		case <-s.stopSweep:
			return
		}
	}
}

// sweepLive purges live-set entries older than the liveness window and
// persists the shrunk set
func (s *engagementService) sweepLive() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-liveWindow)
	purged := 0
	for origin, seenAt := range s.live {
		if seenAt.Before(cutoff) {
			delete(s.live, origin)
			purged++
		}
	}
	if purged == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.flushLocked(ctx); err != nil {
		s.logger.WithError(err).Error("Failed to persist live-set sweep")
	}

	s.logger.WithField("purged", purged).Debug("Live visitor sweep")
}

// TrackVisit records a visit from the origin and returns the current
// counters. Recording is best effort: a storage failure is logged and the
// counters still come back.
func (s *engagementService) TrackVisit(ctx context.Context, origin, userAgent string) (*domain.EngagementCounts, error) {
	if err := s.recordVisit(ctx, origin, userAgent); err != nil {
		s.logger.WithError(err).WithField("origin", origin).Error("Failed to record visit")
	}

	s.mu.Lock()
	s.live[origin] = s.now()
	if err := s.flushLocked(ctx); err != nil {
		s.logger.WithError(err).Error("Failed to persist live-set update")
	}
	s.mu.Unlock()

	return s.counts(ctx), nil
}

// Counts returns the current counters without recording a visit
func (s *engagementService) Counts(ctx context.Context) (*domain.EngagementCounts, error) {
	return s.counts(ctx), nil
}

// counts assembles the counters best effort, a failed lookup contributes zero
func (s *engagementService) counts(ctx context.Context) *domain.EngagementCounts {
	users, err := s.accountRepo.Count(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to count accounts")
	}
	visitors, err := s.visitRepo.Count(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to count visits")
	}

	s.mu.Lock()
	realtime := int64(len(s.live))
	totalVisits := s.visitCount
	s.mu.Unlock()

	return &domain.EngagementCounts{
		Users:            users,
		Visitors:         visitors,
		RealtimeVisitors: realtime,
		TotalVisits:      totalVisits,
	}
}

// CastVote records a vote for the given choice. One vote per origin, ever.
func (s *engagementService) CastVote(ctx context.Context, origin, choice string) error {
	if choice != domain.VoteSupport && choice != domain.VoteOppose {
		return apperrors.NewValidationError("Vote must be 'support' or 'oppose'")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, voted := s.voters[origin]; voted {
		return apperrors.NewDuplicateVoteError("You already voted.")
	}

	s.voters[origin] = struct{}{}
	if choice == domain.VoteSupport {
		s.support++
	} else {
		s.oppose++
	}

	if err := s.flushLocked(ctx); err != nil {
		// roll back so the rejected vote can be retried
		delete(s.voters, origin)
		if choice == domain.VoteSupport {
			s.support--
		} else {
			s.oppose--
		}
		return apperrors.NewPersistenceError("Failed to record vote", err)
	}

	s.invalidateResults(ctx)

	s.logger.WithFields(map[string]interface{}{
		"choice":  choice,
		"support": s.support,
		"oppose":  s.oppose,
	}).Info("Vote recorded")

	return nil
}

// Results records the origin as a visitor and returns the current tally
func (s *engagementService) Results(ctx context.Context, origin string) (*domain.Results, error) {
	if err := s.recordVisit(ctx, origin, ""); err != nil {
		s.logger.WithError(err).WithField("origin", origin).Error("Failed to record results visit")
	}

	if cached := s.cachedResults(ctx); cached != nil {
		return cached, nil
	}

	visitors, err := s.visitRepo.Count(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("Failed to load results", err)
	}

	s.mu.Lock()
	results := &domain.Results{
		Votes: domain.VoteCounts{
			Support: s.support,
			Oppose:  s.oppose,
		},
		Visitors: visitors,
		Message:  resultsMessage,
	}
	s.mu.Unlock()

	s.cacheResults(ctx, results)
	return results, nil
}

// recordVisit persists an analytics visit unless the origin was already seen
// inside the dedup window. A cache hit on the seen marker short-circuits the
// store lookup; a miss always falls through to the authoritative query, so a
// cold or flushed cache can never double-count.
func (s *engagementService) recordVisit(ctx context.Context, origin, userAgent string) error {
	if s.cache != nil {
		n, err := s.cache.Exists(ctx, s.cache.KeyBuilder.KeyVisitSeen(origin))
		if err == nil && n > 0 {
			return nil
		}
	}

	since := s.now().Add(-visitWindow)
	recent, err := s.visitRepo.FindSince(ctx, origin, since)
	if err != nil {
		return err
	}
	if recent != nil {
		s.markVisitSeen(ctx, origin)
		return nil
	}

	visit := &domain.Visit{
		Origin:    origin,
		UserAgent: userAgent,
		SeenAt:    s.now(),
	}
	if err := s.visitRepo.Insert(ctx, visit); err != nil {
		return err
	}

	s.mu.Lock()
	s.visitCount++
	if err := s.flushLocked(ctx); err != nil {
		s.logger.WithError(err).Error("Failed to persist visit counter")
	}
	s.mu.Unlock()

	s.markVisitSeen(ctx, origin)
	return nil
}

func (s *engagementService) markVisitSeen(ctx context.Context, origin string) {
	if s.cache == nil {
		return
	}
	key := s.cache.KeyBuilder.KeyVisitSeen(origin)
	if err := s.cache.Set(ctx, key, "1", redis.TTLVisitSeen); err != nil {
		s.logger.WithError(err).Debug("Failed to set visit-seen marker")
	}
}

func (s *engagementService) cachedResults(ctx context.Context) *domain.Results {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, s.cache.KeyBuilder.KeyResults())
	if err != nil {
		return nil
	}
	var results domain.Results
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		s.logger.WithError(err).Error("Failed to decode cached results")
		return nil
	}
	return &results
}

func (s *engagementService) cacheResults(ctx context.Context, results *domain.Results) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.KeyBuilder.KeyResults(), payload, redis.TTLResults); err != nil {
		s.logger.WithError(err).Debug("Failed to cache results")
	}
}

func (s *engagementService) invalidateResults(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, s.cache.KeyBuilder.KeyResults()); err != nil {
		s.logger.WithError(err).Debug("Failed to invalidate results cache")
	}
}

// flushLocked persists the full working state. Callers must hold the mutex.
func (s *engagementService) flushLocked(ctx context.Context) error {
	voters := make([]string, 0, len(s.voters))
	for origin := range s.voters {
		voters = append(voters, origin)
	}
	visitors := make([]domain.LiveVisitor, 0, len(s.live))
	for origin, seenAt := range s.live {
		visitors = append(visitors, domain.LiveVisitor{Origin: origin, SeenAt: seenAt})
	}

	doc := &domain.TallyDocument{
		Support:    s.support,
		Oppose:     s.oppose,
		Voters:     voters,
		Visitors:   visitors,
		VisitCount: s.visitCount,
	}
	return s.tallyRepo.Upsert(ctx, doc)
}
