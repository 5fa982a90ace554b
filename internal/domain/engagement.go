package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vote choices
const (
	VoteSupport = "support"
	VoteOppose  = "oppose"
)

// Visit is an analytics record, at most one per origin per rolling 24 hours.
// Records accumulate indefinitely.
type Visit struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Origin    string             `bson:"origin" json:"origin"`
	UserAgent string             `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	SeenAt    time.Time          `bson:"seen_at" json:"seen_at"`
}

// LiveVisitor is an entry in the realtime visitor set, purged once it falls
// outside the liveness window.
type LiveVisitor struct {
	Origin string    `bson:"ip" json:"ip"`
	SeenAt time.Time `bson:"timestamp" json:"timestamp"`
}

// TallyDocument is the single persisted engagement document: the aggregate
// vote counts, the set of origins that already voted, the live visitor set
// and the cumulative visit counter.
type TallyDocument struct {
	Support    int64         `bson:"support" json:"support"`
	Oppose     int64         `bson:"oppose" json:"oppose"`
	Voters     []string      `bson:"voters" json:"voters"`
	Visitors   []LiveVisitor `bson:"visitors" json:"visitors"`
	VisitCount int64         `bson:"visit_count" json:"visitCount"`
}

// VoteRequest represents a vote submission
type VoteRequest struct {
	Vote string `json:"vote"`
}

// VoteResponse confirms an accepted vote
type VoteResponse struct {
	Success bool `json:"success"`
}

// VoteCounts holds the two mutually exclusive tallies
type VoteCounts struct {
	Support int64 `json:"support"`
	Oppose  int64 `json:"oppose"`
}

// Results is the public tally view returned by GET /results
type Results struct {
	Votes    VoteCounts `json:"votes"`
	Visitors int64      `json:"visitors"`
	Message  string     `json:"message"`
}

// EngagementCounts aggregates the counters returned by the tracking endpoints
type EngagementCounts struct {
	Users            int64 `json:"users"`
	Visitors         int64 `json:"visitors"`
	RealtimeVisitors int64 `json:"realtimeVisitors"`
	TotalVisits      int64 `json:"totalVisits"`
}

// TrackRequest represents the optional body of a visit tracking call
type TrackRequest struct {
	UserAgent string `json:"userAgent,omitempty"`
}
