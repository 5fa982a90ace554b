package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"votepulse/internal/domain"
	"votepulse/pkg/database"
)

const visitCollection = "visits"

// visitRepository handles analytics visit records against the document store
type visitRepository struct {
	db *database.Mongo
}

// NewVisitRepository creates a new visit repository
func NewVisitRepository(db *database.Mongo) VisitRepository {
	return &visitRepository{db: db}
}

// FindSince retrieves a visit for the origin recorded at or after the given
// instant. Used for the rolling 24-hour dedup window.
func (r *visitRepository) FindSince(ctx context.Context, origin string, since time.Time) (*domain.Visit, error) {
	filter := bson.M{
		"origin":  origin,
		"seen_at": bson.M{"$gte": since},
	}

	var visit domain.Visit
	err := r.db.Collection(visitCollection).FindOne(ctx, filter).Decode(&visit)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find recent visit: %w", err)
	}
	return &visit, nil
}

// Insert creates a new visit record
func (r *visitRepository) Insert(ctx context.Context, visit *domain.Visit) error {
	if visit.ID.IsZero() {
		visit.ID = primitive.NewObjectID()
	}

	_, err := r.db.Collection(visitCollection).InsertOne(ctx, visit)
	if err != nil {
		return fmt.Errorf("failed to insert visit: %w", err)
	}
	return nil
}

// Count returns the total number of recorded visits
func (r *visitRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.db.Collection(visitCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count visits: %w", err)
	}
	return count, nil
}
