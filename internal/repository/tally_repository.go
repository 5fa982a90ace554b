package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"votepulse/internal/domain"
	"votepulse/pkg/database"
)

const (
	engagementCollection = "engagement"
	tallyDocumentID      = "tally"
)

// tallyRepository handles the single engagement document
type tallyRepository struct {
	db *database.Mongo
}

// NewTallyRepository creates a new tally repository
func NewTallyRepository(db *database.Mongo) TallyRepository {
	return &tallyRepository{db: db}
}

// Get retrieves the tally document, nil when none has been persisted yet
func (r *tallyRepository) Get(ctx context.Context) (*domain.TallyDocument, error) {
	var doc domain.TallyDocument
	err := r.db.Collection(engagementCollection).FindOne(ctx, bson.M{"_id": tallyDocumentID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tally document: %w", err)
	}
	return &doc, nil
}

// Upsert writes the full tally document, creating it when absent
func (r *tallyRepository) Upsert(ctx context.Context, doc *domain.TallyDocument) error {
	update := bson.M{"$set": bson.M{
		"support":     doc.Support,
		"oppose":      doc.Oppose,
		"voters":      doc.Voters,
		"visitors":    doc.Visitors,
		"visit_count": doc.VisitCount,
	}}

	_, err := r.db.Collection(engagementCollection).UpdateOne(
		ctx,
		bson.M{"_id": tallyDocumentID},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert tally document: %w", err)
	}
	return nil
}
