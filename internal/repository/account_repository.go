package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"votepulse/internal/domain"
	"votepulse/pkg/database"
)

const accountCollection = "accounts"

// accountRepository handles account operations against the document store
type accountRepository struct {
	db *database.Mongo
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.Mongo) AccountRepository {
	return &accountRepository{db: db}
}

// FindByLogin retrieves an account by its exact login. The lookup is
// case-sensitive, "Alice" and "alice" are distinct logins.
func (r *accountRepository) FindByLogin(ctx context.Context, login string) (*domain.Account, error) {
	var account domain.Account
	err := r.db.Collection(accountCollection).FindOne(ctx, bson.M{"login": login}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find account by login: %w", err)
	}
	return &account, nil
}

// FindByID retrieves an account by its hex identifier
func (r *accountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var account domain.Account
	err = r.db.Collection(accountCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find account by id: %w", err)
	}
	return &account, nil
}

// Insert creates a new account and returns its identifier
func (r *accountRepository) Insert(ctx context.Context, account *domain.Account) (string, error) {
	if account.ID.IsZero() {
		account.ID = primitive.NewObjectID()
	}

	_, err := r.db.Collection(accountCollection).InsertOne(ctx, account)
	if err != nil {
		return "", fmt.Errorf("failed to insert account: %w", err)
	}
	return account.ID.Hex(), nil
}

// Count returns the total number of accounts
func (r *accountRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.db.Collection(accountCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}
