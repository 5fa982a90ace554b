package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"votepulse/internal/domain"
)

var errStoreDown = errors.New("store unavailable")

// fakeAccountRepo is an in-memory AccountRepository
type fakeAccountRepo struct {
	mu      sync.Mutex
	byLogin map[string]*domain.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byLogin: make(map[string]*domain.Account)}
}

func (f *fakeAccountRepo) FindByLogin(_ context.Context, login string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byLogin[login], nil
}

func (f *fakeAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.byLogin {
		if a.ID.Hex() == id {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) Insert(_ context.Context, account *domain.Account) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if account.ID.IsZero() {
		account.ID = primitive.NewObjectID()
	}
	f.byLogin[account.Login] = account
	return account.ID.Hex(), nil
}

func (f *fakeAccountRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.byLogin)), nil
}

// fakeVisitRepo is an in-memory VisitRepository
type fakeVisitRepo struct {
	mu      sync.Mutex
	visits  []*domain.Visit
	inserts int
}

func newFakeVisitRepo() *fakeVisitRepo {
	return &fakeVisitRepo{}
}

func (f *fakeVisitRepo) FindSince(_ context.Context, origin string, since time.Time) (*domain.Visit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.visits {
		if v.Origin == origin && !v.SeenAt.Before(since) {
			return v, nil
		}
	}
	return nil, nil
}

func (f *fakeVisitRepo) Insert(_ context.Context, visit *domain.Visit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if visit.ID.IsZero() {
		visit.ID = primitive.NewObjectID()
	}
	f.visits = append(f.visits, visit)
	f.inserts++
	return nil
}

func (f *fakeVisitRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.visits)), nil
}

// fakeTallyRepo is an in-memory TallyRepository
type fakeTallyRepo struct {
	mu         sync.Mutex
	doc        *domain.TallyDocument
	upserts    int
	failUpsert bool
}

func newFakeTallyRepo() *fakeTallyRepo {
	return &fakeTallyRepo{}
}

func (f *fakeTallyRepo) Get(_ context.Context) (*domain.TallyDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.doc, nil
}

func (f *fakeTallyRepo) Upsert(_ context.Context, doc *domain.TallyDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpsert {
		return errStoreDown
	}
	copied := *doc
	f.doc = &copied
	f.upserts++
	return nil
}

func (f *fakeTallyRepo) stored() *domain.TallyDocument {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.doc
}
