package services

import (
	"context"

	"social-service/internal/models"
	"social-service/internal/repositories/postgres"

	"gorm.io/gorm"
)

// FriendLedger is the friend request ledger as seen by FriendService.
type FriendLedger interface {
	EligibilityLedger
	Create(ctx context.Context, req *models.FriendRequest) error
	FindPendingByID(ctx context.Context, id uint) (*models.FriendRequest, error)
	UpdateStatus(ctx context.Context, id uint, from, to models.FriendRequestStatus) error
	ListByRequester(ctx context.Context, requesterID uint, status models.FriendRequestStatus, page models.PageQuery) ([]models.FriendRequest, int64, error)
}

// FriendTx is the ledger plus the identity lookups used inside one unit of work.
// Lookups that miss return gorm.ErrRecordNotFound.
type FriendTx interface {
	FriendLedger
	LockUser(ctx context.Context, id uint) (*models.User, error)
	FindUser(ctx context.Context, id uint) (*models.User, error)
}

type FriendStore interface {
	// Transaction runs fn atomically; fn may be invoked again when the storage asks for a retry.
	Transaction(ctx context.Context, fn func(tx FriendTx) error) error
	// Reader returns a non-transactional view for read-only projections.
	Reader() FriendTx
}

type gormFriendTx struct {
	*postgres.FriendRequestRepository
	users *postgres.UserRepository
}

func newGormFriendTx(db *gorm.DB) gormFriendTx {
	return gormFriendTx{
		FriendRequestRepository: postgres.NewFriendRequestRepository(db),
		users:                   postgres.NewUserRepository(db),
	}
}

func (t gormFriendTx) LockUser(ctx context.Context, id uint) (*models.User, error) {
	return t.users.LockByID(ctx, id)
}

func (t gormFriendTx) FindUser(ctx context.Context, id uint) (*models.User, error) {
	return t.users.FindByID(ctx, id)
}

// GormFriendStore binds the repositories to a gorm transaction per unit of work.
type GormFriendStore struct {
	db      *gorm.DB
	retries int
}

func NewGormFriendStore(db *gorm.DB, retries int) *GormFriendStore {
	return &GormFriendStore{db: db, retries: retries}
}

func (s *GormFriendStore) Transaction(ctx context.Context, fn func(tx FriendTx) error) error {
	return postgres.Transaction(ctx, s.db, s.retries, func(tx *gorm.DB) error {
		return fn(newGormFriendTx(tx))
	})
}

func (s *GormFriendStore) Reader() FriendTx {
	return newGormFriendTx(s.db)
}

var _ FriendStore = (*GormFriendStore)(nil)
