package postgres

import (
	"context"
	"fmt"
	"time"

	"social-service/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FriendRequestRepository is the friend request ledger. Records are inserted and
// transitioned in place, never deleted.
type FriendRequestRepository struct {
	db *gorm.DB
}

func NewFriendRequestRepository(db *gorm.DB) *FriendRequestRepository {
	return &FriendRequestRepository{db: db}
}

func (r *FriendRequestRepository) Create(ctx context.Context, req *models.FriendRequest) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(req).Error; err != nil {
		return fmt.Errorf("failed to create friend request: %w", err)
	}
	return nil
}

// FindPendingByID returns the request only while it is pending, locking the row.
func (r *FriendRequestRepository) FindPendingByID(ctx context.Context, id uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// UpdateStatus moves a request from one status to another. gorm.ErrRecordNotFound is
// returned when the request is no longer in the from status.
func (r *FriendRequestRepository) UpdateStatus(ctx context.Context, id uint, from, to models.FriendRequestStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.FriendRequest{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return fmt.Errorf("failed to update friend request status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountRecentByRequester counts requests of any status created at or after since.
func (r *FriendRequestRepository) CountRecentByRequester(ctx context.Context, requesterID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.FriendRequest{}).
		Where("requester_id = ? AND created_at >= ?", requesterID, since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count recent friend requests: %w", err)
	}
	return count, nil
}

// ExistsBetween reports whether a requester->recipient request with the given status exists.
func (r *FriendRequestRepository) ExistsBetween(ctx context.Context, requesterID, recipientID uint, status models.FriendRequestStatus) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.FriendRequest{}).
		Where("requester_id = ? AND recipient_id = ? AND status = ?", requesterID, recipientID, status).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check friend request: %w", err)
	}
	return count > 0, nil
}

// ListByRequester pages through requester's requests in the given status, oldest first,
// with the recipient preloaded.
func (r *FriendRequestRepository) ListByRequester(ctx context.Context, requesterID uint, status models.FriendRequestStatus, page models.PageQuery) ([]models.FriendRequest, int64, error) {
	page = page.Normalize()
	query := r.db.WithContext(ctx).
		Model(&models.FriendRequest{}).
		Where("requester_id = ? AND status = ?", requesterID, status).
		Session(&gorm.Session{})

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count friend requests: %w", err)
	}

	var requests []models.FriendRequest
	err := query.
		Preload("Recipient").
		Order("created_at ASC").
		Order("id ASC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&requests).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list friend requests: %w", err)
	}
	return requests, count, nil
}
