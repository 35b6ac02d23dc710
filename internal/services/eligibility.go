package services

import (
	"context"
	"time"

	"social-service/internal/models"
)

// EligibilityLedger is the read side of the ledger that eligibility decisions need.
type EligibilityLedger interface {
	CountRecentByRequester(ctx context.Context, requesterID uint, since time.Time) (int64, error)
	ExistsBetween(ctx context.Context, requesterID, recipientID uint, status models.FriendRequestStatus) (bool, error)
}

// RateLimitCheck reports whether requester may create another request at now. Requests of
// any status inside the trailing window count toward the limit.
func RateLimitCheck(ctx context.Context, ledger EligibilityLedger, requesterID uint, now time.Time, policy FriendPolicy) (bool, error) {
	count, err := ledger.CountRecentByRequester(ctx, requesterID, now.Add(-policy.RequestWindow))
	if err != nil {
		return false, err
	}
	return count < int64(policy.RequestLimit), nil
}

// DuplicatePendingCheck reports whether requester already has a pending request to recipient.
func DuplicatePendingCheck(ctx context.Context, ledger EligibilityLedger, requesterID, recipientID uint) (bool, error) {
	return ledger.ExistsBetween(ctx, requesterID, recipientID, models.StatusPending)
}

// AlreadyFriendsCheck reports whether a request from requester to recipient was accepted.
// The check is direction sensitive.
func AlreadyFriendsCheck(ctx context.Context, ledger EligibilityLedger, requesterID, recipientID uint) (bool, error) {
	return ledger.ExistsBetween(ctx, requesterID, recipientID, models.StatusAccepted)
}
