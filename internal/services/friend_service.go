package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"social-service/internal/models"

	"gorm.io/gorm"
)

// ResolverPolicy decides who may accept or reject a pending request.
type ResolverPolicy string

const (
	// ResolverRequester lets only the user who sent the request resolve it.
	ResolverRequester ResolverPolicy = "requester"
	// ResolverRecipient lets only the target of the request resolve it.
	ResolverRecipient ResolverPolicy = "recipient"
)

type FriendPolicy struct {
	RequestLimit  int
	RequestWindow time.Duration
	Resolver      ResolverPolicy
}

func DefaultFriendPolicy() FriendPolicy {
	return FriendPolicy{
		RequestLimit:  3,
		RequestWindow: time.Minute,
		Resolver:      ResolverRequester,
	}
}

// SendOutcome tags the successful results of SendRequest.
type SendOutcome int

const (
	OutcomeCreated SendOutcome = iota + 1
	OutcomeAlreadyPending
	OutcomeAlreadyFriends
)

func (o SendOutcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeAlreadyPending:
		return "already_pending"
	case OutcomeAlreadyFriends:
		return "already_friends"
	default:
		return "unknown"
	}
}

// SendResult is the outcome of SendRequest. Request is set only for OutcomeCreated.
type SendResult struct {
	Outcome SendOutcome
	Request *models.FriendRequest
}

type FriendService struct {
	store  FriendStore
	policy FriendPolicy
	clock  TimeProvider
}

func NewFriendService(store FriendStore, policy FriendPolicy, clock TimeProvider) *FriendService {
	if clock == nil {
		clock = RealTimeProvider{}
	}
	return &FriendService{
		store:  store,
		policy: policy,
		clock:  clock,
	}
}

// SendRequest creates a pending request from requester to recipient. Eligibility checks
// and the insert run in one transaction with the requester row locked, so concurrent sends
// by the same user cannot both pass the duplicate or rate checks.
func (s *FriendService) SendRequest(ctx context.Context, requesterID, recipientID uint) (*SendResult, error) {
	if recipientID == 0 {
		return nil, ErrMissingRecipient
	}

	var result *SendResult
	err := s.store.Transaction(ctx, func(tx FriendTx) error {
		if _, err := tx.LockUser(ctx, requesterID); err != nil {
			return userLookupError(err)
		}
		if _, err := tx.FindUser(ctx, recipientID); err != nil {
			return userLookupError(err)
		}
		if requesterID == recipientID {
			return ErrSelfRequest
		}

		now := s.clock.Now()
		allowed, err := RateLimitCheck(ctx, tx, requesterID, now, s.policy)
		if err != nil {
			return err
		}
		if !allowed {
			return ErrRateLimited
		}

		pending, err := DuplicatePendingCheck(ctx, tx, requesterID, recipientID)
		if err != nil {
			return err
		}
		if pending {
			result = &SendResult{Outcome: OutcomeAlreadyPending}
			return nil
		}

		friends, err := AlreadyFriendsCheck(ctx, tx, requesterID, recipientID)
		if err != nil {
			return err
		}
		if friends {
			result = &SendResult{Outcome: OutcomeAlreadyFriends}
			return nil
		}

		req := &models.FriendRequest{
			CreatedAt:   now,
			RequesterID: requesterID,
			RecipientID: recipientID,
			Status:      models.StatusPending,
		}
		if err := tx.Create(ctx, req); err != nil {
			return err
		}
		result = &SendResult{Outcome: OutcomeCreated, Request: req}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Friend request processed",
		"requester_id", requesterID,
		"recipient_id", recipientID,
		"outcome", result.Outcome.String(),
	)
	return result, nil
}

func (s *FriendService) AcceptRequest(ctx context.Context, actingUserID, requestID uint) (*models.FriendRequest, error) {
	return s.resolve(ctx, actingUserID, requestID, models.StatusAccepted)
}

func (s *FriendService) RejectRequest(ctx context.Context, actingUserID, requestID uint) (*models.FriendRequest, error) {
	return s.resolve(ctx, actingUserID, requestID, models.StatusRejected)
}

func (s *FriendService) resolve(ctx context.Context, actingUserID, requestID uint, to models.FriendRequestStatus) (*models.FriendRequest, error) {
	if requestID == 0 {
		return nil, ErrMissingRequestID
	}
	if !to.Terminal() {
		return nil, fmt.Errorf("%w: cannot move a request to %s", ErrInvalidRequest, to)
	}

	var resolved *models.FriendRequest
	err := s.store.Transaction(ctx, func(tx FriendTx) error {
		// A missing request and a resolved one are reported the same way.
		req, err := tx.FindPendingByID(ctx, requestID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotPending
		}
		if err != nil {
			return fmt.Errorf("failed to load friend request: %w", err)
		}

		if !s.canResolve(actingUserID, req) {
			return ErrForbidden
		}

		err = tx.UpdateStatus(ctx, req.ID, models.StatusPending, to)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotPending
		}
		if err != nil {
			return err
		}

		req.Status = to
		resolved = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Friend request resolved",
		"request_id", resolved.ID,
		"acting_user_id", actingUserID,
		"status", resolved.Status.String(),
	)
	return resolved, nil
}

// canResolve applies the resolver policy. Under the default policy only the sender may
// accept or reject its own request.
func (s *FriendService) canResolve(actingUserID uint, req *models.FriendRequest) bool {
	switch s.policy.Resolver {
	case ResolverRecipient:
		return req.RecipientID == actingUserID
	default:
		return req.RequesterID == actingUserID
	}
}

// ListPending returns the caller's outgoing pending requests, oldest first.
func (s *FriendService) ListPending(ctx context.Context, userID uint, page models.PageQuery) (*models.Page[models.PendingRequestResponse], error) {
	requests, count, err := s.store.Reader().ListByRequester(ctx, userID, models.StatusPending, page)
	if err != nil {
		return nil, err
	}

	results := make([]models.PendingRequestResponse, len(requests))
	for i := range requests {
		results[i] = models.PendingRequestResponse{
			ID:        requests[i].ID,
			CreatedAt: requests[i].CreatedAt,
			Recipient: models.NewUserResponse(&requests[i].Recipient),
		}
	}
	return models.NewPage(page, count, results), nil
}

// ListFriends returns the recipients of the caller's accepted requests. Friendship is read
// in the requester direction only.
func (s *FriendService) ListFriends(ctx context.Context, userID uint, page models.PageQuery) (*models.Page[models.UserResponse], error) {
	requests, count, err := s.store.Reader().ListByRequester(ctx, userID, models.StatusAccepted, page)
	if err != nil {
		return nil, err
	}

	results := make([]models.UserResponse, len(requests))
	for i := range requests {
		results[i] = models.NewUserResponse(&requests[i].Recipient)
	}
	return models.NewPage(page, count, results), nil
}

func userLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return fmt.Errorf("failed to load user: %w", err)
}
