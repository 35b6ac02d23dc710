package models

import (
	"fmt"
	"strings"
	"time"
)

// FriendRequestStatus is persisted as a small integer.
type FriendRequestStatus int

const (
	StatusPending  FriendRequestStatus = 1
	StatusAccepted FriendRequestStatus = 2
	StatusRejected FriendRequestStatus = 3
)

func (s FriendRequestStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusAccepted:
		return "accepted"
	case StatusRejected:
		return "rejected"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Terminal reports whether no further transition is allowed.
func (s FriendRequestStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

func (s FriendRequestStatus) MarshalText() ([]byte, error) {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("invalid friend request status %d", int(s))
}

func (s *FriendRequestStatus) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "pending":
		*s = StatusPending
	case "accepted":
		*s = StatusAccepted
	case "rejected":
		*s = StatusRejected
	default:
		return fmt.Errorf("invalid friend request status %q", text)
	}
	return nil
}

// FriendRequest is a directed request from Requester to Recipient. Records are never deleted.
type FriendRequest struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time           `gorm:"not null;index:idx_friend_requests_requester_created,priority:2" json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	RequesterID uint                `gorm:"not null;index:idx_friend_requests_pair,priority:1;index:idx_friend_requests_requester_created,priority:1" json:"requester_id"`
	RecipientID uint                `gorm:"not null;index:idx_friend_requests_pair,priority:2" json:"recipient_id"`
	Status      FriendRequestStatus `gorm:"not null;default:1;index:idx_friend_requests_pair,priority:3" json:"status"`

	Requester User `gorm:"foreignKey:RequesterID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Recipient User `gorm:"foreignKey:RecipientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

/** -------------------- DTOs -------------------- */
type SendFriendRequest struct {
	RecipientID uint `json:"recipient_id"`
}

type ResolveFriendRequest struct {
	RequestID uint `json:"request_id"`
}

// PendingRequestResponse is one entry of the caller's outgoing pending list.
type PendingRequestResponse struct {
	ID        uint         `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Recipient UserResponse `json:"recipient"`
}

type FriendRequestResponse struct {
	ID          uint                `json:"id"`
	CreatedAt   time.Time           `json:"created_at"`
	RequesterID uint                `json:"requester_id"`
	RecipientID uint                `json:"recipient_id"`
	Status      FriendRequestStatus `json:"status"`
}

func NewFriendRequestResponse(r *FriendRequest) FriendRequestResponse {
	return FriendRequestResponse{
		ID:          r.ID,
		CreatedAt:   r.CreatedAt,
		RequesterID: r.RequesterID,
		RecipientID: r.RecipientID,
		Status:      r.Status,
	}
}
