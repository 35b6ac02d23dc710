package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"social-service/internal/models"

	"gorm.io/gorm"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// memStore is an in-memory FriendStore. Transactions are serialized and roll back on error.
type memStore struct {
	mu       sync.Mutex
	users    map[uint]models.User
	requests []models.FriendRequest
	nextID   uint
	failWith error
}

func newMemStore(users ...models.User) *memStore {
	s := &memStore{users: make(map[uint]models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *memStore) Transaction(ctx context.Context, fn func(tx FriendTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return s.failWith
	}

	snapshot := append([]models.FriendRequest(nil), s.requests...)
	nextID := s.nextID
	if err := fn(memTx{s}); err != nil {
		s.requests = snapshot
		s.nextID = nextID
		return err
	}
	return nil
}

func (s *memStore) Reader() FriendTx {
	return memTx{s}
}

func (s *memStore) statusOf(id uint) models.FriendRequestStatus {
	for _, r := range s.requests {
		if r.ID == id {
			return r.Status
		}
	}
	return 0
}

type memTx struct {
	s *memStore
}

func (t memTx) LockUser(ctx context.Context, id uint) (*models.User, error) {
	return t.FindUser(ctx, id)
}

func (t memTx) FindUser(_ context.Context, id uint) (*models.User, error) {
	u, ok := t.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (t memTx) CountRecentByRequester(_ context.Context, requesterID uint, since time.Time) (int64, error) {
	var n int64
	for _, r := range t.s.requests {
		if r.RequesterID == requesterID && !r.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (t memTx) ExistsBetween(_ context.Context, requesterID, recipientID uint, status models.FriendRequestStatus) (bool, error) {
	for _, r := range t.s.requests {
		if r.RequesterID == requesterID && r.RecipientID == recipientID && r.Status == status {
			return true, nil
		}
	}
	return false, nil
}

func (t memTx) Create(_ context.Context, req *models.FriendRequest) error {
	t.s.nextID++
	req.ID = t.s.nextID
	t.s.requests = append(t.s.requests, *req)
	return nil
}

func (t memTx) FindPendingByID(_ context.Context, id uint) (*models.FriendRequest, error) {
	for _, r := range t.s.requests {
		if r.ID == id && r.Status == models.StatusPending {
			found := r
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (t memTx) UpdateStatus(_ context.Context, id uint, from, to models.FriendRequestStatus) error {
	for i := range t.s.requests {
		if t.s.requests[i].ID == id && t.s.requests[i].Status == from {
			t.s.requests[i].Status = to
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (t memTx) ListByRequester(_ context.Context, requesterID uint, status models.FriendRequestStatus, page models.PageQuery) ([]models.FriendRequest, int64, error) {
	var matched []models.FriendRequest
	for _, r := range t.s.requests {
		if r.RequesterID == requesterID && r.Status == status {
			r.Recipient = t.s.users[r.RecipientID]
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	page = page.Normalize()
	start := page.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], int64(len(matched)), nil
}

// memUserStore is an in-memory UserStore.
type memUserStore struct {
	users  []models.User
	nextID uint
}

func (s *memUserStore) FirstOrCreateByEmail(_ context.Context, user *models.User) (bool, error) {
	for _, u := range s.users {
		if u.Email == user.Email {
			*user = u
			return false, nil
		}
	}
	s.nextID++
	user.ID = s.nextID
	s.users = append(s.users, *user)
	return true, nil
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memUserStore) FindByID(_ context.Context, id uint) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memUserStore) UpdateName(_ context.Context, id uint, name string) error {
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Name = &name
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *memUserStore) SearchByEmail(_ context.Context, email string, _ models.PageQuery) ([]models.User, int64, error) {
	var out []models.User
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			out = append(out, u)
		}
	}
	return out, int64(len(out)), nil
}

func (s *memUserStore) SearchByName(_ context.Context, name string, _ models.PageQuery) ([]models.User, int64, error) {
	var out []models.User
	for _, u := range s.users {
		if strings.Contains(strings.ToLower(u.DisplayName()), strings.ToLower(name)) {
			out = append(out, u)
		}
	}
	return out, int64(len(out)), nil
}

var errStorage = errors.New("storage unavailable")

func testUser(id uint, email, name string) models.User {
	u := models.User{Email: email}
	u.ID = id
	if name != "" {
		u.Name = &name
	}
	return u
}
