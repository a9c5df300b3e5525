package notification

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/sharath018/property-board-backend/internal/auth"
	"github.com/sharath018/property-board-backend/internal/board"
)

type fakeNotifRepo struct {
	nextID uint
	items  []*InAppNotification
}

func (f *fakeNotifRepo) CreateInApp(_ context.Context, n *InAppNotification) error {
	f.nextID++
	n.ID = f.nextID
	f.items = append(f.items, n)
	return nil
}

func (f *fakeNotifRepo) ListInAppByUser(_ context.Context, userID uint, limit int) ([]InAppNotification, error) {
	var out []InAppNotification
	for _, n := range f.items {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotifRepo) MarkInAppAsRead(_ context.Context, id uint, userID uint) error {
	for _, n := range f.items {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeNotifRepo) CountUnread(_ context.Context, userID uint) (int64, error) {
	var count int64
	for _, n := range f.items {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

type fakeUserRepo struct{}

func (fakeUserRepo) Create(*auth.User) error                          { return nil }
func (fakeUserRepo) FindByEmail(string) (*auth.User, error)           { return nil, gorm.ErrRecordNotFound }
func (fakeUserRepo) FindRoleByName(string) (*auth.UserRole, error)    { return nil, gorm.ErrRecordNotFound }
func (fakeUserRepo) ListUsers(string) ([]auth.User, error)            { return nil, nil }
func (fakeUserRepo) Update(*auth.User) error                          { return nil }
func (fakeUserRepo) SeedRoles([]string) error                         { return nil }
func (fakeUserRepo) FindByID(userID uint) (auth.User, error) {
	return auth.User{ID: userID, FullName: "Asha Rao", Email: "asha@example.com"}, nil
}

func boardEvent(evtType string) board.BoardEvent {
	return board.BoardEvent{
		Type:        evtType,
		BoardID:     2,
		AgentID:     1,
		TargetID:    3,
		BoardFor:    board.BoardForTenant,
		PropertyIDs: []uint{10, 11},
		OccurredAt:  time.Now(),
	}
}

func TestHandleBoardEventCreatesInApp(t *testing.T) {
	repo := &fakeNotifRepo{}
	svc := NewService(repo, fakeUserRepo{}, nil)

	if err := svc.HandleBoardEvent(context.Background(), boardEvent(board.EventBoardFinalized)); err != nil {
		t.Fatalf("HandleBoardEvent: %v", err)
	}
	if err := svc.HandleBoardEvent(context.Background(), boardEvent(board.EventBoardShared)); err != nil {
		t.Fatalf("HandleBoardEvent: %v", err)
	}

	items, _ := svc.ListInAppByUser(context.Background(), 3, 50)
	if len(items) != 2 {
		t.Fatalf("notifications = %d, want 2", len(items))
	}
	for _, n := range items {
		if n.Category != CategoryBoard {
			t.Errorf("category = %q, want %q", n.Category, CategoryBoard)
		}
		if n.BoardID == nil || *n.BoardID != 2 {
			t.Errorf("board id = %v, want 2", n.BoardID)
		}
	}

	count, _ := svc.UnreadCount(context.Background(), 3)
	if count != 2 {
		t.Errorf("unread = %d, want 2", count)
	}

	if err := svc.MarkInAppAsRead(context.Background(), items[0].ID, 3); err != nil {
		t.Fatalf("MarkInAppAsRead: %v", err)
	}
	count, _ = svc.UnreadCount(context.Background(), 3)
	if count != 1 {
		t.Errorf("unread after read = %d, want 1", count)
	}
}

func TestHandleBoardEventIgnoresUnknownType(t *testing.T) {
	repo := &fakeNotifRepo{}
	svc := NewService(repo, fakeUserRepo{}, nil)

	if err := svc.HandleBoardEvent(context.Background(), boardEvent("board.renamed")); err != nil {
		t.Fatalf("HandleBoardEvent: %v", err)
	}
	if len(repo.items) != 0 {
		t.Errorf("notifications = %d, want 0", len(repo.items))
	}
}
