package notification

import (
	"context"
	"fmt"
	"log"

	"github.com/sharath018/property-board-backend/internal/auth"
	"github.com/sharath018/property-board-backend/internal/board"
)

type Service interface {
	CreateInAppNotification(ctx context.Context, userID uint, boardID *uint, title, message, category string) error
	ListInAppByUser(ctx context.Context, userID uint, limit int) ([]InAppNotification, error)
	MarkInAppAsRead(ctx context.Context, id uint, userID uint) error
	UnreadCount(ctx context.Context, userID uint) (int64, error)

	// HandleBoardEvent fans a board lifecycle event out to the board's
	// target: an in-app entry always, an email when the board is shared.
	HandleBoardEvent(ctx context.Context, evt board.BoardEvent) error
}

type service struct {
	repo     Repository
	authRepo auth.Repository
	email    *EmailSender
}

func NewService(repo Repository, authRepo auth.Repository, email *EmailSender) Service {
	return &service{repo: repo, authRepo: authRepo, email: email}
}

func (s *service) CreateInAppNotification(ctx context.Context, userID uint, boardID *uint, title, message, category string) error {
	n := &InAppNotification{
		UserID:   userID,
		BoardID:  boardID,
		Title:    title,
		Message:  message,
		Category: category,
	}
	return s.repo.CreateInApp(ctx, n)
}

func (s *service) ListInAppByUser(ctx context.Context, userID uint, limit int) ([]InAppNotification, error) {
	return s.repo.ListInAppByUser(ctx, userID, limit)
}

func (s *service) MarkInAppAsRead(ctx context.Context, id uint, userID uint) error {
	return s.repo.MarkInAppAsRead(ctx, id, userID)
}

func (s *service) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *service) HandleBoardEvent(ctx context.Context, evt board.BoardEvent) error {
	var title, message string
	switch evt.Type {
	case board.EventBoardFinalized:
		title = "New properties for you"
		message = fmt.Sprintf("Your agent curated %d properties for you.", len(evt.PropertyIDs))
	case board.EventBoardShared:
		title = "A property board was shared with you"
		message = fmt.Sprintf("Your agent shared a board with %d properties. Take a look!", len(evt.PropertyIDs))
	default:
		log.Printf("ignoring unknown board event type %q", evt.Type)
		return nil
	}

	boardID := evt.BoardID
	if err := s.CreateInAppNotification(ctx, evt.TargetID, &boardID, title, message, CategoryBoard); err != nil {
		return fmt.Errorf("failed to create in-app notification: %w", err)
	}

	if evt.Type != board.EventBoardShared || s.email == nil {
		return nil
	}

	user, err := s.authRepo.FindByID(evt.TargetID)
	if err != nil {
		return fmt.Errorf("failed to load recipient %d: %w", evt.TargetID, err)
	}

	body := fmt.Sprintf("<p>Hi %s,</p><p>%s</p>", user.FullName, message)
	if err := s.email.Send([]string{user.Email}, title, body); err != nil {
		// In-app entry already exists; the email is best effort.
		log.Printf("failed to email board notification to user %d: %v", evt.TargetID, err)
	}
	return nil
}
