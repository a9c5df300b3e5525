package board

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"time"

	"github.com/sharath018/property-board-backend/internal/auditlog"
	"github.com/sharath018/property-board-backend/internal/ledger"
)

var (
	ErrNotFound      = errors.New("board not found")
	ErrMissingTarget = errors.New("exactly one of tenant id or buyer id must be set")
	ErrNoProperties  = errors.New("board has no properties")
)

// FanoutOutcome is the per-property result of a finalize/share/view/
// shortlist pass. Callers can tell a fully applied fan-out from a
// partial one instead of losing failures inside the loop.
type FanoutOutcome struct {
	PropertyID   uint   `json:"property_id"`
	LedgerID     uint   `json:"ledger_id,omitempty"`
	Created      bool   `json:"created,omitempty"`
	RowsAffected int64  `json:"rows_affected"`
	Error        string `json:"error,omitempty"`
}

type Service struct {
	repo   Repository
	ledger ledger.Repository
	audit  auditlog.Service
	events EventPublisher
}

func NewService(r Repository, lr ledger.Repository, as auditlog.Service, ep EventPublisher) *Service {
	return &Service{repo: r, ledger: lr, audit: as, events: ep}
}

type CreateInput struct {
	TenantID    *uint  `json:"tenant_id"`
	BuyerID     *uint  `json:"buyer_id"`
	BoardFor    string `json:"board_for"`
	PropertyIDs []uint `json:"property_ids"`
}

// Create builds a board for an agent with an opaque access key and the
// initial property set. Exactly one of tenant/buyer must be given.
func (s *Service) Create(in CreateInput, agentID uint, ip string) (*Board, error) {
	if (in.TenantID == nil) == (in.BuyerID == nil) {
		return nil, ErrMissingTarget
	}

	boardFor := in.BoardFor
	if boardFor == "" {
		boardFor = BoardForTenant
		if in.BuyerID != nil {
			boardFor = BoardForBuyer
		}
	}

	b := &Board{
		PropertyAgentID: agentID,
		TenantID:        in.TenantID,
		BuyerID:         in.BuyerID,
		BoardFor:        boardFor,
		Key:             generateKey(12),
	}
	if err := s.repo.Create(b, in.PropertyIDs); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(b.ID)
	if err != nil {
		return nil, err
	}
	s.logAction(&agentID, &b.ID, "BOARD_CREATED", map[string]interface{}{
		"board_for":  boardFor,
		"target_id":  created.TargetID(),
		"properties": len(created.Properties),
	}, ip, "success")
	return created, nil
}

// AddProperty is an idempotent set-add of a property into the board.
func (s *Service) AddProperty(boardID, propertyID uint) (*Board, error) {
	b, err := s.repo.AddProperty(boardID, propertyID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// Finalize flips the board to finalized and distributes it: one ledger
// record per property for the board's target. The (board, property,
// tenant) uniqueness in the ledger makes re-finalizing a no-op per
// property rather than doubling the records.
func (s *Service) Finalize(boardID uint, agentID uint, ip string) (*Board, []FanoutOutcome, error) {
	b, err := s.repo.SetStatus(boardID, true)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	target := b.TargetID()
	if target == 0 {
		return nil, nil, ErrMissingTarget
	}

	outcomes := make([]FanoutOutcome, 0, len(b.Properties))
	for _, p := range b.Properties {
		rec := &ledger.SharedProperty{
			BoardID:    b.ID,
			PropertyID: p.ID,
			TenantID:   target,
		}
		created, err := s.ledger.CreateIfAbsent(rec)
		outcome := FanoutOutcome{PropertyID: p.ID, Created: created}
		if err != nil {
			outcome.Error = err.Error()
		} else if created {
			outcome.LedgerID = rec.ID
			outcome.RowsAffected = 1
		}
		outcomes = append(outcomes, outcome)
	}

	s.publish(BoardEvent{
		Type:        EventBoardFinalized,
		BoardID:     b.ID,
		AgentID:     agentID,
		TargetID:    target,
		BoardFor:    b.BoardFor,
		PropertyIDs: propertyIDs(b),
		OccurredAt:  time.Now(),
	})
	s.logAction(&agentID, &b.ID, "BOARD_FINALIZED", map[string]interface{}{
		"target_id":  target,
		"properties": len(b.Properties),
	}, ip, "success")
	return b, outcomes, nil
}

// Share stamps sharedAt on every existing ledger record of the board's
// properties for the board's target. It never creates records; sharing
// a board that was never finalized touches zero rows.
func (s *Service) Share(boardID uint, agentID uint, ip string) (*Board, []FanoutOutcome, error) {
	b, err := s.repo.FindByID(boardID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	target := b.TargetID()
	if target == 0 {
		return nil, nil, ErrMissingTarget
	}

	sharedAt := b.UpdatedAt
	outcomes := make([]FanoutOutcome, 0, len(b.Properties))
	for _, p := range b.Properties {
		n, err := s.ledger.StampShared(p.ID, target, sharedAt)
		outcome := FanoutOutcome{PropertyID: p.ID, RowsAffected: n}
		if err != nil {
			outcome.Error = err.Error()
		}
		outcomes = append(outcomes, outcome)
	}

	s.publish(BoardEvent{
		Type:        EventBoardShared,
		BoardID:     b.ID,
		AgentID:     agentID,
		TargetID:    target,
		BoardFor:    b.BoardFor,
		PropertyIDs: propertyIDs(b),
		OccurredAt:  sharedAt,
	})
	s.logAction(&agentID, &b.ID, "BOARD_SHARED", map[string]interface{}{
		"target_id":  target,
		"properties": len(b.Properties),
	}, ip, "success")
	return b, outcomes, nil
}

// RecordView stamps viewedAt on the ledger records of one board
// property, scoped to the acting tenant. Zero matching records (board
// never finalized, or property not on the board) is a silent no-op.
func (s *Service) RecordView(boardID, propertyID, tenantID uint) (int64, error) {
	b, err := s.repo.FindByID(boardID)
	if err != nil {
		if isNotFound(err) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if !hasProperty(b, propertyID) {
		return 0, nil
	}
	return s.ledger.MarkViewed(propertyID, tenantID, time.Now())
}

// RecordShortlist stamps shortListedAt and flips isShortlisted, with
// the same scoping and no-op semantics as RecordView.
func (s *Service) RecordShortlist(boardID, propertyID, tenantID uint) (int64, error) {
	b, err := s.repo.FindByID(boardID)
	if err != nil {
		if isNotFound(err) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if !hasProperty(b, propertyID) {
		return 0, nil
	}
	return s.ledger.MarkShortlisted(propertyID, tenantID, time.Now())
}

func (s *Service) GetByID(boardID uint) (*Board, error) {
	b, err := s.repo.FindByID(boardID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) GetForAgent(agentID uint) ([]Board, error) {
	return s.repo.FindByAgent(agentID)
}

// Shortlisted lists a tenant's shortlisted ledger records.
func (s *Service) Shortlisted(tenantID uint) ([]ledger.SharedProperty, error) {
	return s.ledger.FindShortlistedByTenant(tenantID)
}

func hasProperty(b *Board, propertyID uint) bool {
	for _, p := range b.Properties {
		if p.ID == propertyID {
			return true
		}
	}
	return false
}

func propertyIDs(b *Board) []uint {
	ids := make([]uint, 0, len(b.Properties))
	for _, p := range b.Properties {
		ids = append(ids, p.ID)
	}
	return ids
}

func (s *Service) publish(evt BoardEvent) {
	if s.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.events.PublishBoardEvent(ctx, evt); err != nil {
		log.Printf("failed to publish %s for board %d: %v", evt.Type, evt.BoardID, err)
	}
}

func (s *Service) logAction(userID *uint, boardID *uint, action string, details map[string]interface{}, ip, status string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.LogAction(context.Background(), userID, boardID, action, details, ip, status); err != nil {
		log.Printf("audit log write failed for %s: %v", action, err)
	}
}

// generateKey returns an opaque hex access key of 2n characters.
func generateKey(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}
