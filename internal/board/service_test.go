package board

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/sharath018/property-board-backend/internal/ledger"
	"github.com/sharath018/property-board-backend/internal/property"
)

type fakeBoardRepo struct {
	nextID uint
	boards map[uint]*Board
}

func newFakeBoardRepo() *fakeBoardRepo {
	return &fakeBoardRepo{boards: make(map[uint]*Board)}
}

func (f *fakeBoardRepo) Create(b *Board, propertyIDs []uint) error {
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	for _, pid := range propertyIDs {
		b.Properties = append(b.Properties, property.Property{ID: pid})
	}
	stored := *b
	f.boards[b.ID] = &stored
	return nil
}

func (f *fakeBoardRepo) FindByID(id uint) (*Board, error) {
	b, ok := f.boards[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBoardRepo) FindByAgent(agentID uint) ([]Board, error) {
	var out []Board
	for _, b := range f.boards {
		if b.PropertyAgentID == agentID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBoardRepo) AddProperty(boardID, propertyID uint) (*Board, error) {
	b, ok := f.boards[boardID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for _, p := range b.Properties {
		if p.ID == propertyID {
			cp := *b
			return &cp, nil
		}
	}
	b.Properties = append(b.Properties, property.Property{ID: propertyID})
	cp := *b
	return &cp, nil
}

func (f *fakeBoardRepo) SetStatus(boardID uint, status bool) (*Board, error) {
	b, ok := f.boards[boardID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	cp := *b
	return &cp, nil
}

type fakeLedgerRepo struct {
	nextID  uint
	records []*ledger.SharedProperty
}

func (f *fakeLedgerRepo) CreateIfAbsent(rec *ledger.SharedProperty) (bool, error) {
	for _, r := range f.records {
		if r.BoardID == rec.BoardID && r.PropertyID == rec.PropertyID && r.TenantID == rec.TenantID {
			return false, nil
		}
	}
	f.nextID++
	rec.ID = f.nextID
	rec.CreatedAt = time.Now()
	cp := *rec
	f.records = append(f.records, &cp)
	return true, nil
}

func (f *fakeLedgerRepo) FindByIDs(ids []uint) ([]ledger.SharedProperty, error) {
	var out []ledger.SharedProperty
	for _, r := range f.records {
		for _, id := range ids {
			if r.ID == id {
				out = append(out, *r)
			}
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) FindByProperty(propertyID uint) ([]ledger.SharedProperty, error) {
	var out []ledger.SharedProperty
	for _, r := range f.records {
		if r.PropertyID == propertyID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) FindByPropertyAndTenant(propertyID, tenantID uint) ([]ledger.SharedProperty, error) {
	var out []ledger.SharedProperty
	for _, r := range f.records {
		if r.PropertyID == propertyID && r.TenantID == tenantID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) FindShortlistedByTenant(tenantID uint) ([]ledger.SharedProperty, error) {
	var out []ledger.SharedProperty
	for _, r := range f.records {
		if r.TenantID == tenantID && r.IsShortlisted {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) MarkViewed(propertyID, tenantID uint, at time.Time) (int64, error) {
	var n int64
	for _, r := range f.records {
		if r.PropertyID == propertyID && r.TenantID == tenantID {
			t := at
			r.ViewedAt = &t
			n++
		}
	}
	return n, nil
}

func (f *fakeLedgerRepo) MarkShortlisted(propertyID, tenantID uint, at time.Time) (int64, error) {
	var n int64
	for _, r := range f.records {
		if r.PropertyID == propertyID && r.TenantID == tenantID {
			t := at
			r.ShortListedAt = &t
			r.IsShortlisted = true
			n++
		}
	}
	return n, nil
}

func (f *fakeLedgerRepo) StampShared(propertyID, tenantID uint, at time.Time) (int64, error) {
	var n int64
	for _, r := range f.records {
		if r.PropertyID == propertyID && r.TenantID == tenantID {
			t := at
			r.SharedAt = &t
			n++
		}
	}
	return n, nil
}

type fakePublisher struct {
	events []BoardEvent
}

func (f *fakePublisher) PublishBoardEvent(_ context.Context, evt BoardEvent) error {
	f.events = append(f.events, evt)
	return nil
}

func uintPtr(v uint) *uint { return &v }

func newTestService() (*Service, *fakeBoardRepo, *fakeLedgerRepo, *fakePublisher) {
	boards := newFakeBoardRepo()
	records := &fakeLedgerRepo{}
	pub := &fakePublisher{}
	return NewService(boards, records, nil, pub), boards, records, pub
}

func TestCreateRequiresExactlyOneTarget(t *testing.T) {
	svc, _, _, _ := newTestService()

	tests := []struct {
		name string
		in   CreateInput
	}{
		{"neither", CreateInput{}},
		{"both", CreateInput{TenantID: uintPtr(3), BuyerID: uintPtr(4)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(tt.in, 1, ""); !errors.Is(err, ErrMissingTarget) {
				t.Errorf("err = %v, want ErrMissingTarget", err)
			}
		})
	}
}

func TestCreateBoard(t *testing.T) {
	svc, _, _, _ := newTestService()

	b, err := svc.Create(CreateInput{TenantID: uintPtr(3), PropertyIDs: []uint{10, 11}}, 1, "")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if b.Key == "" {
		t.Error("board key is empty")
	}
	if b.Status {
		t.Error("new board must not be finalized")
	}
	if b.BoardFor != BoardForTenant {
		t.Errorf("board_for = %q, want %q", b.BoardFor, BoardForTenant)
	}
	if len(b.Properties) != 2 {
		t.Errorf("properties = %d, want 2", len(b.Properties))
	}
}

func TestCreateBuyerBoardDefaultsBoardFor(t *testing.T) {
	svc, _, _, _ := newTestService()

	b, err := svc.Create(CreateInput{BuyerID: uintPtr(9)}, 1, "")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if b.BoardFor != BoardForBuyer {
		t.Errorf("board_for = %q, want %q", b.BoardFor, BoardForBuyer)
	}
	if b.TargetID() != 9 {
		t.Errorf("target = %d, want 9", b.TargetID())
	}
}

func TestFinalizeDistributesOncePerProperty(t *testing.T) {
	svc, _, records, pub := newTestService()

	b, err := svc.Create(CreateInput{TenantID: uintPtr(3), PropertyIDs: []uint{10, 11}}, 1, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, outcomes, err := svc.Finalize(b.ID, 1, "")
	if err != nil {
		t.Fatalf("Finalize returned error: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("outcomes = %d, want 2", len(outcomes))
	}
	for _, o := range outcomes {
		if !o.Created || o.RowsAffected != 1 {
			t.Errorf("outcome %+v, want created with one row", o)
		}
	}
	if len(records.records) != 2 {
		t.Fatalf("ledger records = %d, want 2", len(records.records))
	}
	for _, r := range records.records {
		if r.TenantID != 3 {
			t.Errorf("tenant = %d, want 3", r.TenantID)
		}
		if r.ViewedAt != nil || r.SharedAt != nil || r.ShortListedAt != nil || r.IsShortlisted {
			t.Errorf("fresh ledger record has stamps set: %+v", r)
		}
	}

	// Re-finalizing must not double the records.
	_, outcomes, err = svc.Finalize(b.ID, 1, "")
	if err != nil {
		t.Fatalf("second Finalize: %v", err)
	}
	for _, o := range outcomes {
		if o.Created {
			t.Errorf("second finalize created a record: %+v", o)
		}
	}
	if len(records.records) != 2 {
		t.Errorf("ledger records after re-finalize = %d, want 2", len(records.records))
	}

	if len(pub.events) != 2 || pub.events[0].Type != EventBoardFinalized {
		t.Errorf("events = %+v, want two %s events", pub.events, EventBoardFinalized)
	}
}

func TestShareBeforeFinalizeTouchesNothing(t *testing.T) {
	svc, _, records, _ := newTestService()

	b, err := svc.Create(CreateInput{TenantID: uintPtr(3), PropertyIDs: []uint{10}}, 1, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, outcomes, err := svc.Share(b.ID, 1, "")
	if err != nil {
		t.Fatalf("Share returned error: %v", err)
	}
	if outcomes[0].RowsAffected != 0 {
		t.Errorf("rows = %d, want 0 on unfinalized board", outcomes[0].RowsAffected)
	}
	if len(records.records) != 0 {
		t.Errorf("share created %d ledger records, want 0", len(records.records))
	}
}

func TestShareStampsExistingRecords(t *testing.T) {
	svc, _, records, pub := newTestService()

	b, _ := svc.Create(CreateInput{TenantID: uintPtr(3), PropertyIDs: []uint{10, 11}}, 1, "")
	if _, _, err := svc.Finalize(b.ID, 1, ""); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	_, outcomes, err := svc.Share(b.ID, 1, "")
	if err != nil {
		t.Fatalf("Share returned error: %v", err)
	}
	for _, o := range outcomes {
		if o.RowsAffected != 1 {
			t.Errorf("outcome %+v, want one stamped row", o)
		}
	}
	for _, r := range records.records {
		if r.SharedAt == nil {
			t.Errorf("record %d missing shared stamp", r.ID)
		}
	}

	last := pub.events[len(pub.events)-1]
	if last.Type != EventBoardShared {
		t.Errorf("last event = %q, want %q", last.Type, EventBoardShared)
	}
}

func TestRecordViewScopes(t *testing.T) {
	svc, _, records, _ := newTestService()

	b, _ := svc.Create(CreateInput{TenantID: uintPtr(3), PropertyIDs: []uint{10}}, 1, "")

	// Unknown board.
	if _, err := svc.RecordView(999, 10, 3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	// Property not on the board: silent no-op.
	n, err := svc.RecordView(b.ID, 77, 3)
	if err != nil || n != 0 {
		t.Fatalf("view of absent property = (%d, %v), want (0, nil)", n, err)
	}

	// Board never finalized: zero rows, no error.
	n, err = svc.RecordView(b.ID, 10, 3)
	if err != nil || n != 0 {
		t.Fatalf("view before finalize = (%d, %v), want (0, nil)", n, err)
	}

	if _, _, err := svc.Finalize(b.ID, 1, ""); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	n, err = svc.RecordView(b.ID, 10, 3)
	if err != nil || n != 1 {
		t.Fatalf("view after finalize = (%d, %v), want (1, nil)", n, err)
	}
	if records.records[0].ViewedAt == nil {
		t.Error("viewed stamp missing")
	}

	// Another tenant viewing the same board property touches nothing.
	n, err = svc.RecordView(b.ID, 10, 999)
	if err != nil || n != 0 {
		t.Fatalf("foreign tenant view = (%d, %v), want (0, nil)", n, err)
	}
}

func TestRecordShortlist(t *testing.T) {
	svc, _, records, _ := newTestService()

	b, _ := svc.Create(CreateInput{TenantID: uintPtr(3), PropertyIDs: []uint{10}}, 1, "")
	if _, _, err := svc.Finalize(b.ID, 1, ""); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	n, err := svc.RecordShortlist(b.ID, 10, 3)
	if err != nil || n != 1 {
		t.Fatalf("shortlist = (%d, %v), want (1, nil)", n, err)
	}
	if !records.records[0].IsShortlisted || records.records[0].ShortListedAt == nil {
		t.Errorf("shortlist stamps missing: %+v", records.records[0])
	}

	shortlisted, err := svc.Shortlisted(3)
	if err != nil {
		t.Fatalf("Shortlisted: %v", err)
	}
	if len(shortlisted) != 1 {
		t.Errorf("shortlisted = %d, want 1", len(shortlisted))
	}
}

// Full lifecycle: two boards for different tenants over a shared
// property, exercising cross-board scoping of the tenant stamps.
func TestLifecycleAcrossBoards(t *testing.T) {
	svc, _, records, _ := newTestService()

	b1, _ := svc.Create(CreateInput{TenantID: uintPtr(3), PropertyIDs: []uint{10, 11}}, 1, "")
	b2, _ := svc.Create(CreateInput{TenantID: uintPtr(4), PropertyIDs: []uint{10}}, 1, "")

	if _, _, err := svc.Finalize(b1.ID, 1, ""); err != nil {
		t.Fatalf("finalize b1: %v", err)
	}
	if _, _, err := svc.Finalize(b2.ID, 1, ""); err != nil {
		t.Fatalf("finalize b2: %v", err)
	}
	if len(records.records) != 3 {
		t.Fatalf("ledger records = %d, want 3", len(records.records))
	}

	// Tenant 3 views property 10; tenant 4's record must stay clean.
	if n, _ := svc.RecordView(b1.ID, 10, 3); n != 1 {
		t.Fatalf("view rows = %d, want 1", n)
	}
	for _, r := range records.records {
		if r.TenantID == 4 && r.ViewedAt != nil {
			t.Errorf("tenant 4 record stamped by tenant 3 view: %+v", r)
		}
	}

	// Sharing b1 stamps only tenant 3's records.
	if _, _, err := svc.Share(b1.ID, 1, ""); err != nil {
		t.Fatalf("share b1: %v", err)
	}
	for _, r := range records.records {
		switch r.TenantID {
		case 3:
			if r.SharedAt == nil {
				t.Errorf("tenant 3 record not stamped: %+v", r)
			}
		case 4:
			if r.SharedAt != nil {
				t.Errorf("tenant 4 record stamped by b1 share: %+v", r)
			}
		}
	}
}

func TestAddPropertyIdempotent(t *testing.T) {
	svc, _, _, _ := newTestService()

	b, _ := svc.Create(CreateInput{TenantID: uintPtr(3), PropertyIDs: []uint{10}}, 1, "")

	got, err := svc.AddProperty(b.ID, 10)
	if err != nil {
		t.Fatalf("AddProperty returned error: %v", err)
	}
	if len(got.Properties) != 1 {
		t.Errorf("properties = %d, want 1 after duplicate add", len(got.Properties))
	}

	got, err = svc.AddProperty(b.ID, 11)
	if err != nil {
		t.Fatalf("AddProperty returned error: %v", err)
	}
	if len(got.Properties) != 2 {
		t.Errorf("properties = %d, want 2", len(got.Properties))
	}

	if _, err := svc.AddProperty(999, 10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
