package property

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sharath018/property-board-backend/internal/auditlog"
)

var (
	ErrNotFound            = errors.New("property not found")
	ErrDuplicateSubmission = errors.New("property already exists with this value")
	ErrAlreadyAssigned     = errors.New("property already assigned")
	ErrMissingAgent        = errors.New("property agent id is required")
	ErrMissingLocation     = errors.New("house name, society name and pin code are required")
)

// How many times an append retries after losing the version race.
const maxVersionAttempts = 3

type Service struct {
	repo  Repository
	audit auditlog.Service
}

func NewService(r Repository, as auditlog.Service) *Service {
	return &Service{repo: r, audit: as}
}

// SubmitInput carries one agent submission: the location key plus the
// descriptive fields that become a PropertyDetail version.
type SubmitInput struct {
	HouseName   string                 `json:"house_name"`
	SocietyName string                 `json:"society_name"`
	PinCode     string                 `json:"pin_code"`
	TourLink3D  string                 `json:"tour_link_3d"`
	Images      []string               `json:"images"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Bedrooms    int                    `json:"bedrooms"`
	Bathrooms   int                    `json:"bathrooms"`
	Rent        float64                `json:"rent_amount"`
	Deposit     float64                `json:"deposit_amount"`
	Furnished   string                 `json:"furnished"`
	Extras      map[string]interface{} `json:"extras"`
}

func (in *SubmitInput) sanitize() {
	in.HouseName = strings.TrimSpace(in.HouseName)
	in.SocietyName = strings.TrimSpace(in.SocietyName)
	in.PinCode = strings.TrimSpace(in.PinCode)
	in.Title = strings.TrimSpace(in.Title)
}

func (in SubmitInput) detail(agentID uint, version int) *PropertyDetail {
	var extras datatypes.JSON
	if len(in.Extras) > 0 {
		if raw, err := json.Marshal(in.Extras); err == nil {
			extras = raw
		}
	}
	return &PropertyDetail{
		PropertyAgentID: agentID,
		Version:         version,
		Title:           in.Title,
		Description:     in.Description,
		Bedrooms:        in.Bedrooms,
		Bathrooms:       in.Bathrooms,
		RentAmount:      in.Rent,
		DepositAmount:   in.Deposit,
		Furnished:       in.Furnished,
		Extras:          extras,
	}
}

func (in SubmitInput) listing(status string) *Property {
	var images datatypes.JSON
	if len(in.Images) > 0 {
		if raw, err := json.Marshal(in.Images); err == nil {
			images = raw
		}
	}
	return &Property{
		HouseName:   in.HouseName,
		SocietyName: in.SocietyName,
		PinCode:     in.PinCode,
		Status:      status,
		TourLink3D:  in.TourLink3D,
		Images:      images,
	}
}

// Submit resolves a candidate submission against the catalog:
// unknown location creates a fresh listing with detail version 1,
// a known location appends the next version unless the same agent
// already owns one. The unique location index catches the two-writers
// race, the loser is rejected like an ordinary duplicate.
func (s *Service) Submit(in SubmitInput, agentID uint, ip string) (*Property, *PropertyDetail, error) {
	in.sanitize()
	if agentID == 0 {
		return nil, nil, ErrMissingAgent
	}
	if in.HouseName == "" || in.SocietyName == "" || in.PinCode == "" {
		return nil, nil, ErrMissingLocation
	}

	existing, err := s.repo.FindByLocation(in.HouseName, in.SocietyName, in.PinCode)
	if err != nil {
		return nil, nil, err
	}

	if existing == nil {
		listing := in.listing(StatusNew)
		detail := in.detail(agentID, 1)
		if err := s.repo.CreateWithDetail(listing, detail); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				s.logAction(&agentID, nil, "PROPERTY_SUBMIT_FAILED", in, ip, "failure")
				return nil, nil, ErrDuplicateSubmission
			}
			return nil, nil, err
		}
		listing.PropertyDetails = []PropertyDetail{*detail}
		s.logAction(&agentID, &listing.ID, "PROPERTY_SUBMITTED", in, ip, "success")
		return listing, detail, nil
	}

	for attempt := 0; attempt < maxVersionAttempts; attempt++ {
		for _, d := range existing.PropertyDetails {
			if d.PropertyAgentID == agentID {
				s.logAction(&agentID, &existing.ID, "PROPERTY_SUBMIT_FAILED", in, ip, "failure")
				return nil, nil, ErrDuplicateSubmission
			}
		}

		detail := in.detail(agentID, len(existing.PropertyDetails)+1)
		detail.PropertyID = existing.ID
		err = s.repo.AppendDetail(detail)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Another writer took this version number. Reload and go
			// again; the re-check above rejects if that writer was this
			// agent.
			existing, err = s.repo.FindByID(existing.ID)
			if err != nil {
				return nil, nil, err
			}
			continue
		}
		if err != nil {
			return nil, nil, err
		}

		updated, err := s.repo.FindByID(existing.ID)
		if err != nil {
			return nil, nil, err
		}
		s.logAction(&agentID, &existing.ID, "PROPERTY_VERSION_ADDED", in, ip, "success")
		return updated, detail, nil
	}
	return nil, nil, fmt.Errorf("could not append a detail version for property %d: too much contention", existing.ID)
}

// Verify runs the same matching as Submit but never rejects on a
// same-agent duplicate: verification may always record a new version.
// The listing ends up Verified either way. This asymmetry with Submit
// is intentional.
func (s *Service) Verify(in SubmitInput, agentID uint, ip string) (*Property, *PropertyDetail, error) {
	in.sanitize()
	if agentID == 0 {
		return nil, nil, ErrMissingAgent
	}
	if in.HouseName == "" || in.SocietyName == "" || in.PinCode == "" {
		return nil, nil, ErrMissingLocation
	}

	existing, err := s.repo.FindByLocation(in.HouseName, in.SocietyName, in.PinCode)
	if err != nil {
		return nil, nil, err
	}

	if existing == nil {
		listing := in.listing(StatusVerified)
		detail := in.detail(agentID, 1)
		err := s.repo.CreateWithDetail(listing, detail)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the creation race; the listing exists now, append to it.
			existing, err = s.repo.FindByLocation(in.HouseName, in.SocietyName, in.PinCode)
			if err != nil {
				return nil, nil, err
			}
			if existing == nil {
				return nil, nil, fmt.Errorf("listing for %s/%s/%s not visible after duplicate create", in.HouseName, in.SocietyName, in.PinCode)
			}
		} else if err != nil {
			return nil, nil, err
		} else {
			listing.PropertyDetails = []PropertyDetail{*detail}
			s.logAction(&agentID, &listing.ID, "PROPERTY_VERIFIED", in, ip, "success")
			return listing, detail, nil
		}
	}

	for attempt := 0; attempt < maxVersionAttempts; attempt++ {
		detail := in.detail(agentID, len(existing.PropertyDetails)+1)
		detail.PropertyID = existing.ID
		err = s.repo.AppendDetail(detail)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Version taken by another writer, reload and append the next one.
			existing, err = s.repo.FindByID(existing.ID)
			if err != nil {
				return nil, nil, err
			}
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		if err := s.repo.UpdateStatus(existing.ID, StatusVerified); err != nil {
			return nil, nil, err
		}

		updated, err := s.repo.FindByID(existing.ID)
		if err != nil {
			return nil, nil, err
		}
		s.logAction(&agentID, &existing.ID, "PROPERTY_VERIFIED", in, ip, "success")
		return updated, detail, nil
	}
	return nil, nil, fmt.Errorf("could not append a detail version for property %d: too much contention", existing.ID)
}

// Assign hands a property to a field agent. The unique index on
// property_id carries the one-active-assignment invariant.
func (s *Service) Assign(propertyID, fieldAgentID, agentID uint, ip string) (*AssignedProperty, error) {
	if _, err := s.repo.FindByID(propertyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	assignment := &AssignedProperty{
		PropertyID:      propertyID,
		FieldAgentID:    fieldAgentID,
		PropertyAgentID: agentID,
	}
	if err := s.repo.CreateAssignment(assignment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logDetails(&agentID, &propertyID, "PROPERTY_ASSIGN_FAILED", map[string]interface{}{
				"field_agent_id": fieldAgentID,
			}, ip, "failure")
			return nil, ErrAlreadyAssigned
		}
		return nil, err
	}

	if err := s.repo.UpdateStatus(propertyID, StatusPending); err != nil {
		log.Printf("failed to mark property %d pending after assignment: %v", propertyID, err)
	}

	s.logDetails(&agentID, &propertyID, "PROPERTY_ASSIGNED", map[string]interface{}{
		"field_agent_id": fieldAgentID,
	}, ip, "success")
	return assignment, nil
}

// CloseListing deactivates a catalog entry with a close status and
// freeform close details.
func (s *Service) CloseListing(propertyID uint, closeStatus string, details map[string]interface{}, agentID uint, ip string) (*Property, error) {
	var raw datatypes.JSON
	if len(details) > 0 {
		if b, err := json.Marshal(details); err == nil {
			raw = b
		}
	}

	updated, err := s.repo.CloseListing(propertyID, closeStatus, raw)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.logDetails(&agentID, &propertyID, "PROPERTY_CLOSED", map[string]interface{}{
		"close_status": closeStatus,
	}, ip, "success")
	return updated, nil
}

func (s *Service) GetAll() ([]Property, error) {
	return s.repo.FindAll()
}

func (s *Service) GetByID(id uint) (*Property, error) {
	p, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// PendingForFieldAgent lists a field agent's assignments whose
// properties still await verification.
func (s *Service) PendingForFieldAgent(fieldAgentID uint) ([]AssignedProperty, error) {
	assignments, err := s.repo.FindAssignmentsByFieldAgent(fieldAgentID)
	if err != nil {
		return nil, err
	}
	pending := make([]AssignedProperty, 0, len(assignments))
	for _, a := range assignments {
		if a.Property.Status == StatusPending {
			pending = append(pending, a)
		}
	}
	return pending, nil
}

// DashboardCounts returns pending/verified totals for a field agent.
func (s *Service) DashboardCounts(fieldAgentID uint) (pending, verified int, err error) {
	assignments, err := s.repo.FindAssignmentsByFieldAgent(fieldAgentID)
	if err != nil {
		return 0, 0, err
	}
	for _, a := range assignments {
		switch a.Property.Status {
		case StatusPending:
			pending++
		case StatusVerified:
			verified++
		}
	}
	return pending, verified, nil
}

func (s *Service) logAction(userID *uint, propertyID *uint, action string, in SubmitInput, ip, status string) {
	s.logDetails(userID, propertyID, action, map[string]interface{}{
		"house_name":   in.HouseName,
		"society_name": in.SocietyName,
		"pin_code":     in.PinCode,
	}, ip, status)
}

func (s *Service) logDetails(userID *uint, propertyID *uint, action string, details map[string]interface{}, ip, status string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.LogAction(context.Background(), userID, propertyID, action, details, ip, status); err != nil {
		log.Printf("audit log write failed for %s: %v", action, err)
	}
}
