package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matrimony/backend/internal/models"
)

var (
	ErrContactNotFound  = errors.New("contact request not found")
	ErrAlreadyRequested = errors.New("contact already requested")
	ErrContactForbidden = errors.New("not the owner of this contact request")
)

// ContactRequestStore is the contact-request contract shared by the
// in-memory and Mongo implementations.
type ContactRequestStore interface {
	Create(ctx context.Context, selfEmail string, req *models.CreateContactRequest, amount int64) (*models.ContactRequest, error)
	ListByEmail(ctx context.Context, email string) ([]*models.ContactRequest, error)
	ListPending(ctx context.Context) ([]*models.ContactRequest, error)
	Approve(ctx context.Context, id string) error
	Delete(ctx context.Context, id, selfEmail string) error
	TotalRevenue(ctx context.Context) (int64, error)
	ListUnnotified(ctx context.Context) ([]*models.ContactRequest, error)
	MarkNotified(ctx context.Context, id string) error
}

// ContactService is the in-memory contact-request store. It keeps a
// directory reference so approved requests can reveal the owner's contact
// details when listed.
type ContactService struct {
	mu        sync.RWMutex
	requests  []*models.ContactRequest
	byID      map[string]*models.ContactRequest
	directory BiodataDirectory
}

func NewContactService(directory BiodataDirectory) *ContactService {
	return &ContactService{
		byID:      make(map[string]*models.ContactRequest),
		directory: directory,
	}
}

func (s *ContactService) Create(ctx context.Context, selfEmail string, req *models.CreateContactRequest, amount int64) (*models.ContactRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cr := range s.requests {
		if cr.SelfEmail == selfEmail && cr.BiodataID == req.BiodataID {
			return nil, ErrAlreadyRequested
		}
	}

	cr := &models.ContactRequest{
		ID:              uuid.New().String(),
		BiodataID:       req.BiodataID,
		SelfEmail:       selfEmail,
		Name:            req.Name,
		Status:          models.ContactRequestPending,
		PaymentIntentID: req.PaymentIntentID,
		Amount:          amount,
		CreatedAt:       time.Now(),
	}
	s.requests = append(s.requests, cr)
	s.byID[cr.ID] = cr
	return cr, nil
}

func (s *ContactService) ListByEmail(ctx context.Context, email string) ([]*models.ContactRequest, error) {
	s.mu.RLock()
	out := make([]*models.ContactRequest, 0)
	for _, cr := range s.requests {
		if cr.SelfEmail == email {
			c := *cr
			out = append(out, &c)
		}
	}
	s.mu.RUnlock()

	s.reveal(ctx, out)
	return out, nil
}

// reveal fills in contact details on approved requests. A missing biodata is
// tolerated: the fields just stay empty.
func (s *ContactService) reveal(ctx context.Context, requests []*models.ContactRequest) {
	for _, cr := range requests {
		if cr.Status != models.ContactRequestApproved {
			continue
		}
		b, err := s.directory.GetByID(ctx, cr.BiodataID)
		if err != nil {
			continue
		}
		cr.MobileNumber = b.MobileNumber
		cr.ContactEmail = b.ContactEmail
	}
}

func (s *ContactService) ListPending(ctx context.Context) ([]*models.ContactRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.ContactRequest, 0)
	for _, cr := range s.requests {
		if cr.Status == models.ContactRequestPending {
			out = append(out, cr)
		}
	}
	return out, nil
}

func (s *ContactService) Approve(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cr, exists := s.byID[id]
	if !exists {
		return ErrContactNotFound
	}
	cr.Status = models.ContactRequestApproved
	return nil
}

func (s *ContactService) Delete(ctx context.Context, id, selfEmail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cr, exists := s.byID[id]
	if !exists {
		return ErrContactNotFound
	}
	if cr.SelfEmail != selfEmail {
		return ErrContactForbidden
	}

	delete(s.byID, id)
	for i, r := range s.requests {
		if r.ID == id {
			s.requests = append(s.requests[:i], s.requests[i+1:]...)
			break
		}
	}
	return nil
}

func (s *ContactService) TotalRevenue(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, cr := range s.requests {
		total += cr.Amount
	}
	return total, nil
}

func (s *ContactService) ListUnnotified(ctx context.Context) ([]*models.ContactRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.ContactRequest, 0)
	for _, cr := range s.requests {
		if cr.Status == models.ContactRequestApproved && !cr.Notified {
			out = append(out, cr)
		}
	}
	return out, nil
}

func (s *ContactService) MarkNotified(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cr, exists := s.byID[id]
	if !exists {
		return ErrContactNotFound
	}
	cr.Notified = true
	return nil
}
