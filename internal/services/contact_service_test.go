package services

import (
	"context"
	"testing"

	"github.com/matrimony/backend/internal/models"
)

func newContactFixture(t *testing.T) (*ContactService, int) {
	t.Helper()

	directory, _ := newTestDirectory(t)
	id := submitTestBiodata(t, directory, "owner@x.com", models.BiodataTypeFemale, 24, "Dhaka")
	return NewContactService(directory), id
}

func TestContactRequestLifecycle(t *testing.T) {
	s, biodataID := newContactFixture(t)
	ctx := context.Background()

	cr, err := s.Create(ctx, "seeker@x.com", &models.CreateContactRequest{
		BiodataID:       biodataID,
		Name:            "Seeker",
		PaymentIntentID: "pi_123",
	}, 500)
	if err != nil {
		t.Fatalf("create: unexpected error: %v", err)
	}
	if cr.Status != models.ContactRequestPending {
		t.Fatalf("expected pending, got %s", cr.Status)
	}
	if cr.Amount != 500 {
		t.Fatalf("expected amount 500, got %d", cr.Amount)
	}

	// One paid request per (member, biodata).
	if _, err := s.Create(ctx, "seeker@x.com", &models.CreateContactRequest{
		BiodataID:       biodataID,
		PaymentIntentID: "pi_456",
	}, 500); err != ErrAlreadyRequested {
		t.Fatalf("duplicate: expected ErrAlreadyRequested, got %v", err)
	}

	// Contact details stay hidden while pending.
	mine, err := s.ListByEmail(ctx, "seeker@x.com")
	if err != nil {
		t.Fatalf("list: unexpected error: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 request, got %d", len(mine))
	}
	if mine[0].MobileNumber != "" || mine[0].ContactEmail != "" {
		t.Fatalf("pending request leaked contact details: %+v", mine[0])
	}

	pending, err := s.ListPending(ctx)
	if err != nil {
		t.Fatalf("list pending: unexpected error: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending request, got %d", len(pending))
	}

	if err := s.Approve(ctx, cr.ID); err != nil {
		t.Fatalf("approve: unexpected error: %v", err)
	}

	mine, err = s.ListByEmail(ctx, "seeker@x.com")
	if err != nil {
		t.Fatalf("list after approve: unexpected error: %v", err)
	}
	if mine[0].Status != models.ContactRequestApproved {
		t.Fatalf("expected approved, got %s", mine[0].Status)
	}
	if mine[0].MobileNumber != "01700000000" || mine[0].ContactEmail != "owner@x.com" {
		t.Fatalf("approved request did not reveal contact details: %+v", mine[0])
	}

	if err := s.Approve(ctx, "missing"); err != ErrContactNotFound {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
}

func TestContactRequestDeleteOwnership(t *testing.T) {
	s, biodataID := newContactFixture(t)
	ctx := context.Background()

	cr, err := s.Create(ctx, "seeker@x.com", &models.CreateContactRequest{
		BiodataID:       biodataID,
		PaymentIntentID: "pi_123",
	}, 500)
	if err != nil {
		t.Fatalf("create: unexpected error: %v", err)
	}

	if err := s.Delete(ctx, cr.ID, "intruder@x.com"); err != ErrContactForbidden {
		t.Fatalf("expected ErrContactForbidden, got %v", err)
	}
	if err := s.Delete(ctx, cr.ID, "seeker@x.com"); err != nil {
		t.Fatalf("owner delete: unexpected error: %v", err)
	}
	if err := s.Delete(ctx, cr.ID, "seeker@x.com"); err != ErrContactNotFound {
		t.Fatalf("repeat delete: expected ErrContactNotFound, got %v", err)
	}
}

func TestContactRevenueAndNotification(t *testing.T) {
	directory, _ := newTestDirectory(t)
	id1 := submitTestBiodata(t, directory, "o1@x.com", models.BiodataTypeFemale, 24, "Dhaka")
	id2 := submitTestBiodata(t, directory, "o2@x.com", models.BiodataTypeMale, 27, "Sylhet")
	s := NewContactService(directory)
	ctx := context.Background()

	cr1, err := s.Create(ctx, "seeker@x.com", &models.CreateContactRequest{BiodataID: id1, PaymentIntentID: "pi_1"}, 500)
	if err != nil {
		t.Fatalf("create 1: unexpected error: %v", err)
	}
	if _, err := s.Create(ctx, "seeker@x.com", &models.CreateContactRequest{BiodataID: id2, PaymentIntentID: "pi_2"}, 500); err != nil {
		t.Fatalf("create 2: unexpected error: %v", err)
	}

	revenue, err := s.TotalRevenue(ctx)
	if err != nil {
		t.Fatalf("revenue: unexpected error: %v", err)
	}
	if revenue != 1000 {
		t.Fatalf("expected revenue 1000, got %d", revenue)
	}

	// Only approved, unnotified requests are picked up by the worker sweep.
	unnotified, err := s.ListUnnotified(ctx)
	if err != nil {
		t.Fatalf("unnotified: unexpected error: %v", err)
	}
	if len(unnotified) != 0 {
		t.Fatalf("expected nothing to notify before approval, got %d", len(unnotified))
	}

	if err := s.Approve(ctx, cr1.ID); err != nil {
		t.Fatalf("approve: unexpected error: %v", err)
	}
	unnotified, err = s.ListUnnotified(ctx)
	if err != nil {
		t.Fatalf("unnotified after approve: unexpected error: %v", err)
	}
	if len(unnotified) != 1 || unnotified[0].ID != cr1.ID {
		t.Fatalf("expected exactly cr1 to notify, got %d entries", len(unnotified))
	}

	if err := s.MarkNotified(ctx, cr1.ID); err != nil {
		t.Fatalf("mark notified: unexpected error: %v", err)
	}
	unnotified, err = s.ListUnnotified(ctx)
	if err != nil {
		t.Fatalf("unnotified after mark: unexpected error: %v", err)
	}
	if len(unnotified) != 0 {
		t.Fatalf("expected empty sweep after marking, got %d", len(unnotified))
	}
}
