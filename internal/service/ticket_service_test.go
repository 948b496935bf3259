package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/qbu-next/internal/constants"
	"github.com/qbu-next/internal/models"
	"github.com/qbu-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTicketServiceTest(t *testing.T) (*TicketService, *TicketAdminService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:ticket_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Ticket{},
		&models.TicketRedemption{},
		&models.Order{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	ticketRepo := repository.NewTicketRepository(db)
	redemptionRepo := repository.NewTicketRedemptionRepository(db)
	svc := NewTicketService(ticketRepo, redemptionRepo, "test-salt")
	adminSvc := NewTicketAdminService(ticketRepo, redemptionRepo, svc)
	return svc, adminSvc, db
}

func issueTestTicket(t *testing.T, adminSvc *TicketAdminService, input CreateTicketInput) (*models.Ticket, string) {
	t.Helper()
	created, err := adminSvc.Create(input)
	if err != nil {
		t.Fatalf("create ticket failed: %v", err)
	}
	return created.Ticket, created.RawCode
}

func TestTicketValidateSuccess(t *testing.T) {
	svc, adminSvc, _ := setupTicketServiceTest(t)

	_, code := issueTestTicket(t, adminSvc, CreateTicketInput{
		Type:  constants.TicketTypePercent,
		Value: models.NewMoneyFromYen(20),
	})

	ticket, err := svc.Validate(code, "user-a")
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if ticket.Type != constants.TicketTypePercent {
		t.Fatalf("unexpected ticket type: %s", ticket.Type)
	}
	terms := svc.Terms(ticket)
	if terms.Value != 20 {
		t.Fatalf("unexpected terms value: %d", terms.Value)
	}
	if terms.ApplyScope != constants.ApplyScopeSubtotal {
		t.Fatalf("unexpected apply scope: %s", terms.ApplyScope)
	}
}

func TestTicketValidateUnknownCode(t *testing.T) {
	svc, _, _ := setupTicketServiceTest(t)

	if _, err := svc.Validate("NOPE-NOPE-NOPE", "user-a"); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
	if _, err := svc.Validate("   ", "user-a"); !errors.Is(err, ErrTicketInvalid) {
		t.Fatalf("expected ErrTicketInvalid for blank code, got %v", err)
	}
}

func TestTicketValidateInactive(t *testing.T) {
	svc, adminSvc, _ := setupTicketServiceTest(t)

	inactive := false
	_, code := issueTestTicket(t, adminSvc, CreateTicketInput{
		Type:     constants.TicketTypeFixed,
		Value:    models.NewMoneyFromYen(500),
		IsActive: &inactive,
	})

	if _, err := svc.Validate(code, "user-a"); !errors.Is(err, ErrTicketInactive) {
		t.Fatalf("expected ErrTicketInactive, got %v", err)
	}
}

func TestTicketValidateExpired(t *testing.T) {
	svc, adminSvc, _ := setupTicketServiceTest(t)

	past := time.Now().Add(-time.Minute)
	_, code := issueTestTicket(t, adminSvc, CreateTicketInput{
		Type:      constants.TicketTypeFree,
		ExpiresAt: &past,
	})

	if _, err := svc.Validate(code, "user-a"); !errors.Is(err, ErrTicketExpired) {
		t.Fatalf("expected ErrTicketExpired, got %v", err)
	}
}

func TestTicketValidateTotalLimit(t *testing.T) {
	svc, adminSvc, db := setupTicketServiceTest(t)

	limit := 2
	ticket, code := issueTestTicket(t, adminSvc, CreateTicketInput{
		Type:         constants.TicketTypePercent,
		Value:        models.NewMoneyFromYen(10),
		MaxTotalUses: &limit,
	})

	for i := 0; i < 2; i++ {
		redemption := models.TicketRedemption{
			TicketID: ticket.ID,
			OrderID:  uint(i + 1),
			Identity: fmt.Sprintf("user-%d", i),
		}
		if err := db.Create(&redemption).Error; err != nil {
			t.Fatalf("seed redemption failed: %v", err)
		}
	}

	if _, err := svc.Validate(code, "user-new"); !errors.Is(err, ErrTicketTotalLimit) {
		t.Fatalf("expected ErrTicketTotalLimit, got %v", err)
	}
}

func TestTicketValidatePerUserLimit(t *testing.T) {
	svc, adminSvc, db := setupTicketServiceTest(t)

	perUser := 1
	ticket, code := issueTestTicket(t, adminSvc, CreateTicketInput{
		Type:           constants.TicketTypePercent,
		Value:          models.NewMoneyFromYen(10),
		MaxUsesPerUser: &perUser,
	})

	redemption := models.TicketRedemption{
		TicketID: ticket.ID,
		OrderID:  1,
		Identity: "user-a",
	}
	if err := db.Create(&redemption).Error; err != nil {
		t.Fatalf("seed redemption failed: %v", err)
	}

	if _, err := svc.Validate(code, "user-a"); !errors.Is(err, ErrTicketPerUserLimit) {
		t.Fatalf("expected ErrTicketPerUserLimit, got %v", err)
	}

	// 別の利用者はまだ使える
	if _, err := svc.Validate(code, "user-b"); err != nil {
		t.Fatalf("other identity should pass: %v", err)
	}
}

func TestTicketHashCodeDeterministic(t *testing.T) {
	svc, _, _ := setupTicketServiceTest(t)

	a := svc.HashCode("ABCD-EFGH-JKLM")
	b := svc.HashCode("  ABCD-EFGH-JKLM  ")
	if a != b {
		t.Fatalf("hash should ignore surrounding spaces")
	}
	other := NewTicketService(nil, nil, "other-salt")
	if other.HashCode("ABCD-EFGH-JKLM") == a {
		t.Fatalf("different salts must produce different hashes")
	}
}

func TestTicketAdminCreateReturnsRawCodeOnce(t *testing.T) {
	svc, adminSvc, _ := setupTicketServiceTest(t)

	created, err := adminSvc.Create(CreateTicketInput{
		Type:  constants.TicketTypeFixed,
		Value: models.NewMoneyFromYen(300),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.RawCode == "" {
		t.Fatalf("raw code should be returned on creation")
	}
	if created.Ticket.CodeHash != svc.HashCode(created.RawCode) {
		t.Fatalf("stored hash does not match raw code")
	}
	if created.Ticket.CodePrefix != created.RawCode[:4] {
		t.Fatalf("code prefix mismatch: %s vs %s", created.Ticket.CodePrefix, created.RawCode)
	}
}

func TestTicketAdminCreateRejectsBadInput(t *testing.T) {
	_, adminSvc, _ := setupTicketServiceTest(t)

	if _, err := adminSvc.Create(CreateTicketInput{Type: "mystery"}); !errors.Is(err, ErrTicketConfigInvalid) {
		t.Fatalf("expected ErrTicketConfigInvalid for unknown type, got %v", err)
	}
	if _, err := adminSvc.Create(CreateTicketInput{
		Type:  constants.TicketTypePercent,
		Value: models.NewMoneyFromYen(150),
	}); !errors.Is(err, ErrTicketConfigInvalid) {
		t.Fatalf("expected ErrTicketConfigInvalid for percent over 100, got %v", err)
	}
	zero := 0
	if _, err := adminSvc.Create(CreateTicketInput{
		Type:         constants.TicketTypeFree,
		MaxTotalUses: &zero,
	}); !errors.Is(err, ErrTicketConfigInvalid) {
		t.Fatalf("expected ErrTicketConfigInvalid for non-positive limit, got %v", err)
	}
}
