package worker

import (
	"testing"

	"github.com/qbu-next/internal/models"
)

func TestBuildOrderInvoiceEmailInputNilOrder(t *testing.T) {
	got := buildOrderInvoiceEmailInput(nil)
	if got.OrderNo != "" || got.TicketApplied {
		t.Fatalf("expected zero input for nil order, got %+v", got)
	}
}

func TestBuildOrderInvoiceEmailInputFields(t *testing.T) {
	ticketID := uint(7)
	order := &models.Order{
		OrderNo:           "QB20260101000000123456",
		CustomerName:      "山田太郎",
		Currency:          "JPY",
		BlockCount:        8,
		SupportBlockCount: 2,
		VolumeCm3:         10,
		ItemSubtotalYen:   models.NewMoneyFromYen(1400),
		ShippingYen:       models.NewMoneyFromYen(700),
		DiscountYen:       models.NewMoneyFromYen(280),
		TotalYen:          models.NewMoneyFromYen(1820),
		TicketID:          &ticketID,
		Shipping: &models.OrderShipping{
			Zone:     "kanto",
			SizeTier: "60",
		},
	}

	got := buildOrderInvoiceEmailInput(order)
	if got.OrderNo != order.OrderNo {
		t.Fatalf("order no = %q", got.OrderNo)
	}
	if got.SizeTier != "60" {
		t.Fatalf("size tier = %q, want 60", got.SizeTier)
	}
	if !got.TicketApplied {
		t.Fatalf("ticket applied should be true")
	}
	if got.Total.Yen() != 1820 || got.Discount.Yen() != 280 {
		t.Fatalf("amounts mismatch: total=%d discount=%d", got.Total.Yen(), got.Discount.Yen())
	}
}

func TestBuildOrderInvoiceEmailInputWithoutShipping(t *testing.T) {
	order := &models.Order{
		OrderNo: "QB20260101000000654321",
	}
	got := buildOrderInvoiceEmailInput(order)
	if got.SizeTier != "" {
		t.Fatalf("size tier should be empty without shipping record, got %q", got.SizeTier)
	}
	if got.TicketApplied {
		t.Fatalf("ticket applied should be false without ticket")
	}
}
