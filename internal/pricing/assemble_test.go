package pricing

import "testing"

func kantoShipping(yen int64) ShippingDetail {
	return ShippingDetail{Zone: ZoneKanto, SizeTier: "60", Yen: yen, SumCm: 42}
}

func TestAssembleWithoutTicket(t *testing.T) {
	q := ComputeQuote(10, DefaultParams())
	b := Assemble(q, kantoShipping(700), nil)
	if b.TotalBeforeDiscountYen != 2100 {
		t.Fatalf("expected total before discount 2100, got %d", b.TotalBeforeDiscountYen)
	}
	if b.TotalYen != 2100 {
		t.Fatalf("expected total 2100, got %d", b.TotalYen)
	}
	if b.DiscountYen != 0 || b.Ticket != nil {
		t.Fatalf("expected no discount without ticket")
	}
}

func TestAssemblePercentTicketSubtotalScope(t *testing.T) {
	// 小計 1400、送料 700、20% チケット（小計のみ）
	q := ComputeQuote(10, DefaultParams())
	ticket := &TicketTerms{Type: TicketTypePercent, Value: 20, ApplyScope: ApplyScopeSubtotal}
	b := Assemble(q, kantoShipping(700), ticket)

	if b.TotalBeforeDiscountYen != 2100 {
		t.Fatalf("expected 2100 before discount, got %d", b.TotalBeforeDiscountYen)
	}
	if b.TotalYen != 1820 {
		t.Fatalf("expected final total 1820, got %d", b.TotalYen)
	}
	if b.DiscountYen != 280 {
		t.Fatalf("expected recomputed discount 280, got %d", b.DiscountYen)
	}
}

func TestAssembleShippingFreeTicket(t *testing.T) {
	q := ComputeQuote(10, DefaultParams())
	ticket := &TicketTerms{Type: TicketTypeShippingFree, ApplyScope: ApplyScopeSubtotal}
	b := Assemble(q, kantoShipping(700), ticket)

	// 送料分がそのまま割引として記録される
	if b.TotalYen != 1400 {
		t.Fatalf("expected total 1400 with free shipping, got %d", b.TotalYen)
	}
	if b.DiscountYen != 700 {
		t.Fatalf("expected discount 700, got %d", b.DiscountYen)
	}
}

func TestAssembleFreeTicketTotalScope(t *testing.T) {
	q := ComputeQuote(10, DefaultParams())
	ticket := &TicketTerms{Type: TicketTypeFree, ApplyScope: ApplyScopeTotal}
	b := Assemble(q, kantoShipping(700), ticket)
	if b.TotalYen != 0 {
		t.Fatalf("expected total 0 for free ticket over total scope, got %d", b.TotalYen)
	}
	if b.DiscountYen != 2100 {
		t.Fatalf("expected discount 2100, got %d", b.DiscountYen)
	}
}

func TestAssembleReconciliation(t *testing.T) {
	// 小計 + 送料 − 割引 == 最終合計 がすべてのチケット種別で正確に成り立つ
	q := ComputeQuote(10, DefaultParams())
	tickets := []*TicketTerms{
		{Type: TicketTypePercent, Value: 20, ApplyScope: ApplyScopeSubtotal},
		{Type: TicketTypePercent, Value: 33, ApplyScope: ApplyScopeTotal},
		{Type: TicketTypeFixed, Value: 555, ApplyScope: ApplyScopeSubtotal},
		{Type: TicketTypeFixed, Value: 555, ApplyScope: ApplyScopeTotal},
		{Type: TicketTypeFree, ApplyScope: ApplyScopeSubtotal},
		{Type: TicketTypeFree, ApplyScope: ApplyScopeTotal},
		{Type: TicketTypeShippingFree, ApplyScope: ApplyScopeSubtotal},
	}
	for _, shipYen := range []int64{0, 700, 705, 2000} {
		for _, ticket := range tickets {
			b := Assemble(q, kantoShipping(shipYen), ticket)
			if b.ItemSubtotalYen+b.Shipping.Yen-b.DiscountYen != b.TotalYen {
				t.Fatalf("ticket %+v ship=%d: breakdown does not reconcile: %d + %d - %d != %d",
					ticket, shipYen, b.ItemSubtotalYen, b.Shipping.Yen, b.DiscountYen, b.TotalYen)
			}
			if b.TotalYen < 0 {
				t.Fatalf("ticket %+v: negative total %d", ticket, b.TotalYen)
			}
		}
	}
}

func TestAssembleRoundingNeverRaisesTotal(t *testing.T) {
	// 丸めで割引前合計を超えそうな場合は割引なし扱いに倒す
	q := ComputeQuote(10, DefaultParams())
	ticket := &TicketTerms{Type: TicketTypePercent, Value: 0, ApplyScope: ApplyScopeSubtotal}
	b := Assemble(q, kantoShipping(705), ticket)
	if b.TotalYen != 2105 {
		t.Fatalf("expected total to stay at 2105, got %d", b.TotalYen)
	}
	if b.DiscountYen != 0 {
		t.Fatalf("expected zero discount, got %d", b.DiscountYen)
	}
}
