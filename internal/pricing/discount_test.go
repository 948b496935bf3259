package pricing

import "testing"

func TestComputeDiscountPercentFloors(t *testing.T) {
	terms := TicketTerms{Type: TicketTypePercent, Value: 20, ApplyScope: ApplyScopeSubtotal}
	if got := ComputeDiscountYen(terms, 1400, 700); got != 280 {
		t.Fatalf("expected 280, got %d", got)
	}
	// 端数は切り捨て
	terms.Value = 33
	if got := ComputeDiscountYen(terms, 100, 0); got != 33 {
		t.Fatalf("expected floor(33), got %d", got)
	}
	terms.Value = 33
	if got := ComputeDiscountYen(terms, 101, 0); got != 33 {
		t.Fatalf("expected floor(33.33), got %d", got)
	}
}

func TestComputeDiscountPercentClampsValue(t *testing.T) {
	terms := TicketTerms{Type: TicketTypePercent, Value: 150, ApplyScope: ApplyScopeSubtotal}
	if got := ComputeDiscountYen(terms, 1000, 0); got != 1000 {
		t.Fatalf("expected value clamped to 100%%, got %d", got)
	}
	terms.Value = -10
	if got := ComputeDiscountYen(terms, 1000, 0); got != 0 {
		t.Fatalf("expected negative percent to clamp to 0, got %d", got)
	}
}

func TestComputeDiscountFixed(t *testing.T) {
	terms := TicketTerms{Type: TicketTypeFixed, Value: 500, ApplyScope: ApplyScopeSubtotal}
	if got := ComputeDiscountYen(terms, 1400, 700); got != 500 {
		t.Fatalf("expected 500, got %d", got)
	}
	// 適用範囲を超えない
	terms.Value = 5000
	if got := ComputeDiscountYen(terms, 1400, 700); got != 1400 {
		t.Fatalf("expected clamp to subtotal 1400, got %d", got)
	}
	// total スコープでは送料込み
	terms.ApplyScope = ApplyScopeTotal
	if got := ComputeDiscountYen(terms, 1400, 700); got != 2100 {
		t.Fatalf("expected clamp to 2100, got %d", got)
	}
}

func TestComputeDiscountFixedValueCap(t *testing.T) {
	terms := TicketTerms{Type: TicketTypeFixed, Value: 9_999_999, ApplyScope: ApplyScopeTotal}
	if got := ComputeDiscountYen(terms, 5_000_000, 0); got != maxFixedDiscountYen {
		t.Fatalf("expected fixed value capped at %d, got %d", int64(maxFixedDiscountYen), got)
	}
}

func TestComputeDiscountFree(t *testing.T) {
	terms := TicketTerms{Type: TicketTypeFree, ApplyScope: ApplyScopeSubtotal}
	if got := ComputeDiscountYen(terms, 1400, 700); got != 1400 {
		t.Fatalf("expected full subtotal, got %d", got)
	}
	terms.ApplyScope = ApplyScopeTotal
	if got := ComputeDiscountYen(terms, 1400, 700); got != 2100 {
		t.Fatalf("expected full total, got %d", got)
	}
}

func TestComputeDiscountShippingFree(t *testing.T) {
	terms := TicketTerms{Type: TicketTypeShippingFree, ApplyScope: ApplyScopeTotal}
	if got := ComputeDiscountYen(terms, 1400, 700); got != 0 {
		t.Fatalf("expected no item discount for shipping_free, got %d", got)
	}
	if !terms.ZeroesShipping() {
		t.Fatalf("expected shipping_free to zero shipping")
	}
}

func TestComputeDiscountUnknownType(t *testing.T) {
	terms := TicketTerms{Type: "mystery", Value: 100, ApplyScope: ApplyScopeTotal}
	if got := ComputeDiscountYen(terms, 1400, 700); got != 0 {
		t.Fatalf("expected unknown type to discount nothing, got %d", got)
	}
}

func TestComputeDiscountNeverExceedsScope(t *testing.T) {
	subtotals := []int64{0, 1, 999, 1400}
	shippings := []int64{0, 700}
	types := []string{TicketTypePercent, TicketTypeFixed, TicketTypeFree, TicketTypeShippingFree}
	values := []int64{0, 50, 100, 1_000_000}
	for _, typ := range types {
		for _, value := range values {
			for _, sub := range subtotals {
				for _, ship := range shippings {
					for _, scope := range []string{ApplyScopeSubtotal, ApplyScopeTotal} {
						terms := TicketTerms{Type: typ, Value: value, ApplyScope: scope}
						scopeAmount := sub
						if scope == ApplyScopeTotal {
							scopeAmount = sub + ship
						}
						got := ComputeDiscountYen(terms, sub, ship)
						if got < 0 || got > scopeAmount {
							t.Fatalf("type=%s value=%d sub=%d ship=%d scope=%s: discount %d out of [0,%d]",
								typ, value, sub, ship, scope, got, scopeAmount)
						}
					}
				}
			}
		}
	}
}
