package pricing

// チケット種別
const (
	TicketTypePercent      = "percent"
	TicketTypeFixed        = "fixed"
	TicketTypeFree         = "free"
	TicketTypeShippingFree = "shipping_free"
)

// 割引の適用範囲
const (
	ApplyScopeSubtotal = "subtotal"
	ApplyScopeTotal    = "total"
)

// 固定額チケットの値の上限（円）
const maxFixedDiscountYen = 1_000_000

// TicketTerms 割引計算に必要なチケット条件のスナップショット
type TicketTerms struct {
	Type         string `json:"type"`
	Value        int64  `json:"value"`
	ApplyScope   string `json:"apply_scope"`
	ShippingFree bool   `json:"shipping_free"`
}

// ZeroesShipping 送料を 0 にするチケットか
func (t TicketTerms) ZeroesShipping() bool {
	return t.ShippingFree || t.Type == TicketTypeShippingFree
}

// ComputeDiscountYen チケット条件から割引額を計算する
// shipping_free は商品価格への割引を持たない（送料はアセンブラ側で 0 にする）。
// 割引額は適用範囲の金額を超えず、常に非負。
func ComputeDiscountYen(terms TicketTerms, subtotalYen, shippingYen int64) int64 {
	if subtotalYen < 0 {
		subtotalYen = 0
	}
	if shippingYen < 0 {
		shippingYen = 0
	}

	scopeAmount := subtotalYen
	if terms.ApplyScope == ApplyScopeTotal {
		scopeAmount = subtotalYen + shippingYen
	}

	var discount int64
	switch terms.Type {
	case TicketTypeFree:
		discount = scopeAmount
	case TicketTypeShippingFree:
		discount = 0
	case TicketTypePercent:
		percent := terms.Value
		if percent < 0 {
			percent = 0
		}
		if percent > 100 {
			percent = 100
		}
		discount = scopeAmount * percent / 100
	case TicketTypeFixed:
		value := terms.Value
		if value < 0 {
			value = 0
		}
		if value > maxFixedDiscountYen {
			value = maxFixedDiscountYen
		}
		discount = value
		if discount > scopeAmount {
			discount = scopeAmount
		}
	default:
		discount = 0
	}

	if discount < 0 {
		discount = 0
	}
	if discount > scopeAmount {
		discount = scopeAmount
	}
	return discount
}
