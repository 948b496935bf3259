package pricing

// ShippingDetail 見積に含める配送情報のスナップショット
type ShippingDetail struct {
	ConfigID uint    `json:"config_id"` // 0 はフォールバック表
	Zone     string  `json:"zone"`
	SizeTier string  `json:"size_tier"`
	Yen      int64   `json:"yen"`
	SumCm    float64 `json:"sum_cm"`
	Capped   bool    `json:"capped"`
}

// Breakdown 注文と共に永続化する見積内訳
// 同じ入力（価格設定・配送設定・チケットのスナップショット）から再現できること。
type Breakdown struct {
	BaseFeeYen             int64          `json:"base_fee_yen"`
	VolumeFeeYen           int64          `json:"volume_fee_yen"`
	RoundingStepYen        int64          `json:"rounding_step_yen"`
	ItemSubtotalYen        int64          `json:"item_subtotal_yen"`
	Shipping               ShippingDetail `json:"shipping"`
	TotalBeforeDiscountYen int64          `json:"total_before_discount_yen"`
	TotalYen               int64          `json:"total_yen"`
	PreDiscountYen         int64          `json:"pre_discount_yen,omitempty"`
	DiscountYen            int64          `json:"discount_yen"`
	Ticket                 *TicketTerms   `json:"ticket,omitempty"`
}

// Assemble 小計・送料・チケットから最終合計と内訳を組み立てる
// チケットあり: rawFinal = max(0, 割引前合計 − 割引) を丸め単位に丸め、
// 割引額は丸め後に「割引前合計 − 最終合計」として再計算する。これにより
// 小計 + 送料 − 割引 == 最終合計 が常に正確に成り立つ。
// チケットなし: 最終合計は割引前合計そのもの（送料は独立に再丸めしない）。
func Assemble(quote Quote, shipping ShippingDetail, ticket *TicketTerms) Breakdown {
	subtotal := quote.SubtotalYen
	totalBefore := subtotal + shipping.Yen

	breakdown := Breakdown{
		BaseFeeYen:             quote.BaseFeeYen,
		VolumeFeeYen:           quote.VolumeFeeYen,
		RoundingStepYen:        quote.RoundingStepYen,
		ItemSubtotalYen:        subtotal,
		Shipping:               shipping,
		TotalBeforeDiscountYen: totalBefore,
	}

	if ticket == nil {
		breakdown.TotalYen = totalBefore
		return breakdown
	}

	effectiveShipping := shipping.Yen
	if ticket.ZeroesShipping() {
		effectiveShipping = 0
	}

	discount := ComputeDiscountYen(*ticket, subtotal, effectiveShipping)
	rawFinal := subtotal + effectiveShipping - discount
	if rawFinal < 0 {
		rawFinal = 0
	}
	finalTotal := RoundToStep(rawFinal, quote.RoundingStepYen)

	applied := totalBefore - finalTotal
	if applied < 0 {
		applied = 0
		finalTotal = totalBefore
	}

	breakdown.PreDiscountYen = totalBefore
	breakdown.DiscountYen = applied
	breakdown.TotalYen = finalTotal
	terms := *ticket
	breakdown.Ticket = &terms
	return breakdown
}
