package pricing

import "strings"

// RateRow 配送料金の 1 行（地域 × サイズ区分 → 円）
type RateRow struct {
	Zone     string
	SizeTier string
	PriceYen int64
}

// RateMatrix 地域 × サイズ区分の料金行列
type RateMatrix map[string]map[string]int64

// BuildRateMatrix 行の一覧から料金行列を構築する
// キーは正規化し、同一キーの重複は後勝ちとする。
func BuildRateMatrix(rows []RateRow) RateMatrix {
	matrix := make(RateMatrix)
	for _, row := range rows {
		zone := normalizeRateKey(row.Zone)
		tier := normalizeRateKey(row.SizeTier)
		if zone == "" || tier == "" {
			continue
		}
		if matrix[zone] == nil {
			matrix[zone] = make(map[string]int64)
		}
		matrix[zone][tier] = row.PriceYen
	}
	return matrix
}

// Lookup 地域とサイズ区分から料金を引く。該当セルが無い場合は ok=false。
func (m RateMatrix) Lookup(zone, sizeTier string) (int64, bool) {
	if m == nil {
		return 0, false
	}
	tiers, ok := m[normalizeRateKey(zone)]
	if !ok {
		return 0, false
	}
	price, ok := tiers[normalizeRateKey(sizeTier)]
	return price, ok
}

func normalizeRateKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FallbackRateMatrix 有効な配送設定が無い場合の既定料金表
// 値はハブからの距離とサイズで単調に増える固定表。互換性のため変更しない。
func FallbackRateMatrix() RateMatrix {
	return BuildRateMatrix([]RateRow{
		{ZoneKanto, "60", 700}, {ZoneKanto, "80", 900}, {ZoneKanto, "100", 1100}, {ZoneKanto, "120", 1300},
		{ZoneChubu, "60", 750}, {ZoneChubu, "80", 950}, {ZoneChubu, "100", 1150}, {ZoneChubu, "120", 1350},
		{ZoneKinki, "60", 750}, {ZoneKinki, "80", 950}, {ZoneKinki, "100", 1150}, {ZoneKinki, "120", 1350},
		{ZoneTohoku, "60", 850}, {ZoneTohoku, "80", 1050}, {ZoneTohoku, "100", 1250}, {ZoneTohoku, "120", 1450},
		{ZoneChugoku, "60", 950}, {ZoneChugoku, "80", 1150}, {ZoneChugoku, "100", 1350}, {ZoneChugoku, "120", 1550},
		{ZoneShikoku, "60", 950}, {ZoneShikoku, "80", 1150}, {ZoneShikoku, "100", 1350}, {ZoneShikoku, "120", 1550},
		{ZoneKyushu, "60", 1050}, {ZoneKyushu, "80", 1250}, {ZoneKyushu, "100", 1450}, {ZoneKyushu, "120", 1650},
		{ZoneHokkaido, "60", 1200}, {ZoneHokkaido, "80", 1400}, {ZoneHokkaido, "100", 1600}, {ZoneHokkaido, "120", 1800},
		{ZoneOkinawa, "60", 1400}, {ZoneOkinawa, "80", 1600}, {ZoneOkinawa, "100", 1800}, {ZoneOkinawa, "120", 2000},
	})
}

// LookupShippingYen 有効行列 → フォールバック行列 → 0 の順で料金を引く
func LookupShippingYen(active RateMatrix, zone, sizeTier string) int64 {
	if price, ok := active.Lookup(zone, sizeTier); ok {
		return price
	}
	if price, ok := FallbackRateMatrix().Lookup(zone, sizeTier); ok {
		return price
	}
	return 0
}
