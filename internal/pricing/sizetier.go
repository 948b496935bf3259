package pricing

import "math"

// DefaultPaddingMm 梱包余白の既定値（各辺に加算する mm）
const DefaultPaddingMm = 20.0

// SizeMm 実寸バウンディングボックス（mm）
type SizeMm struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// SizeTierResult サイズ区分の判定結果
type SizeTierResult struct {
	Tier     string  `json:"size_tier"` // 60/80/100/120
	SumCm    float64 `json:"sum_cm"`    // 余白込み三辺合計（cm）
	PaddedMm SizeMm  `json:"padded_mm"` // 余白込み寸法
	Capped   bool    `json:"capped"`    // 最大区分に切り上げたか
}

// ResolveSizeTier バウンディングボックスから配送サイズ区分を求める
// 各辺に余白を加え、三辺合計を cm に換算して区分のしきい値と比較する。
// 最大区分を超える場合も拒否せず 120 に丸め、Capped を立てる。
func ResolveSizeTier(size SizeMm, paddingMm float64) SizeTierResult {
	if math.IsNaN(paddingMm) || paddingMm < 0 {
		paddingMm = 0
	}
	padded := SizeMm{
		X: clampDimension(size.X) + paddingMm,
		Y: clampDimension(size.Y) + paddingMm,
		Z: clampDimension(size.Z) + paddingMm,
	}
	sumCm := (padded.X + padded.Y + padded.Z) / 10.0

	result := SizeTierResult{SumCm: sumCm, PaddedMm: padded}
	switch {
	case sumCm <= 60:
		result.Tier = "60"
	case sumCm <= 80:
		result.Tier = "80"
	case sumCm <= 100:
		result.Tier = "100"
	default:
		result.Tier = "120"
		result.Capped = true
	}
	return result
}

func clampDimension(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
