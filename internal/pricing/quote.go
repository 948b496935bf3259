package pricing

import "math"

// Params 価格パラメータ（有効な PricingConfig 行から構築する）
type Params struct {
	BaseFeeYen      int64 // 基本料金
	PerCm3Yen       int64 // 体積単価（円/cm³）
	MinFeeYen       int64 // 最低料金
	RoundingStepYen int64 // 丸め単位
}

// DefaultParams 有効な設定が取得できない場合のフォールバック値
func DefaultParams() Params {
	return Params{
		BaseFeeYen:      800,
		PerCm3Yen:       60,
		MinFeeYen:       1200,
		RoundingStepYen: 10,
	}
}

// Quote 体積見積に対する小計と内訳
type Quote struct {
	VolumeCm3       float64 `json:"volume_cm3"`
	BaseFeeYen      int64   `json:"base_fee_yen"`
	VolumeFeeYen    int64   `json:"volume_fee_yen"`
	MinFeeYen       int64   `json:"min_fee_yen"`
	RoundingStepYen int64   `json:"rounding_step_yen"`
	SubtotalYen     int64   `json:"subtotal_yen"`
}

// EstimateVolumeCm3 ブロック数とスケールから印刷体積（cm³）を見積もる
// サポートブロックも基本ブロックと同じ単位体積で扱う（安全側の過大見積）。
// 負数・NaN は 0 に丸め、結果は常に非負。
func EstimateVolumeCm3(baseBlockCount, supportBlockCount int, mmPerUnit float64) float64 {
	if baseBlockCount < 0 {
		baseBlockCount = 0
	}
	if supportBlockCount < 0 {
		supportBlockCount = 0
	}
	if math.IsNaN(mmPerUnit) || mmPerUnit <= 0 {
		return 0
	}
	unitMm3 := mmPerUnit * mmPerUnit * mmPerUnit
	totalMm3 := float64(baseBlockCount+supportBlockCount) * unitMm3
	return totalMm3 / 1000.0
}

// RoundToStep 金額を最も近い丸め単位の倍数に丸める（同値はゼロから遠い側へ）
func RoundToStep(yen, step int64) int64 {
	if step < 1 {
		step = 1
	}
	if yen < 0 {
		return -RoundToStep(-yen, step)
	}
	return (yen + step/2) / step * step
}

// ComputeQuote 体積と価格パラメータから小計を計算する
// raw = base + round(vol×per)、最低料金を下回らないよう底上げした後、丸め単位に丸める。
func ComputeQuote(volumeCm3 float64, p Params) Quote {
	if math.IsNaN(volumeCm3) || volumeCm3 < 0 {
		volumeCm3 = 0
	}
	if p.BaseFeeYen < 0 {
		p.BaseFeeYen = 0
	}
	if p.PerCm3Yen < 0 {
		p.PerCm3Yen = 0
	}
	if p.MinFeeYen < 0 {
		p.MinFeeYen = 0
	}
	if p.RoundingStepYen < 1 {
		p.RoundingStepYen = 1
	}

	volumeFee := int64(math.Round(volumeCm3 * float64(p.PerCm3Yen)))
	raw := p.BaseFeeYen + volumeFee
	floored := raw
	if floored < p.MinFeeYen {
		floored = p.MinFeeYen
	}

	return Quote{
		VolumeCm3:       volumeCm3,
		BaseFeeYen:      p.BaseFeeYen,
		VolumeFeeYen:    volumeFee,
		MinFeeYen:       p.MinFeeYen,
		RoundingStepYen: p.RoundingStepYen,
		SubtotalYen:     RoundToStep(floored, p.RoundingStepYen),
	}
}
