package pricing

import (
	"math"
	"testing"
)

func TestRoundToStepIdempotent(t *testing.T) {
	steps := []int64{1, 3, 10, 50, 100}
	values := []int64{0, 1, 4, 5, 6, 15, 99, 100, 101, 1234, 99999}
	for _, step := range steps {
		for _, v := range values {
			once := RoundToStep(v, step)
			twice := RoundToStep(once, step)
			if once != twice {
				t.Fatalf("step=%d value=%d: expected idempotent rounding, got %d then %d", step, v, once, twice)
			}
			if once%step != 0 {
				t.Fatalf("step=%d value=%d: result %d is not a multiple of step", step, v, once)
			}
		}
	}
}

func TestRoundToStepTiesAwayFromZero(t *testing.T) {
	if got := RoundToStep(15, 10); got != 20 {
		t.Fatalf("expected 15 to round up to 20, got %d", got)
	}
	if got := RoundToStep(14, 10); got != 10 {
		t.Fatalf("expected 14 to round down to 10, got %d", got)
	}
	if got := RoundToStep(-15, 10); got != -20 {
		t.Fatalf("expected -15 to round to -20, got %d", got)
	}
}

func TestRoundToStepInvalidStep(t *testing.T) {
	if got := RoundToStep(123, 0); got != 123 {
		t.Fatalf("expected step 0 to behave as step 1, got %d", got)
	}
}

func TestEstimateVolumeCm3(t *testing.T) {
	// 10mm 角ブロック 10 個 → 10 × 1000mm³ = 10cm³
	got := EstimateVolumeCm3(8, 2, 10)
	if got != 10 {
		t.Fatalf("expected 10cm3, got %v", got)
	}
}

func TestEstimateVolumeClampsInvalidInput(t *testing.T) {
	if got := EstimateVolumeCm3(-5, -3, 10); got != 0 {
		t.Fatalf("expected negative counts to clamp to 0, got %v", got)
	}
	if got := EstimateVolumeCm3(10, 0, math.NaN()); got != 0 {
		t.Fatalf("expected NaN scale to yield 0, got %v", got)
	}
	if got := EstimateVolumeCm3(10, 0, -1); got != 0 {
		t.Fatalf("expected negative scale to yield 0, got %v", got)
	}
}

func TestComputeQuoteBasicScenario(t *testing.T) {
	// 体積 10cm³ と既定パラメータで 800 + 600 = 1400（丸め調整なし）
	q := ComputeQuote(10, DefaultParams())
	if q.BaseFeeYen != 800 {
		t.Fatalf("expected base fee 800, got %d", q.BaseFeeYen)
	}
	if q.VolumeFeeYen != 600 {
		t.Fatalf("expected volume fee 600, got %d", q.VolumeFeeYen)
	}
	if q.SubtotalYen != 1400 {
		t.Fatalf("expected subtotal 1400, got %d", q.SubtotalYen)
	}
}

func TestComputeQuoteMinimumFeeFloor(t *testing.T) {
	q := ComputeQuote(0, DefaultParams())
	if q.SubtotalYen != 1200 {
		t.Fatalf("expected zero volume to hit the minimum fee 1200, got %d", q.SubtotalYen)
	}
	if q.SubtotalYen%q.RoundingStepYen != 0 {
		t.Fatalf("subtotal %d is not aligned to step %d", q.SubtotalYen, q.RoundingStepYen)
	}
}

func TestComputeQuoteClampsNegativeParams(t *testing.T) {
	q := ComputeQuote(5, Params{BaseFeeYen: -100, PerCm3Yen: -60, MinFeeYen: -1, RoundingStepYen: 0})
	if q.SubtotalYen != 0 {
		t.Fatalf("expected fully clamped params to yield 0, got %d", q.SubtotalYen)
	}
}

func TestComputeQuoteSubtotalAlwaysStepMultiple(t *testing.T) {
	params := Params{BaseFeeYen: 803, PerCm3Yen: 7, MinFeeYen: 1200, RoundingStepYen: 10}
	for _, vol := range []float64{0, 0.4, 3.33, 61.7, 999.99} {
		q := ComputeQuote(vol, params)
		if q.SubtotalYen%params.RoundingStepYen != 0 {
			t.Fatalf("volume %v: subtotal %d is not a multiple of %d", vol, q.SubtotalYen, params.RoundingStepYen)
		}
	}
}
