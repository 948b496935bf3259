package pricing

import "testing"

func TestResolveSizeTierBoundaries(t *testing.T) {
	// 余白込み三辺合計がちょうど 60.0cm → 区分 60
	r := ResolveSizeTier(SizeMm{X: 180, Y: 180, Z: 180}, DefaultPaddingMm)
	if r.SumCm != 60.0 {
		t.Fatalf("expected sum 60.0cm, got %v", r.SumCm)
	}
	if r.Tier != "60" || r.Capped {
		t.Fatalf("expected tier 60 uncapped, got %s capped=%v", r.Tier, r.Capped)
	}

	// 60.01cm → 区分 80
	r = ResolveSizeTier(SizeMm{X: 180.1, Y: 180, Z: 180}, DefaultPaddingMm)
	if r.Tier != "80" {
		t.Fatalf("expected tier 80 just above the boundary, got %s (sum %v)", r.Tier, r.SumCm)
	}

	// 三辺合計 500cm → 区分 120 に丸められ capped
	r = ResolveSizeTier(SizeMm{X: 2000, Y: 2000, Z: 940}, DefaultPaddingMm)
	if r.Tier != "120" || !r.Capped {
		t.Fatalf("expected capped tier 120, got %s capped=%v", r.Tier, r.Capped)
	}
}

func TestResolveSizeTierPadding(t *testing.T) {
	r := ResolveSizeTier(SizeMm{X: 100, Y: 100, Z: 100}, 20)
	if r.PaddedMm.X != 120 || r.PaddedMm.Y != 120 || r.PaddedMm.Z != 120 {
		t.Fatalf("expected each dimension padded by 20mm, got %+v", r.PaddedMm)
	}
	if r.SumCm != 36 {
		t.Fatalf("expected 36cm, got %v", r.SumCm)
	}
}

func TestResolveSizeTierClampsNegative(t *testing.T) {
	r := ResolveSizeTier(SizeMm{X: -10, Y: -10, Z: -10}, -5)
	if r.SumCm != 0 {
		t.Fatalf("expected fully clamped input to sum 0, got %v", r.SumCm)
	}
	if r.Tier != "60" {
		t.Fatalf("expected smallest tier for zero size, got %s", r.Tier)
	}
}
