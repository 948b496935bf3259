package pricing

import "testing"

func TestBuildRateMatrixLastWriteWins(t *testing.T) {
	matrix := BuildRateMatrix([]RateRow{
		{Zone: "kanto", SizeTier: "60", PriceYen: 700},
		{Zone: " Kanto ", SizeTier: "60", PriceYen: 710},
	})
	price, ok := matrix.Lookup("kanto", "60")
	if !ok {
		t.Fatalf("expected cell to exist")
	}
	if price != 710 {
		t.Fatalf("expected last write 710, got %d", price)
	}
}

func TestLookupNormalizesKeys(t *testing.T) {
	matrix := BuildRateMatrix([]RateRow{{Zone: "kinki", SizeTier: "80", PriceYen: 950}})
	if price, ok := matrix.Lookup("  KINKI ", " 80 "); !ok || price != 950 {
		t.Fatalf("expected normalized lookup to return 950, got %d ok=%v", price, ok)
	}
}

func TestLookupMissingCell(t *testing.T) {
	matrix := BuildRateMatrix(nil)
	if _, ok := matrix.Lookup("kanto", "60"); ok {
		t.Fatalf("expected missing cell on empty matrix")
	}
	var nilMatrix RateMatrix
	if _, ok := nilMatrix.Lookup("kanto", "60"); ok {
		t.Fatalf("expected missing cell on nil matrix")
	}
}

func TestFallbackRateMatrixValues(t *testing.T) {
	// 有効設定なし → okinawa/120 はフォールバック値 2000
	if got := LookupShippingYen(nil, ZoneOkinawa, "120"); got != 2000 {
		t.Fatalf("expected fallback 2000 for okinawa/120, got %d", got)
	}
	if got := LookupShippingYen(nil, ZoneKanto, "60"); got != 700 {
		t.Fatalf("expected fallback 700 for kanto/60, got %d", got)
	}
	if got := LookupShippingYen(nil, ZoneHokkaido, "120"); got != 1800 {
		t.Fatalf("expected fallback 1800 for hokkaido/120, got %d", got)
	}
}

func TestFallbackRateMatrixCoversFullGrid(t *testing.T) {
	matrix := FallbackRateMatrix()
	for _, zone := range Zones {
		for _, tier := range SizeTiers {
			if _, ok := matrix.Lookup(zone, tier); !ok {
				t.Fatalf("fallback matrix missing %s/%s", zone, tier)
			}
		}
	}
}

func TestLookupShippingYenPrefersActiveMatrix(t *testing.T) {
	active := BuildRateMatrix([]RateRow{{Zone: ZoneKanto, SizeTier: "60", PriceYen: 640}})
	if got := LookupShippingYen(active, ZoneKanto, "60"); got != 640 {
		t.Fatalf("expected active matrix value 640, got %d", got)
	}
	// 有効行列に無いセルはフォールバックへ
	if got := LookupShippingYen(active, ZoneOkinawa, "120"); got != 2000 {
		t.Fatalf("expected fallback 2000 for missing active cell, got %d", got)
	}
	// どちらにも無い組み合わせは 0
	if got := LookupShippingYen(active, "nowhere", "999"); got != 0 {
		t.Fatalf("expected 0 for unknown pair, got %d", got)
	}
}
