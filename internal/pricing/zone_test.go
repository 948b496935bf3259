package pricing

import "testing"

func TestResolveZoneExact(t *testing.T) {
	if got := ResolveZone("神奈川県"); got != ZoneKanto {
		t.Fatalf("expected kanto, got %q", got)
	}
	if got := ResolveZone("北海道"); got != ZoneHokkaido {
		t.Fatalf("expected hokkaido, got %q", got)
	}
	if got := ResolveZone("沖縄県"); got != ZoneOkinawa {
		t.Fatalf("expected okinawa, got %q", got)
	}
}

func TestResolveZoneSuffixFallback(t *testing.T) {
	// 接尾辞なしでも照合できる
	if got := ResolveZone("神奈川"); got != ZoneKanto {
		t.Fatalf("expected kanto for suffixless input, got %q", got)
	}
	if got := ResolveZone("大阪"); got != ZoneKinki {
		t.Fatalf("expected kinki for suffixless input, got %q", got)
	}
}

func TestResolveZoneUnknown(t *testing.T) {
	if got := ResolveZone("unknown prefecture"); got != "" {
		t.Fatalf("expected empty zone for unknown prefecture, got %q", got)
	}
	if got := ResolveZone(""); got != "" {
		t.Fatalf("expected empty zone for empty input, got %q", got)
	}
}

func TestPrefectureTableCoversAll47(t *testing.T) {
	if len(prefectureZones) != 47 {
		t.Fatalf("expected 47 prefectures, got %d", len(prefectureZones))
	}
	counts := make(map[string]int)
	for _, zone := range prefectureZones {
		counts[zone]++
	}
	if len(counts) != len(Zones) {
		t.Fatalf("expected all %d zones referenced, got %d", len(Zones), len(counts))
	}
}
