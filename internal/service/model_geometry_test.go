package service

import (
	"errors"
	"testing"

	"github.com/qbu-next/internal/constants"
)

func TestParseBlockKey(t *testing.T) {
	coord, err := parseBlockKey(" 1, -2 ,3 ")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if coord != (blockCoord{X: 1, Y: -2, Z: 3}) {
		t.Fatalf("unexpected coord: %+v", coord)
	}

	for _, bad := range []string{"", "1,2", "1,2,3,4", "a,b,c", "1.5,2,3"} {
		if _, err := parseBlockKey(bad); !errors.Is(err, ErrInvalidBlockKey) {
			t.Fatalf("key %q should be rejected, got %v", bad, err)
		}
	}
}

func TestResolveModelGeometryBounds(t *testing.T) {
	geometry, err := resolveModelGeometry(
		[]string{"0,0,0", "1,0,0", "2,0,0"},
		[]string{"2,1,0"},
		ScaleSetting{Mode: constants.ScaleModeBlockEdge, BlockEdgeMm: 5},
	)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if geometry.BoundsUnits != [3]int{3, 2, 1} {
		t.Fatalf("bounds = %v, want [3 2 1]", geometry.BoundsUnits)
	}
	size := geometry.SizeMm()
	if size.X != 15 || size.Y != 10 || size.Z != 5 {
		t.Fatalf("size mm = %+v", size)
	}
}

func TestResolveModelGeometryMaxSideScale(t *testing.T) {
	// 最長辺 4 ユニットを 100mm に合わせる → 1 ユニット 25mm
	geometry, err := resolveModelGeometry(
		[]string{"0,0,0", "1,0,0", "2,0,0", "3,0,0"},
		nil,
		ScaleSetting{Mode: constants.ScaleModeMaxSide, MaxSideMm: 100},
	)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if geometry.MmPerUnit != 25 {
		t.Fatalf("mm per unit = %v, want 25", geometry.MmPerUnit)
	}
}

func TestResolveModelGeometryInvalidScale(t *testing.T) {
	cases := []ScaleSetting{
		{Mode: ""},
		{Mode: "unknown"},
		{Mode: constants.ScaleModeMaxSide, MaxSideMm: 0},
		{Mode: constants.ScaleModeMaxSide, MaxSideMm: -10},
		{Mode: constants.ScaleModeBlockEdge, BlockEdgeMm: 0},
	}
	for _, scale := range cases {
		if _, err := resolveModelGeometry([]string{"0,0,0"}, nil, scale); !errors.Is(err, ErrInvalidScaleSetting) {
			t.Fatalf("scale %+v should be rejected, got %v", scale, err)
		}
	}
}

func TestCheckConnected(t *testing.T) {
	connected, err := resolveModelGeometry(
		[]string{"0,0,0", "1,0,0"},
		[]string{"1,1,0"},
		ScaleSetting{Mode: constants.ScaleModeBlockEdge, BlockEdgeMm: 10},
	)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !connected.checkConnected() {
		t.Fatalf("face-adjacent blocks should be connected")
	}

	// 斜め接触のみは非連結
	diagonal, err := resolveModelGeometry(
		[]string{"0,0,0", "1,1,0"},
		nil,
		ScaleSetting{Mode: constants.ScaleModeBlockEdge, BlockEdgeMm: 10},
	)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if diagonal.checkConnected() {
		t.Fatalf("diagonal contact must not count as connected")
	}

	// サポートブロックが橋渡しになるケース
	bridged, err := resolveModelGeometry(
		[]string{"0,0,0", "2,0,0"},
		[]string{"1,0,0"},
		ScaleSetting{Mode: constants.ScaleModeBlockEdge, BlockEdgeMm: 10},
	)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !bridged.checkConnected() {
		t.Fatalf("support blocks should bridge components")
	}
}
