package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/qbu-next/internal/constants"
	"github.com/qbu-next/internal/pricing"
)

// blockCoord 整数グリッド座標
type blockCoord struct {
	X, Y, Z int
}

// ScaleSetting 実寸スケール設定
// maxSide: 最長辺を指定 mm に合わせる / blockEdge: 1 ブロックの辺長を直接指定する
type ScaleSetting struct {
	Mode        string  `json:"mode"`
	MaxSideMm   float64 `json:"max_side_mm,omitempty"`
	BlockEdgeMm float64 `json:"block_edge_mm,omitempty"`
}

// modelGeometry ブロック集合から導出する幾何情報
type modelGeometry struct {
	BaseBlocks    []blockCoord
	SupportBlocks []blockCoord
	BoundsUnits   [3]int  // 単位格子でのバウンディングボックス寸法
	MmPerUnit     float64 // 1 ブロックあたりの実寸（mm）
}

// parseBlockKey "x,y,z" 形式のブロックキーを解析する
func parseBlockKey(key string) (blockCoord, error) {
	parts := strings.Split(strings.TrimSpace(key), ",")
	if len(parts) != 3 {
		return blockCoord{}, ErrInvalidBlockKey
	}
	var coords [3]int
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return blockCoord{}, ErrInvalidBlockKey
		}
		coords[i] = v
	}
	return blockCoord{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

// resolveModelGeometry ブロックキー集合とスケール設定から幾何情報を求める
func resolveModelGeometry(blockKeys, supportKeys []string, scale ScaleSetting) (*modelGeometry, error) {
	if len(blockKeys) == 0 {
		return nil, ErrNoBlocks
	}

	base := make([]blockCoord, 0, len(blockKeys))
	for _, key := range blockKeys {
		coord, err := parseBlockKey(key)
		if err != nil {
			return nil, err
		}
		base = append(base, coord)
	}
	supports := make([]blockCoord, 0, len(supportKeys))
	for _, key := range supportKeys {
		coord, err := parseBlockKey(key)
		if err != nil {
			return nil, err
		}
		supports = append(supports, coord)
	}

	bounds := boundingBoxUnits(append(append([]blockCoord{}, base...), supports...))

	mmPerUnit, err := resolveMmPerUnit(scale, bounds)
	if err != nil {
		return nil, err
	}

	return &modelGeometry{
		BaseBlocks:    base,
		SupportBlocks: supports,
		BoundsUnits:   bounds,
		MmPerUnit:     mmPerUnit,
	}, nil
}

// boundingBoxUnits 単位格子でのバウンディングボックス寸法を求める
func boundingBoxUnits(blocks []blockCoord) [3]int {
	if len(blocks) == 0 {
		return [3]int{}
	}
	minC := blocks[0]
	maxC := blocks[0]
	for _, b := range blocks[1:] {
		if b.X < minC.X {
			minC.X = b.X
		}
		if b.Y < minC.Y {
			minC.Y = b.Y
		}
		if b.Z < minC.Z {
			minC.Z = b.Z
		}
		if b.X > maxC.X {
			maxC.X = b.X
		}
		if b.Y > maxC.Y {
			maxC.Y = b.Y
		}
		if b.Z > maxC.Z {
			maxC.Z = b.Z
		}
	}
	return [3]int{maxC.X - minC.X + 1, maxC.Y - minC.Y + 1, maxC.Z - minC.Z + 1}
}

// resolveMmPerUnit スケール設定から 1 ブロックあたりの実寸を求める
func resolveMmPerUnit(scale ScaleSetting, bounds [3]int) (float64, error) {
	switch strings.TrimSpace(scale.Mode) {
	case constants.ScaleModeMaxSide:
		maxDim := bounds[0]
		if bounds[1] > maxDim {
			maxDim = bounds[1]
		}
		if bounds[2] > maxDim {
			maxDim = bounds[2]
		}
		if maxDim <= 0 || math.IsNaN(scale.MaxSideMm) || scale.MaxSideMm <= 0 {
			return 0, ErrInvalidScaleSetting
		}
		return scale.MaxSideMm / float64(maxDim), nil
	case constants.ScaleModeBlockEdge:
		if math.IsNaN(scale.BlockEdgeMm) || scale.BlockEdgeMm <= 0 {
			return 0, ErrInvalidScaleSetting
		}
		return scale.BlockEdgeMm, nil
	default:
		return 0, ErrInvalidScaleSetting
	}
}

// SizeMm 実寸バウンディングボックスを mm で返す
func (g *modelGeometry) SizeMm() pricing.SizeMm {
	return pricing.SizeMm{
		X: float64(g.BoundsUnits[0]) * g.MmPerUnit,
		Y: float64(g.BoundsUnits[1]) * g.MmPerUnit,
		Z: float64(g.BoundsUnits[2]) * g.MmPerUnit,
	}
}

// checkConnected ブロック集合（サポート込み）が単一の連結成分かを調べる
// 6 近傍の面接続で判定する。非連結のモデルは印刷できないため受け付けない。
func (g *modelGeometry) checkConnected() bool {
	all := make(map[blockCoord]bool, len(g.BaseBlocks)+len(g.SupportBlocks))
	for _, b := range g.BaseBlocks {
		all[b] = true
	}
	for _, b := range g.SupportBlocks {
		all[b] = true
	}
	if len(all) == 0 {
		return false
	}

	var start blockCoord
	for b := range all {
		start = b
		break
	}

	visited := make(map[blockCoord]bool, len(all))
	stack := []blockCoord{start}
	visited[start] = true
	neighbors := [6]blockCoord{
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
		{0, 0, 1}, {0, 0, -1},
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range neighbors {
			next := blockCoord{X: cur.X + d.X, Y: cur.Y + d.Y, Z: cur.Z + d.Z}
			if all[next] && !visited[next] {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}
	return len(visited) == len(all)
}
