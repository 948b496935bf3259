package service

import (
	"strings"
	"time"

	"github.com/qbu-next/internal/models"
	"github.com/qbu-next/internal/pricing"
	"github.com/qbu-next/internal/repository"

	"github.com/shopspring/decimal"
)

// ShippingAdminService 配送料金表の管理サービス
// 料金表も追記専用で、有効化は新しい設定行と料金行の一括作成になる。
type ShippingAdminService struct {
	repo repository.ShippingRepository
}

// NewShippingAdminService 配送料金管理サービスを作成
func NewShippingAdminService(repo repository.ShippingRepository) *ShippingAdminService {
	return &ShippingAdminService{repo: repo}
}

// ShippingRateInput 料金行の入力
type ShippingRateInput struct {
	Zone     string       `json:"zone"`
	SizeTier string       `json:"size_tier"`
	PriceYen models.Money `json:"price_yen"`
}

// ActivateShippingInput 配送料金表の有効化入力
type ActivateShippingInput struct {
	Name          string
	EffectiveFrom *time.Time
	Rates         []ShippingRateInput
}

// Activate 新しい配送料金表を作成して有効化する
// 9 地域 × 4 サイズの全セルを展開し、指定の無いセルは 0 円で埋める。
func (s *ShippingAdminService) Activate(input ActivateShippingInput) (*models.ShippingConfig, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrShippingMatrixInvalid
	}

	specified := make(map[string]map[string]models.Money)
	for _, rate := range input.Rates {
		zone := strings.ToLower(strings.TrimSpace(rate.Zone))
		tier := strings.ToLower(strings.TrimSpace(rate.SizeTier))
		if !isKnownZone(zone) || !isKnownSizeTier(tier) {
			return nil, ErrShippingMatrixInvalid
		}
		if rate.PriceYen.Decimal.LessThan(decimal.Zero) {
			return nil, ErrShippingMatrixInvalid
		}
		if specified[zone] == nil {
			specified[zone] = make(map[string]models.Money)
		}
		specified[zone][tier] = rate.PriceYen
	}

	rates := make([]models.ShippingRate, 0, len(pricing.Zones)*len(pricing.SizeTiers))
	for _, zone := range pricing.Zones {
		for _, tier := range pricing.SizeTiers {
			price := models.Money{}
			if tiers, ok := specified[zone]; ok {
				if v, ok := tiers[tier]; ok {
					price = v
				}
			}
			rates = append(rates, models.ShippingRate{
				Zone:     zone,
				SizeTier: tier,
				PriceYen: price,
			})
		}
	}

	config := &models.ShippingConfig{
		Name:          name,
		EffectiveFrom: input.EffectiveFrom,
		IsActive:      true,
	}
	if err := s.repo.ActivateWithRates(config, rates); err != nil {
		return nil, err
	}
	return config, nil
}

// GetActive 有効な配送料金表を料金行付きで取得する（未設定なら nil）
func (s *ShippingAdminService) GetActive() (*models.ShippingConfig, error) {
	return s.repo.GetActiveWithRates()
}

// Get 配送料金表を取得する
func (s *ShippingAdminService) Get(id uint) (*models.ShippingConfig, error) {
	config, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if config == nil {
		return nil, ErrNotFound
	}
	return config, nil
}

// List 配送料金表の履歴を一覧する
func (s *ShippingAdminService) List(page, pageSize int) ([]models.ShippingConfig, int64, error) {
	return s.repo.List(page, pageSize)
}

// ActiveMatrix 有効な配送料金表を料金行列に変換する
// 有効な表が無い場合は nil を返し、照会側はフォールバック表に倒れる。
func (s *ShippingAdminService) ActiveMatrix() (pricing.RateMatrix, uint, error) {
	config, err := s.repo.GetActiveWithRates()
	if err != nil {
		return nil, 0, err
	}
	if config == nil {
		return nil, 0, nil
	}
	rows := make([]pricing.RateRow, 0, len(config.Rates))
	for _, rate := range config.Rates {
		rows = append(rows, pricing.RateRow{
			Zone:     rate.Zone,
			SizeTier: rate.SizeTier,
			PriceYen: rate.PriceYen.Yen(),
		})
	}
	return pricing.BuildRateMatrix(rows), config.ID, nil
}

func isKnownZone(zone string) bool {
	for _, z := range pricing.Zones {
		if z == zone {
			return true
		}
	}
	return false
}

func isKnownSizeTier(tier string) bool {
	for _, t := range pricing.SizeTiers {
		if t == tier {
			return true
		}
	}
	return false
}
