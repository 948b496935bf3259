package service

import (
	"time"

	"github.com/qbu-next/internal/models"
	"github.com/qbu-next/internal/pricing"
	"github.com/qbu-next/internal/repository"

	"github.com/shopspring/decimal"
)

// PricingAdminService 価格設定の管理サービス
// 設定は追記専用で、有効化は「旧行を無効化して新行を作る」操作になる。
type PricingAdminService struct {
	repo repository.PricingConfigRepository
}

// NewPricingAdminService 価格設定管理サービスを作成
func NewPricingAdminService(repo repository.PricingConfigRepository) *PricingAdminService {
	return &PricingAdminService{repo: repo}
}

// ActivatePricingInput 価格設定の有効化入力
type ActivatePricingInput struct {
	BaseFeeYen      models.Money
	PerCm3Yen       models.Money
	MinFeeYen       models.Money
	RoundingStepYen models.Money
	Currency        string
	EffectiveFrom   *time.Time
}

// Activate 新しい価格設定を作成して有効化する
func (s *PricingAdminService) Activate(input ActivatePricingInput) (*models.PricingConfig, error) {
	if input.BaseFeeYen.Decimal.LessThan(decimal.Zero) ||
		input.PerCm3Yen.Decimal.LessThan(decimal.Zero) ||
		input.MinFeeYen.Decimal.LessThan(decimal.Zero) {
		return nil, ErrPricingConfigInvalid
	}
	if input.RoundingStepYen.Yen() < 1 {
		return nil, ErrPricingConfigInvalid
	}

	currency := input.Currency
	if currency == "" {
		currency = "JPY"
	}

	config := &models.PricingConfig{
		BaseFeeYen:      input.BaseFeeYen,
		PerCm3Yen:       input.PerCm3Yen,
		MinFeeYen:       input.MinFeeYen,
		RoundingStepYen: input.RoundingStepYen,
		Currency:        currency,
		EffectiveFrom:   input.EffectiveFrom,
		IsActive:        true,
	}
	if err := s.repo.Activate(config); err != nil {
		return nil, err
	}
	return config, nil
}

// GetActive 有効な価格設定を取得する（未設定なら nil）
func (s *PricingAdminService) GetActive() (*models.PricingConfig, error) {
	return s.repo.GetActive()
}

// List 価格設定の履歴を一覧する
func (s *PricingAdminService) List(page, pageSize int) ([]models.PricingConfig, int64, error) {
	return s.repo.List(page, pageSize)
}

// ActiveParams 有効な価格設定を見積パラメータに変換する
// 有効な設定が無い場合は既定パラメータに倒す。
func (s *PricingAdminService) ActiveParams() (pricing.Params, error) {
	config, err := s.repo.GetActive()
	if err != nil {
		return pricing.DefaultParams(), err
	}
	if config == nil {
		return pricing.DefaultParams(), nil
	}
	return paramsFromPricingConfig(config), nil
}

func paramsFromPricingConfig(config *models.PricingConfig) pricing.Params {
	params := pricing.Params{
		BaseFeeYen:      config.BaseFeeYen.Yen(),
		PerCm3Yen:       config.PerCm3Yen.Yen(),
		MinFeeYen:       config.MinFeeYen.Yen(),
		RoundingStepYen: config.RoundingStepYen.Yen(),
	}
	if params.RoundingStepYen < 1 {
		params.RoundingStepYen = 1
	}
	return params
}
