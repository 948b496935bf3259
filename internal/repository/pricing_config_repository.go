package repository

import (
	"errors"

	"github.com/qbu-next/internal/models"

	"gorm.io/gorm"
)

// PricingConfigRepository 価格設定データアクセスインターフェース
type PricingConfigRepository interface {
	GetActive() (*models.PricingConfig, error)
	GetByID(id uint) (*models.PricingConfig, error)
	List(page, pageSize int) ([]models.PricingConfig, int64, error)
	Activate(config *models.PricingConfig) error
	WithTx(tx *gorm.DB) *GormPricingConfigRepository
}

// GormPricingConfigRepository GORM 実装
type GormPricingConfigRepository struct {
	db *gorm.DB
}

// NewPricingConfigRepository 価格設定リポジトリを作成
func NewPricingConfigRepository(db *gorm.DB) *GormPricingConfigRepository {
	return &GormPricingConfigRepository{db: db}
}

// WithTx トランザクションを束縛
func (r *GormPricingConfigRepository) WithTx(tx *gorm.DB) *GormPricingConfigRepository {
	if tx == nil {
		return r
	}
	return &GormPricingConfigRepository{db: tx}
}

// GetActive 有効な価格設定を取得。存在しない場合は nil を返す。
func (r *GormPricingConfigRepository) GetActive() (*models.PricingConfig, error) {
	var config models.PricingConfig
	if err := r.db.Where("is_active = ?", true).Order("id desc").First(&config).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &config, nil
}

// GetByID ID で価格設定を取得
func (r *GormPricingConfigRepository) GetByID(id uint) (*models.PricingConfig, error) {
	var config models.PricingConfig
	if err := r.db.First(&config, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &config, nil
}

// List 価格設定の履歴一覧を取得
func (r *GormPricingConfigRepository) List(page, pageSize int) ([]models.PricingConfig, int64, error) {
	query := r.db.Model(&models.PricingConfig{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)

	var configs []models.PricingConfig
	if err := query.Order("id desc").Find(&configs).Error; err != nil {
		return nil, 0, err
	}
	return configs, total, nil
}

// Activate 新しい行を有効として挿入し、既存の有効行を無効化する（追記専用）
func (r *GormPricingConfigRepository) Activate(config *models.PricingConfig) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PricingConfig{}).
			Where("is_active = ?", true).
			UpdateColumn("is_active", false).Error; err != nil {
			return err
		}
		config.IsActive = true
		return tx.Create(config).Error
	})
}
