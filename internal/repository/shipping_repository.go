package repository

import (
	"errors"

	"github.com/qbu-next/internal/models"

	"gorm.io/gorm"
)

// ShippingRepository 配送設定データアクセスインターフェース
type ShippingRepository interface {
	GetActiveWithRates() (*models.ShippingConfig, error)
	GetByID(id uint) (*models.ShippingConfig, error)
	List(page, pageSize int) ([]models.ShippingConfig, int64, error)
	ActivateWithRates(config *models.ShippingConfig, rates []models.ShippingRate) error
	WithTx(tx *gorm.DB) *GormShippingRepository
}

// GormShippingRepository GORM 実装
type GormShippingRepository struct {
	db *gorm.DB
}

// NewShippingRepository 配送設定リポジトリを作成
func NewShippingRepository(db *gorm.DB) *GormShippingRepository {
	return &GormShippingRepository{db: db}
}

// WithTx トランザクションを束縛
func (r *GormShippingRepository) WithTx(tx *gorm.DB) *GormShippingRepository {
	if tx == nil {
		return r
	}
	return &GormShippingRepository{db: tx}
}

// GetActiveWithRates 有効な配送設定を料金行込みで取得。存在しない場合は nil。
func (r *GormShippingRepository) GetActiveWithRates() (*models.ShippingConfig, error) {
	var config models.ShippingConfig
	if err := r.db.Preload("Rates").Where("is_active = ?", true).Order("id desc").First(&config).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &config, nil
}

// GetByID ID で配送設定を料金行込みで取得
func (r *GormShippingRepository) GetByID(id uint) (*models.ShippingConfig, error) {
	var config models.ShippingConfig
	if err := r.db.Preload("Rates").First(&config, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &config, nil
}

// List 配送設定の履歴一覧を取得
func (r *GormShippingRepository) List(page, pageSize int) ([]models.ShippingConfig, int64, error) {
	query := r.db.Model(&models.ShippingConfig{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)

	var configs []models.ShippingConfig
	if err := query.Order("id desc").Find(&configs).Error; err != nil {
		return nil, 0, err
	}
	return configs, total, nil
}

// ActivateWithRates 新しい設定と料金行を挿入して有効化し、既存の有効行を無効化する
func (r *GormShippingRepository) ActivateWithRates(config *models.ShippingConfig, rates []models.ShippingRate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ShippingConfig{}).
			Where("is_active = ?", true).
			UpdateColumn("is_active", false).Error; err != nil {
			return err
		}
		config.IsActive = true
		if err := tx.Create(config).Error; err != nil {
			return err
		}
		for i := range rates {
			rates[i].ConfigID = config.ID
		}
		if len(rates) > 0 {
			if err := tx.Create(&rates).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
