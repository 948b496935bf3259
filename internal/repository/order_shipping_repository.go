package repository

import (
	"errors"

	"github.com/qbu-next/internal/models"

	"gorm.io/gorm"
)

// OrderShippingRepository 注文配送先データアクセスインターフェース
type OrderShippingRepository interface {
	Create(shipping *models.OrderShipping) error
	GetByOrderID(orderID uint) (*models.OrderShipping, error)
	WithTx(tx *gorm.DB) *GormOrderShippingRepository
}

// GormOrderShippingRepository GORM 実装
type GormOrderShippingRepository struct {
	db *gorm.DB
}

// NewOrderShippingRepository 注文配送先リポジトリを作成
func NewOrderShippingRepository(db *gorm.DB) *GormOrderShippingRepository {
	return &GormOrderShippingRepository{db: db}
}

// WithTx トランザクションを束縛
func (r *GormOrderShippingRepository) WithTx(tx *gorm.DB) *GormOrderShippingRepository {
	if tx == nil {
		return r
	}
	return &GormOrderShippingRepository{db: tx}
}

// Create 配送先記録を作成
func (r *GormOrderShippingRepository) Create(shipping *models.OrderShipping) error {
	return r.db.Create(shipping).Error
}

// GetByOrderID 注文 ID で配送先記録を取得
func (r *GormOrderShippingRepository) GetByOrderID(orderID uint) (*models.OrderShipping, error) {
	var shipping models.OrderShipping
	if err := r.db.Where("order_id = ?", orderID).First(&shipping).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shipping, nil
}
