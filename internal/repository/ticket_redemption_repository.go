package repository

import (
	"github.com/qbu-next/internal/models"

	"gorm.io/gorm"
)

// TicketRedemptionRepository チケット利用記録データアクセスインターフェース
// 利用上限の判定は件数集計のみで行う（分散ロックは取らない）。
type TicketRedemptionRepository interface {
	Create(redemption *models.TicketRedemption) error
	CountByTicket(ticketID uint) (int64, error)
	CountByIdentity(ticketID uint, identity string) (int64, error)
	ListByOrderID(orderID uint) ([]models.TicketRedemption, error)
	List(filter RedemptionListFilter) ([]models.TicketRedemption, int64, error)
	WithTx(tx *gorm.DB) *GormTicketRedemptionRepository
}

// GormTicketRedemptionRepository GORM 実装
type GormTicketRedemptionRepository struct {
	db *gorm.DB
}

// NewTicketRedemptionRepository チケット利用記録リポジトリを作成
func NewTicketRedemptionRepository(db *gorm.DB) *GormTicketRedemptionRepository {
	return &GormTicketRedemptionRepository{db: db}
}

// WithTx トランザクションを束縛
func (r *GormTicketRedemptionRepository) WithTx(tx *gorm.DB) *GormTicketRedemptionRepository {
	if tx == nil {
		return r
	}
	return &GormTicketRedemptionRepository{db: tx}
}

// Create 利用記録を作成
func (r *GormTicketRedemptionRepository) Create(redemption *models.TicketRedemption) error {
	return r.db.Create(redemption).Error
}

// CountByTicket チケットの総利用回数を取得
func (r *GormTicketRedemptionRepository) CountByTicket(ticketID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.TicketRedemption{}).
		Where("ticket_id = ?", ticketID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByIdentity 利用者ごとの利用回数を取得
func (r *GormTicketRedemptionRepository) CountByIdentity(ticketID uint, identity string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.TicketRedemption{}).
		Where("ticket_id = ? AND identity = ?", ticketID, identity).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListByOrderID 注文に紐づく利用記録を取得
func (r *GormTicketRedemptionRepository) ListByOrderID(orderID uint) ([]models.TicketRedemption, error) {
	var redemptions []models.TicketRedemption
	if err := r.db.Where("order_id = ?", orderID).Find(&redemptions).Error; err != nil {
		return nil, err
	}
	return redemptions, nil
}

// List 利用記録一覧を取得
func (r *GormTicketRedemptionRepository) List(filter RedemptionListFilter) ([]models.TicketRedemption, int64, error) {
	query := r.db.Model(&models.TicketRedemption{})
	if filter.TicketID > 0 {
		query = query.Where("ticket_id = ?", filter.TicketID)
	}
	if filter.Identity != "" {
		query = query.Where("identity = ?", filter.Identity)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var redemptions []models.TicketRedemption
	if err := query.Order("id desc").Find(&redemptions).Error; err != nil {
		return nil, 0, err
	}
	return redemptions, total, nil
}
