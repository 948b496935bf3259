package repository

import (
	"errors"

	"github.com/qbu-next/internal/models"

	"gorm.io/gorm"
)

// TicketRepository チケットデータアクセスインターフェース
type TicketRepository interface {
	GetByID(id uint) (*models.Ticket, error)
	GetByCodeHash(codeHash string) (*models.Ticket, error)
	Create(ticket *models.Ticket) error
	Update(ticket *models.Ticket) error
	Delete(id uint) error
	List(filter TicketListFilter) ([]models.Ticket, int64, error)
	WithTx(tx *gorm.DB) *GormTicketRepository
}

// GormTicketRepository GORM 実装
type GormTicketRepository struct {
	db *gorm.DB
}

// NewTicketRepository チケットリポジトリを作成
func NewTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

// WithTx トランザクションを束縛
func (r *GormTicketRepository) WithTx(tx *gorm.DB) *GormTicketRepository {
	if tx == nil {
		return r
	}
	return &GormTicketRepository{db: tx}
}

// GetByID ID でチケットを取得
func (r *GormTicketRepository) GetByID(id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.db.First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

// GetByCodeHash コードハッシュでチケットを取得。見つからない場合は nil。
func (r *GormTicketRepository) GetByCodeHash(codeHash string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.db.Where("code_hash = ?", codeHash).First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

// Create チケットを作成
func (r *GormTicketRepository) Create(ticket *models.Ticket) error {
	return r.db.Create(ticket).Error
}

// Update チケットを更新
func (r *GormTicketRepository) Update(ticket *models.Ticket) error {
	return r.db.Save(ticket).Error
}

// Delete チケットを削除（論理削除）
func (r *GormTicketRepository) Delete(id uint) error {
	return r.db.Delete(&models.Ticket{}, id).Error
}

// List チケット一覧を取得
func (r *GormTicketRepository) List(filter TicketListFilter) ([]models.Ticket, int64, error) {
	query := r.db.Model(&models.Ticket{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Prefix != "" {
		query = query.Where("code_prefix = ?", filter.Prefix)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var tickets []models.Ticket
	if err := query.Order("id desc").Find(&tickets).Error; err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}
