package service

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/qbu-next/internal/models"
	"github.com/qbu-next/internal/pricing"
	"github.com/qbu-next/internal/repository"

	"github.com/shopspring/decimal"
)

// チケットコードの文字集合。紛らわしい 0/O/1/I は含めない。
const ticketCodeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// TicketAdminService チケット管理サービス
// 生のコードは発行時に一度だけ返し、以降はハッシュとプレフィックスのみ扱う。
type TicketAdminService struct {
	ticketRepo     repository.TicketRepository
	redemptionRepo repository.TicketRedemptionRepository
	ticketService  *TicketService
}

// NewTicketAdminService チケット管理サービスを作成
func NewTicketAdminService(ticketRepo repository.TicketRepository, redemptionRepo repository.TicketRedemptionRepository, ticketService *TicketService) *TicketAdminService {
	return &TicketAdminService{
		ticketRepo:     ticketRepo,
		redemptionRepo: redemptionRepo,
		ticketService:  ticketService,
	}
}

// CreateTicketInput チケット発行入力
type CreateTicketInput struct {
	Type           string
	Value          models.Money
	ApplyScope     string
	ShippingFree   bool
	ExpiresAt      *time.Time
	MaxTotalUses   *int
	MaxUsesPerUser *int
	IsActive       *bool
}

// UpdateTicketInput チケット更新入力
// コードは変更不可。条件と有効フラグのみ更新できる。
type UpdateTicketInput struct {
	Value          *models.Money
	ApplyScope     *string
	ShippingFree   *bool
	ExpiresAt      *time.Time
	MaxTotalUses   *int
	MaxUsesPerUser *int
	IsActive       *bool
}

// CreatedTicket 発行結果。RawCode はこのレスポンス限りで再取得できない。
type CreatedTicket struct {
	Ticket  *models.Ticket `json:"ticket"`
	RawCode string         `json:"raw_code"`
}

// Create チケットを発行する
func (s *TicketAdminService) Create(input CreateTicketInput) (*CreatedTicket, error) {
	ticketType := strings.ToLower(strings.TrimSpace(input.Type))
	if !isKnownTicketType(ticketType) {
		return nil, ErrTicketConfigInvalid
	}
	if err := validateTicketValue(ticketType, input.Value); err != nil {
		return nil, err
	}
	if input.MaxTotalUses != nil && *input.MaxTotalUses <= 0 {
		return nil, ErrTicketConfigInvalid
	}
	if input.MaxUsesPerUser != nil && *input.MaxUsesPerUser <= 0 {
		return nil, ErrTicketConfigInvalid
	}

	rawCode, err := generateTicketCode()
	if err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	ticket := &models.Ticket{
		CodeHash:       s.ticketService.HashCode(rawCode),
		CodePrefix:     rawCode[:4],
		Type:           ticketType,
		Value:          input.Value,
		ApplyScope:     normalizeApplyScope(input.ApplyScope),
		ShippingFree:   input.ShippingFree,
		IsActive:       isActive,
		ExpiresAt:      input.ExpiresAt,
		MaxTotalUses:   input.MaxTotalUses,
		MaxUsesPerUser: input.MaxUsesPerUser,
	}

	if err := s.ticketRepo.Create(ticket); err != nil {
		return nil, err
	}
	return &CreatedTicket{Ticket: ticket, RawCode: rawCode}, nil
}

// Update チケットの条件を更新する
func (s *TicketAdminService) Update(id uint, input UpdateTicketInput) (*models.Ticket, error) {
	if id == 0 {
		return nil, ErrTicketConfigInvalid
	}
	ticket, err := s.ticketRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrNotFound
	}

	if input.Value != nil {
		if err := validateTicketValue(ticket.Type, *input.Value); err != nil {
			return nil, err
		}
		ticket.Value = *input.Value
	}
	if input.ApplyScope != nil {
		ticket.ApplyScope = normalizeApplyScope(*input.ApplyScope)
	}
	if input.ShippingFree != nil {
		ticket.ShippingFree = *input.ShippingFree
	}
	if input.ExpiresAt != nil {
		ticket.ExpiresAt = input.ExpiresAt
	}
	if input.MaxTotalUses != nil {
		if *input.MaxTotalUses <= 0 {
			return nil, ErrTicketConfigInvalid
		}
		ticket.MaxTotalUses = input.MaxTotalUses
	}
	if input.MaxUsesPerUser != nil {
		if *input.MaxUsesPerUser <= 0 {
			return nil, ErrTicketConfigInvalid
		}
		ticket.MaxUsesPerUser = input.MaxUsesPerUser
	}
	if input.IsActive != nil {
		ticket.IsActive = *input.IsActive
	}

	if err := s.ticketRepo.Update(ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// Delete チケットを論理削除する
func (s *TicketAdminService) Delete(id uint) error {
	if id == 0 {
		return ErrTicketConfigInvalid
	}
	ticket, err := s.ticketRepo.GetByID(id)
	if err != nil {
		return err
	}
	if ticket == nil {
		return ErrNotFound
	}
	return s.ticketRepo.Delete(id)
}

// Get チケットを取得する
func (s *TicketAdminService) Get(id uint) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrNotFound
	}
	return ticket, nil
}

// List チケットを一覧する
func (s *TicketAdminService) List(filter repository.TicketListFilter) ([]models.Ticket, int64, error) {
	return s.ticketRepo.List(filter)
}

// ListRedemptions 利用記録を一覧する
func (s *TicketAdminService) ListRedemptions(filter repository.RedemptionListFilter) ([]models.TicketRedemption, int64, error) {
	return s.redemptionRepo.List(filter)
}

func validateTicketValue(ticketType string, value models.Money) error {
	switch strings.ToLower(strings.TrimSpace(ticketType)) {
	case pricing.TicketTypePercent:
		if value.Decimal.LessThan(decimal.Zero) || value.Decimal.GreaterThan(decimal.NewFromInt(100)) {
			return ErrTicketConfigInvalid
		}
	case pricing.TicketTypeFixed:
		if value.Decimal.LessThan(decimal.Zero) {
			return ErrTicketConfigInvalid
		}
	}
	return nil
}

// generateTicketCode XXXX-XXXX-XXXX 形式のコードを生成する
func generateTicketCode() (string, error) {
	raw := make([]byte, 12)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	var b strings.Builder
	for i, v := range raw {
		if i > 0 && i%4 == 0 {
			b.WriteByte('-')
		}
		b.WriteByte(ticketCodeAlphabet[int(v)%len(ticketCodeAlphabet)])
	}
	return b.String(), nil
}
