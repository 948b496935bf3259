package service

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/qbu-next/internal/constants"
	"github.com/qbu-next/internal/models"
	"github.com/qbu-next/internal/pricing"
	"github.com/qbu-next/internal/repository"
)

// TicketService チケット検証サービス
// 検証は毎回その場で評価し、結果をキャッシュしない。
// 利用上限は利用記録の件数集計のみで判定する（分散ロックなし、結果整合）。
type TicketService struct {
	ticketRepo     repository.TicketRepository
	redemptionRepo repository.TicketRedemptionRepository
	codeSalt       string
}

// NewTicketService チケットサービスを作成
func NewTicketService(ticketRepo repository.TicketRepository, redemptionRepo repository.TicketRedemptionRepository, codeSalt string) *TicketService {
	return &TicketService{
		ticketRepo:     ticketRepo,
		redemptionRepo: redemptionRepo,
		codeSalt:       codeSalt,
	}
}

// HashCode チケットコードをソルト付きでハッシュ化する
func (s *TicketService) HashCode(code string) string {
	sum := sha256.Sum256([]byte(s.codeSalt + strings.TrimSpace(code)))
	return hex.EncodeToString(sum[:])
}

// Validate チケットコードを検証して有効なチケットを返す
// 検証順序: コード照合 → 有効フラグ → 失効日時 → 総利用回数 → 利用者別回数。
// 最初に失敗した段階で対応するエラーを返す。
func (s *TicketService) Validate(code, identity string) (*models.Ticket, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, ErrTicketInvalid
	}

	ticket, err := s.ticketRepo.GetByCodeHash(s.HashCode(trimmed))
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}

	if !isKnownTicketType(ticket.Type) {
		return ticket, ErrTicketTypeInvalid
	}
	if !ticket.IsActive {
		return ticket, ErrTicketInactive
	}

	// expiresAt ちょうどの時刻も失効扱い
	if ticket.ExpiresAt != nil && !time.Now().Before(*ticket.ExpiresAt) {
		return ticket, ErrTicketExpired
	}

	if ticket.MaxTotalUses != nil {
		count, err := s.redemptionRepo.CountByTicket(ticket.ID)
		if err != nil {
			// 集計できない場合は許可せず拒否に倒す
			return ticket, ErrTicketUsageUnknown
		}
		if count >= int64(*ticket.MaxTotalUses) {
			return ticket, ErrTicketTotalLimit
		}
	}

	if ticket.MaxUsesPerUser != nil && identity != "" {
		count, err := s.redemptionRepo.CountByIdentity(ticket.ID, identity)
		if err != nil {
			return ticket, ErrTicketUsageUnknown
		}
		if count >= int64(*ticket.MaxUsesPerUser) {
			return ticket, ErrTicketPerUserLimit
		}
	}

	return ticket, nil
}

// Terms 割引計算用のチケット条件スナップショットを作る
func (s *TicketService) Terms(ticket *models.Ticket) pricing.TicketTerms {
	return pricing.TicketTerms{
		Type:         ticket.Type,
		Value:        ticket.Value.Yen(),
		ApplyScope:   normalizeApplyScope(ticket.ApplyScope),
		ShippingFree: ticket.ShippingFree,
	}
}

// IsTicketValidationError チケット検証エラーかどうか
func IsTicketValidationError(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range []error{
		ErrTicketInvalid,
		ErrTicketNotFound,
		ErrTicketTypeInvalid,
		ErrTicketInactive,
		ErrTicketExpired,
		ErrTicketTotalLimit,
		ErrTicketPerUserLimit,
		ErrTicketUsageUnknown,
	} {
		if err == target {
			return true
		}
	}
	return false
}

func isKnownTicketType(ticketType string) bool {
	switch strings.ToLower(strings.TrimSpace(ticketType)) {
	case constants.TicketTypePercent, constants.TicketTypeFixed, constants.TicketTypeFree, constants.TicketTypeShippingFree:
		return true
	}
	return false
}

func normalizeApplyScope(scope string) string {
	if strings.ToLower(strings.TrimSpace(scope)) == constants.ApplyScopeTotal {
		return constants.ApplyScopeTotal
	}
	return constants.ApplyScopeSubtotal
}
