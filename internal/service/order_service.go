package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/qbu-next/internal/config"
	"github.com/qbu-next/internal/constants"
	"github.com/qbu-next/internal/logger"
	"github.com/qbu-next/internal/models"
	"github.com/qbu-next/internal/pricing"
	"github.com/qbu-next/internal/queue"
	"github.com/qbu-next/internal/repository"

	"gorm.io/gorm"
)

var postalCodePattern = regexp.MustCompile(`^\d{3}-?\d{4}$`)

// OrderService 注文サービス
// 見積パイプライン（体積 → 小計 → 配送 → 割引）と注文の確定を担う。
type OrderService struct {
	orderRepo         repository.OrderRepository
	orderShippingRepo repository.OrderShippingRepository
	redemptionRepo    repository.TicketRedemptionRepository
	pricingAdmin      *PricingAdminService
	shippingAdmin     *ShippingAdminService
	ticketService     *TicketService
	settingService    *SettingService
	shippingCipher    *ShippingCipher
	queueClient       *queue.Client
	orderCfg          config.OrderConfig
}

// NewOrderService 注文サービスを作成
func NewOrderService(
	orderRepo repository.OrderRepository,
	orderShippingRepo repository.OrderShippingRepository,
	redemptionRepo repository.TicketRedemptionRepository,
	pricingAdmin *PricingAdminService,
	shippingAdmin *ShippingAdminService,
	ticketService *TicketService,
	settingService *SettingService,
	shippingCipher *ShippingCipher,
	queueClient *queue.Client,
	orderCfg config.OrderConfig,
) *OrderService {
	return &OrderService{
		orderRepo:         orderRepo,
		orderShippingRepo: orderShippingRepo,
		redemptionRepo:    redemptionRepo,
		pricingAdmin:      pricingAdmin,
		shippingAdmin:     shippingAdmin,
		ticketService:     ticketService,
		settingService:    settingService,
		shippingCipher:    shippingCipher,
		queueClient:       queueClient,
		orderCfg:          orderCfg,
	}
}

// ModelDraft 注文対象のボクセルモデル
// ブロックは "x,y,z" 形式のキー集合で受け取る。
type ModelDraft struct {
	Blocks        []string     `json:"blocks"`
	SupportBlocks []string     `json:"support_blocks"`
	ScaleSetting  ScaleSetting `json:"scale_setting"`
}

// CustomerInput 顧客・配送先入力
type CustomerInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PostalCode   string `json:"postal_code"`
	Prefecture   string `json:"prefecture"`
	City         string `json:"city"`
	Town         string `json:"town"`
	AddressLine2 string `json:"address_line2"`
}

// CreateOrderInput 注文作成入力
type CreateOrderInput struct {
	Draft      ModelDraft
	Customer   CustomerInput
	TicketCode string
	Identity   string
	ClientIP   string
}

// OrderQuoteResult 見積結果（プレビューと確定で共通）
type OrderQuoteResult struct {
	Breakdown         pricing.Breakdown `json:"breakdown"`
	VolumeCm3         float64           `json:"volume_cm3"`
	BlockCount        int               `json:"block_count"`
	SupportBlockCount int               `json:"support_block_count"`
	Zone              string            `json:"zone"`
	SizeTier          string            `json:"size_tier"`
	TicketApplied     bool              `json:"ticket_applied"`
}

// orderComputation 確定時に持ち回す内部計算結果
type orderComputation struct {
	result OrderQuoteResult
	ticket *models.Ticket
	terms  *pricing.TicketTerms
}

// PreviewOrder 注文内容から見積を計算する。永続化は行わない。
func (s *OrderService) PreviewOrder(input CreateOrderInput) (*OrderQuoteResult, error) {
	computation, err := s.computeOrder(input)
	if err != nil {
		return nil, err
	}
	return &computation.result, nil
}

// CheckTicket チケットコードの適用可否を確認する
func (s *OrderService) CheckTicket(code, identity string) (*pricing.TicketTerms, error) {
	ticket, err := s.ticketService.Validate(code, identity)
	if err != nil {
		return nil, err
	}
	terms := s.ticketService.Terms(ticket)
	return &terms, nil
}

// SubmitOrder 見積を確定して注文を保存する
// 注文本体、配送先、チケット利用記録を単一トランザクションで書き込む。
func (s *OrderService) SubmitOrder(input CreateOrderInput) (*models.Order, error) {
	computation, err := s.computeOrder(input)
	if err != nil {
		return nil, err
	}

	// 暗号化はトランザクションの外で先に済ませる
	if s.shippingCipher == nil || !s.shippingCipher.Ready() {
		return nil, ErrShippingCryptoNotReady
	}
	ciphertext, nonce, err := s.shippingCipher.Encrypt(ShippingAddress{
		Name:         strings.TrimSpace(input.Customer.Name),
		PostalCode:   strings.TrimSpace(input.Customer.PostalCode),
		Prefecture:   strings.TrimSpace(input.Customer.Prefecture),
		City:         strings.TrimSpace(input.Customer.City),
		Town:         strings.TrimSpace(input.Customer.Town),
		AddressLine2: strings.TrimSpace(input.Customer.AddressLine2),
	})
	if err != nil {
		return nil, err
	}

	result := computation.result
	breakdown := result.Breakdown

	orderNo, err := s.generateOrderNo()
	if err != nil {
		return nil, ErrOrderInsertFailed
	}

	identity := resolveIdentity(input.Identity, input.Customer.Email)

	order := &models.Order{
		OrderNo:                orderNo,
		CustomerName:           strings.TrimSpace(input.Customer.Name),
		CustomerEmail:          strings.TrimSpace(input.Customer.Email),
		Identity:               identity,
		Status:                 constants.OrderStatusReceived,
		Currency:               constants.SiteCurrencyDefault,
		BlockCount:             result.BlockCount,
		SupportBlockCount:      result.SupportBlockCount,
		VolumeCm3:              result.VolumeCm3,
		ItemSubtotalYen:        models.NewMoneyFromYen(breakdown.ItemSubtotalYen),
		ShippingYen:            models.NewMoneyFromYen(breakdown.Shipping.Yen),
		TotalBeforeDiscountYen: models.NewMoneyFromYen(breakdown.TotalBeforeDiscountYen),
		DiscountYen:            models.NewMoneyFromYen(breakdown.DiscountYen),
		TotalYen:               models.NewMoneyFromYen(breakdown.TotalYen),
		BreakdownJSON:          breakdownToJSON(breakdown),
		ClientIP:               strings.TrimSpace(input.ClientIP),
	}
	if computation.ticket != nil {
		order.TicketID = &computation.ticket.ID
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).Create(order); err != nil {
			return ErrOrderInsertFailed
		}

		shipping := &models.OrderShipping{
			OrderID:           order.ID,
			PostalCode:        strings.TrimSpace(input.Customer.PostalCode),
			Prefecture:        strings.TrimSpace(input.Customer.Prefecture),
			Zone:              result.Zone,
			SizeTier:          result.SizeTier,
			AddressCiphertext: ciphertext,
			AddressNonce:      nonce,
		}
		if err := s.orderShippingRepo.WithTx(tx).Create(shipping); err != nil {
			return ErrOrderInsertFailed
		}
		order.Shipping = shipping

		if computation.ticket != nil && computation.terms != nil {
			redemption := &models.TicketRedemption{
				TicketID:    computation.ticket.ID,
				OrderID:     order.ID,
				Identity:    identity,
				DiscountYen: models.NewMoneyFromYen(breakdown.DiscountYen),
				Snapshot: models.JSON{
					"type":          computation.terms.Type,
					"value":         computation.terms.Value,
					"apply_scope":   computation.terms.ApplyScope,
					"shipping_free": computation.terms.ShippingFree,
					"code_prefix":   computation.ticket.CodePrefix,
				},
			}
			if err := s.redemptionRepo.WithTx(tx).Create(redemption); err != nil {
				return ErrOrderInsertFailed
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.enqueueOrderFollowups(order)
	return order, nil
}

// GetOrderByNo 注文番号で注文を照会する
func (s *OrderService) GetOrderByNo(orderNo string) (*models.Order, error) {
	trimmed := strings.TrimSpace(orderNo)
	if trimmed == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByOrderNo(trimmed)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrder 注文IDで注文を照会する
func (s *OrderService) GetOrder(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListAdmin 管理側から注文を一覧する
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// UpdateStatus 注文状態を更新する
func (s *OrderService) UpdateStatus(id uint, status string) (*models.Order, error) {
	normalized := strings.ToLower(strings.TrimSpace(status))
	if !isKnownOrderStatus(normalized) {
		return nil, ErrInvalidOrderStatus
	}
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if err := s.orderRepo.UpdateStatus(id, normalized); err != nil {
		return nil, err
	}
	order.Status = normalized
	return order, nil
}

// DecryptShippingAddress 注文の配送先住所を復号する（管理側専用）
func (s *OrderService) DecryptShippingAddress(orderID uint) (*ShippingAddress, error) {
	shipping, err := s.orderShippingRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if shipping == nil {
		return nil, ErrOrderNotFound
	}
	return s.shippingCipher.Decrypt(shipping.AddressCiphertext, shipping.AddressNonce)
}

// computeOrder 入力検証と見積パイプラインの共通部分
func (s *OrderService) computeOrder(input CreateOrderInput) (*orderComputation, error) {
	if err := validateCustomer(input.Customer); err != nil {
		return nil, err
	}

	geometry, err := resolveModelGeometry(input.Draft.Blocks, input.Draft.SupportBlocks, input.Draft.ScaleSetting)
	if err != nil {
		return nil, err
	}
	if !geometry.checkConnected() {
		return nil, ErrModelNotReady
	}

	volume := pricing.EstimateVolumeCm3(len(geometry.BaseBlocks), len(geometry.SupportBlocks), geometry.MmPerUnit)

	params, err := s.pricingAdmin.ActiveParams()
	if err != nil {
		logger.Warnw("pricing_config_load_failed", "error", err)
		params = pricing.DefaultParams()
	}
	quote := pricing.ComputeQuote(volume, params)

	padding := s.orderCfg.PaddingMm
	if padding <= 0 {
		padding = pricing.DefaultPaddingMm
	}
	if configured, err := s.settingService.GetPaddingMm(padding); err == nil {
		padding = configured
	}
	tier := pricing.ResolveSizeTier(geometry.SizeMm(), padding)

	zone := pricing.ResolveZone(input.Customer.Prefecture)

	matrix, shippingConfigID, err := s.shippingAdmin.ActiveMatrix()
	if err != nil {
		logger.Warnw("shipping_config_load_failed", "error", err)
		matrix = nil
		shippingConfigID = 0
	}
	shippingYen := pricing.LookupShippingYen(matrix, zone, tier.Tier)

	shippingDetail := pricing.ShippingDetail{
		ConfigID: shippingConfigID,
		Zone:     zone,
		SizeTier: tier.Tier,
		Yen:      shippingYen,
		SumCm:    tier.SumCm,
		Capped:   tier.Capped,
	}

	computation := &orderComputation{}

	var terms *pricing.TicketTerms
	if code := strings.TrimSpace(input.TicketCode); code != "" {
		identity := resolveIdentity(input.Identity, input.Customer.Email)
		ticket, err := s.ticketService.Validate(code, identity)
		if err != nil {
			return nil, err
		}
		t := s.ticketService.Terms(ticket)
		terms = &t
		computation.ticket = ticket
		computation.terms = terms
	}

	breakdown := pricing.Assemble(quote, shippingDetail, terms)

	computation.result = OrderQuoteResult{
		Breakdown:         breakdown,
		VolumeCm3:         volume,
		BlockCount:        len(geometry.BaseBlocks),
		SupportBlockCount: len(geometry.SupportBlocks),
		Zone:              zone,
		SizeTier:          tier.Tier,
		TicketApplied:     terms != nil,
	}
	return computation, nil
}

func validateCustomer(customer CustomerInput) error {
	if strings.TrimSpace(customer.Name) == "" ||
		strings.TrimSpace(customer.Email) == "" ||
		strings.TrimSpace(customer.Prefecture) == "" {
		return ErrMissingCustomerFields
	}
	postal := strings.TrimSpace(customer.PostalCode)
	if postal == "" {
		return ErrMissingCustomerFields
	}
	if !postalCodePattern.MatchString(postal) {
		return ErrInvalidPostalCode
	}
	return nil
}

func resolveIdentity(identity, email string) string {
	trimmed := strings.TrimSpace(identity)
	if trimmed != "" {
		return trimmed
	}
	return strings.ToLower(strings.TrimSpace(email))
}

func isKnownOrderStatus(status string) bool {
	switch status {
	case constants.OrderStatusReceived,
		constants.OrderStatusInReview,
		constants.OrderStatusPrinting,
		constants.OrderStatusShipped,
		constants.OrderStatusCompleted,
		constants.OrderStatusCanceled:
		return true
	}
	return false
}

func breakdownToJSON(breakdown pricing.Breakdown) models.JSON {
	data := models.JSON{
		"base_fee_yen":              breakdown.BaseFeeYen,
		"volume_fee_yen":            breakdown.VolumeFeeYen,
		"rounding_step_yen":         breakdown.RoundingStepYen,
		"item_subtotal_yen":         breakdown.ItemSubtotalYen,
		"total_before_discount_yen": breakdown.TotalBeforeDiscountYen,
		"discount_yen":              breakdown.DiscountYen,
		"total_yen":                 breakdown.TotalYen,
		"shipping": map[string]interface{}{
			"config_id": breakdown.Shipping.ConfigID,
			"zone":      breakdown.Shipping.Zone,
			"size_tier": breakdown.Shipping.SizeTier,
			"yen":       breakdown.Shipping.Yen,
			"sum_cm":    breakdown.Shipping.SumCm,
			"capped":    breakdown.Shipping.Capped,
		},
	}
	if breakdown.PreDiscountYen != 0 {
		data["pre_discount_yen"] = breakdown.PreDiscountYen
	}
	if breakdown.Ticket != nil {
		data["ticket"] = map[string]interface{}{
			"type":          breakdown.Ticket.Type,
			"value":         breakdown.Ticket.Value,
			"apply_scope":   breakdown.Ticket.ApplyScope,
			"shipping_free": breakdown.Ticket.ShippingFree,
		}
	}
	return data
}

func (s *OrderService) generateOrderNo() (string, error) {
	prefix := strings.TrimSpace(s.orderCfg.OrderNoPrefix)
	if prefix == "" {
		prefix = constants.OrderNoPrefixDefault
	}
	if s.settingService != nil {
		if configured, err := s.settingService.GetOrderNoPrefix(prefix); err == nil {
			prefix = configured
		}
	}
	return fmt.Sprintf("%s%s%s", prefix, nowOrderStamp(), randNumeric(6)), nil
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
