package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/qbu-next/internal/config"
	"github.com/qbu-next/internal/constants"
	"github.com/qbu-next/internal/models"
	"github.com/qbu-next/internal/queue"
	"github.com/qbu-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const testShippingCryptoKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func setupOrderServiceTest(t *testing.T) (*OrderService, *TicketAdminService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.PricingConfig{},
		&models.ShippingConfig{},
		&models.ShippingRate{},
		&models.Ticket{},
		&models.TicketRedemption{},
		&models.Order{},
		&models.OrderShipping{},
		&models.Setting{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	ticketRepo := repository.NewTicketRepository(db)
	redemptionRepo := repository.NewTicketRedemptionRepository(db)
	ticketSvc := NewTicketService(ticketRepo, redemptionRepo, "test-salt")
	ticketAdmin := NewTicketAdminService(ticketRepo, redemptionRepo, ticketSvc)

	settingSvc := NewSettingService(repository.NewSettingRepository(db))
	pricingAdmin := NewPricingAdminService(repository.NewPricingConfigRepository(db))
	shippingAdmin := NewShippingAdminService(repository.NewShippingRepository(db))

	cipher, err := NewShippingCipher(testShippingCryptoKey)
	if err != nil {
		t.Fatalf("create cipher failed: %v", err)
	}
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("create queue client failed: %v", err)
	}

	orderSvc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewOrderShippingRepository(db),
		redemptionRepo,
		pricingAdmin,
		shippingAdmin,
		ticketSvc,
		settingSvc,
		cipher,
		queueClient,
		config.OrderConfig{OrderNoPrefix: "QB", PaddingMm: 20},
	)
	return orderSvc, ticketAdmin, db
}

// cubeDraft 2×2×2 の立方体。blockEdge 10mm で 8cm³、各辺 20mm になる。
func cubeDraft() ModelDraft {
	blocks := make([]string, 0, 8)
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			for z := 0; z < 2; z++ {
				blocks = append(blocks, fmt.Sprintf("%d,%d,%d", x, y, z))
			}
		}
	}
	return ModelDraft{
		Blocks:       blocks,
		ScaleSetting: ScaleSetting{Mode: constants.ScaleModeBlockEdge, BlockEdgeMm: 10},
	}
}

func validCustomer() CustomerInput {
	return CustomerInput{
		Name:       "山田太郎",
		Email:      "taro@example.com",
		PostalCode: "100-0001",
		Prefecture: "東京都",
		City:       "千代田区",
		Town:       "千代田1-1",
	}
}

func TestPreviewOrderDefaultParams(t *testing.T) {
	svc, _, _ := setupOrderServiceTest(t)

	result, err := svc.PreviewOrder(CreateOrderInput{
		Draft:    cubeDraft(),
		Customer: validCustomer(),
	})
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}

	// 体積 8cm³: 800 + 8×60 = 1280（最低料金 1200 を上回る）
	if result.Breakdown.ItemSubtotalYen != 1280 {
		t.Fatalf("subtotal = %d, want 1280", result.Breakdown.ItemSubtotalYen)
	}
	// 各辺 20mm + 余白 20mm = 40mm、合計 120mm = 12cm → 60 サイズ
	if result.SizeTier != constants.SizeTier60 {
		t.Fatalf("size tier = %s, want 60", result.SizeTier)
	}
	if result.Zone != "kanto" {
		t.Fatalf("zone = %s, want kanto", result.Zone)
	}
	// 有効な料金表なし → フォールバック表の kanto/60 = 700
	if result.Breakdown.Shipping.Yen != 700 {
		t.Fatalf("shipping = %d, want 700", result.Breakdown.Shipping.Yen)
	}
	// チケットなし → 割引前合計がそのまま請求額（丸めなし）
	if result.Breakdown.TotalYen != 1980 {
		t.Fatalf("total = %d, want 1980", result.Breakdown.TotalYen)
	}
	if result.TicketApplied {
		t.Fatalf("ticket should not apply")
	}
}

func TestPreviewOrderWithPercentTicket(t *testing.T) {
	svc, ticketAdmin, _ := setupOrderServiceTest(t)

	created, err := ticketAdmin.Create(CreateTicketInput{
		Type:  constants.TicketTypePercent,
		Value: models.NewMoneyFromYen(20),
	})
	if err != nil {
		t.Fatalf("create ticket failed: %v", err)
	}

	result, err := svc.PreviewOrder(CreateOrderInput{
		Draft:      cubeDraft(),
		Customer:   validCustomer(),
		TicketCode: created.RawCode,
	})
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}

	// 割引 floor(1280×20%) = 256 → 素の請求額 1724 → 10 円丸めで 1720
	if result.Breakdown.TotalYen != 1720 {
		t.Fatalf("total = %d, want 1720", result.Breakdown.TotalYen)
	}
	if result.Breakdown.DiscountYen != 260 {
		t.Fatalf("discount applied = %d, want 260", result.Breakdown.DiscountYen)
	}
	// 小計 + 送料 - 割引 = 請求額 が常に成り立つ
	sum := result.Breakdown.ItemSubtotalYen + result.Breakdown.Shipping.Yen - result.Breakdown.DiscountYen
	if sum != result.Breakdown.TotalYen {
		t.Fatalf("breakdown does not reconcile: %d != %d", sum, result.Breakdown.TotalYen)
	}
}

func TestPreviewOrderActivePricingConfig(t *testing.T) {
	svc, _, db := setupOrderServiceTest(t)

	pricingAdmin := NewPricingAdminService(repository.NewPricingConfigRepository(db))
	if _, err := pricingAdmin.Activate(ActivatePricingInput{
		BaseFeeYen:      models.NewMoneyFromYen(1000),
		PerCm3Yen:       models.NewMoneyFromYen(100),
		MinFeeYen:       models.NewMoneyFromYen(0),
		RoundingStepYen: models.NewMoneyFromYen(50),
	}); err != nil {
		t.Fatalf("activate pricing failed: %v", err)
	}

	result, err := svc.PreviewOrder(CreateOrderInput{
		Draft:    cubeDraft(),
		Customer: validCustomer(),
	})
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	// 1000 + 8×100 = 1800
	if result.Breakdown.ItemSubtotalYen != 1800 {
		t.Fatalf("subtotal = %d, want 1800", result.Breakdown.ItemSubtotalYen)
	}
}

func TestPreviewOrderValidation(t *testing.T) {
	svc, _, _ := setupOrderServiceTest(t)

	// ブロックなし
	if _, err := svc.PreviewOrder(CreateOrderInput{
		Draft:    ModelDraft{ScaleSetting: ScaleSetting{Mode: constants.ScaleModeBlockEdge, BlockEdgeMm: 10}},
		Customer: validCustomer(),
	}); !errors.Is(err, ErrNoBlocks) {
		t.Fatalf("expected ErrNoBlocks, got %v", err)
	}

	// 顧客名なし
	customer := validCustomer()
	customer.Name = ""
	if _, err := svc.PreviewOrder(CreateOrderInput{Draft: cubeDraft(), Customer: customer}); !errors.Is(err, ErrMissingCustomerFields) {
		t.Fatalf("expected ErrMissingCustomerFields, got %v", err)
	}

	// 郵便番号不正
	customer = validCustomer()
	customer.PostalCode = "12-34567"
	if _, err := svc.PreviewOrder(CreateOrderInput{Draft: cubeDraft(), Customer: customer}); !errors.Is(err, ErrInvalidPostalCode) {
		t.Fatalf("expected ErrInvalidPostalCode, got %v", err)
	}

	// 非連結モデル
	draft := ModelDraft{
		Blocks:       []string{"0,0,0", "5,5,5"},
		ScaleSetting: ScaleSetting{Mode: constants.ScaleModeBlockEdge, BlockEdgeMm: 10},
	}
	if _, err := svc.PreviewOrder(CreateOrderInput{Draft: draft, Customer: validCustomer()}); !errors.Is(err, ErrModelNotReady) {
		t.Fatalf("expected ErrModelNotReady, got %v", err)
	}

	// スケール設定不正
	draft = cubeDraft()
	draft.ScaleSetting = ScaleSetting{Mode: "banana"}
	if _, err := svc.PreviewOrder(CreateOrderInput{Draft: draft, Customer: validCustomer()}); !errors.Is(err, ErrInvalidScaleSetting) {
		t.Fatalf("expected ErrInvalidScaleSetting, got %v", err)
	}
}

func TestSubmitOrderPersistsEverything(t *testing.T) {
	svc, ticketAdmin, db := setupOrderServiceTest(t)

	created, err := ticketAdmin.Create(CreateTicketInput{
		Type:  constants.TicketTypePercent,
		Value: models.NewMoneyFromYen(20),
	})
	if err != nil {
		t.Fatalf("create ticket failed: %v", err)
	}

	order, err := svc.SubmitOrder(CreateOrderInput{
		Draft:      cubeDraft(),
		Customer:   validCustomer(),
		TicketCode: created.RawCode,
		Identity:   "guest-1",
		ClientIP:   "203.0.113.7",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if !strings.HasPrefix(order.OrderNo, "QB") {
		t.Fatalf("order no should carry prefix: %s", order.OrderNo)
	}
	if order.Status != constants.OrderStatusReceived {
		t.Fatalf("status = %s, want received", order.Status)
	}
	if order.TotalYen.Yen() != 1720 {
		t.Fatalf("total = %d, want 1720", order.TotalYen.Yen())
	}
	if order.TicketID == nil || *order.TicketID != created.Ticket.ID {
		t.Fatalf("ticket id not recorded")
	}
	if order.BreakdownJSON == nil {
		t.Fatalf("breakdown snapshot missing")
	}

	var shipping models.OrderShipping
	if err := db.Where("order_id = ?", order.ID).First(&shipping).Error; err != nil {
		t.Fatalf("shipping row missing: %v", err)
	}
	if shipping.Zone != "kanto" || shipping.SizeTier != constants.SizeTier60 {
		t.Fatalf("shipping row = %s/%s, want kanto/60", shipping.Zone, shipping.SizeTier)
	}
	if len(shipping.AddressCiphertext) == 0 || len(shipping.AddressNonce) == 0 {
		t.Fatalf("address should be stored encrypted")
	}

	var redemptionCount int64
	if err := db.Model(&models.TicketRedemption{}).Where("ticket_id = ?", created.Ticket.ID).Count(&redemptionCount).Error; err != nil {
		t.Fatalf("count redemptions failed: %v", err)
	}
	if redemptionCount != 1 {
		t.Fatalf("redemption count = %d, want 1", redemptionCount)
	}

	// 復号して暗号化前の住所が戻ること
	address, err := svc.DecryptShippingAddress(order.ID)
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	if address.Prefecture != "東京都" || address.City != "千代田区" {
		t.Fatalf("decrypted address mismatch: %+v", address)
	}
}

func TestSubmitOrderPerUserLimitConsumed(t *testing.T) {
	svc, ticketAdmin, _ := setupOrderServiceTest(t)

	perUser := 1
	created, err := ticketAdmin.Create(CreateTicketInput{
		Type:           constants.TicketTypeFixed,
		Value:          models.NewMoneyFromYen(100),
		MaxUsesPerUser: &perUser,
	})
	if err != nil {
		t.Fatalf("create ticket failed: %v", err)
	}

	input := CreateOrderInput{
		Draft:      cubeDraft(),
		Customer:   validCustomer(),
		TicketCode: created.RawCode,
		Identity:   "guest-limited",
	}
	if _, err := svc.SubmitOrder(input); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if _, err := svc.SubmitOrder(input); !errors.Is(err, ErrTicketPerUserLimit) {
		t.Fatalf("expected ErrTicketPerUserLimit on reuse, got %v", err)
	}
}

func TestSubmitOrderWithoutCryptoKey(t *testing.T) {
	svc, _, _ := setupOrderServiceTest(t)

	noKey, err := NewShippingCipher("")
	if err != nil {
		t.Fatalf("create empty cipher failed: %v", err)
	}
	svc.shippingCipher = noKey

	if _, err := svc.SubmitOrder(CreateOrderInput{
		Draft:    cubeDraft(),
		Customer: validCustomer(),
	}); !errors.Is(err, ErrShippingCryptoNotReady) {
		t.Fatalf("expected ErrShippingCryptoNotReady, got %v", err)
	}
}

func TestOrderLookupAndStatus(t *testing.T) {
	svc, _, _ := setupOrderServiceTest(t)

	order, err := svc.SubmitOrder(CreateOrderInput{
		Draft:    cubeDraft(),
		Customer: validCustomer(),
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	found, err := svc.GetOrderByNo(order.OrderNo)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if found.ID != order.ID {
		t.Fatalf("lookup returned wrong order")
	}
	if found.Shipping == nil {
		t.Fatalf("shipping association not preloaded")
	}

	if _, err := svc.GetOrderByNo("QB00000000000000000000"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}

	updated, err := svc.UpdateStatus(order.ID, constants.OrderStatusPrinting)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != constants.OrderStatusPrinting {
		t.Fatalf("status = %s, want printing", updated.Status)
	}
	if _, err := svc.UpdateStatus(order.ID, "teleported"); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("unknown status should be rejected, got %v", err)
	}
}

func TestSubmitOrderShippingFreeTicket(t *testing.T) {
	svc, ticketAdmin, _ := setupOrderServiceTest(t)

	created, err := ticketAdmin.Create(CreateTicketInput{
		Type: constants.TicketTypeShippingFree,
	})
	if err != nil {
		t.Fatalf("create ticket failed: %v", err)
	}

	order, err := svc.SubmitOrder(CreateOrderInput{
		Draft:      cubeDraft(),
		Customer:   validCustomer(),
		TicketCode: created.RawCode,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	// 小計 1280 のみ請求。割引欄には送料分 700 が出る
	if order.TotalYen.Yen() != 1280 {
		t.Fatalf("total = %d, want 1280", order.TotalYen.Yen())
	}
	if order.DiscountYen.Yen() != 700 {
		t.Fatalf("discount = %d, want 700", order.DiscountYen.Yen())
	}
}
