package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/qbu-next/internal/config"
	"github.com/qbu-next/internal/constants"
	"github.com/qbu-next/internal/http/response"
	"github.com/qbu-next/internal/models"
	"github.com/qbu-next/internal/provider"
	"github.com/qbu-next/internal/queue"
	"github.com/qbu-next/internal/repository"
	"github.com/qbu-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const testOrderHandlerCryptoKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

// setupOrderHandlerTest 画像認証なしの公開ハンドラを組み立てる
func setupOrderHandlerTest(t *testing.T) (*Handler, *service.TicketAdminService) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
	ticketSvc := service.NewTicketService(ticketRepo, redemptionRepo, "test-salt")
	ticketAdmin := service.NewTicketAdminService(ticketRepo, redemptionRepo, ticketSvc)

	settingSvc := service.NewSettingService(repository.NewSettingRepository(db))
	pricingAdmin := service.NewPricingAdminService(repository.NewPricingConfigRepository(db))
	shippingAdmin := service.NewShippingAdminService(repository.NewShippingRepository(db))

	cipher, err := service.NewShippingCipher(testOrderHandlerCryptoKey)
	if err != nil {
		t.Fatalf("create cipher failed: %v", err)
	}
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("create queue client failed: %v", err)
	}

	orderSvc := service.NewOrderService(
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

	return New(&provider.Container{OrderService: orderSvc}), ticketAdmin
}

// cubeRequest 2×2×2 立方体の注文リクエスト（小計 1280、送料 kanto/60 = 700）
func cubeRequest(ticketCode string) CreateOrderRequest {
	blocks := make([]string, 0, 8)
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			for z := 0; z < 2; z++ {
				blocks = append(blocks, fmt.Sprintf("%d,%d,%d", x, y, z))
			}
		}
	}
	return CreateOrderRequest{
		Draft: service.ModelDraft{
			Blocks:       blocks,
			ScaleSetting: service.ScaleSetting{Mode: constants.ScaleModeBlockEdge, BlockEdgeMm: 10},
		},
		Customer: service.CustomerInput{
			Name:       "山田太郎",
			Email:      "taro@example.com",
			PostalCode: "100-0001",
			Prefecture: "東京都",
			City:       "千代田区",
			Town:       "千代田1-1",
		},
		TicketCode: ticketCode,
	}
}

func postCreateOrder(t *testing.T, h *Handler, req CreateOrderRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request failed: %v", err)
	}
	router := gin.New()
	router.POST("/api/v1/orders", h.CreateOrder)

	w := httptest.NewRecorder()
	httpReq := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, httpReq)
	return w
}

func TestCreateOrderReturnsQuoteBreakdown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, ticketAdmin := setupOrderHandlerTest(t)

	created, err := ticketAdmin.Create(service.CreateTicketInput{
		Type:  constants.TicketTypePercent,
		Value: models.NewMoneyFromYen(20),
	})
	if err != nil {
		t.Fatalf("create ticket failed: %v", err)
	}

	code, msg, data := decodeEnvelope(t, postCreateOrder(t, h, cubeRequest(created.RawCode)))
	if code != response.CodeOK {
		t.Fatalf("status_code = %d (%s), want 0", code, msg)
	}

	orderNo, _ := data["order_no"].(string)
	if !strings.HasPrefix(orderNo, "QB") {
		t.Fatalf("order_no should carry prefix: %q", orderNo)
	}
	if status, _ := data["status"].(string); status != constants.OrderStatusReceived {
		t.Fatalf("status = %v, want received", data["status"])
	}

	// 確定レスポンスにも見積と同じ内訳が載ること
	for key, want := range map[string]float64{
		"item_subtotal_yen":         1280,
		"shipping_yen":              700,
		"total_before_discount_yen": 1980,
		"discount_yen":              260,
		"total_yen":                 1720,
	} {
		got, ok := data[key].(float64)
		if !ok || got != want {
			t.Fatalf("%s = %v, want %v", key, data[key], want)
		}
	}

	if _, ok := data["ticket_id"].(float64); !ok {
		t.Fatalf("ticket_id missing from payload: %v", data)
	}
	shipping, ok := data["shipping"].(map[string]interface{})
	if !ok {
		t.Fatalf("shipping summary missing: %v", data)
	}
	if shipping["zone"] != "kanto" || shipping["size_tier"] != constants.SizeTier60 {
		t.Fatalf("shipping = %v, want kanto/60", shipping)
	}
	if data["breakdown"] == nil {
		t.Fatalf("breakdown snapshot missing")
	}
}

func TestCreateOrderWithoutTicketOmitsTicketID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _ := setupOrderHandlerTest(t)

	code, msg, data := decodeEnvelope(t, postCreateOrder(t, h, cubeRequest("")))
	if code != response.CodeOK {
		t.Fatalf("status_code = %d (%s), want 0", code, msg)
	}
	if _, ok := data["ticket_id"]; ok {
		t.Fatalf("ticket_id should be absent without a ticket: %v", data)
	}
	if got, _ := data["discount_yen"].(float64); got != 0 {
		t.Fatalf("discount_yen = %v, want 0", data["discount_yen"])
	}
}
