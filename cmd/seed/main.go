package main

import (
	"fmt"
	"time"

	"github.com/qbu-next/internal/config"
	"github.com/qbu-next/internal/constants"
	"github.com/qbu-next/internal/logger"
	"github.com/qbu-next/internal/models"
	"github.com/qbu-next/internal/pricing"
	"github.com/qbu-next/internal/repository"
	"github.com/qbu-next/internal/service"
)

// デモチケットのコード。シードは冪等なので再実行してもコードは変わらない。
const demoTicketCode = "QBU-WELCOME10"

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("データベース初期化に失敗しました: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("データベースマイグレーションに失敗しました: %v", err)
	}

	// 既定管理者
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Fatalf("既定管理者の初期化に失敗しました: %v", err)
	}
	stdLog.Printf("既定管理者を確認しました")

	seedPricingConfig(stdLog.Printf)
	seedShippingConfig(stdLog.Printf)
	rawCode := seedDemoTicket(cfg, stdLog.Printf)
	seedSiteConfig(stdLog.Printf)

	fmt.Println("シード完了")
	if rawCode != "" {
		fmt.Printf("デモチケットコード: %s\n", rawCode)
	}
}

// seedPricingConfig 有効な価格設定が無ければ既定値で作成する
func seedPricingConfig(logf func(string, ...interface{})) {
	repo := repository.NewPricingConfigRepository(models.DB)
	active, err := repo.GetActive()
	if err != nil {
		logf("価格設定の取得に失敗しました: %v", err)
		return
	}
	if active != nil {
		logf("価格設定: 有効な設定 (id=%d) が存在するためスキップ", active.ID)
		return
	}

	params := pricing.DefaultParams()
	now := time.Now()
	config := &models.PricingConfig{
		BaseFeeYen:      models.NewMoneyFromYen(params.BaseFeeYen),
		PerCm3Yen:       models.NewMoneyFromYen(params.PerCm3Yen),
		MinFeeYen:       models.NewMoneyFromYen(params.MinFeeYen),
		RoundingStepYen: models.NewMoneyFromYen(params.RoundingStepYen),
		Currency:        constants.SiteCurrencyDefault,
		EffectiveFrom:   &now,
		IsActive:        true,
	}
	if err := repo.Activate(config); err != nil {
		logf("価格設定の作成に失敗しました: %v", err)
		return
	}
	logf("価格設定: 既定値で作成しました (id=%d)", config.ID)
}

// seedShippingConfig 有効な配送設定が無ければフォールバック料金表で作成する
func seedShippingConfig(logf func(string, ...interface{})) {
	repo := repository.NewShippingRepository(models.DB)
	active, err := repo.GetActiveWithRates()
	if err != nil {
		logf("配送設定の取得に失敗しました: %v", err)
		return
	}
	if active != nil {
		logf("配送設定: 有効な設定 (id=%d) が存在するためスキップ", active.ID)
		return
	}

	matrix := pricing.FallbackRateMatrix()
	rates := make([]models.ShippingRate, 0, len(pricing.Zones)*len(pricing.SizeTiers))
	for _, zone := range pricing.Zones {
		for _, tier := range pricing.SizeTiers {
			price, ok := matrix.Lookup(zone, tier)
			if !ok {
				logf("配送設定: 料金表に %s/%s が無いためスキップ", zone, tier)
				return
			}
			rates = append(rates, models.ShippingRate{
				Zone:     zone,
				SizeTier: tier,
				PriceYen: models.NewMoneyFromYen(price),
			})
		}
	}

	now := time.Now()
	config := &models.ShippingConfig{
		Name:          "標準送料表",
		EffectiveFrom: &now,
		IsActive:      true,
	}
	if err := repo.ActivateWithRates(config, rates); err != nil {
		logf("配送設定の作成に失敗しました: %v", err)
		return
	}
	logf("配送設定: フォールバック料金表で作成しました (id=%d, %d 行)", config.ID, len(rates))
}

// seedDemoTicket 動作確認用の 10%% 割引チケットを作成する
// 作成済みならコードは再表示しない。
func seedDemoTicket(cfg *config.Config, logf func(string, ...interface{})) string {
	ticketRepo := repository.NewTicketRepository(models.DB)
	redemptionRepo := repository.NewTicketRedemptionRepository(models.DB)
	ticketService := service.NewTicketService(ticketRepo, redemptionRepo, cfg.Security.TicketCodeSalt)

	hash := ticketService.HashCode(demoTicketCode)
	existing, err := ticketRepo.GetByCodeHash(hash)
	if err != nil {
		logf("デモチケットの取得に失敗しました: %v", err)
		return ""
	}
	if existing != nil {
		logf("デモチケット: 作成済み (id=%d) のためスキップ", existing.ID)
		return ""
	}

	maxTotal := 100
	ticket := &models.Ticket{
		CodeHash:     hash,
		CodePrefix:   demoTicketCode[:4],
		Type:         constants.TicketTypePercent,
		Value:        models.NewMoneyFromYen(10),
		ApplyScope:   constants.ApplyScopeSubtotal,
		ShippingFree: false,
		IsActive:     true,
		MaxTotalUses: &maxTotal,
	}
	if err := ticketRepo.Create(ticket); err != nil {
		logf("デモチケットの作成に失敗しました: %v", err)
		return ""
	}
	logf("デモチケット: 10%% 割引チケットを作成しました (id=%d)", ticket.ID)
	return demoTicketCode
}

// seedSiteConfig サイト設定が未保存なら既定値を保存する
func seedSiteConfig(logf func(string, ...interface{})) {
	repo := repository.NewSettingRepository(models.DB)
	existing, err := repo.GetByKey(constants.SettingKeySiteConfig)
	if err != nil {
		logf("サイト設定の取得に失敗しました: %v", err)
		return
	}
	if existing != nil {
		logf("サイト設定: 保存済みのためスキップ")
		return
	}

	defaults := models.JSON{
		"site_name": "Q-BU!",
		"currency":  constants.SiteCurrencyDefault,
	}
	if _, err := repo.Upsert(constants.SettingKeySiteConfig, defaults); err != nil {
		logf("サイト設定の保存に失敗しました: %v", err)
		return
	}
	logf("サイト設定: 既定値を保存しました")
}
