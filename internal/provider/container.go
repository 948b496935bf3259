package provider

import (
	"github.com/qbu-next/internal/authz"
	"github.com/qbu-next/internal/cache"
	"github.com/qbu-next/internal/config"
	"github.com/qbu-next/internal/logger"
	"github.com/qbu-next/internal/models"
	"github.com/qbu-next/internal/queue"
	"github.com/qbu-next/internal/repository"
	"github.com/qbu-next/internal/service"
)

// Container 依存注入コンテナ
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo            repository.AdminRepository
	OrderRepo            repository.OrderRepository
	OrderShippingRepo    repository.OrderShippingRepository
	PricingConfigRepo    repository.PricingConfigRepository
	ShippingRepo         repository.ShippingRepository
	TicketRepo           repository.TicketRepository
	TicketRedemptionRepo repository.TicketRedemptionRepository
	SettingRepo          repository.SettingRepository
	AuthzAuditLogRepo    repository.AuthzAuditLogRepository

	// Services
	AuthzService         *authz.Service
	AuthService          *service.AuthService
	EmailService         *service.EmailService
	CaptchaService       *service.CaptchaService
	SettingService       *service.SettingService
	TicketService        *service.TicketService
	TicketAdminService   *service.TicketAdminService
	PricingAdminService  *service.PricingAdminService
	ShippingAdminService *service.ShippingAdminService
	OrderService         *service.OrderService
	AuthzAuditService    *service.AuthzAuditService
}

// NewContainer コンテナを初期化
func NewContainer(cfg *config.Config) *Container {
	// キャッシュの初期化
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// キュークライアントの初期化
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. Repositories の初期化
	c.initRepositories()

	// 2. Services の初期化
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.OrderShippingRepo = repository.NewOrderShippingRepository(db)
	c.PricingConfigRepo = repository.NewPricingConfigRepository(db)
	c.ShippingRepo = repository.NewShippingRepository(db)
	c.TicketRepo = repository.NewTicketRepository(db)
	c.TicketRedemptionRepo = repository.NewTicketRedemptionRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
	c.AuthzAuditLogRepo = repository.NewAuthzAuditLogRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.SettingService = service.NewSettingService(c.SettingRepo)
	smtpSetting, err := c.SettingService.GetSMTPSetting(c.Config.Email)
	if err != nil {
		logger.Warnw("provider_load_smtp_setting_failed", "error", err)
	} else {
		c.Config.Email = service.SMTPSettingToConfig(smtpSetting)
	}

	captchaSetting, err := c.SettingService.GetCaptchaSetting(c.Config.Captcha)
	if err != nil {
		logger.Warnw("provider_load_captcha_setting_failed", "error", err)
	} else {
		c.Config.Captcha = service.CaptchaSettingToConfig(captchaSetting)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.SettingService, c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.TicketService = service.NewTicketService(c.TicketRepo, c.TicketRedemptionRepo, c.Config.Security.TicketCodeSalt)
	c.TicketAdminService = service.NewTicketAdminService(c.TicketRepo, c.TicketRedemptionRepo, c.TicketService)
	c.PricingAdminService = service.NewPricingAdminService(c.PricingConfigRepo)
	c.ShippingAdminService = service.NewShippingAdminService(c.ShippingRepo)

	shippingCipher, err := service.NewShippingCipher(c.Config.Security.ShippingCryptoKey)
	if err != nil {
		// 鍵未設定でも起動は継続する。注文確定時は shipping_crypto_not_configured を返す。
		logger.Warnw("provider_init_shipping_cipher_failed", "error", err)
		shippingCipher = nil
	}

	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.OrderShippingRepo,
		c.TicketRedemptionRepo,
		c.PricingAdminService,
		c.ShippingAdminService,
		c.TicketService,
		c.SettingService,
		shippingCipher,
		c.QueueClient,
		c.Config.Order,
	)
	c.AuthzAuditService = service.NewAuthzAuditService(c.AuthzAuditLogRepo)
}
