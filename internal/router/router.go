package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/qbu-next/internal/authz"
	"github.com/qbu-next/internal/cache"
	"github.com/qbu-next/internal/config"
	"github.com/qbu-next/internal/constants"
	adminhandlers "github.com/qbu-next/internal/http/handlers/admin"
	publichandlers "github.com/qbu-next/internal/http/handlers/public"
	"github.com/qbu-next/internal/http/response"
	"github.com/qbu-next/internal/logger"
	"github.com/qbu-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter ルーティングを初期化
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// Handler の初期化（ゲスト/管理でグループを分ける）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "login_too_many",
	}
	// ゲスト注文は認証を持たないため IP 単位で確定リクエストだけ絞る
	guestOrderRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:guest_order", redisPrefix),
		WindowSeconds: 60,
		MaxRequests:   10,
		Message:       "order_too_many",
	}

	// ミドルウェア
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API ルートグループ
	apiV1 := r.Group("/api/v1")
	{
		// 公開エンドポイント
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
		}

		// ゲストエンドポイント
		guest := apiV1.Group("/guest")
		{
			guest.POST("/orders", RateLimitMiddleware(redisClient, guestOrderRule, KeyByIP), publicHandler.CreateOrder)
			guest.POST("/orders/preview", publicHandler.PreviewOrder)
			guest.POST("/tickets/check", publicHandler.CheckTicket)
			guest.GET("/orders/by-order-no/:order_no", publicHandler.GetOrderByOrderNo)
		}

		// 管理エンドポイント
		admin := apiV1.Group("/admin")
		{
			// ログイン（認証不要）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			// 認証が必要なエンドポイント
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				// 注文管理
				authorized.GET("/orders", adminHandler.ListAdminOrders)
				authorized.GET("/orders/:id", adminHandler.GetAdminOrder)
				authorized.GET("/orders/:id/shipping-address", adminHandler.GetAdminOrderShippingAddress)
				authorized.PATCH("/orders/:id", adminHandler.UpdateAdminOrderStatus)

				// 価格テーブル管理
				authorized.POST("/pricing-configs", adminHandler.ActivatePricingConfig)
				authorized.GET("/pricing-configs", adminHandler.ListPricingConfigs)
				authorized.GET("/pricing-configs/active", adminHandler.GetActivePricingConfig)

				// 送料テーブル管理
				authorized.POST("/shipping-configs", adminHandler.ActivateShippingConfig)
				authorized.GET("/shipping-configs", adminHandler.ListShippingConfigs)
				authorized.GET("/shipping-configs/active", adminHandler.GetActiveShippingConfig)
				authorized.GET("/shipping-configs/:id", adminHandler.GetShippingConfig)

				// チケット管理
				authorized.POST("/tickets", adminHandler.CreateTicket)
				authorized.GET("/tickets", adminHandler.ListTickets)
				authorized.GET("/tickets/:id", adminHandler.GetTicket)
				authorized.PUT("/tickets/:id", adminHandler.UpdateTicket)
				authorized.DELETE("/tickets/:id", adminHandler.DeleteTicket)
				authorized.GET("/ticket-redemptions", adminHandler.ListTicketRedemptions)

				// 設定管理
				authorized.GET("/settings/site", adminHandler.GetSiteSettings)
				authorized.PUT("/settings/site", adminHandler.UpdateSiteSettings)
				authorized.GET("/settings/order", adminHandler.GetOrderSettings)
				authorized.PUT("/settings/order", adminHandler.UpdateOrderSettings)
				authorized.GET("/settings/smtp", adminHandler.GetSMTPSettings)
				authorized.PUT("/settings/smtp", adminHandler.UpdateSMTPSettings)
				authorized.POST("/settings/smtp/test", adminHandler.TestSMTPSettings)
				authorized.GET("/settings/captcha", adminHandler.GetCaptchaSettings)
				authorized.PUT("/settings/captcha", adminHandler.UpdateCaptchaSettings)

				// 権限管理
				authorized.GET("/authz/me", adminHandler.GetAuthzMe)
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.GET("/authz/admins", adminHandler.ListAuthzAdmins)
				authorized.GET("/authz/audit-logs", adminHandler.ListAuthzAuditLogs)
				authorized.POST("/authz/admins", adminHandler.CreateAuthzAdmin)
				authorized.PUT("/authz/admins/:id", adminHandler.UpdateAuthzAdmin)
				authorized.DELETE("/authz/admins/:id", adminHandler.DeleteAuthzAdmin)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
				authorized.POST("/authz/roles", adminHandler.CreateAuthzRole)
				authorized.DELETE("/authz/roles/:role", adminHandler.DeleteAuthzRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
				authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				authorized.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAuthzAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
			}
		}
	}

	// ヘルスチェック
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
