package main

import (
	"admin-gateway/internal/api"
	"admin-gateway/internal/config"
	"admin-gateway/internal/database"
	"admin-gateway/internal/webhook"
	"admin-gateway/internal/whatsapp"
	"admin-gateway/internal/ws"
	"admin-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	log := logger.Must(logger.New())
	defer log.Sync()

	cfg := config.LoadConfig()
	database.InitGorm(cfg)
	database.SyncWebhookConfig(cfg)

	r := gin.Default()

	// CORS Middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	hub := ws.NewHub(logger.Named(log, "ws"))
	go hub.Run()

	whatsappClient := whatsapp.NewClient(cfg)
	webhookIntake := webhook.NewHandler(cfg, database.GormDB, hub, logger.Named(log, "webhook"))
	webhookHandler := api.NewWebhookHandler(database.GormDB, logger.Named(log, "api"))
	userHandler := api.NewUserHandler(database.GormDB, logger.Named(log, "api"))
	settingsHandler := api.NewSettingsHandler(database.GormDB, whatsappClient, logger.Named(log, "api"))

	// Webhook Routes
	r.GET("/webhook", webhookIntake.VerifyWebhook)
	r.POST("/webhook", webhookIntake.HandleEvent)

	// Live event feed
	r.GET("/ws", func(c *gin.Context) {
		hub.ServeWs(c.Writer, c.Request)
	})

	// Dashboard API Routes
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/webhook", webhookHandler.GetWebhook)
		apiGroup.PUT("/webhook", webhookHandler.UpdateWebhook)
		apiGroup.GET("/webhook/events", webhookHandler.ListEvents)

		apiGroup.GET("/users", userHandler.GetUsers)
		apiGroup.GET("/users/metrics", userHandler.GetMetrics)

		apiGroup.GET("/settings/site", settingsHandler.GetSiteSettings)
		apiGroup.PUT("/settings/site", settingsHandler.UpdateSiteSettings)
		apiGroup.GET("/settings/business-profile", settingsHandler.GetBusinessProfile)
		apiGroup.PUT("/settings/business-profile", settingsHandler.UpdateBusinessProfile)
	}

	log.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("failed to run server", zap.Error(err))
	}
}
