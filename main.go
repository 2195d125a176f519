package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/devin-voegele/moneymap/billing"
	"github.com/devin-voegele/moneymap/config"
	"github.com/devin-voegele/moneymap/db"
	"github.com/devin-voegele/moneymap/handlers"
	"github.com/devin-voegele/moneymap/llm"
	"github.com/devin-voegele/moneymap/logger"
	"github.com/devin-voegele/moneymap/mailer"
	"github.com/devin-voegele/moneymap/middleware"
	"github.com/devin-voegele/moneymap/worker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := logger.Init(cfg.Development, cfg.LogLevel); err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		logger.Get().Fatal("failed to run migrations", zap.Error(err))
	}
	store, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Get().Fatal("failed to connect to database", zap.Error(err))
	}
	defer store.Close()

	billingClient := billing.New(cfg.StripeSecretKey, cfg.AppURL)
	llmClient := llm.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	mailClient := mailer.New(cfg.ResendAPIKey, cfg.EmailFrom, cfg.AppURL)
	h := handlers.New(store, billingClient, llmClient, mailClient, cfg)

	scheduler := worker.NewScheduler(store, mailClient)
	if err := scheduler.Start(cfg.WeeklyEmailCron); err != nil {
		logger.Get().Fatal("failed to start scheduler", zap.Error(err))
	}
	defer scheduler.Stop()

	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})
	router.Use(middleware.CORS(cfg.AllowedOrigin))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
			auth.POST("/forgot-password", h.ForgotPassword)
			auth.POST("/reset-password", h.ResetPassword)
		}

		api.POST("/stripe/webhook", middleware.StripeWebhookVerifier(cfg.StripeWebhookSecret), h.Webhook)

		internal := api.Group("/emails", middleware.InternalAuth(cfg.InternalAPIKey))
		{
			internal.POST("/send-weekly-summary", h.SendWeeklySummary)
		}

		authed := api.Group("", middleware.Auth(cfg.JWTSecret))
		{
			authed.GET("/profile", h.GetProfile)
			authed.POST("/profile", h.UpsertProfile)

			authed.GET("/income", h.ListIncome)
			authed.POST("/income", h.CreateIncome)
			authed.PUT("/income", h.UpdateIncome)
			authed.DELETE("/income", h.DeleteIncome)

			authed.GET("/fixed-costs", h.ListFixedCosts)
			authed.POST("/fixed-costs", h.CreateFixedCost)
			authed.PUT("/fixed-costs", h.UpdateFixedCost)
			authed.DELETE("/fixed-costs", h.DeleteFixedCost)

			authed.GET("/subscriptions", h.ListSubscriptions)
			authed.POST("/subscriptions", h.CreateSubscription)
			authed.PUT("/subscriptions", h.UpdateSubscription)
			authed.DELETE("/subscriptions", h.DeleteSubscription)

			authed.GET("/goals", h.ListGoals)
			authed.POST("/goals", h.CreateGoal)
			authed.PUT("/goals", h.UpdateGoal)
			authed.DELETE("/goals", h.DeleteGoal)

			authed.GET("/analytics", h.Analytics)
			authed.GET("/export/excel", h.ExportExcel)

			authed.POST("/coach", h.Coach)
			authed.GET("/coach/conversations", h.ListConversations)
			authed.POST("/coach/conversations", h.CreateConversation)
			authed.GET("/coach/conversations/:id", h.GetConversation)
			authed.PUT("/coach/conversations/:id", h.UpdateConversation)
			authed.DELETE("/coach/conversations/:id", h.DeleteConversation)

			authed.POST("/onboarding/sample-data", h.SeedSampleData)

			authed.POST("/stripe/checkout", h.Checkout)
			authed.POST("/stripe/portal", h.Portal)
		}
	}

	logger.Get().Info("server starting", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Get().Fatal("server exited", zap.Error(err))
	}
}
