package api

import (
	"net/http"

	accountDelivery "crmdesk-backend/internal/account/delivery"
	accountUsecase "crmdesk-backend/internal/account/usecase"
	"crmdesk-backend/internal/auth/delivery"
	emailDelivery "crmdesk-backend/internal/email/delivery"
	emailUsecase "crmdesk-backend/internal/email/usecase"
	"crmdesk-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, accountUc accountUsecase.AccountUsecase, emailUc emailUsecase.EmailUsecase, cfg *config.Config) {
	accountHandler := accountDelivery.NewAccountHandler(accountUc)
	emailHandler := emailDelivery.NewEmailHandler(emailUc, cfg.SyncMaxResults)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		tenant := delivery.TenantMiddleware(cfg.JWTSecret)

		// Account registry routes (protected)
		accounts := api.Group("/accounts")
		accounts.Use(tenant)
		{
			accounts.POST("/connect", accountHandler.Connect)
			accounts.GET("", accountHandler.List)
			accounts.DELETE("/:id", accountHandler.Disconnect)
			accounts.GET("/:id/signature", accountHandler.GetSignature)
			accounts.POST("/:id/sync", emailHandler.Sync)
		}

		// Email routes (protected)
		emails := api.Group("/emails")
		emails.Use(tenant)
		{
			emails.GET("", emailHandler.GetEmails)
			emails.GET("/pending", emailHandler.ListPending)
			emails.POST("/link", emailHandler.Link)
			emails.POST("/link/bulk", emailHandler.BulkLink)
			emails.POST("/discard", emailHandler.Discard)
			emails.PATCH("/:id/read", emailHandler.MarkAsRead)
			emails.PATCH("/:id/unread", emailHandler.MarkAsUnread)
			emails.PATCH("/:id/star", emailHandler.ToggleStar)
			emails.POST("/send", emailHandler.SendEmail)
			emails.DELETE("/:id", emailHandler.DeleteEmail)
		}

		// Client-scoped email lookups (protected)
		clients := api.Group("/clients")
		clients.Use(tenant)
		{
			clients.GET("/:clientId/emails", emailHandler.GetEmailsForClient)
		}
	}
}
