package main

import (
	"log"

	api "crmdesk-backend/cmd/api"
	accountdomain "crmdesk-backend/internal/account/domain"
	accountRepo "crmdesk-backend/internal/account/repository"
	accountUsecase "crmdesk-backend/internal/account/usecase"
	clientdomain "crmdesk-backend/internal/client/domain"
	clientRepo "crmdesk-backend/internal/client/repository"
	emaildomain "crmdesk-backend/internal/email/domain"
	emailRepo "crmdesk-backend/internal/email/repository"
	emailUsecase "crmdesk-backend/internal/email/usecase"
	"crmdesk-backend/pkg/config"
	"crmdesk-backend/pkg/database"
	"crmdesk-backend/pkg/gmail"
	"crmdesk-backend/pkg/tokencache"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&accountdomain.EmailAccount{}, &clientdomain.Client{}, &emaildomain.Email{}, &emaildomain.EmailClientLink{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize the bearer-token cache. Tokens never reach the database
	// regardless of backend.
	var tokens tokencache.SecretCache
	if cfg.TokenCacheBackend == "keyring" {
		tokens, err = tokencache.NewKeyringCache()
		if err != nil {
			log.Printf("[WARN] keyring unavailable, falling back to in-memory token cache: %v", err)
			tokens = tokencache.NewMemoryCache()
		}
	} else {
		tokens = tokencache.NewMemoryCache()
	}

	// Initialize repositories (dependency injection)
	accountRepository := accountRepo.NewAccountRepository(db)
	clientRepository := clientRepo.NewClientRepository(db)
	emailRepository := emailRepo.NewEmailRepository(db)

	// Initialize mail provider client
	gmailService := gmail.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret)

	// Initialize use cases (dependency injection)
	matcher := emailUsecase.NewClientMatcher(clientRepository)
	accountUsecaseInstance := accountUsecase.NewAccountUsecase(accountRepository, gmailService, tokens)
	emailUsecaseInstance := emailUsecase.NewEmailUsecase(emailRepository, accountRepository, matcher, gmailService, tokens)

	// Initialize HTTP handler
	handler := api.NewHandler(accountUsecaseInstance, emailUsecaseInstance, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
