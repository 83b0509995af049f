// Package routes defines the API routing configuration.
// It wires repositories, services and handlers, and groups routes by
// functionality with the appropriate middleware.
package routes

import (
	"time"

	"handshake/internal/config"
	"handshake/internal/handlers"
	"handshake/internal/middleware"
	"handshake/internal/repositories"
	"handshake/internal/services/advisor"
	"handshake/internal/services/auth"
	"handshake/internal/services/meetup"
	"handshake/internal/services/negotiation"
	"handshake/internal/services/orchestrator"
	"handshake/internal/services/otp"
	"handshake/internal/services/payment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Repositories
	txRepo := repositories.NewTransactionRepository(db, repositories.CacheService)
	listingRepo := repositories.NewListingRepository(db)
	userRepo := repositories.NewUserRepository(db)

	// External collaborators
	advisorClient := advisor.NewClient(
		config.GetEnv("ADVISOR_URL", "http://localhost:8100"),
		config.GetDurationEnv("ADVISOR_TIMEOUT", 20*time.Second),
	)
	stripeProvider := payment.NewStripeProvider(config.GetEnv("STRIPE_SECRET_KEY", ""))

	// Services in dependency order
	authService := auth.NewService(userRepo)
	otpService := otp.NewService(txRepo)
	negotiationService := negotiation.NewService(txRepo, listingRepo, advisorClient, repositories.CacheService)
	meetupService := meetup.NewService(txRepo, advisorClient)
	paymentService := payment.NewService(txRepo, stripeProvider, otpService)
	orchestratorService := orchestrator.NewService(
		txRepo,
		listingRepo,
		negotiationService,
		meetupService,
		paymentService,
		otpService,
	)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	listingHandler := handlers.NewListingHandler(listingRepo)
	chatHandler := handlers.NewChatHandler(orchestratorService)
	paymentHandler := handlers.NewPaymentHandler(orchestratorService)
	advisorHandler := handlers.NewAdvisorHandler(advisorClient)

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)

	// Everything below requires a signed identity
	authed := api.Use(middleware.Auth())

	// Listings
	authed.Get("/products", listingHandler.List)
	authed.Post("/products", listingHandler.Create)
	authed.Get("/products/:id", listingHandler.Get)
	authed.Patch("/products/:id", listingHandler.Update)

	// Negotiation transactions
	authed.Post("/chats", chatHandler.Create)
	authed.Get("/chats", chatHandler.List)
	authed.Get("/chats/:id", chatHandler.Get)
	authed.Patch("/chats/:id", chatHandler.Update)
	authed.Patch("/chats/:id/message", chatHandler.SendMessage)
	authed.Get("/chats/:id/actions", chatHandler.Actions)
	authed.Patch("/chats/:id/accept-price", chatHandler.AcceptPrice)
	authed.Post("/chats/:id/suggest-meetup", chatHandler.SuggestMeetup)
	authed.Get("/chats/:id/otp", chatHandler.DisplayToken)
	authed.Patch("/chats/:id/confirm-otp", chatHandler.ConfirmToken)

	// Payments
	authed.Post("/create-payment-intent", paymentHandler.CreateIntent)
	authed.Post("/chats/:id/payment/confirm", paymentHandler.Confirm)

	// Advisory proxies
	authed.Post("/evaluate-price", advisorHandler.EvaluatePrice)
	authed.Post("/generate-location", advisorHandler.GenerateLocations)
}
