package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/lunasee-app/lunasee-backend/internal/config"
	"github.com/lunasee-app/lunasee-backend/internal/handlers"
	"github.com/lunasee-app/lunasee-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	profileHandler *handlers.ProfileHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	webhookHandler *handlers.WebhookHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Product catalog for the upsell modal (public)
	api.Get("/products/premium", subscriptionHandler.Product)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Tracked profiles (JWT required)
	profiles := api.Group("/profiles", middleware.JWTProtected(cfg))
	profiles.Get("/", profileHandler.List)
	profiles.Post("/", profileHandler.Create)
	profiles.Put("/:id", profileHandler.Update)
	profiles.Delete("/:id", profileHandler.Delete)
	profiles.Get("/:id/calendar", profileHandler.Calendar)

	// Subscription lifecycle (JWT required)
	subscription := api.Group("/subscription", middleware.JWTProtected(cfg))
	subscription.Get("/", subscriptionHandler.Get)
	subscription.Post("/purchase", subscriptionHandler.Purchase)
	subscription.Post("/restore", subscriptionHandler.Restore)
	subscription.Post("/cancel", subscriptionHandler.Cancel)

	// Billing webhooks — shared-secret auth, no JWT
	api.Post("/webhooks/billing", webhookHandler.HandleBilling)
}
