package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lunasee-app/lunasee-backend/internal/billing"
	"github.com/lunasee-app/lunasee-backend/internal/config"
	"github.com/lunasee-app/lunasee-backend/internal/dto"
	"github.com/lunasee-app/lunasee-backend/internal/entitlement"
	"github.com/lunasee-app/lunasee-backend/internal/middleware"
	"github.com/lunasee-app/lunasee-backend/internal/services"
)

type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
	cfg                 *config.Config
}

func NewSubscriptionHandler(subscriptionService *services.SubscriptionService, cfg *config.Config) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		cfg:                 cfg,
	}
}

// Get returns the subscription snapshot with the activity flag computed
// against the current time, never a cached boolean.
func (h *SubscriptionHandler) Get(c *fiber.Ctx) error {
	accountID, err := middleware.GetAccountID(c)
	if err != nil {
		return unauthorized(c)
	}

	sub, err := h.subscriptionService.Find(accountID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load subscription",
		})
	}

	now := time.Now().UTC()
	resp := dto.SubscriptionResponse{Status: string(entitlement.StatusFree)}
	if sub != nil {
		resp = dto.SubscriptionResponse{
			Status:    sub.Status,
			ExpiresAt: sub.ExpiresAt,
			ProductID: sub.ProductID,
		}
	}
	resp.PremiumActive = entitlement.IsPremiumActive(snapshotOf(resp), now)

	return c.JSON(resp)
}

func (h *SubscriptionHandler) Purchase(c *fiber.Ctx) error {
	accountID, err := middleware.GetAccountID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	now := time.Now().UTC()
	productID := req.ProductID
	if productID == "" {
		productID = h.cfg.PremiumProductID
	}
	transactionID := req.TransactionID
	if transactionID == "" {
		// Web clients have no store transaction; mint a mock id.
		transactionID = fmt.Sprintf("mock_%d", now.UnixMilli())
	}

	sub, err := h.subscriptionService.Activate(accountID, productID, transactionID, "purchase", now)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to activate subscription",
		})
	}

	return c.JSON(dto.SubscriptionResponse{
		Status:        sub.Status,
		ExpiresAt:     sub.ExpiresAt,
		ProductID:     sub.ProductID,
		PremiumActive: entitlement.IsPremiumActive(sub.Snapshot(), now),
	})
}

func (h *SubscriptionHandler) Restore(c *fiber.Ctx) error {
	accountID, err := middleware.GetAccountID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.RestoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if req.TransactionID == "" {
		// Nothing restorable reported by the store.
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "No purchase to restore", Code: "no_active_purchase",
		})
	}

	now := time.Now().UTC()
	productID := req.ProductID
	if productID == "" {
		productID = h.cfg.PremiumProductID
	}

	sub, err := h.subscriptionService.Activate(accountID, productID, req.TransactionID, "restore", now)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to restore subscription",
		})
	}

	return c.JSON(dto.SubscriptionResponse{
		Status:        sub.Status,
		ExpiresAt:     sub.ExpiresAt,
		ProductID:     sub.ProductID,
		PremiumActive: entitlement.IsPremiumActive(sub.Snapshot(), now),
	})
}

func (h *SubscriptionHandler) Cancel(c *fiber.Ctx) error {
	accountID, err := middleware.GetAccountID(c)
	if err != nil {
		return unauthorized(c)
	}

	sub, err := h.subscriptionService.Cancel(accountID)
	if err != nil {
		if errors.Is(err, services.ErrAccountRequired) {
			return unauthorized(c)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to cancel subscription",
		})
	}

	now := time.Now().UTC()
	resp := dto.SubscriptionResponse{Status: string(entitlement.StatusFree)}
	if sub != nil {
		resp = dto.SubscriptionResponse{
			Status:        sub.Status,
			ExpiresAt:     sub.ExpiresAt,
			ProductID:     sub.ProductID,
			PremiumActive: entitlement.IsPremiumActive(sub.Snapshot(), now),
		}
	}

	return c.JSON(resp)
}

// Product returns the premium product listing the app shows in the
// upsell modal.
func (h *SubscriptionHandler) Product(c *fiber.Ctx) error {
	p := billing.PremiumMonthly(h.cfg.PremiumProductID)
	return c.JSON(dto.ProductResponse{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		Price:          p.Price,
		LocalizedPrice: p.LocalizedPrice,
	})
}

func snapshotOf(resp dto.SubscriptionResponse) entitlement.Snapshot {
	return entitlement.Snapshot{
		Status:    entitlement.Status(resp.Status),
		ExpiresAt: resp.ExpiresAt,
	}
}
