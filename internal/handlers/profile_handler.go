package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lunasee-app/lunasee-backend/internal/cycle"
	"github.com/lunasee-app/lunasee-backend/internal/dto"
	"github.com/lunasee-app/lunasee-backend/internal/entitlement"
	"github.com/lunasee-app/lunasee-backend/internal/middleware"
	"github.com/lunasee-app/lunasee-backend/internal/models"
	"github.com/lunasee-app/lunasee-backend/internal/services"
)

// defaultCalendarDays is the window projected when the request gives no
// explicit range.
const defaultCalendarDays = 30

type ProfileHandler struct {
	profileService      *services.ProfileService
	subscriptionService *services.SubscriptionService
}

func NewProfileHandler(profileService *services.ProfileService, subscriptionService *services.SubscriptionService) *ProfileHandler {
	return &ProfileHandler{
		profileService:      profileService,
		subscriptionService: subscriptionService,
	}
}

func (h *ProfileHandler) List(c *fiber.Ctx) error {
	accountID, err := middleware.GetAccountID(c)
	if err != nil {
		return unauthorized(c)
	}

	profiles, err := h.profileService.List(accountID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list profiles",
		})
	}

	snap, err := h.subscriptionService.Snapshot(accountID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load subscription",
		})
	}

	now := time.Now().UTC()
	resp := dto.ProfileListResponse{
		Profiles: make([]dto.ProfileResponse, len(profiles)),
		Total:    len(profiles),
	}
	for i := range profiles {
		resp.Profiles[i] = profileResponse(&profiles[i], i, entitlement.CanAccess(i, snap, now))
	}

	return c.JSON(resp)
}

func (h *ProfileHandler) Create(c *fiber.Ctx) error {
	accountID, err := middleware.GetAccountID(c)
	if err != nil {
		return unauthorized(c)
	}

	draft, err := parseProfileRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	profile, err := h.profileService.Create(accountID, draft, time.Now().UTC())
	if err != nil {
		return profileError(c, err)
	}

	position, accessible := h.resolveAccess(accountID, profile.ID)
	return c.Status(fiber.StatusCreated).JSON(profileResponse(profile, position, accessible))
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	accountID, err := middleware.GetAccountID(c)
	if err != nil {
		return unauthorized(c)
	}

	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid profile id",
		})
	}

	draft, err := parseProfileRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	profile, err := h.profileService.Update(accountID, profileID, draft, time.Now().UTC())
	if err != nil {
		return profileError(c, err)
	}

	position, accessible := h.resolveAccess(accountID, profile.ID)
	return c.JSON(profileResponse(profile, position, accessible))
}

func (h *ProfileHandler) Delete(c *fiber.Ctx) error {
	accountID, err := middleware.GetAccountID(c)
	if err != nil {
		return unauthorized(c)
	}

	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid profile id",
		})
	}

	if err := h.profileService.Delete(accountID, profileID); err != nil {
		return profileError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Profile deleted"})
}

func (h *ProfileHandler) Calendar(c *fiber.Ctx) error {
	accountID, err := middleware.GetAccountID(c)
	if err != nil {
		return unauthorized(c)
	}

	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid profile id",
		})
	}

	now := time.Now().UTC()
	from := cycle.DateOnly(now)
	to := from.AddDate(0, 0, defaultCalendarDays-1)

	if q := c.Query("from"); q != "" {
		if from, err = parseDate(q); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid from date, expected YYYY-MM-DD",
			})
		}
	}
	if q := c.Query("to"); q != "" {
		if to, err = parseDate(q); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid to date, expected YYYY-MM-DD",
			})
		}
	}

	days, err := h.profileService.Calendar(accountID, profileID, from, to, now)
	if err != nil {
		return profileError(c, err)
	}

	resp := dto.CalendarResponse{
		ProfileID: profileID,
		From:      from.Format(time.DateOnly),
		To:        to.Format(time.DateOnly),
		Days:      make([]dto.CalendarDayEntry, len(days)),
	}
	for i, d := range days {
		resp.Days[i] = dto.CalendarDayEntry{
			Date:           d.Date.Format(time.DateOnly),
			Phase:          d.Phase,
			IsOvulationDay: d.IsOvulationDay,
		}
	}

	return c.JSON(resp)
}

// resolveAccess recomputes the profile's position and accessibility
// after a write; falls back to an accessible zero position when the
// reload fails, since the write itself already passed the gate.
func (h *ProfileHandler) resolveAccess(accountID, profileID uuid.UUID) (int, bool) {
	profiles, err := h.profileService.List(accountID)
	if err != nil {
		return 0, true
	}
	position := models.PositionOf(profiles, profileID)
	if position < 0 {
		return 0, true
	}

	snap, err := h.subscriptionService.Snapshot(accountID)
	if err != nil {
		return position, true
	}
	return position, entitlement.CanAccess(position, snap, time.Now().UTC())
}

func parseProfileRequest(c *fiber.Ctx) (services.ProfileDraft, error) {
	var req dto.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return services.ProfileDraft{}, errors.New("invalid request body")
	}

	periodDate, err := parseDate(req.PeriodDate)
	if err != nil {
		return services.ProfileDraft{}, errors.New("invalid period_date, expected YYYY-MM-DD")
	}

	return services.ProfileDraft{
		Name:            req.Name,
		CycleLength:     req.CycleLength,
		PeriodLength:    req.PeriodLength,
		PeriodDate:      periodDate,
		PeriodInputType: req.PeriodInputType,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

func profileResponse(p *models.TrackedProfile, position int, accessible bool) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:              p.ID,
		Name:            p.Name,
		CycleLength:     p.CycleLength,
		PeriodLength:    p.PeriodLength,
		LastPeriodStart: cycle.DateOnly(p.LastPeriodStart).Format(time.DateOnly),
		PeriodInputType: p.PeriodInputType,
		Position:        position,
		Accessible:      accessible,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func profileError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrPremiumRequired):
		// Distinct code so the client routes to the upsell flow.
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Premium subscription required for the third and later profiles", Code: "premium_required",
		})
	case errors.Is(err, services.ErrProfileNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Profile not found",
		})
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, cycle.ErrInvalidProfile),
		errors.Is(err, cycle.ErrInvalidRange):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}
