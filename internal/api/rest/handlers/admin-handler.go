package handlers

import (
	"github.com/SajiloSewa/registry_service/internal/domain"
	"github.com/SajiloSewa/registry_service/internal/dto"
	"github.com/SajiloSewa/registry_service/internal/helper"
	"github.com/SajiloSewa/registry_service/internal/services"
	"github.com/SajiloSewa/registry_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	svc  services.ReviewService
	auth helper.Auth
}

func NewAdminHandler(svc services.ReviewService, auth helper.Auth) *AdminHandler {
	return &AdminHandler{svc: svc, auth: auth}
}

// SetupRoutes expects admin to carry auth + admin-only middleware.
func (h *AdminHandler) SetupRoutes(admin fiber.Router) {
	admin.Get("/applications", h.ListPending)
	admin.Post("/applications/:kind/:id/review", h.StartReview)
	admin.Post("/applications/:kind/:id/decision", h.Decide)
}

func (h *AdminHandler) ListPending(ctx *fiber.Ctx) error {
	limit, offset := utils.ParseLimitOffset(ctx.QueryInt("limit"), ctx.QueryInt("offset"))
	status := domain.ApplicationStatus(ctx.Query("status"))

	list, err := h.svc.ListPending(status, limit, offset)
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, list)
}

func (h *AdminHandler) StartReview(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	kind, err := parseKind(ctx.Params("kind"))
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}

	if err := h.svc.StartReview(kind, ctx.Params("id"), claims.UserID); err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Application moved to review")
}

func (h *AdminHandler) Decide(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	kind, err := parseKind(ctx.Params("kind"))
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}

	var requestBody dto.DecisionRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide a valid decision")
	}

	summary, err := h.svc.Decide(kind, ctx.Params("id"), requestBody.Action, requestBody.Remarks, claims.UserID)
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, summary)
}
