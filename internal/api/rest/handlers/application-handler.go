package handlers

import (
	"github.com/SajiloSewa/registry_service/internal/domain"
	"github.com/SajiloSewa/registry_service/internal/dto"
	"github.com/SajiloSewa/registry_service/internal/helper"
	"github.com/SajiloSewa/registry_service/internal/services"
	"github.com/SajiloSewa/registry_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type ApplicationHandler struct {
	svc   services.ApplicationService
	certs services.CertificateService
	auth  helper.Auth
}

func NewApplicationHandler(svc services.ApplicationService, certs services.CertificateService, auth helper.Auth) *ApplicationHandler {
	return &ApplicationHandler{svc: svc, certs: certs, auth: auth}
}

func (h *ApplicationHandler) SetupRoutes(priv fiber.Router) {
	priv.Post("/birth", h.SubmitBirth)
	priv.Post("/death", h.SubmitDeath)
	priv.Get("/", h.List)
	priv.Get("/:kind/:id", h.Get)
	priv.Post("/:kind/:id/resubmit", h.Resubmit)
	priv.Get("/:kind/:id/certificate", h.Certificate)
}

func (h *ApplicationHandler) SubmitBirth(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var requestBody dto.BirthApplicationRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	rec, err := h.svc.SubmitBirth(claims.UserID, requestBody)
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, rec)
}

func (h *ApplicationHandler) SubmitDeath(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	var requestBody dto.DeathApplicationRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	rec, err := h.svc.SubmitDeath(claims.UserID, requestBody)
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, rec)
}

func (h *ApplicationHandler) List(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	list, err := h.svc.ListByOwner(claims.UserID)
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, list)
}

func (h *ApplicationHandler) Get(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	kind, err := parseKind(ctx.Params("kind"))
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}

	isAdmin := claims.Role == domain.RoleAdmin
	id := ctx.Params("id")

	if kind == domain.KindBirth {
		rec, err := h.svc.GetBirth(id, claims.UserID, isAdmin)
		if err != nil {
			return utils.ResponseError(ctx, statusFor(err), err.Error())
		}
		return utils.ResponseSuccess(ctx, fiber.StatusOK, rec)
	}

	rec, err := h.svc.GetDeath(id, claims.UserID, isAdmin)
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, rec)
}

func (h *ApplicationHandler) Resubmit(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	kind, err := parseKind(ctx.Params("kind"))
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}

	if err := h.svc.Resubmit(kind, ctx.Params("id"), claims.UserID); err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Application resubmitted")
}

func (h *ApplicationHandler) Certificate(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	}

	kind, err := parseKind(ctx.Params("kind"))
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}

	isAdmin := claims.Role == domain.RoleAdmin
	id := ctx.Params("id")

	var cert *dto.CertificateResponse
	if kind == domain.KindBirth {
		rec, err := h.svc.GetBirth(id, claims.UserID, isAdmin)
		if err != nil {
			return utils.ResponseError(ctx, statusFor(err), err.Error())
		}
		cert, err = h.certs.BirthCertificate(rec)
		if err != nil {
			return utils.ResponseError(ctx, statusFor(err), err.Error())
		}
	} else {
		rec, err := h.svc.GetDeath(id, claims.UserID, isAdmin)
		if err != nil {
			return utils.ResponseError(ctx, statusFor(err), err.Error())
		}
		cert, err = h.certs.DeathCertificate(rec)
		if err != nil {
			return utils.ResponseError(ctx, statusFor(err), err.Error())
		}
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, cert)
}
