package handlers

import (
	"github.com/SajiloSewa/registry_service/internal/services"
	"github.com/SajiloSewa/registry_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

// CertificateHandler serves the public verification surface backing the QR
// code printed on certificates.
type CertificateHandler struct {
	certs services.CertificateService
}

func NewCertificateHandler(certs services.CertificateService) *CertificateHandler {
	return &CertificateHandler{certs: certs}
}

func (h *CertificateHandler) SetupRoutes(app *fiber.App) {
	app.Get("/verify/:certificateNo", h.Verify)
	app.Get("/verify/:certificateNo/qr", h.VerifyQR)
}

func (h *CertificateHandler) Verify(ctx *fiber.Ctx) error {
	resp, err := h.certs.Verify(ctx.Params("certificateNo"))
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, resp)
}

func (h *CertificateHandler) VerifyQR(ctx *fiber.Ctx) error {
	png, err := h.certs.VerifyQR(ctx.Params("certificateNo"))
	if err != nil {
		return utils.ResponseError(ctx, statusFor(err), err.Error())
	}

	ctx.Set(fiber.HeaderContentType, "image/png")
	return ctx.Status(fiber.StatusOK).Send(png)
}
