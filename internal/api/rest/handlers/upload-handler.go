package handlers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/SajiloSewa/registry_service/internal/domain"
	"github.com/SajiloSewa/registry_service/internal/helper"
	"github.com/SajiloSewa/registry_service/internal/interfaces"
	"github.com/SajiloSewa/registry_service/internal/services"
	"github.com/SajiloSewa/registry_service/pkg/imageutil"
	"github.com/SajiloSewa/registry_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

const (
	maxDocumentSize = 5 * 1024 * 1024 // 5MB
	maxImageWidth   = 1600
)

type UploadHandler struct {
	svc      services.ApplicationService
	uploader interfaces.Uploader
	auth     helper.Auth
}

func NewUploadHandler(svc services.ApplicationService, uploader interfaces.Uploader, auth helper.Auth) *UploadHandler {
	return &UploadHandler{svc: svc, uploader: uploader, auth: auth}
}

func (h *UploadHandler) SetupRoutes(priv fiber.Router) {
	priv.Post("/:kind/:id/documents", h.UploadDocument)
}

// POST /api/applications/:kind/:id/documents
// form-data: file=<pdf|image>, name=<document name>
func (h *UploadHandler) UploadDocument(c *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(c)
	if err != nil {
		return utils.ResponseError(c, fiber.StatusUnauthorized, err.Error())
	}

	kind, err := parseKind(c.Params("kind"))
	if err != nil {
		return utils.ResponseError(c, statusFor(err), err.Error())
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "file is required"})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".pdf": true}
	if !allowed[ext] {
		return c.Status(400).JSON(fiber.Map{"message": "only jpg/jpeg/png/webp/pdf allowed"})
	}

	if file.Size > maxDocumentSize {
		return c.Status(400).JSON(fiber.Map{"message": "file too large (max 5MB)"})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "cannot open uploaded file"})
	}
	defer f.Close()

	b, err := utils.ReadAllLimit(f, maxDocumentSize)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": err.Error()})
	}

	docType := strings.TrimPrefix(ext, ".")
	if ext != ".pdf" {
		// camera shots come in sideways and oversized; store a normalized JPEG
		normalized, err := imageutil.NormalizeToJPG(b, maxImageWidth, 85)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"message": err.Error()})
		}
		b = normalized
		docType = "jpg"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	folder := fmt.Sprintf("registry/%s_documents", kind)
	url, err := h.uploader.UploadBytes(ctx, folder, file.Filename, b)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": fmt.Sprintf("upload failed: %v", err)})
	}

	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		name = file.Filename
	}

	size := int64(len(b))
	doc := domain.Document{
		Name:     name,
		Type:     docType,
		FileURL:  url,
		FileSize: &size,
	}

	if err := h.svc.AttachDocument(kind, c.Params("id"), claims.UserID, doc); err != nil {
		return utils.ResponseError(c, statusFor(err), err.Error())
	}

	return utils.ResponseSuccess(c, fiber.StatusCreated, fiber.Map{
		"name": name,
		"url":  url,
	})
}
