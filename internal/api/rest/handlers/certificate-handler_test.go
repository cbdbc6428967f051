package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/SajiloSewa/registry_service/internal/domain"
	"github.com/SajiloSewa/registry_service/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCertService struct {
	known map[string]*dto.VerificationResponse
}

func (s *stubCertService) Issue(kind domain.RecordKind) (string, error) {
	return "BC-2024-123456", nil
}

func (s *stubCertService) BirthCertificate(rec *domain.BirthRecord) (*dto.CertificateResponse, error) {
	return nil, domain.ErrNotApproved
}

func (s *stubCertService) DeathCertificate(rec *domain.DeathRecord) (*dto.CertificateResponse, error) {
	return nil, domain.ErrNotApproved
}

func (s *stubCertService) Verify(certNo string) (*dto.VerificationResponse, error) {
	if resp, ok := s.known[certNo]; ok {
		return resp, nil
	}
	return &dto.VerificationResponse{CertificateNo: certNo}, nil
}

func (s *stubCertService) VerifyQR(certNo string) ([]byte, error) {
	if _, ok := s.known[certNo]; ok {
		return []byte("\x89PNG fake"), nil
	}
	return nil, domain.ErrNotFound
}

func newVerifyApp() *fiber.App {
	app := fiber.New()
	h := NewCertificateHandler(&stubCertService{
		known: map[string]*dto.VerificationResponse{
			"BC-2024-123456": {
				CertificateNo: "BC-2024-123456",
				Valid:         true,
				Kind:          domain.KindBirth,
				ApplicationID: "BR-2024-0001",
				Subject:       "Aarav Sharma",
			},
		},
	})
	h.SetupRoutes(app)
	return app
}

func TestVerifyEndpoint(t *testing.T) {
	app := newVerifyApp()

	req := httptest.NewRequest("GET", "/verify/BC-2024-123456", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data dto.VerificationResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Data.Valid)
	assert.Equal(t, "BR-2024-0001", body.Data.ApplicationID)
	assert.Equal(t, "Aarav Sharma", body.Data.Subject)
}

func TestVerifyEndpointUnknownNumber(t *testing.T) {
	app := newVerifyApp()

	req := httptest.NewRequest("GET", "/verify/BC-2024-000000", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// unknown numbers are a valid lookup with valid=false, not a 404
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data dto.VerificationResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Data.Valid)
}

func TestVerifyQREndpoint(t *testing.T) {
	app := newVerifyApp()

	req := httptest.NewRequest("GET", "/verify/BC-2024-123456/qr", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}

func TestVerifyQREndpointNotFound(t *testing.T) {
	app := newVerifyApp()

	req := httptest.NewRequest("GET", "/verify/BC-2024-000000/qr", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
