package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/SajiloSewa/registry_service/internal/domain"
	"github.com/SajiloSewa/registry_service/internal/dto"
	"github.com/SajiloSewa/registry_service/internal/repository"
)

type CertificateService interface {
	// Issue draws a fresh certificate number, retrying on collision with
	// already issued numbers.
	Issue(kind domain.RecordKind) (string, error)

	BirthCertificate(rec *domain.BirthRecord) (*dto.CertificateResponse, error)
	DeathCertificate(rec *domain.DeathRecord) (*dto.CertificateResponse, error)

	Verify(certNo string) (*dto.VerificationResponse, error)
	VerifyQR(certNo string) ([]byte, error)
}

const issueAttempts = 5

type certificateService struct {
	birthRepo repository.BirthRepository
	deathRepo repository.DeathRepository
	baseURL   string
}

func NewCertificateService(birthRepo repository.BirthRepository, deathRepo repository.DeathRepository, baseURL string) CertificateService {
	return &certificateService{
		birthRepo: birthRepo,
		deathRepo: deathRepo,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

func (s *certificateService) Issue(kind domain.RecordKind) (string, error) {
	if !kind.Valid() {
		return "", domain.ErrInvalidKind
	}

	for i := 0; i < issueAttempts; i++ {
		candidate := domain.NewCertificateNo(kind, time.Now())

		var (
			exists bool
			err    error
		)
		if kind == domain.KindBirth {
			exists, err = s.birthRepo.CertificateNoExists(candidate)
		} else {
			exists, err = s.deathRepo.CertificateNoExists(candidate)
		}
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", errors.New("failed to issue a unique certificate number")
}

func (s *certificateService) verifyURL(certNo string) string {
	return fmt.Sprintf("%s/verify/%s", s.baseURL, certNo)
}

func (s *certificateService) BirthCertificate(rec *domain.BirthRecord) (*dto.CertificateResponse, error) {
	if rec.Status != domain.StatusApproved || rec.CertificateNo == nil {
		return nil, domain.ErrNotApproved
	}
	return &dto.CertificateResponse{
		CertificateNo: *rec.CertificateNo,
		Kind:          domain.KindBirth,
		ApplicationID: rec.ApplicationID,
		Subject:       fullName(rec.ChildFirstName, rec.ChildMiddleName, rec.ChildLastName),
		IssuedAt:      issuedAt(rec.ApprovedAt),
		VerifyURL:     s.verifyURL(*rec.CertificateNo),
	}, nil
}

func (s *certificateService) DeathCertificate(rec *domain.DeathRecord) (*dto.CertificateResponse, error) {
	if rec.Status != domain.StatusApproved || rec.CertificateNo == nil {
		return nil, domain.ErrNotApproved
	}
	return &dto.CertificateResponse{
		CertificateNo: *rec.CertificateNo,
		Kind:          domain.KindDeath,
		ApplicationID: rec.ApplicationID,
		Subject:       fullName(rec.DeceasedFirstName, rec.DeceasedMiddleName, rec.DeceasedLastName),
		IssuedAt:      issuedAt(rec.ApprovedAt),
		VerifyURL:     s.verifyURL(*rec.CertificateNo),
	}, nil
}

// Verify resolves a certificate number to the record it was issued for.
// The prefix decides which collection to search.
func (s *certificateService) Verify(certNo string) (*dto.VerificationResponse, error) {
	certNo = strings.TrimSpace(strings.ToUpper(certNo))
	resp := &dto.VerificationResponse{CertificateNo: certNo}

	switch {
	case strings.HasPrefix(certNo, domain.KindBirth.CertificatePrefix()+"-"):
		rec, err := s.birthRepo.FindByCertificateNo(certNo)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return resp, nil
			}
			return nil, err
		}
		if rec.Status != domain.StatusApproved {
			return resp, nil
		}
		resp.Valid = true
		resp.Kind = domain.KindBirth
		resp.ApplicationID = rec.ApplicationID
		resp.Subject = fullName(rec.ChildFirstName, rec.ChildMiddleName, rec.ChildLastName)
		resp.IssuedAt = issuedAt(rec.ApprovedAt)
	case strings.HasPrefix(certNo, domain.KindDeath.CertificatePrefix()+"-"):
		rec, err := s.deathRepo.FindByCertificateNo(certNo)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return resp, nil
			}
			return nil, err
		}
		if rec.Status != domain.StatusApproved {
			return resp, nil
		}
		resp.Valid = true
		resp.Kind = domain.KindDeath
		resp.ApplicationID = rec.ApplicationID
		resp.Subject = fullName(rec.DeceasedFirstName, rec.DeceasedMiddleName, rec.DeceasedLastName)
		resp.IssuedAt = issuedAt(rec.ApprovedAt)
	}

	return resp, nil
}

func (s *certificateService) VerifyQR(certNo string) ([]byte, error) {
	resp, err := s.Verify(certNo)
	if err != nil {
		return nil, err
	}
	if !resp.Valid {
		return nil, domain.ErrNotFound
	}
	return qrcode.Encode(s.verifyURL(resp.CertificateNo), qrcode.Medium, 256)
}

func issuedAt(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
