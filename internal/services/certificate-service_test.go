package services

import (
	"bytes"
	"regexp"
	"testing"
	"time"

	"github.com/SajiloSewa/registry_service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCertFixture(t *testing.T) (*fakeBirthRepo, *fakeDeathRepo, CertificateService) {
	t.Helper()
	births := newFakeBirthRepo()
	deaths := newFakeDeathRepo()
	return births, deaths, NewCertificateService(births, deaths, "http://localhost:3000/")
}

func approvedBirth(t *testing.T, births *fakeBirthRepo, certNo string) *domain.BirthRecord {
	t.Helper()
	now := time.Now()
	rec := &domain.BirthRecord{
		ID:             "rec-birth-1",
		ApplicationID:  "BR-2024-0001",
		UserID:         "citizen-001",
		Status:         domain.StatusApproved,
		ChildFirstName: "Aarav",
		ChildLastName:  "Sharma",
		CertificateNo:  &certNo,
		ApprovedAt:     &now,
	}
	require.NoError(t, births.Create(rec))
	return rec
}

func TestIssueFormat(t *testing.T) {
	_, _, certs := newCertFixture(t)

	no, err := certs.Issue(domain.KindBirth)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^BC-\d{4}-\d{6}$`), no)

	no, err = certs.Issue(domain.KindDeath)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^DC-\d{4}-\d{6}$`), no)

	_, err = certs.Issue("marriage")
	assert.ErrorIs(t, err, domain.ErrInvalidKind)
}

func TestIssueSkipsTakenNumbers(t *testing.T) {
	births, _, certs := newCertFixture(t)
	taken := approvedBirth(t, births, "BC-2024-123456")

	for i := 0; i < 50; i++ {
		no, err := certs.Issue(domain.KindBirth)
		require.NoError(t, err)
		assert.NotEqual(t, *taken.CertificateNo, no)
	}
}

func TestBirthCertificate(t *testing.T) {
	births, _, certs := newCertFixture(t)
	rec := approvedBirth(t, births, "BC-2024-123456")

	resp, err := certs.BirthCertificate(rec)
	require.NoError(t, err)
	assert.Equal(t, "BC-2024-123456", resp.CertificateNo)
	assert.Equal(t, domain.KindBirth, resp.Kind)
	assert.Equal(t, "BR-2024-0001", resp.ApplicationID)
	assert.Equal(t, "Aarav Sharma", resp.Subject)
	assert.NotEmpty(t, resp.IssuedAt)
	assert.Equal(t, "http://localhost:3000/verify/BC-2024-123456", resp.VerifyURL)
}

func TestCertificateRequiresApproval(t *testing.T) {
	_, _, certs := newCertFixture(t)

	rec := &domain.BirthRecord{Status: domain.StatusSubmitted}
	_, err := certs.BirthCertificate(rec)
	assert.ErrorIs(t, err, domain.ErrNotApproved)

	// approved without a number is equally unusable
	rec = &domain.BirthRecord{Status: domain.StatusApproved}
	_, err = certs.BirthCertificate(rec)
	assert.ErrorIs(t, err, domain.ErrNotApproved)

	drec := &domain.DeathRecord{Status: domain.StatusRejected}
	_, err = certs.DeathCertificate(drec)
	assert.ErrorIs(t, err, domain.ErrNotApproved)
}

func TestVerify(t *testing.T) {
	births, _, certs := newCertFixture(t)
	approvedBirth(t, births, "BC-2024-123456")

	resp, err := certs.Verify("BC-2024-123456")
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Equal(t, domain.KindBirth, resp.Kind)
	assert.Equal(t, "BR-2024-0001", resp.ApplicationID)
	assert.Equal(t, "Aarav Sharma", resp.Subject)
	assert.NotEmpty(t, resp.IssuedAt)
}

func TestVerifyNormalizesInput(t *testing.T) {
	births, _, certs := newCertFixture(t)
	approvedBirth(t, births, "BC-2024-123456")

	resp, err := certs.Verify("  bc-2024-123456 ")
	require.NoError(t, err)
	assert.True(t, resp.Valid)
}

func TestVerifyUnknownNumber(t *testing.T) {
	_, _, certs := newCertFixture(t)

	// unknown numbers and foreign prefixes come back invalid, not as errors
	for _, certNo := range []string{"BC-2024-999999", "DC-2024-999999", "MC-2024-000001", "garbage"} {
		resp, err := certs.Verify(certNo)
		require.NoError(t, err)
		assert.False(t, resp.Valid, certNo)
		assert.Empty(t, resp.ApplicationID)
	}
}

func TestVerifyRevokedStatus(t *testing.T) {
	births, _, certs := newCertFixture(t)
	rec := approvedBirth(t, births, "BC-2024-123456")
	births.recs[rec.ID].Status = domain.StatusRejected

	resp, err := certs.Verify("BC-2024-123456")
	require.NoError(t, err)
	assert.False(t, resp.Valid)
}

func TestVerifyQR(t *testing.T) {
	births, _, certs := newCertFixture(t)
	approvedBirth(t, births, "BC-2024-123456")

	png, err := certs.VerifyQR("BC-2024-123456")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	_, err = certs.VerifyQR("BC-2024-000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
