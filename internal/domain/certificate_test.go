package domain

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var (
	applicationIDRe = regexp.MustCompile(`^[A-Z]{2}-\d{4}-\d{4}$`)
	certificateNoRe = regexp.MustCompile(`^(BC|DC)-\d{4}-\d{6}$`)
)

func TestNewApplicationID(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "BR-2024-0001", NewApplicationID(KindBirth, now, 1))
	assert.Equal(t, "DR-2024-0042", NewApplicationID(KindDeath, now, 42))

	for seq := int64(1); seq < 50; seq++ {
		assert.Regexp(t, applicationIDRe, NewApplicationID(KindBirth, now, seq))
	}
}

func TestNewCertificateNo(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		birth := NewCertificateNo(KindBirth, now)
		death := NewCertificateNo(KindDeath, now)

		assert.Regexp(t, certificateNoRe, birth)
		assert.Regexp(t, certificateNoRe, death)
		assert.Equal(t, fmt.Sprintf("BC-%d", now.Year()), birth[:7])
		assert.Equal(t, fmt.Sprintf("DC-%d", now.Year()), death[:7])
	}
}

func TestRecordKind(t *testing.T) {
	assert.True(t, KindBirth.Valid())
	assert.True(t, KindDeath.Valid())
	assert.False(t, RecordKind("marriage").Valid())

	assert.Equal(t, "BR", KindBirth.ApplicationPrefix())
	assert.Equal(t, "DR", KindDeath.ApplicationPrefix())
	assert.Equal(t, "BC", KindBirth.CertificatePrefix())
	assert.Equal(t, "DC", KindDeath.CertificatePrefix())
}
