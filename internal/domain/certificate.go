package domain

import (
	"fmt"
	"math/rand"
	"time"
)

type RecordKind string

const (
	KindBirth RecordKind = "birth"
	KindDeath RecordKind = "death"
)

func (k RecordKind) Valid() bool {
	return k == KindBirth || k == KindDeath
}

// ApplicationPrefix is the prefix of human-readable application ids
// (BR-2024-0001 / DR-2024-0001).
func (k RecordKind) ApplicationPrefix() string {
	if k == KindDeath {
		return "DR"
	}
	return "BR"
}

// CertificatePrefix is the prefix of issued certificate numbers
// (BC-2024-001234 / DC-2024-001234).
func (k RecordKind) CertificatePrefix() string {
	if k == KindDeath {
		return "DC"
	}
	return "BC"
}

// NewApplicationID formats the human-readable application id for the seq-th
// application of a kind within a year. Assigned once at creation.
func NewApplicationID(kind RecordKind, now time.Time, seq int64) string {
	return fmt.Sprintf("%s-%d-%04d", kind.ApplicationPrefix(), now.Year(), seq)
}

// NewCertificateNo draws a candidate certificate number. Six random digits
// can collide, so callers must check the number against already issued ones
// and redraw on a hit.
func NewCertificateNo(kind RecordKind, now time.Time) string {
	n := rand.Intn(900000) + 100000
	return fmt.Sprintf("%s-%d-%06d", kind.CertificatePrefix(), now.Year(), n)
}
