package services

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SajiloSewa/registry_service/internal/domain"
	"github.com/SajiloSewa/registry_service/internal/repository"
)

// In-memory fakes backing the service tests. They honor the repository
// contracts: typed not-found errors, status-guarded decision updates and
// updated_at refresh on merge.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) CreateUser(user *domain.User) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	cp := *user
	f.users[user.ID] = &cp
	return user, nil
}

func (f *fakeUserRepo) FindUserByEmail(email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) FindUserById(userID string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) SaveUser(user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

type fakeBirthRepo struct {
	mu   sync.Mutex
	recs map[string]*domain.BirthRecord
}

func newFakeBirthRepo() *fakeBirthRepo {
	return &fakeBirthRepo{recs: map[string]*domain.BirthRecord{}}
}

func (f *fakeBirthRepo) Create(rec *domain.BirthRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	cp := *rec
	f.recs[rec.ID] = &cp
	return nil
}

func (f *fakeBirthRepo) FindByID(id string) (*domain.BirthRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.recs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeBirthRepo) FindByCertificateNo(certNo string) (*domain.BirthRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.recs {
		if rec.CertificateNo != nil && *rec.CertificateNo == certNo {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBirthRepo) ListByUser(userID string) ([]domain.BirthRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.BirthRecord
	for _, rec := range f.recs {
		if rec.UserID == userID {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeBirthRepo) ListByStatus(status domain.ApplicationStatus, limit, offset int) ([]domain.BirthRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.BirthRecord
	for _, rec := range f.recs {
		if rec.Status == status {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeBirthRepo) CountByYear(year int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prefix := fmt.Sprintf("%s-%d-", domain.KindBirth.ApplicationPrefix(), year)
	var count int64
	for _, rec := range f.recs {
		if strings.HasPrefix(rec.ApplicationID, prefix) {
			count++
		}
	}
	return count, nil
}

func (f *fakeBirthRepo) CertificateNoExists(certNo string) (bool, error) {
	_, err := f.FindByCertificateNo(certNo)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (f *fakeBirthRepo) Updates(id string, patch map[string]any) (*domain.BirthRecord, error) {
	f.mu.Lock()
	rec, ok := f.recs[id]
	if !ok {
		f.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	applyBirthPatch(rec, patch)
	f.mu.Unlock()
	return f.FindByID(id)
}

func (f *fakeBirthRepo) ApplyDecision(id string, patch map[string]any, from []domain.ApplicationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.recs[id]
	if !ok {
		return domain.ErrNotFound
	}
	allowed := false
	for _, s := range from {
		if rec.Status == s {
			allowed = true
		}
	}
	if !allowed {
		if rec.Status.Terminal() {
			return domain.ErrAlreadyDecided
		}
		return domain.ErrInvalidTransition
	}
	applyBirthPatch(rec, patch)
	return nil
}

func applyBirthPatch(rec *domain.BirthRecord, patch map[string]any) {
	for k, v := range patch {
		switch k {
		case "status":
			rec.Status = v.(domain.ApplicationStatus)
		case "certificate_no":
			no := v.(string)
			rec.CertificateNo = &no
		case "remarks":
			r := v.(string)
			rec.Remarks = &r
		case "reviewed_by":
			rb := v.(string)
			rec.ReviewedBy = &rb
		case "submitted_at":
			t := v.(time.Time)
			rec.SubmittedAt = &t
		case "reviewed_at":
			t := v.(time.Time)
			rec.ReviewedAt = &t
		case "approved_at":
			t := v.(time.Time)
			rec.ApprovedAt = &t
		case "rejected_at":
			t := v.(time.Time)
			rec.RejectedAt = &t
		}
	}
	rec.UpdatedAt = time.Now()
}

type fakeDeathRepo struct {
	mu   sync.Mutex
	recs map[string]*domain.DeathRecord
}

func newFakeDeathRepo() *fakeDeathRepo {
	return &fakeDeathRepo{recs: map[string]*domain.DeathRecord{}}
}

func (f *fakeDeathRepo) Create(rec *domain.DeathRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	cp := *rec
	f.recs[rec.ID] = &cp
	return nil
}

func (f *fakeDeathRepo) FindByID(id string) (*domain.DeathRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.recs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeDeathRepo) FindByCertificateNo(certNo string) (*domain.DeathRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.recs {
		if rec.CertificateNo != nil && *rec.CertificateNo == certNo {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDeathRepo) ListByUser(userID string) ([]domain.DeathRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.DeathRecord
	for _, rec := range f.recs {
		if rec.UserID == userID {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeDeathRepo) ListByStatus(status domain.ApplicationStatus, limit, offset int) ([]domain.DeathRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.DeathRecord
	for _, rec := range f.recs {
		if rec.Status == status {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeDeathRepo) CountByYear(year int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prefix := fmt.Sprintf("%s-%d-", domain.KindDeath.ApplicationPrefix(), year)
	var count int64
	for _, rec := range f.recs {
		if strings.HasPrefix(rec.ApplicationID, prefix) {
			count++
		}
	}
	return count, nil
}

func (f *fakeDeathRepo) CertificateNoExists(certNo string) (bool, error) {
	_, err := f.FindByCertificateNo(certNo)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (f *fakeDeathRepo) Updates(id string, patch map[string]any) (*domain.DeathRecord, error) {
	f.mu.Lock()
	rec, ok := f.recs[id]
	if !ok {
		f.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	applyDeathPatch(rec, patch)
	f.mu.Unlock()
	return f.FindByID(id)
}

func (f *fakeDeathRepo) ApplyDecision(id string, patch map[string]any, from []domain.ApplicationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.recs[id]
	if !ok {
		return domain.ErrNotFound
	}
	allowed := false
	for _, s := range from {
		if rec.Status == s {
			allowed = true
		}
	}
	if !allowed {
		if rec.Status.Terminal() {
			return domain.ErrAlreadyDecided
		}
		return domain.ErrInvalidTransition
	}
	applyDeathPatch(rec, patch)
	return nil
}

func applyDeathPatch(rec *domain.DeathRecord, patch map[string]any) {
	for k, v := range patch {
		switch k {
		case "status":
			rec.Status = v.(domain.ApplicationStatus)
		case "certificate_no":
			no := v.(string)
			rec.CertificateNo = &no
		case "remarks":
			r := v.(string)
			rec.Remarks = &r
		case "reviewed_by":
			rb := v.(string)
			rec.ReviewedBy = &rb
		case "submitted_at":
			t := v.(time.Time)
			rec.SubmittedAt = &t
		case "reviewed_at":
			t := v.(time.Time)
			rec.ReviewedAt = &t
		case "approved_at":
			t := v.(time.Time)
			rec.ApprovedAt = &t
		case "rejected_at":
			t := v.(time.Time)
			rec.RejectedAt = &t
		}
	}
	rec.UpdatedAt = time.Now()
}

type fakeDocRepo struct {
	mu   sync.Mutex
	docs map[string][]domain.Document
}

func newFakeDocRepo() *fakeDocRepo {
	return &fakeDocRepo{docs: map[string][]domain.Document{}}
}

func (f *fakeDocRepo) AddDocuments(recordID string, kind domain.RecordKind, docs []domain.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[recordID] = append(f.docs[recordID], docs...)
	return nil
}

func (f *fakeDocRepo) ListByRecord(recordID string) ([]domain.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.docs[recordID], nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuditLog
}

func (f *fakeAuditRepo) Append(entry *domain.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) ListByEntity(entityID string) ([]domain.AuditLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.AuditLog
	for _, e := range f.entries {
		if e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeProducer struct {
	mu       sync.Mutex
	messages [][]byte
}

func (f *fakeProducer) PublishMessage(key, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, value)
	return nil
}

var (
	_ repository.UserRepository     = (*fakeUserRepo)(nil)
	_ repository.BirthRepository    = (*fakeBirthRepo)(nil)
	_ repository.DeathRepository    = (*fakeDeathRepo)(nil)
	_ repository.DocumentRepository = (*fakeDocRepo)(nil)
	_ repository.AuditRepository    = (*fakeAuditRepo)(nil)
)
