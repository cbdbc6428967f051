package services

import (
	"encoding/json"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/SajiloSewa/registry_service/internal/domain"
	"github.com/SajiloSewa/registry_service/internal/dto"
	"github.com/SajiloSewa/registry_service/internal/interfaces"
	"github.com/SajiloSewa/registry_service/internal/metrics"
	"github.com/SajiloSewa/registry_service/internal/repository"
	"github.com/SajiloSewa/registry_service/pkg/ids"
)

type ApplicationService interface {
	SubmitBirth(userID string, input dto.BirthApplicationRequest) (*domain.BirthRecord, error)
	SubmitDeath(userID string, input dto.DeathApplicationRequest) (*domain.DeathRecord, error)

	ListByOwner(userID string) ([]dto.ApplicationSummary, error)
	GetBirth(id, requesterID string, isAdmin bool) (*domain.BirthRecord, error)
	GetDeath(id, requesterID string, isAdmin bool) (*domain.DeathRecord, error)

	// Resubmit moves a corrections record back to submitted.
	Resubmit(kind domain.RecordKind, id, requesterID string) error

	AttachDocument(kind domain.RecordKind, id, requesterID string, doc domain.Document) error
}

type applicationService struct {
	birthRepo repository.BirthRepository
	deathRepo repository.DeathRepository
	userRepo  repository.UserRepository
	docRepo   repository.DocumentRepository
	auditRepo repository.AuditRepository
	producer  interfaces.ProducerHandler
}

func NewApplicationService(
	birthRepo repository.BirthRepository,
	deathRepo repository.DeathRepository,
	userRepo repository.UserRepository,
	docRepo repository.DocumentRepository,
	auditRepo repository.AuditRepository,
	producer interfaces.ProducerHandler,
) ApplicationService {
	return &applicationService{
		birthRepo: birthRepo,
		deathRepo: deathRepo,
		userRepo:  userRepo,
		docRepo:   docRepo,
		auditRepo: auditRepo,
		producer:  producer,
	}
}

func (s *applicationService) SubmitBirth(userID string, input dto.BirthApplicationRequest) (*domain.BirthRecord, error) {
	if strings.TrimSpace(input.ChildFirstName) == "" ||
		strings.TrimSpace(input.ChildLastName) == "" ||
		strings.TrimSpace(input.DateOfBirth) == "" ||
		strings.TrimSpace(input.PlaceOfBirth) == "" ||
		strings.TrimSpace(input.District) == "" {
		return nil, domain.ErrInvalidInput
	}

	owner, err := s.owner(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	seq, err := s.birthRepo.CountByYear(now.Year())
	if err != nil {
		return nil, err
	}

	rec := &domain.BirthRecord{
		ID:            ids.New(),
		ApplicationID: domain.NewApplicationID(domain.KindBirth, now, seq+1),
		UserID:        owner.ID,
		Status:        domain.StatusSubmitted,

		ChildFirstName:  strings.TrimSpace(input.ChildFirstName),
		ChildMiddleName: input.ChildMiddleName,
		ChildLastName:   strings.TrimSpace(input.ChildLastName),
		DateOfBirth:     input.DateOfBirth,
		PlaceOfBirth:    input.PlaceOfBirth,
		Gender:          input.Gender,

		FatherFirstName:  input.FatherFirstName,
		FatherMiddleName: input.FatherMiddleName,
		FatherLastName:   input.FatherLastName,
		MotherFirstName:  input.MotherFirstName,
		MotherMiddleName: input.MotherMiddleName,
		MotherLastName:   input.MotherLastName,

		District:     input.District,
		Municipality: input.Municipality,
		WardNo:       input.WardNo,
		Address:      input.Address,
		HospitalName: input.HospitalName,

		SubmittedAt: &now,
	}

	if err := s.birthRepo.Create(rec); err != nil {
		return nil, err
	}

	s.audit(owner.ID, domain.AuditActionSubmitted, rec.ID, nil)
	s.publish(domain.AuditActionSubmitted, domain.KindBirth, rec.ApplicationID, rec.ID, owner, "", "")
	metrics.SubmissionsTotal.WithLabelValues(string(domain.KindBirth)).Inc()

	return rec, nil
}

func (s *applicationService) SubmitDeath(userID string, input dto.DeathApplicationRequest) (*domain.DeathRecord, error) {
	if strings.TrimSpace(input.DeceasedFirstName) == "" ||
		strings.TrimSpace(input.DeceasedLastName) == "" ||
		strings.TrimSpace(input.DateOfDeath) == "" ||
		strings.TrimSpace(input.PlaceOfDeath) == "" ||
		strings.TrimSpace(input.CauseOfDeath) == "" ||
		strings.TrimSpace(input.InformantName) == "" {
		return nil, domain.ErrInvalidInput
	}

	owner, err := s.owner(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	seq, err := s.deathRepo.CountByYear(now.Year())
	if err != nil {
		return nil, err
	}

	rec := &domain.DeathRecord{
		ID:            ids.New(),
		ApplicationID: domain.NewApplicationID(domain.KindDeath, now, seq+1),
		UserID:        owner.ID,
		Status:        domain.StatusSubmitted,

		DeceasedFirstName:  strings.TrimSpace(input.DeceasedFirstName),
		DeceasedMiddleName: input.DeceasedMiddleName,
		DeceasedLastName:   strings.TrimSpace(input.DeceasedLastName),
		DateOfDeath:        input.DateOfDeath,
		PlaceOfDeath:       input.PlaceOfDeath,
		Gender:             input.Gender,
		CauseOfDeath:       input.CauseOfDeath,

		District:     input.District,
		Municipality: input.Municipality,
		WardNo:       input.WardNo,
		Address:      input.Address,

		InformantName:     input.InformantName,
		InformantRelation: input.InformantRelation,
		InformantPhone:    input.InformantPhone,

		SubmittedAt: &now,
	}

	if err := s.deathRepo.Create(rec); err != nil {
		return nil, err
	}

	s.audit(owner.ID, domain.AuditActionSubmitted, rec.ID, nil)
	s.publish(domain.AuditActionSubmitted, domain.KindDeath, rec.ApplicationID, rec.ID, owner, "", "")
	metrics.SubmissionsTotal.WithLabelValues(string(domain.KindDeath)).Inc()

	return rec, nil
}

func (s *applicationService) ListByOwner(userID string) ([]dto.ApplicationSummary, error) {
	births, err := s.birthRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	deaths, err := s.deathRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	// a user with no applications gets an empty list, never an error
	out := make([]dto.ApplicationSummary, 0, len(births)+len(deaths))
	for i := range births {
		out = append(out, birthSummary(&births[i]))
	}
	for i := range deaths {
		out = append(out, deathSummary(&deaths[i]))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *applicationService) GetBirth(id, requesterID string, isAdmin bool) (*domain.BirthRecord, error) {
	rec, err := s.birthRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && rec.UserID != requesterID {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

func (s *applicationService) GetDeath(id, requesterID string, isAdmin bool) (*domain.DeathRecord, error) {
	rec, err := s.deathRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && rec.UserID != requesterID {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

// statuses a citizen resubmission may leave from; the guard keeps a
// concurrent reviewer decision from being overwritten back to submitted.
var resubmittableStatuses = []domain.ApplicationStatus{domain.StatusDraft, domain.StatusCorrections}

func (s *applicationService) Resubmit(kind domain.RecordKind, id, requesterID string) error {
	patch := map[string]any{
		"status":       domain.StatusSubmitted,
		"submitted_at": time.Now(),
	}

	switch kind {
	case domain.KindBirth:
		rec, err := s.GetBirth(id, requesterID, false)
		if err != nil {
			return err
		}
		if !rec.Status.CanTransition(domain.StatusSubmitted) {
			return domain.ErrInvalidTransition
		}
		if err := s.birthRepo.ApplyDecision(id, patch, resubmittableStatuses); err != nil {
			return err
		}
	case domain.KindDeath:
		rec, err := s.GetDeath(id, requesterID, false)
		if err != nil {
			return err
		}
		if !rec.Status.CanTransition(domain.StatusSubmitted) {
			return domain.ErrInvalidTransition
		}
		if err := s.deathRepo.ApplyDecision(id, patch, resubmittableStatuses); err != nil {
			return err
		}
	default:
		return domain.ErrInvalidKind
	}

	s.audit(requesterID, domain.AuditActionResubmitted, id, nil)
	return nil
}

func (s *applicationService) AttachDocument(kind domain.RecordKind, id, requesterID string, doc domain.Document) error {
	switch kind {
	case domain.KindBirth:
		rec, err := s.GetBirth(id, requesterID, false)
		if err != nil {
			return err
		}
		if rec.Status.Terminal() {
			return domain.ErrAlreadyDecided
		}
	case domain.KindDeath:
		rec, err := s.GetDeath(id, requesterID, false)
		if err != nil {
			return err
		}
		if rec.Status.Terminal() {
			return domain.ErrAlreadyDecided
		}
	default:
		return domain.ErrInvalidKind
	}

	if doc.ID == "" {
		doc.ID = ids.New()
	}
	return s.docRepo.AddDocuments(id, kind, []domain.Document{doc})
}

// owner enforces referential integrity: records may only be created for an
// existing user.
func (s *applicationService) owner(userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserById(userID)
	if err != nil {
		return nil, domain.ErrUnknownOwner
	}
	return user, nil
}

func (s *applicationService) audit(actorID, action, entityID string, note *string) {
	entry := &domain.AuditLog{
		ID:       ids.NewSortable(),
		ActorID:  actorID,
		Action:   action,
		Entity:   "application",
		EntityID: entityID,
		Note:     note,
	}
	if err := s.auditRepo.Append(entry); err != nil {
		log.Printf("audit append error: %v", err)
	}
}

func (s *applicationService) publish(event string, kind domain.RecordKind, applicationID, recordID string, owner *domain.User, certNo, remarks string) {
	payload := dto.ApplicationEvent{
		Event:         event,
		Kind:          string(kind),
		ApplicationID: applicationID,
		RecordID:      recordID,
		UserID:        owner.ID,
		Email:         owner.Email,
		CertificateNo: certNo,
		Remarks:       remarks,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}

	b, err := json.Marshal(payload)
	if err != nil {
		log.Printf("event marshal error: %v", err)
		return
	}
	if err := s.producer.PublishMessage([]byte(applicationID), b); err != nil {
		log.Printf("event publish error: %v", err)
	}
}

func birthSummary(rec *domain.BirthRecord) dto.ApplicationSummary {
	return dto.ApplicationSummary{
		ID:            rec.ID,
		Kind:          domain.KindBirth,
		ApplicationID: rec.ApplicationID,
		UserID:        rec.UserID,
		Status:        rec.Status,
		Subject:       fullName(rec.ChildFirstName, rec.ChildMiddleName, rec.ChildLastName),
		CertificateNo: rec.CertificateNo,
		SubmittedAt:   rec.SubmittedAt,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
}

func deathSummary(rec *domain.DeathRecord) dto.ApplicationSummary {
	return dto.ApplicationSummary{
		ID:            rec.ID,
		Kind:          domain.KindDeath,
		ApplicationID: rec.ApplicationID,
		UserID:        rec.UserID,
		Status:        rec.Status,
		Subject:       fullName(rec.DeceasedFirstName, rec.DeceasedMiddleName, rec.DeceasedLastName),
		CertificateNo: rec.CertificateNo,
		SubmittedAt:   rec.SubmittedAt,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
}

func fullName(first string, middle *string, last string) string {
	parts := []string{first}
	if middle != nil && strings.TrimSpace(*middle) != "" {
		parts = append(parts, strings.TrimSpace(*middle))
	}
	parts = append(parts, last)
	return strings.Join(parts, " ")
}
