package services

import (
	"encoding/json"
	"log"
	"sort"
	"time"

	"github.com/SajiloSewa/registry_service/internal/domain"
	"github.com/SajiloSewa/registry_service/internal/dto"
	"github.com/SajiloSewa/registry_service/internal/interfaces"
	"github.com/SajiloSewa/registry_service/internal/metrics"
	"github.com/SajiloSewa/registry_service/internal/repository"
	"github.com/SajiloSewa/registry_service/pkg/ids"
)

type ReviewService interface {
	// ListPending returns submitted and under_review applications of both
	// kinds, oldest first. A non-empty status narrows the queue to that
	// status; it must be one of the reviewable ones.
	ListPending(status domain.ApplicationStatus, limit, offset int) ([]dto.ApplicationSummary, error)

	// StartReview moves a submitted application to under_review.
	StartReview(kind domain.RecordKind, id, reviewerID string) error

	// Decide applies exactly one reviewer decision to an application.
	// Records in a terminal state are rejected with ErrAlreadyDecided.
	Decide(kind domain.RecordKind, id string, decision domain.Decision, remarks, reviewerID string) (*dto.ApplicationSummary, error)
}

// reviewable statuses a decision may be applied from; the same set guards
// the UPDATE at the repository layer.
var reviewableStatuses = []domain.ApplicationStatus{domain.StatusSubmitted, domain.StatusUnderReview}

type reviewService struct {
	birthRepo repository.BirthRepository
	deathRepo repository.DeathRepository
	userRepo  repository.UserRepository
	auditRepo repository.AuditRepository
	certs     CertificateService
	producer  interfaces.ProducerHandler
}

func NewReviewService(
	birthRepo repository.BirthRepository,
	deathRepo repository.DeathRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditRepository,
	certs CertificateService,
	producer interfaces.ProducerHandler,
) ReviewService {
	return &reviewService{
		birthRepo: birthRepo,
		deathRepo: deathRepo,
		userRepo:  userRepo,
		auditRepo: auditRepo,
		certs:     certs,
		producer:  producer,
	}
}

func (s *reviewService) ListPending(status domain.ApplicationStatus, limit, offset int) ([]dto.ApplicationSummary, error) {
	statuses := reviewableStatuses
	if status != "" {
		if !status.Reviewable() {
			return nil, domain.ErrInvalidInput
		}
		statuses = []domain.ApplicationStatus{status}
	}

	// pagination applies to the merged queue, so each sub-list must be
	// over-fetched up to offset+limit rows before the single sort+slice
	fetch := -1
	if limit > 0 {
		fetch = limit + offset
	}

	var out []dto.ApplicationSummary

	for _, status := range statuses {
		births, err := s.birthRepo.ListByStatus(status, fetch, 0)
		if err != nil {
			return nil, err
		}
		for i := range births {
			out = append(out, birthSummary(&births[i]))
		}

		deaths, err := s.deathRepo.ListByStatus(status, fetch, 0)
		if err != nil {
			return nil, err
		}
		for i := range deaths {
			out = append(out, deathSummary(&deaths[i]))
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	if offset >= len(out) {
		return []dto.ApplicationSummary{}, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *reviewService) StartReview(kind domain.RecordKind, id, reviewerID string) error {
	patch := map[string]any{"status": domain.StatusUnderReview}
	from := []domain.ApplicationStatus{domain.StatusSubmitted}

	var err error
	switch kind {
	case domain.KindBirth:
		err = s.birthRepo.ApplyDecision(id, patch, from)
	case domain.KindDeath:
		err = s.deathRepo.ApplyDecision(id, patch, from)
	default:
		return domain.ErrInvalidKind
	}
	if err != nil {
		return err
	}

	s.audit(reviewerID, domain.AuditActionReviewOpened, id, nil)
	return nil
}

func (s *reviewService) Decide(kind domain.RecordKind, id string, decision domain.Decision, remarks, reviewerID string) (*dto.ApplicationSummary, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidKind
	}
	next, ok := decision.Status()
	if !ok {
		return nil, domain.ErrInvalidInput
	}

	current, err := s.currentStatus(kind, id)
	if err != nil {
		return nil, err
	}
	if current.Terminal() {
		return nil, domain.ErrAlreadyDecided
	}
	if !current.CanTransition(next) {
		return nil, domain.ErrInvalidTransition
	}

	certNo := ""
	if decision == domain.DecisionApprove {
		certNo, err = s.certs.Issue(kind)
		if err != nil {
			return nil, err
		}
	}

	patch, err := domain.ReviewPatch(decision, reviewerID, remarks, certNo, time.Now())
	if err != nil {
		return nil, err
	}

	var summary dto.ApplicationSummary
	switch kind {
	case domain.KindBirth:
		if err := s.birthRepo.ApplyDecision(id, patch, reviewableStatuses); err != nil {
			return nil, err
		}
		rec, err := s.birthRepo.FindByID(id)
		if err != nil {
			return nil, err
		}
		summary = birthSummary(rec)
	case domain.KindDeath:
		if err := s.deathRepo.ApplyDecision(id, patch, reviewableStatuses); err != nil {
			return nil, err
		}
		rec, err := s.deathRepo.FindByID(id)
		if err != nil {
			return nil, err
		}
		summary = deathSummary(rec)
	}

	action := auditAction(decision)
	var note *string
	if remarks != "" {
		note = &remarks
	}
	s.audit(reviewerID, action, id, note)
	s.notifyOwner(action, kind, summary, certNo, remarks)
	metrics.DecisionsTotal.WithLabelValues(string(kind), string(decision)).Inc()

	return &summary, nil
}

func (s *reviewService) currentStatus(kind domain.RecordKind, id string) (domain.ApplicationStatus, error) {
	switch kind {
	case domain.KindBirth:
		rec, err := s.birthRepo.FindByID(id)
		if err != nil {
			return "", err
		}
		return rec.Status, nil
	default:
		rec, err := s.deathRepo.FindByID(id)
		if err != nil {
			return "", err
		}
		return rec.Status, nil
	}
}

func auditAction(d domain.Decision) string {
	switch d {
	case domain.DecisionApprove:
		return domain.AuditActionApproved
	case domain.DecisionReject:
		return domain.AuditActionRejected
	default:
		return domain.AuditActionCorrections
	}
}

func (s *reviewService) audit(actorID, action, entityID string, note *string) {
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

func (s *reviewService) notifyOwner(event string, kind domain.RecordKind, summary dto.ApplicationSummary, certNo, remarks string) {
	email := ""
	if owner, err := s.userRepo.FindUserById(summary.UserID); err == nil {
		email = owner.Email
	}

	payload := dto.ApplicationEvent{
		Event:         event,
		Kind:          string(kind),
		ApplicationID: summary.ApplicationID,
		RecordID:      summary.ID,
		UserID:        summary.UserID,
		Email:         email,
		CertificateNo: certNo,
		Remarks:       remarks,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}

	b, err := json.Marshal(payload)
	if err != nil {
		log.Printf("event marshal error: %v", err)
		return
	}
	if err := s.producer.PublishMessage([]byte(summary.ApplicationID), b); err != nil {
		log.Printf("event publish error: %v", err)
	}
}
