package domain

import "time"

type ApplicationStatus string

const (
	StatusDraft       ApplicationStatus = "draft"
	StatusSubmitted   ApplicationStatus = "submitted"
	StatusUnderReview ApplicationStatus = "under_review"
	StatusApproved    ApplicationStatus = "approved"
	StatusRejected    ApplicationStatus = "rejected"
	StatusCorrections ApplicationStatus = "corrections"
)

// transitions is the allowed edge set of the application lifecycle.
// approved and rejected are terminal; corrections loops back through
// a citizen resubmission.
var transitions = map[ApplicationStatus][]ApplicationStatus{
	StatusDraft:       {StatusSubmitted},
	StatusSubmitted:   {StatusUnderReview, StatusApproved, StatusRejected, StatusCorrections},
	StatusUnderReview: {StatusApproved, StatusRejected, StatusCorrections},
	StatusCorrections: {StatusSubmitted},
	StatusApproved:    {},
	StatusRejected:    {},
}

func (s ApplicationStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transition may leave s.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransition reports whether s -> next is an allowed lifecycle edge.
func (s ApplicationStatus) CanTransition(next ApplicationStatus) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Reviewable statuses may receive an administrator decision.
func (s ApplicationStatus) Reviewable() bool {
	return s == StatusSubmitted || s == StatusUnderReview
}

type Decision string

const (
	DecisionApprove     Decision = "approve"
	DecisionReject      Decision = "reject"
	DecisionCorrections Decision = "corrections"
)

// Status returns the lifecycle status a decision moves a record into.
func (d Decision) Status() (ApplicationStatus, bool) {
	switch d {
	case DecisionApprove:
		return StatusApproved, true
	case DecisionReject:
		return StatusRejected, true
	case DecisionCorrections:
		return StatusCorrections, true
	}
	return "", false
}

// ReviewPatch computes the column set merged into a record for a reviewer
// decision. certificateNo is only consulted for an approval; the caller
// issues it beforehand so this function stays free of storage concerns.
func ReviewPatch(d Decision, reviewerID, remarks, certificateNo string, now time.Time) (map[string]any, error) {
	status, ok := d.Status()
	if !ok {
		return nil, ErrInvalidInput
	}

	patch := map[string]any{
		"status":      status,
		"reviewed_at": now,
		"reviewed_by": reviewerID,
		"remarks":     remarks,
	}

	switch d {
	case DecisionApprove:
		if certificateNo == "" {
			return nil, ErrInvalidInput
		}
		patch["approved_at"] = now
		patch["certificate_no"] = certificateNo
	case DecisionReject:
		patch["rejected_at"] = now
	}

	return patch, nil
}
