package models

// ApplicationStatus tracks recruiter-driven review state. Transitions
// are unconstrained: any status is reachable from any other.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusReviewed ApplicationStatus = "reviewed"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
	StatusOnHold   ApplicationStatus = "on_hold"
)

// IsValid reports whether s is one of the known statuses.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusAccepted, StatusRejected, StatusOnHold:
		return true
	}
	return false
}

// Application is a candidate's application to a locally posted Job. The
// recruiter/candidate chat lives in the embedded ordered message list.
type Application struct {
	ID             string            `json:"id"`
	JobID          string            `json:"jobId"`
	JobTitle       string            `json:"jobTitle,omitempty"`
	CandidateID    string            `json:"candidateId"`
	CandidateName  string            `json:"candidateName"`
	CandidateEmail string            `json:"candidateEmail"`
	AppliedAt      int64             `json:"appliedAt"` // epoch ms
	Status         ApplicationStatus `json:"status"`
	ResumeURL      string            `json:"resumeUrl,omitempty"`
	Messages       []Message         `json:"messages"`
}
