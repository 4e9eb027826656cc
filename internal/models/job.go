package models

// EmploymentType is the canonical employment classification every
// listing source is mapped into.
type EmploymentType string

const (
	TypeFullTime   EmploymentType = "Full-time"
	TypePartTime   EmploymentType = "Part-time"
	TypeContract   EmploymentType = "Contract"
	TypeRemote     EmploymentType = "Remote"
	TypeInternship EmploymentType = "Internship"
	TypeFreelance  EmploymentType = "Freelance"
)

// Job is the canonical normalized listing. Locally posted jobs carry an
// EmployerID and a generated `job_` prefixed id; externally fetched jobs
// carry provenance flags and a source-prefixed synthetic id that is
// regenerated on every fetch, so uniqueness holds only within one
// aggregated result set.
type Job struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Company     string         `json:"company"`
	Location    string         `json:"location"`
	Type        EmploymentType `json:"type"`
	Salary      string         `json:"salary"`
	Category    string         `json:"category"`
	PostedAt    string         `json:"postedAt"`
	Description string         `json:"description"`
	Logo        string         `json:"logo,omitempty"`

	// Provenance
	IsExternal     bool   `json:"isExternal"`
	ExternalURL    string `json:"externalUrl,omitempty"`
	ExternalSource string `json:"externalSource,omitempty"`

	// Local-origin fields
	EmployerID  string `json:"employerId,omitempty"`
	DocumentURL string `json:"documentUrl,omitempty"`
	CreatedAt   int64  `json:"createdAt,omitempty"` // epoch ms, orders local jobs most-recent-first
}

// CategoryAll bypasses category filtering in the aggregator.
const CategoryAll = "All"
