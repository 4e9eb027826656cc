package models

// Role distinguishes the two user kinds of the platform.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
)

// Profile is the identity record keyed by the external auth subject id.
// It is created lazily on first sign-in and upserted thereafter.
type Profile struct {
	ID    string `json:"id"` // auth subject id
	Role  Role   `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
