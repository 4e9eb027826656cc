// Package validation holds the JSON schemas enforced on write payloads
// before they reach a store.
package validation

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "github.com/23BCE0066/Hirely/internal/common/errors"
)

const jobPostSchema = `{
	"type": "object",
	"required": ["title", "company", "location", "type", "description"],
	"properties": {
		"title":       {"type": "string", "minLength": 1},
		"company":     {"type": "string", "minLength": 1},
		"location":    {"type": "string", "minLength": 1},
		"type":        {"type": "string", "enum": ["Full-time", "Part-time", "Contract", "Remote", "Internship", "Freelance"]},
		"salary":      {"type": "string"},
		"category":    {"type": "string"},
		"description": {"type": "string", "minLength": 1},
		"logo":        {"type": "string"},
		"employerId":  {"type": "string"},
		"documentUrl": {"type": "string"}
	}
}`

const applicationSchema = `{
	"type": "object",
	"required": ["jobId", "candidateId", "candidateName", "candidateEmail"],
	"properties": {
		"jobId":          {"type": "string", "minLength": 1},
		"candidateId":    {"type": "string", "minLength": 1},
		"candidateName":  {"type": "string", "minLength": 1},
		"candidateEmail": {"type": "string", "minLength": 3, "pattern": "^[^@\\s]+@[^@\\s]+$"},
		"resumeUrl":      {"type": "string"}
	}
}`

var (
	jobPostLoader     = gojsonschema.NewStringLoader(jobPostSchema)
	applicationLoader = gojsonschema.NewStringLoader(applicationSchema)
)

// ValidateJobPost validates a raw job-posting payload. A failed
// validation yields a VALIDATION_ERROR with per-field details.
func ValidateJobPost(payload []byte) error {
	return validate(jobPostLoader, payload)
}

// ValidateApplication validates a raw candidate application payload.
func ValidateApplication(payload []byte) error {
	return validate(applicationLoader, payload)
}

func validate(schema gojsonschema.JSONLoader, payload []byte) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return apperrors.NewValidationError(strings.Join(details, "; "))
}
