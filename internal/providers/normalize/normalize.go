// Package normalize holds the mapping heuristics shared by the external
// listing fetchers: employment type detection, salary extraction,
// category classification and fallback logo generation.
package normalize

import (
	"fmt"
	"math/rand"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/23BCE0066/Hirely/internal/models"
)

// salaryPattern matches a currency amount with an optional range and an
// optional per-period suffix. Supported currency markers: ₹, Rs., INR,
// USD, $.
var salaryPattern = regexp.MustCompile(`(?i)(?:₹|Rs\.?|INR|USD|\$)\s?[\d,]+(?:\.\d+)?(?:\s?(?:-|–|to)\s?(?:₹|Rs\.?|INR|USD|\$)?\s?[\d,]+(?:\.\d+)?)?(?:\s?(?:per|/)\s?(?:month|year|annum|hour|week))?`)

// categoryVocabulary is checked in order; the first category whose
// keyword appears in the title wins.
var categoryVocabulary = []struct {
	Name  string
	Words []string
}{
	{"Engineering", []string{"engineer", "developer", "software", "devops", "backend", "frontend", "full stack", "fullstack", "full-stack", "programmer", "sde", "data scientist", "data analyst", "qa", "sre"}},
	{"Design", []string{"design", "ux", "ui", "graphic", "illustrator", "creative"}},
	{"Marketing", []string{"marketing", "seo", "content", "social media", "brand", "growth"}},
	{"Sales", []string{"sales", "account executive", "business development"}},
	{"Product", []string{"product manager", "product owner", "product"}},
}

// CategoryOther is assigned when no vocabulary keyword matches.
const CategoryOther = "Other"

// ClassifyCategory derives a category from the listing title.
func ClassifyCategory(title string) string {
	lower := strings.ToLower(title)
	for _, cat := range categoryVocabulary {
		for _, word := range cat.Words {
			if strings.Contains(lower, word) {
				return cat.Name
			}
		}
	}
	return CategoryOther
}

// DetectEmploymentType maps a listing to the canonical employment enum:
// an explicit provider schedule field is preferred, then an "intern"
// keyword in the title, then description keywords, defaulting to
// Full-time.
func DetectEmploymentType(schedule, title, description string) models.EmploymentType {
	switch strings.ToLower(strings.TrimSpace(schedule)) {
	case "full-time", "fulltime", "full time":
		return models.TypeFullTime
	case "part-time", "parttime", "part time":
		return models.TypePartTime
	case "contract", "contractor":
		return models.TypeContract
	case "internship", "intern":
		return models.TypeInternship
	case "remote":
		return models.TypeRemote
	case "freelance":
		return models.TypeFreelance
	}

	if strings.Contains(strings.ToLower(title), "intern") {
		return models.TypeInternship
	}

	desc := strings.ToLower(description)
	switch {
	case strings.Contains(desc, "full-time") || strings.Contains(desc, "full time"):
		return models.TypeFullTime
	case strings.Contains(desc, "part-time") || strings.Contains(desc, "part time"):
		return models.TypePartTime
	case strings.Contains(desc, "contract"):
		return models.TypeContract
	case strings.Contains(desc, "freelance"):
		return models.TypeFreelance
	case strings.Contains(desc, "remote"):
		return models.TypeRemote
	}
	return models.TypeFullTime
}

// SalaryNotSpecified is the display value when no salary is available.
const SalaryNotSpecified = "Not specified"

// ExtractSalary prefers the provider's explicit salary field, then a
// currency-amount pattern from the description, then "Not specified".
func ExtractSalary(explicit, description string) string {
	if s := strings.TrimSpace(explicit); s != "" {
		return s
	}
	if match := salaryPattern.FindString(description); match != "" {
		return match
	}
	return SalaryNotSpecified
}

// AvatarURL builds a generated avatar-service URL keyed by the company
// name initials, used when a provider supplies no thumbnail.
func AvatarURL(company string) string {
	initials := companyInitials(company)
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random", url.QueryEscape(initials))
}

func companyInitials(company string) string {
	var b strings.Builder
	for _, word := range strings.Fields(company) {
		for _, r := range word {
			b.WriteRune(r)
			break
		}
		if b.Len() >= 2 {
			break
		}
	}
	if b.Len() == 0 {
		return "?"
	}
	return strings.ToUpper(b.String())
}

const idSuffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// SyntheticID builds a source-prefixed transient listing id, regenerated
// on every fetch. When the provider supplies no stable id the current
// epoch-millisecond timestamp stands in for the middle segment.
func SyntheticID(source, providerID string) string {
	mid := strings.TrimSpace(providerID)
	if mid == "" {
		mid = fmt.Sprintf("%d", time.Now().UnixMilli())
	}
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = idSuffixAlphabet[rand.Intn(len(idSuffixAlphabet))]
	}
	return fmt.Sprintf("%s_%s_%s", source, mid, suffix)
}
