package jobsearch

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/career-guide/internal/career"
	"github.com/spigell/career-guide/internal/utils"
)

const (
	source = "adzuna"

	defaultExperienceLevel   = "Entry Level"
	defaultEducationRequired = "High School Diploma"

	placeholderTitle       = "Untitled Position"
	placeholderCompany     = "Company not listed"
	placeholderLocation    = "Location not specified"
	placeholderDescription = "No description available"
	placeholderDate        = "Date not available"
)

// Listing is a normalized job posting. ApplicationURL is never empty.
type Listing struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Company           string   `json:"company"`
	Location          string   `json:"location"`
	Salary            string   `json:"salary,omitempty"`
	Description       string   `json:"description"`
	Requirements      []string `json:"requirements"`
	PostedDate        string   `json:"postedDate"`
	ApplicationURL    string   `json:"applicationUrl"`
	Source            string   `json:"source"`
	ExperienceLevel   string   `json:"experienceLevel"`
	EducationRequired string   `json:"educationRequired"`
	Distance          *float64 `json:"distance,omitempty"`
}

type displayName struct {
	DisplayName string `mapstructure:"display_name"`
}

type record struct {
	ID          string
	Title       string
	Company     string
	Location    string
	Created     string
	RedirectURL string
	Description string
	SalaryMin   *float64
	SalaryMax   *float64
}

// decodeRecord reads every field on its own. A field of an unexpected type is
// left empty and reported in skipped, the rest of the record is kept.
func decodeRecord(raw map[string]any) (r record, skipped []string) {
	check := func(key string, ok bool) {
		if !ok {
			skipped = append(skipped, key)
		}
	}

	check("redirect_url", decodeField(raw, "redirect_url", &r.RedirectURL))
	check("id", decodeField(raw, "id", &r.ID))
	check("title", decodeField(raw, "title", &r.Title))
	check("company", decodeName(raw, "company", &r.Company))
	check("location", decodeName(raw, "location", &r.Location))
	check("created", decodeField(raw, "created", &r.Created))
	check("description", decodeField(raw, "description", &r.Description))
	check("salary_min", decodeField(raw, "salary_min", &r.SalaryMin))
	check("salary_max", decodeField(raw, "salary_max", &r.SalaryMax))

	return r, skipped
}

// decodeField weakly decodes raw[key] into dst. A missing or null value is
// not an error; dst is only written on success.
func decodeField[T any](raw map[string]any, key string, dst *T) bool {
	v, ok := raw[key]
	if !ok || v == nil {
		return true
	}

	var out T
	if err := mapstructure.WeakDecode(v, &out); err != nil {
		return false
	}
	*dst = out
	return true
}

// decodeName accepts both {"display_name": "..."} and a plain string.
func decodeName(raw map[string]any, key string, dst *string) bool {
	if s, ok := raw[key].(string); ok {
		*dst = s
		return true
	}

	var name displayName
	if !decodeField(raw, key, &name) {
		return false
	}
	*dst = name.DisplayName
	return true
}

// normalize maps a provider record into a Listing. Only records without a
// usable application link are dropped.
func (c *Client) normalize(raw map[string]any) (Listing, bool) {
	r, skipped := decodeRecord(raw)

	link := strings.TrimSpace(r.RedirectURL)
	if !usableLink(link) {
		c.logger.Debug("skipping job record without application link", zap.String("title", r.Title))
		return Listing{}, false
	}

	if len(skipped) > 0 {
		c.logger.Debug("ignoring job record fields of unexpected type",
			zap.String("link", link),
			zap.Strings("fields", skipped),
		)
	}

	id := strings.TrimSpace(r.ID)
	if id == "" {
		id = fallbackID(link)
	}

	return Listing{
		ID:                id,
		Title:             utils.FirstNonEmpty(r.Title, placeholderTitle),
		Company:           utils.FirstNonEmpty(r.Company, placeholderCompany),
		Location:          utils.FirstNonEmpty(r.Location, placeholderLocation),
		Salary:            FormatSalaryRange(r.SalaryMin, r.SalaryMax),
		Description:       utils.FirstNonEmpty(r.Description, placeholderDescription),
		Requirements:      []string{},
		PostedDate:        utils.FirstNonEmpty(r.Created, placeholderDate),
		ApplicationURL:    link,
		Source:            source,
		ExperienceLevel:   defaultExperienceLevel,
		EducationRequired: defaultEducationRequired,
	}, true
}

func usableLink(link string) bool {
	if link == "" {
		return false
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// fallbackID derives an id from the link, so a record always gets the same one.
func fallbackID(link string) string {
	return fmt.Sprintf("%s-%s", source, uuid.NewSHA1(uuid.NameSpaceURL, []byte(link)))
}

// FormatSalaryRange renders optional salary bounds. A bound counts only when
// it is positive; with neither bound the result is empty.
func FormatSalaryRange(minSalary, maxSalary *float64) string {
	hasMin := minSalary != nil && *minSalary > 0
	hasMax := maxSalary != nil && *maxSalary > 0

	switch {
	case hasMin && hasMax:
		return career.FormatDollars(*minSalary) + " - " + career.FormatDollars(*maxSalary)
	case hasMin:
		return career.FormatDollars(*minSalary) + "+"
	case hasMax:
		return "Up to " + career.FormatDollars(*maxSalary)
	default:
		return ""
	}
}
