package insights

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "embed"

	"github.com/spigell/career-guide/internal/assessment"
	"github.com/spigell/career-guide/internal/career"
)

//go:embed prompt.md
var promptTemplate string

// batch holds what every prompt of one enrichment call shares.
type batch struct {
	profile *assessment.Profile
	answers string
}

func newBatch(profile *assessment.Profile, answers []assessment.Answer) (*batch, error) {
	if profile == nil {
		return nil, errors.New("profile is required")
	}
	if answers == nil {
		answers = []assessment.Answer{}
	}

	data, err := json.MarshalIndent(answers, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal answers: %w", err)
	}

	return &batch{profile: profile, answers: string(data)}, nil
}

func (b *batch) prompt(m career.Match) string {
	c := m.Career
	salary := ""
	if c.AverageSalary > 0 {
		salary = career.FormatDollars(float64(c.AverageSalary))
	}

	replacer := strings.NewReplacer(
		"{{INTERESTS}}", orNotSpecified(strings.Join(b.profile.Interests, ", ")),
		"{{SKILLS}}", orNotSpecified(strings.Join(b.profile.Skills, ", ")),
		"{{WORK_ENVIRONMENT}}", orNotSpecified(string(b.profile.WorkEnvironment)),
		"{{TEAM_PREFERENCE}}", orNotSpecified(string(b.profile.TeamPreference)),
		"{{EDUCATION_GOAL}}", orNotSpecified(string(b.profile.EducationGoal)),
		"{{CAREER_TITLE}}", orNotSpecified(c.Title),
		"{{SECTOR}}", orNotSpecified(c.Sector),
		"{{MATCH_SCORE}}", strconv.FormatFloat(m.MatchScore, 'f', -1, 64),
		"{{REQUIRED_EDUCATION}}", orNotSpecified(c.RequiredEducation),
		"{{SALARY}}", orNotSpecified(salary),
		"{{GROWTH_OUTLOOK}}", orNotSpecified(c.GrowthOutlook),
		"{{ANSWERS}}", b.answers,
	)

	return replacer.Replace(promptTemplate)
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "not specified"
	}
	return s
}
