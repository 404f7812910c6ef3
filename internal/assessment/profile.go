package assessment

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type WorkEnvironment string

const (
	WorkIndoor  WorkEnvironment = "indoor"
	WorkOutdoor WorkEnvironment = "outdoor"
	WorkMixed   WorkEnvironment = "mixed"
)

type TeamPreference string

const (
	TeamWork TeamPreference = "team"
	TeamSolo TeamPreference = "solo"
	TeamBoth TeamPreference = "both"
)

type EducationGoal string

const (
	EducationHighSchool  EducationGoal = "high-school"
	EducationCertificate EducationGoal = "certificate"
	EducationAssociate   EducationGoal = "associate"
	EducationBachelor    EducationGoal = "bachelor"
)

// Answer is a single submitted assessment answer. Value is usually a string
// but clients may send structured values.
type Answer struct {
	QuestionID string `json:"questionId"`
	Value      any    `json:"answer"`
}

// Text returns the answer as a string and whether it was one.
func (a Answer) Text() (string, bool) {
	s, ok := a.Value.(string)
	return s, ok
}

// String renders the answer value for prompts and logs.
func (a Answer) String() string {
	if s, ok := a.Text(); ok {
		return s
	}
	if a.Value == nil {
		return ""
	}
	data, err := json.Marshal(a.Value)
	if err != nil {
		return fmt.Sprintf("%v", a.Value)
	}
	return string(data)
}

// Profile is the student summary derived from one assessment submission.
type Profile struct {
	Interests       []string        `json:"interests"`
	Skills          []string        `json:"skills"`
	WorkEnvironment WorkEnvironment `json:"workEnvironment"`
	TeamPreference  TeamPreference  `json:"teamPreference"`
	EducationGoal   EducationGoal   `json:"educationGoal"`
	ZipCode         string          `json:"zipCode"`
	CompletedAt     time.Time       `json:"completedAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

var now = time.Now

// GenerateProfile maps answers onto a profile. Answers whose question is not
// in the catalogue are skipped. A nil catalogue means the built-in one.
func GenerateProfile(c *Catalogue, answers []Answer, zipCode string) *Profile {
	c = orDefault(c)
	p := &Profile{
		WorkEnvironment: WorkMixed,
		TeamPreference:  TeamBoth,
		EducationGoal:   EducationCertificate,
	}

	for _, answer := range answers {
		question, ok := c.Lookup(answer.QuestionID)
		if !ok {
			continue
		}
		text, _ := answer.Text()

		switch question.Category {
		case CategoryInterests:
			if agrees(text) {
				p.Interests = append(p.Interests, matchLabels(interestRules, question.Text)...)
			}
		case CategorySkills:
			if agrees(text) {
				p.Skills = append(p.Skills, matchLabels(skillRules, question.Text)...)
			}
		case CategoryPreferences:
			switch question.ID {
			case QuestionWorkEnvironment:
				p.WorkEnvironment = matchChoice(workEnvironmentRules, text, WorkMixed)
			case QuestionTeamPreference:
				p.TeamPreference = matchChoice(teamPreferenceRules, text, TeamBoth)
			}
		case CategoryEducation:
			if question.ID == QuestionEducationGoal {
				p.EducationGoal = matchChoice(educationRules, text, p.EducationGoal)
			}
		}
	}

	p.Interests = dedupe(p.Interests)
	if len(p.Interests) == 0 {
		p.Interests = []string{defaultInterest}
	}
	p.Skills = dedupe(p.Skills)
	if len(p.Skills) == 0 {
		p.Skills = []string{defaultSkill}
	}

	ts := now()
	p.CompletedAt = ts
	p.UpdatedAt = ts
	p.ZipCode = zipCode

	return p
}

// agrees matches "Agree" case sensitively, so "Disagree" does not pass.
func agrees(answer string) bool {
	return answer == "Strongly Agree" || strings.Contains(answer, "Agree")
}

// dedupe keeps the first occurrence of every label.
func dedupe(labels []string) []string {
	if len(labels) == 0 {
		return labels
	}
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out
}
