package assessment

import "strings"

// keywordRule adds label when any keyword appears in the question text.
type keywordRule struct {
	keywords []string
	label    string
}

// choiceRule selects value when the answer contains substring.
type choiceRule[T any] struct {
	substring string
	value     T
}

var interestRules = []keywordRule{
	{keywords: []string{"helping people"}, label: "Helping Others"},
	{keywords: []string{"hands", "building"}, label: "Hands-on Work"},
	{keywords: []string{"body", "health"}, label: "Healthcare"},
	{keywords: []string{"buildings", "infrastructure", "constructed"}, label: "Infrastructure"},
	{keywords: []string{"community", "difference"}, label: "Community Impact"},
}

var skillRules = []keywordRule{
	{keywords: []string{"technology", "software"}, label: "Technology"},
	{keywords: []string{"details", "attention"}, label: "Attention to Detail"},
	{keywords: []string{"talking", "communication"}, label: "Communication"},
	{keywords: []string{"fix", "problem"}, label: "Problem Solving"},
}

var workEnvironmentRules = []choiceRule[WorkEnvironment]{
	{substring: "indoors", value: WorkIndoor},
	{substring: "outdoors", value: WorkOutdoor},
}

var teamPreferenceRules = []choiceRule[TeamPreference]{
	{substring: "team", value: TeamWork},
	{substring: "independently", value: TeamSolo},
}

// Checked in order, the first match wins.
var educationRules = []choiceRule[EducationGoal]{
	{substring: "high school", value: EducationHighSchool},
	{substring: "certificate", value: EducationCertificate},
	{substring: "trade", value: EducationCertificate},
	{substring: "associate", value: EducationAssociate},
	{substring: "bachelor", value: EducationBachelor},
}

const (
	defaultInterest = "Exploring Options"
	defaultSkill    = "Willingness to Learn"
)

// matchLabels returns the label of every rule triggered by text.
func matchLabels(rules []keywordRule, text string) []string {
	text = strings.ToLower(text)

	var labels []string
	for _, rule := range rules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				labels = append(labels, rule.label)
				break
			}
		}
	}
	return labels
}

func matchChoice[T any](rules []choiceRule[T], answer string, fallback T) T {
	answer = strings.ToLower(answer)
	for _, rule := range rules {
		if strings.Contains(answer, rule.substring) {
			return rule.value
		}
	}
	return fallback
}
