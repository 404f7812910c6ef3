// Package career holds the career match types shared by the enrichment and
// job search layers.
package career

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Career struct {
	Title             string `json:"title"`
	Sector            string `json:"sector"`
	RequiredEducation string `json:"requiredEducation"`
	AverageSalary     int    `json:"averageSalary"`
	GrowthOutlook     string `json:"growthOutlook"`
	Description       string `json:"description"`
}

// Match is a career ranked by the external scorer.
type Match struct {
	Career     Career  `json:"career"`
	MatchScore float64 `json:"matchScore"`
}

type Insights struct {
	WhyItMatches            string   `json:"whyItMatches"`
	PersonalizedDescription string   `json:"personalizedDescription"`
	KeyStrengths            []string `json:"keyStrengths"`
	DevelopmentAreas        []string `json:"developmentAreas"`
	NextSteps               []string `json:"nextSteps"`
}

// Complete reports whether every insight field carries content.
func (i Insights) Complete() bool {
	return i.WhyItMatches != "" &&
		i.PersonalizedDescription != "" &&
		len(i.KeyStrengths) > 0 &&
		len(i.DevelopmentAreas) > 0 &&
		len(i.NextSteps) > 0
}

type EnhancedMatch struct {
	Match
	AIInsights Insights `json:"aiInsights"`
}

// FormatDollars renders an amount as "$40,000".
func FormatDollars(amount float64) string {
	return message.NewPrinter(language.English).Sprintf("$%d", int64(math.Round(amount)))
}
