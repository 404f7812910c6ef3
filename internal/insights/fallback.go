package insights

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spigell/career-guide/internal/assessment"
	"github.com/spigell/career-guide/internal/career"
	"github.com/spigell/career-guide/internal/utils"
)

const maxDefaultStrengths = 3

// fallbackInsights is built from the match alone and never needs the AI.
func fallbackInsights(m career.Match) career.Insights {
	c := m.Career
	title := utils.FirstNonEmpty(c.Title, "this career")
	education := utils.FirstNonEmpty(c.RequiredEducation, "the required education")

	description := fmt.Sprintf("A career as a %s%s.", title, inSector(c.Sector))
	if c.AverageSalary > 0 {
		description = fmt.Sprintf("A career as a %s%s, with an average salary of %s.",
			title, inSector(c.Sector), career.FormatDollars(float64(c.AverageSalary)))
	}

	return career.Insights{
		WhyItMatches: fmt.Sprintf("%s scored %s%% against your assessment answers, which makes it one of your strongest matches.",
			capitalize(title), formatScore(m.MatchScore)),
		PersonalizedDescription: description,
		KeyStrengths: []string{
			sectorInterest(c.Sector),
			"Assessment answers that line up with this career",
		},
		DevelopmentAreas: []string{
			fmt.Sprintf("Complete %s", education),
			"Build hands-on experience in the field",
		},
		NextSteps: []string{
			fmt.Sprintf("Research %s training programs near you", title),
			fmt.Sprintf("Talk with someone who works as a %s", title),
			"Look for job shadowing or internship opportunities",
		},
	}
}

// defaultInsights fills fields an AI answer left out, using the profile too.
func defaultInsights(p *assessment.Profile, m career.Match) career.Insights {
	c := m.Career
	title := utils.FirstNonEmpty(c.Title, "this career")
	sector := utils.FirstNonEmpty(c.Sector, "this")

	why := fmt.Sprintf("Your interest in %s and your skills in %s fit well with working as a %s.",
		listPhrase(p.Interests, "exploring options"), listPhrase(p.Skills, "learning new things"), title)

	description := fmt.Sprintf("As a %s you would work%s.", title, inSector(c.Sector))
	if d := strings.TrimSpace(c.Description); d != "" {
		description = fmt.Sprintf("As a %s you would work%s. %s", title, inSector(c.Sector), d)
	}

	strengths := make([]string, 0, maxDefaultStrengths)
	for _, skill := range p.Skills {
		if len(strengths) == maxDefaultStrengths {
			break
		}
		if skill = strings.TrimSpace(skill); skill != "" {
			strengths = append(strengths, skill)
		}
	}
	if len(strengths) == 0 {
		strengths = []string{"Willingness to learn"}
	}

	areas := []string{"Gain practical experience related to " + title}
	if edu := strings.TrimSpace(c.RequiredEducation); edu != "" {
		areas = append([]string{"Complete " + edu}, areas...)
	}

	return career.Insights{
		WhyItMatches:            why,
		PersonalizedDescription: description,
		KeyStrengths:            strengths,
		DevelopmentAreas:        areas,
		NextSteps: []string{
			fmt.Sprintf("Research %s programs in your area", title),
			fmt.Sprintf("Ask a school counselor about courses that lead to %s work", sector),
			"Find a professional in the field to interview or shadow",
		},
	}
}

// backfill replaces every empty field of in with its template default.
func backfill(in career.Insights, p *assessment.Profile, m career.Match) career.Insights {
	if in.Complete() {
		return in
	}

	d := defaultInsights(p, m)
	if in.WhyItMatches == "" {
		in.WhyItMatches = d.WhyItMatches
	}
	if in.PersonalizedDescription == "" {
		in.PersonalizedDescription = d.PersonalizedDescription
	}
	if len(in.KeyStrengths) == 0 {
		in.KeyStrengths = d.KeyStrengths
	}
	if len(in.DevelopmentAreas) == 0 {
		in.DevelopmentAreas = d.DevelopmentAreas
	}
	if len(in.NextSteps) == 0 {
		in.NextSteps = d.NextSteps
	}
	return in
}

func inSector(sector string) string {
	if sector = strings.TrimSpace(sector); sector == "" {
		return ""
	}
	return " in the " + sector + " sector"
}

func sectorInterest(sector string) string {
	if sector = strings.TrimSpace(sector); sector == "" {
		return "Interest in this kind of work"
	}
	return "Interest in the " + sector + " sector"
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.0f", score)
}

func listPhrase(items []string, fallback string) string {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			kept = append(kept, strings.ToLower(item))
		}
	}

	switch len(kept) {
	case 0:
		return fallback
	case 1:
		return kept[0]
	default:
		return strings.Join(kept[:len(kept)-1], ", ") + " and " + kept[len(kept)-1]
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
