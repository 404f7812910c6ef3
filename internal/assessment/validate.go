package assessment

import "fmt"

// Validation is the outcome of checking a set of answers.
type Validation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateAnswers checks completeness and per-question format. All problems
// are collected; an incomplete submission is still checked answer by answer.
// A nil catalogue means the built-in one.
func ValidateAnswers(c *Catalogue, answers []Answer) Validation {
	c = orDefault(c)
	if len(answers) == 0 {
		return Validation{Valid: false, Errors: []string{"Assessment answers are required"}}
	}

	errs := make([]string, 0)
	if len(answers) < c.Len() {
		errs = append(errs, fmt.Sprintf("Incomplete assessment: %d of %d questions answered", len(answers), c.Len()))
	}

	for _, answer := range answers {
		question, ok := c.Lookup(answer.QuestionID)
		if !ok {
			errs = append(errs, fmt.Sprintf("Invalid question ID: %s", answer.QuestionID))
			continue
		}

		switch question.Type {
		case TypeScale, TypeMultipleChoice:
			text, isText := answer.Text()
			if !isText || !question.HasOption(text) {
				errs = append(errs, fmt.Sprintf("Invalid answer for question %s", question.ID))
			}
		}
	}

	return Validation{Valid: len(errs) == 0, Errors: errs}
}
