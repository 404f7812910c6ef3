package assessment

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "embed"

	"go.yaml.in/yaml/v3"
)

type Category string

const (
	CategoryInterests   Category = "interests"
	CategorySkills      Category = "skills"
	CategoryPreferences Category = "preferences"
	CategoryEducation   Category = "education"
	CategoryGoals       Category = "goals"
)

type QuestionType string

const (
	TypeScale          QuestionType = "scale"
	TypeMultipleChoice QuestionType = "multiple-choice"
	TypeFreeText       QuestionType = "free-text"
)

// Question ids that the preference and education rules look for.
const (
	QuestionWorkEnvironment = "work_environment"
	QuestionTeamPreference  = "team_preference"
	QuestionEducationGoal   = "education_goal"
)

type Question struct {
	ID       string       `json:"id" yaml:"id"`
	Category Category     `json:"category" yaml:"category"`
	Text     string       `json:"text" yaml:"text"`
	Type     QuestionType `json:"type" yaml:"type"`
	Options  []string     `json:"options,omitempty" yaml:"options,omitempty"`
}

// HasOption reports whether value is one of the allowed literal answers.
func (q Question) HasOption(value string) bool {
	for _, option := range q.Options {
		if option == value {
			return true
		}
	}
	return false
}

// Catalogue is an ordered, immutable list of questions indexed by id.
type Catalogue struct {
	questions []Question
	byID      map[string]int
}

//go:embed questions.json
var defaultQuestions []byte

// NewCatalogue builds a catalogue from the given questions, preserving their order.
func NewCatalogue(questions []Question) (*Catalogue, error) {
	c := &Catalogue{
		questions: make([]Question, 0, len(questions)),
		byID:      make(map[string]int, len(questions)),
	}

	for _, q := range questions {
		q.ID = strings.TrimSpace(q.ID)
		if q.ID == "" {
			return nil, fmt.Errorf("question %q has empty id", q.Text)
		}
		if _, ok := c.byID[q.ID]; ok {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		switch q.Type {
		case TypeScale, TypeMultipleChoice:
			if len(q.Options) == 0 {
				return nil, fmt.Errorf("question %q of type %s has no options", q.ID, q.Type)
			}
		case TypeFreeText:
		default:
			return nil, fmt.Errorf("question %q has unknown type %q", q.ID, q.Type)
		}

		c.byID[q.ID] = len(c.questions)
		c.questions = append(c.questions, q)
	}

	return c, nil
}

var loadDefault = sync.OnceValues(func() (*Catalogue, error) {
	var questions []Question
	if err := json.Unmarshal(defaultQuestions, &questions); err != nil {
		return nil, fmt.Errorf("decode built-in questions: %w", err)
	}
	return NewCatalogue(questions)
})

// DefaultCatalogue returns the built-in question catalogue. It is decoded on
// first use and shared afterwards.
func DefaultCatalogue() (*Catalogue, error) {
	return loadDefault()
}

// MustDefaultCatalogue is like DefaultCatalogue but panics on malformed built-in data.
func MustDefaultCatalogue() *Catalogue {
	c, err := DefaultCatalogue()
	if err != nil {
		panic(err)
	}
	return c
}

func orDefault(c *Catalogue) *Catalogue {
	if c == nil {
		return MustDefaultCatalogue()
	}
	return c
}

// LoadCatalogue reads a catalogue from a JSON or YAML file.
func LoadCatalogue(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalogue %q: %w", path, err)
	}

	var questions []Question
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &questions)
	default:
		err = json.Unmarshal(data, &questions)
	}
	if err != nil {
		return nil, fmt.Errorf("decode catalogue %q: %w", path, err)
	}

	return NewCatalogue(questions)
}

func (c *Catalogue) Lookup(id string) (Question, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Question{}, false
	}
	return c.questions[idx], true
}

func (c *Catalogue) Len() int {
	return len(c.questions)
}

// Questions returns a copy of the catalogue in its original order.
func (c *Catalogue) Questions() []Question {
	out := make([]Question, len(c.questions))
	copy(out, c.questions)
	return out
}
