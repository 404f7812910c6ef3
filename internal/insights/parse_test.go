package insights

import (
	"reflect"
	"testing"
	"unicode/utf8"

	"github.com/spigell/career-guide/internal/career"
)

func TestParseInsights(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		raw      string
		expected career.Insights
		wantErr  bool
	}{
		{
			name: "plain object",
			raw:  `{"whyItMatches": " fits ", "personalizedDescription": "desc", "keyStrengths": ["a", "", "b"], "developmentAreas": ["c"], "nextSteps": ["d"]}`,
			expected: career.Insights{
				WhyItMatches:            "fits",
				PersonalizedDescription: "desc",
				KeyStrengths:            []string{"a", "b"},
				DevelopmentAreas:        []string{"c"},
				NextSteps:               []string{"d"},
			},
		},
		{
			name:     "fenced object",
			raw:      "```json\n{\"whyItMatches\": \"fenced\"}\n```",
			expected: career.Insights{WhyItMatches: "fenced"},
		},
		{
			name:     "single string list",
			raw:      `{"nextSteps": "call a mentor"}`,
			expected: career.Insights{NextSteps: []string{"call a mentor"}},
		},
		{
			name:     "non-string list items",
			raw:      `{"keyStrengths": [1, true]}`,
			expected: career.Insights{KeyStrengths: []string{"1", "true"}},
		},
		{name: "prose", raw: "I think this is a great career.", wantErr: true},
		{name: "null", raw: "null", wantErr: true},
		{name: "array", raw: `["a"]`, wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseInsights(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Fatalf("expected %+v, got %+v", tc.expected, got)
			}
		})
	}
}

func TestFallbackInsightsWithoutSector(t *testing.T) {
	t.Parallel()

	got := fallbackInsights(career.Match{Career: career.Career{Title: "welder"}, MatchScore: 81.6})

	if !got.Complete() {
		t.Fatalf("expected complete insights, got %+v", got)
	}
	if got.WhyItMatches != "Welder scored 82% against your assessment answers, which makes it one of your strongest matches." {
		t.Fatalf("unexpected why: %q", got.WhyItMatches)
	}
	if got.PersonalizedDescription != "A career as a welder." {
		t.Fatalf("unexpected description: %q", got.PersonalizedDescription)
	}
	if got.KeyStrengths[0] != "Interest in this kind of work" {
		t.Fatalf("unexpected strength: %q", got.KeyStrengths[0])
	}
}

func TestFallbackInsightsNonASCIITitle(t *testing.T) {
	t.Parallel()

	got := fallbackInsights(career.Match{Career: career.Career{Title: "électricien"}, MatchScore: 80})

	if got.WhyItMatches != "Électricien scored 80% against your assessment answers, which makes it one of your strongest matches." {
		t.Fatalf("unexpected why: %q", got.WhyItMatches)
	}
	for _, field := range []string{got.WhyItMatches, got.PersonalizedDescription} {
		if !utf8.ValidString(field) {
			t.Fatalf("invalid utf-8 in %q", field)
		}
	}
}

func TestCapitalize(t *testing.T) {
	t.Parallel()

	for in, expected := range map[string]string{
		"":             "",
		"welder":       "Welder",
		"électricien":  "Électricien",
		"Ölmechaniker": "Ölmechaniker",
		"123 crew":     "123 crew",
	} {
		if got := capitalize(in); got != expected {
			t.Fatalf("capitalize(%q) = %q, expected %q", in, got, expected)
		}
	}
}

func TestListPhrase(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		items    []string
		expected string
	}{
		"empty": {items: nil, expected: "fallback"},
		"one":   {items: []string{"Healthcare"}, expected: "healthcare"},
		"two":   {items: []string{"Healthcare", " "}, expected: "healthcare"},
		"many":  {items: []string{"A", "B", "C"}, expected: "a, b and c"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := listPhrase(tc.items, "fallback"); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}
