package jobsearch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func float(v float64) *float64 { return &v }

func TestFormatSalaryRange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		min, max *float64
		expected string
	}{
		{name: "range", min: float(40000), max: float(60000), expected: "$40,000 - $60,000"},
		{name: "only min", min: float(40000), expected: "$40,000+"},
		{name: "only max", max: float(60000), expected: "Up to $60,000"},
		{name: "rounded", min: float(39999.6), max: float(1250000.2), expected: "$40,000 - $1,250,000"},
		{name: "neither", expected: ""},
		{name: "zero bounds", min: float(0), max: float(0), expected: ""},
		{name: "zero min", min: float(0), max: float(55000), expected: "Up to $55,000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.expected, FormatSalaryRange(tc.min, tc.max))
		})
	}
}

func TestUsableLink(t *testing.T) {
	t.Parallel()

	for link, expected := range map[string]bool{
		"https://www.adzuna.com/land/ad/1": true,
		"http://example.com/job":           true,
		"":                                 false,
		"/land/ad/1":                       false,
		"mailto:jobs@example.com":          false,
		"https://":                         false,
	} {
		require.Equal(t, expected, usableLink(link), "link %q", link)
	}
}

func TestFallbackIDIsStable(t *testing.T) {
	t.Parallel()

	a := fallbackID("https://www.adzuna.com/land/ad/1")
	require.Equal(t, a, fallbackID("https://www.adzuna.com/land/ad/1"))
	require.NotEqual(t, a, fallbackID("https://www.adzuna.com/land/ad/2"))
	require.Regexp(t, `^adzuna-[0-9a-f-]{36}$`, a)
}
