package views

import (
	"fmt"
	"sort"
	"strings"
)

// Theme is the look of the picker. Both themes share one renderer.
type Theme struct {
	Name      string
	Title     string
	Accent    string
	Muted     string
	Selection string
	Error     string
	Warning   string
	Success   string
	Highlight string
	Rounded   bool
}

var themes = map[string]Theme{
	"silex": {
		Name:      "silex",
		Title:     "Silex file manager",
		Accent:    "99",
		Muted:     "241",
		Selection: "238",
		Error:     "203",
		Warning:   "214",
		Success:   "78",
		Highlight: "226",
		Rounded:   true,
	},
	"flmngr": {
		Name:      "flmngr",
		Title:     "Flmngr file manager",
		Accent:    "33",
		Muted:     "244",
		Selection: "236",
		Error:     "196",
		Warning:   "208",
		Success:   "70",
		Highlight: "51",
	},
}

// DefaultTheme is used when no theme is configured
const DefaultTheme = "silex"

// ThemeByName looks a theme up by case-insensitive name
func ThemeByName(name string) (Theme, error) {
	if name == "" {
		name = DefaultTheme
	}
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
	}
	return t, nil
}

// ThemeNames lists the available themes
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
