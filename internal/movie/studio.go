package movie

import "strings"

type studioRule struct {
	needles   []string
	canonical string
}

// Checked in order; the first rule with a matching substring wins.
var studioRules = []studioRule{
	{needles: []string{"Metro-Goldwyn-Mayer", "MGM"}, canonical: "Metro-Goldwyn-Mayer"},
	{needles: []string{"Warner Bros"}, canonical: "Warner Bros. Pictures"},
	{needles: []string{"20th Century Fox", "Twentieth Century Fox"}, canonical: "20th Century Studios"},
}

// CanonicalStudio folds known studio name variants into one canonical name.
// Matching is case-sensitive; unknown names are returned unchanged.
func CanonicalStudio(name string) string {
	for _, rule := range studioRules {
		for _, needle := range rule.needles {
			if strings.Contains(name, needle) {
				return rule.canonical
			}
		}
	}
	return name
}
