package parser

import (
	"regexp"
	"strings"
)

// ClassifyPlay maps free play-by-play text (and the feed's own type label,
// when the text alone says nothing) to a play-type tag such as "made_three",
// "missed_ft" or "turnover".
func ClassifyPlay(text, typeText string) string {
	t := strings.ToLower(text)
	if strings.TrimSpace(t) == "" {
		t = strings.ToLower(typeText)
	}
	three := strings.Contains(t, "three point") || strings.Contains(t, "3pt") || strings.Contains(t, "3-pt")

	switch {
	case strings.Contains(t, "made"):
		switch {
		case three:
			return "made_three"
		case strings.Contains(t, "free throw"):
			return "made_ft"
		case strings.Contains(t, "dunk"):
			return "made_dunk"
		case strings.Contains(t, "layup"):
			return "made_layup"
		case strings.Contains(t, "jumper"), strings.Contains(t, "jump shot"):
			return "made_jumper"
		default:
			return "made_fg"
		}
	case strings.Contains(t, "missed"):
		switch {
		case three:
			return "missed_three"
		case strings.Contains(t, "free throw"):
			return "missed_ft"
		default:
			return "missed_fg"
		}
	case strings.Contains(t, "rebound"):
		switch {
		case strings.Contains(t, "offensive"):
			return "offensive_rebound"
		case strings.Contains(t, "defensive"):
			return "defensive_rebound"
		}
		return "rebound"
	case strings.Contains(t, "turnover"):
		return "turnover"
	case strings.Contains(t, "steal"):
		return "steal"
	case strings.Contains(t, "block"):
		return "block"
	case strings.Contains(t, "foul"):
		return "foul"
	case strings.Contains(t, "assist"):
		return "assist"
	case strings.Contains(t, "timeout"):
		return "timeout"
	case strings.Contains(t, "jump ball"):
		return "jump_ball"
	case strings.Contains(t, "end") &&
		(strings.Contains(t, "half") || strings.Contains(t, "period") || strings.Contains(t, "game")):
		return "period_end"
	}
	return "other"
}

// namePat matches a capitalised name with optional hyphens, apostrophes and a
// generational suffix: "O'Brien", "Abdul-Jabbar", "Kerry Blackshear Jr.".
const namePat = `[A-Z][a-zA-Z'\-]+(?:\s+[A-Z][a-zA-Z'\-]+)*(?:\s+(?:Jr\.|Sr\.|III|IV|II|V))?`

var (
	scorerRe    = regexp.MustCompile(`(?i)^(` + namePat + `)\s+(?:made|missed|makes|misses)`)
	foulOnRe    = regexp.MustCompile(`(?i)Foul on\s+(` + namePat + `)`)
	shotByRe    = regexp.MustCompile(`(?i)(?:shot|layup|dunk|jumper|pointer|throw)\s+by\s+(` + namePat + `)`)
	trailByRe   = regexp.MustCompile(`(?i)by\s+(` + namePat + `)\s*\.?\s*$`)
	anyByRe     = regexp.MustCompile(`(?i)by\s+(` + namePat + `)`)
	leadActorRe = regexp.MustCompile(`(?i)^(` + namePat + `)\s+(?:Assist|Offensive Rebound|Defensive Rebound|Steal|Block|Turnover)`)
)

// ExtractPlayer pulls the acting player's name out of play text, for feeds
// that do not list participants. Patterns are tried most specific first; a
// candidate must have at least two words or end in a suffix period.
// Returns "" when nothing plausible is found.
func ExtractPlayer(text string) string {
	if text == "" {
		return ""
	}
	for _, re := range []*regexp.Regexp{scorerRe, foulOnRe, shotByRe} {
		if name, ok := plausibleName(re.FindStringSubmatch(text)); ok {
			return name
		}
	}
	for _, re := range []*regexp.Regexp{trailByRe, anyByRe} {
		if name, ok := notAssist(text, re); ok {
			return name
		}
	}
	if name, ok := plausibleName(leadActorRe.FindStringSubmatch(text)); ok {
		return name
	}
	return ""
}

// notAssist returns the first "by Name" match not preceded by "Assisted " or "assists ".
func notAssist(text string, re *regexp.Regexp) (string, bool) {
	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		prefix := strings.ToLower(text[:loc[0]])
		if strings.HasSuffix(prefix, "assisted ") || strings.HasSuffix(prefix, "assists ") {
			continue
		}
		return plausibleName([]string{text[loc[0]:loc[1]], text[loc[2]:loc[3]]})
	}
	return "", false
}

func plausibleName(m []string) (string, bool) {
	if len(m) < 2 {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	if strings.Contains(name, " ") || strings.HasSuffix(name, ".") {
		return name, true
	}
	return "", false
}
