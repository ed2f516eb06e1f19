package student

import "math"

const completionFields = 12

type Badge string

const (
	BadgeDefault     Badge = "default"
	BadgeSecondary   Badge = "secondary"
	BadgeDestructive Badge = "destructive"
)

type Completion struct {
	Percentage int
	Badge      Badge
	Missing    []string
}

// CalculateCompletion scores twelve profile fields: basic info, contact,
// professional info and links.
func CalculateCompletion(p Profile) Completion {
	checks := []struct {
		name string
		ok   bool
	}{
		{"name", p.Name != ""},
		{"bio", p.Bio != ""},
		{"university", p.University != ""},
		{"major", p.Major != ""},
		{"phone", p.Phone != ""},
		{"location", p.Location != ""},
		{"skills", len(p.Skills) > 0},
		{"projects", len(p.Projects) > 0},
		{"resume", p.ResumeURL != ""},
		{"github_url", p.GithubURL != ""},
		{"linkedin_url", p.LinkedinURL != ""},
		{"website_url", p.WebsiteURL != ""},
	}

	done := 0
	missing := make([]string, 0)
	for _, c := range checks {
		if c.ok {
			done++
			continue
		}
		missing = append(missing, c.name)
	}

	pct := int(math.Round(float64(done) / completionFields * 100))
	return Completion{Percentage: pct, Badge: BadgeFor(pct), Missing: missing}
}

func BadgeFor(pct int) Badge {
	switch {
	case pct >= 80:
		return BadgeDefault
	case pct >= 60:
		return BadgeSecondary
	default:
		return BadgeDestructive
	}
}
