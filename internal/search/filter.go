package search

import (
	"strings"

	"lazyintern/internal/domain/student"
)

type Result struct {
	Students         []student.Profile
	Total            int
	Matched          int
	HasActiveFilters bool
}

// Apply runs Filter and reports the counts dashboards display next to the list.
func Apply(candidates []student.Profile, c Criteria) Result {
	out := Filter(candidates, c)
	return Result{
		Students:         out,
		Total:            len(candidates),
		Matched:          len(out),
		HasActiveFilters: c.HasActive(),
	}
}

// Filter returns the candidates that satisfy every active criterion, in input
// order. Neither argument is modified.
func Filter(candidates []student.Profile, c Criteria) []student.Profile {
	m := newMatcher(c)
	out := make([]student.Profile, 0, len(candidates))
	for i := range candidates {
		if m.match(&candidates[i]) {
			out = append(out, candidates[i])
		}
	}
	return out
}

type matcher struct {
	major          string
	skills         []string
	projectSkills  []string
	location       []string
	years          map[string]struct{}
	internshipType student.InternshipType

	skillsActive   bool
	projectsActive bool
	locationActive bool
}

func newMatcher(c Criteria) matcher {
	return matcher{
		major:          strings.ToLower(c.Major),
		skills:         Tokenize(c.Skills),
		projectSkills:  Tokenize(c.ProjectSkills),
		location:       Tokenize(c.Location),
		years:          c.years(),
		internshipType: c.InternshipType,
		skillsActive:   c.Skills != "",
		projectsActive: c.ProjectSkills != "",
		locationActive: c.Location != "",
	}
}

func (m matcher) match(p *student.Profile) bool {
	if m.major != "" && !strings.Contains(strings.ToLower(p.Major), m.major) {
		return false
	}
	if m.skillsActive && !anyContainsAny(p.Skills, m.skills) {
		return false
	}
	if m.projectsActive && !matchProjects(p.Projects, m.projectSkills) {
		return false
	}
	if m.locationActive && !matchLocation(p, m.location) {
		return false
	}
	if len(m.years) > 0 {
		if _, ok := m.years[p.GraduationYear]; !ok {
			return false
		}
	}
	if m.internshipType != "" && !matchInternship(p.InternshipTypePreference, m.internshipType) {
		return false
	}
	return true
}

func matchProjects(projects []student.Project, tokens []string) bool {
	for _, pr := range projects {
		if containsAny(pr.Title, tokens) ||
			containsAny(pr.Description, tokens) ||
			anyContainsAny(pr.Technologies, tokens) {
			return true
		}
	}
	return false
}

func matchLocation(p *student.Profile, tokens []string) bool {
	if containsAny(p.Location, tokens) {
		return true
	}
	if len(p.PreferredLocations) > 0 {
		return anyContainsAny(p.PreferredLocations, tokens)
	}
	return containsAny(p.PreferredLocation, tokens)
}

// "both" on the candidate side always passes; "both" as the filter value
// shows everyone.
func matchInternship(pref, want student.InternshipType) bool {
	if pref == student.InternshipBoth || want == student.InternshipBoth {
		return true
	}
	return pref == want
}
