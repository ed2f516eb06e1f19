package search

import (
	"strings"

	"lazyintern/internal/domain/student"
)

// Criteria is one snapshot of the recruiter's filter controls. The zero
// value has no active filter.
type Criteria struct {
	Major          string
	Skills         string
	ProjectSkills  string
	Location       string
	InternshipType student.InternshipType

	// GraduationYears is a set; a single year is a one-element set.
	GraduationYears []string
}

func (c Criteria) HasActive() bool {
	return c.Major != "" ||
		c.Skills != "" ||
		c.ProjectSkills != "" ||
		c.Location != "" ||
		c.InternshipType != "" ||
		len(c.years()) > 0
}

func (c *Criteria) Clear() {
	*c = Criteria{}
}

func (c Criteria) years() map[string]struct{} {
	var set map[string]struct{}
	for _, y := range c.GraduationYears {
		y = strings.TrimSpace(y)
		if y == "" {
			continue
		}
		if set == nil {
			set = make(map[string]struct{}, len(c.GraduationYears))
		}
		set[y] = struct{}{}
	}
	return set
}
