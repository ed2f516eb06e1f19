package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"lazyintern/internal/domain/student"
	"lazyintern/internal/pkg/session"
	"lazyintern/internal/search"

	"go.uber.org/zap"
)

const vocabularyLimit = 100

// JSONGenerator answers a prompt with a JSON document.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, system, prompt string) (string, error)
}

type AISearchResult struct {
	Criteria search.Criteria
	search.Result
}

type AISearchUsecase interface {
	Search(ctx context.Context, s session.Session, tab Tab, query string) (AISearchResult, error)
}

// AISearch translates a recruiter's plain-language query into filter
// criteria and runs them through the dashboard.
type AISearch struct {
	dashboard DashboardUsecase
	store     *ProfileStore
	gen       JSONGenerator
	logger    *zap.Logger
}

func NewAISearchUsecase(dashboard DashboardUsecase, store *ProfileStore, gen JSONGenerator, logger *zap.Logger) *AISearch {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AISearch{dashboard: dashboard, store: store, gen: gen, logger: logger}
}

func (u *AISearch) Search(ctx context.Context, s session.Session, tab Tab, query string) (AISearchResult, error) {
	if !s.IsRecruiter() {
		return AISearchResult{}, ErrForbidden
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return AISearchResult{}, ErrInvalidInput
	}
	if u.gen == nil {
		return AISearchResult{}, ErrAISearchUnavailable
	}

	all, err := u.store.All(ctx)
	if err != nil {
		u.logger.Error("load vocabulary failed", zap.Error(err))
		return AISearchResult{}, ErrInternal
	}
	skills, techs := vocabulary(all)

	raw, err := u.gen.GenerateJSON(ctx, criteriaPrompt(skills, techs), query)
	if err != nil {
		u.logger.Warn("ai criteria generation failed", zap.Error(err))
		return AISearchResult{}, ErrAISearchFailed
	}
	var ac aiCriteria
	if err := json.Unmarshal([]byte(raw), &ac); err != nil {
		u.logger.Warn("ai criteria not valid json", zap.String("raw", raw), zap.Error(err))
		return AISearchResult{}, ErrAISearchFailed
	}

	c := ac.criteria()
	res, err := u.dashboard.ListStudents(ctx, s, tab, c)
	if err != nil {
		return AISearchResult{}, err
	}
	u.logger.Info("ai search", zap.String("query", query), zap.Int("matched", res.Matched))
	return AISearchResult{Criteria: c, Result: res}, nil
}

// aiCriteria is the JSON shape the model is asked to produce.
type aiCriteria struct {
	Skills              []string `json:"skills"`
	ProjectTechnologies []string `json:"projectTechnologies"`
	ProjectSearchTerm   string   `json:"projectSearchTerm"`
	Major               string   `json:"major"`
	GraduationYears     []string `json:"graduationYears"`
	GraduationYear      string   `json:"graduationYear"`
	Location            string   `json:"location"`
	InternshipType      string   `json:"internshipType"`
}

func (a aiCriteria) criteria() search.Criteria {
	project := cleanList(a.ProjectTechnologies)
	if t := strings.TrimSpace(a.ProjectSearchTerm); t != "" {
		project = append(project, t)
	}

	years := cleanList(append(a.GraduationYears, a.GraduationYear))

	it := student.InternshipType(strings.ToLower(strings.TrimSpace(a.InternshipType)))
	if !it.Valid() {
		it = ""
	}

	return search.Criteria{
		Major:           strings.TrimSpace(a.Major),
		Skills:          strings.Join(cleanList(a.Skills), ", "),
		ProjectSkills:   strings.Join(project, ", "),
		Location:        strings.TrimSpace(a.Location),
		GraduationYears: years,
		InternshipType:  it,
	}
}

// vocabulary lists distinct skills and project technologies in first-seen
// order, capped at vocabularyLimit each.
func vocabulary(ps []student.Profile) (skills, techs []string) {
	seenS := map[string]bool{}
	seenT := map[string]bool{}
	add := func(out []string, seen map[string]bool, v string) []string {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" || seen[key] || len(out) >= vocabularyLimit {
			return out
		}
		seen[key] = true
		return append(out, strings.TrimSpace(v))
	}
	for _, p := range ps {
		for _, sk := range p.Skills {
			skills = add(skills, seenS, sk)
		}
		for _, pr := range p.Projects {
			for _, t := range pr.Technologies {
				techs = add(techs, seenT, t)
			}
		}
	}
	return skills, techs
}

func criteriaPrompt(skills, techs []string) string {
	s, _ := json.Marshal(nonNilStrings(skills))
	t, _ := json.Marshal(nonNilStrings(techs))
	return fmt.Sprintf(`You convert natural language recruitment queries into structured student search criteria.

Available skills: %s
Available project technologies: %s

Answer with one JSON object with these fields:
{
  "skills": string[]               relevant skills from the available skills list,
  "projectTechnologies": string[]  relevant technologies from the available technologies list,
  "projectSearchTerm": string      words describing the kind of project wanted,
  "major": string                  field of study if mentioned,
  "graduationYears": string[]      graduation years if mentioned, e.g. ["2025"],
  "location": string               city, region or "remote" if mentioned,
  "internshipType": string         "paid", "unpaid", "both" or ""
}

Only use skills and technologies from the lists or very close matches (JS -> JavaScript, ML -> Machine Learning).
Leave a field empty when the query does not mention it. Return only JSON.`, s, t)
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
