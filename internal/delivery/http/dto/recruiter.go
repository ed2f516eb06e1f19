package dto

import (
	"lazyintern/internal/domain/recruiter"
	"lazyintern/internal/search"

	"github.com/google/uuid"
)

type RecruiterProfileRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Phone       string `json:"phone" validate:"max=40"`
	CompanyName string `json:"company_name" validate:"required,max=200"`
	Position    string `json:"position" validate:"max=200"`
	Location    string `json:"location" validate:"max=200"`
}

type RecruiterResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	CompanyName string    `json:"company_name"`
	Position    string    `json:"position"`
	Location    string    `json:"location"`
}

func NewRecruiterResponse(p recruiter.Profile) RecruiterResponse {
	return RecruiterResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Email:       p.Email,
		Phone:       p.Phone,
		CompanyName: p.CompanyName,
		Position:    p.Position,
		Location:    p.Location,
	}
}

type BookmarkRequest struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
}

type BookmarkStatusResponse struct {
	Bookmarked bool `json:"bookmarked"`
}

type StudentListResponse struct {
	Students         []StudentResponse `json:"students"`
	Total            int               `json:"total"`
	Matched          int               `json:"matched"`
	HasActiveFilters bool              `json:"has_active_filters"`
}

type StatsResponse struct {
	TotalStudents int `json:"total_students"`
	Bookmarks     int `json:"bookmarks"`
	ProfileViews  int `json:"profile_views"`
}

type AISearchRequest struct {
	Query string `json:"query" validate:"required,max=500"`
	Tab   string `json:"tab" validate:"omitempty,oneof=all bookmarks"`
}

type CriteriaResponse struct {
	Major           string   `json:"major"`
	Skills          string   `json:"skills"`
	ProjectSkills   string   `json:"project_skills"`
	Location        string   `json:"location"`
	GraduationYears []string `json:"graduation_years"`
	InternshipType  string   `json:"internship_type"`
}

func NewCriteriaResponse(c search.Criteria) CriteriaResponse {
	years := c.GraduationYears
	if years == nil {
		years = []string{}
	}
	return CriteriaResponse{
		Major:           c.Major,
		Skills:          c.Skills,
		ProjectSkills:   c.ProjectSkills,
		Location:        c.Location,
		GraduationYears: years,
		InternshipType:  string(c.InternshipType),
	}
}

type AISearchResponse struct {
	Criteria CriteriaResponse `json:"criteria"`
	StudentListResponse
}
