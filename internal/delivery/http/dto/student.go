package dto

import (
	"time"

	"lazyintern/internal/domain/student"

	"github.com/google/uuid"
)

type StudentProfileRequest struct {
	Name                     string   `json:"name" validate:"required,max=120"`
	Phone                    string   `json:"phone" validate:"max=40"`
	University               string   `json:"university" validate:"max=200"`
	Major                    string   `json:"major" validate:"max=200"`
	GraduationYear           string   `json:"graduation_year" validate:"omitempty,numeric,len=4"`
	Bio                      string   `json:"bio" validate:"max=2000"`
	Location                 string   `json:"location" validate:"max=200"`
	GithubURL                string   `json:"github_url" validate:"omitempty,url"`
	WebsiteURL               string   `json:"website_url" validate:"omitempty,url"`
	LinkedinURL              string   `json:"linkedin_url" validate:"omitempty,url"`
	WebsiteURLs              []string `json:"website_urls" validate:"max=10,dive,omitempty,url"`
	InternshipTypePreference string   `json:"internship_type_preference" validate:"omitempty,oneof=paid unpaid both"`
	PreferredLocation        string   `json:"preferred_location" validate:"max=200"`
	PreferredLocations       []string `json:"preferred_locations" validate:"max=20"`
	OpenToRelocate           bool     `json:"open_to_relocate"`
	Skills                   []string `json:"skills" validate:"max=50"`
}

type ProjectRequest struct {
	Title        string   `json:"title" validate:"required,max=200"`
	Description  string   `json:"description" validate:"max=4000"`
	Technologies []string `json:"technologies" validate:"max=30"`
	VideoURL     string   `json:"video_url" validate:"omitempty,url"`
}

type ProjectsRequest struct {
	Projects []ProjectRequest `json:"projects" validate:"max=50,dive"`
}

func (r ProjectsRequest) Domain() []student.Project {
	out := make([]student.Project, 0, len(r.Projects))
	for _, p := range r.Projects {
		out = append(out, student.Project{
			Title:        p.Title,
			Description:  p.Description,
			Technologies: p.Technologies,
			VideoURL:     p.VideoURL,
		})
	}
	return out
}

type CertificationRequest struct {
	Name                string `json:"name" validate:"required,max=200"`
	IssuingOrganization string `json:"issuing_organization" validate:"max=200"`
	IssueDate           string `json:"issue_date" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate          string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	CredentialID        string `json:"credential_id" validate:"max=200"`
	CredentialURL       string `json:"credential_url" validate:"omitempty,url"`
	FileURL             string `json:"file_url" validate:"omitempty,url"`
	Filename            string `json:"filename" validate:"max=255"`
}

type CertificationsRequest struct {
	Certifications []CertificationRequest `json:"certifications" validate:"max=50,dive"`
}

func (r CertificationsRequest) Domain() []student.Certification {
	out := make([]student.Certification, 0, len(r.Certifications))
	for _, c := range r.Certifications {
		out = append(out, student.Certification{
			Name:                c.Name,
			IssuingOrganization: c.IssuingOrganization,
			IssueDate:           c.IssueDate,
			ExpiryDate:          c.ExpiryDate,
			CredentialID:        c.CredentialID,
			CredentialURL:       c.CredentialURL,
			FileURL:             c.FileURL,
			Filename:            c.Filename,
		})
	}
	return out
}

type ProjectResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	VideoURL     string    `json:"video_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewProjectResponses(in []student.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(in))
	for _, p := range in {
		out = append(out, ProjectResponse{
			ID:           p.ID,
			Title:        p.Title,
			Description:  p.Description,
			Technologies: nonNil(p.Technologies),
			VideoURL:     p.VideoURL,
			CreatedAt:    p.CreatedAt,
		})
	}
	return out
}

type CertificationResponse struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	IssuingOrganization string    `json:"issuing_organization"`
	IssueDate           string    `json:"issue_date,omitempty"`
	ExpiryDate          string    `json:"expiry_date,omitempty"`
	CredentialID        string    `json:"credential_id,omitempty"`
	CredentialURL       string    `json:"credential_url,omitempty"`
	FileURL             string    `json:"file_url,omitempty"`
	Filename            string    `json:"filename,omitempty"`
}

func NewCertificationResponses(in []student.Certification) []CertificationResponse {
	out := make([]CertificationResponse, 0, len(in))
	for _, c := range in {
		out = append(out, CertificationResponse{
			ID:                  c.ID,
			Name:                c.Name,
			IssuingOrganization: c.IssuingOrganization,
			IssueDate:           c.IssueDate,
			ExpiryDate:          c.ExpiryDate,
			CredentialID:        c.CredentialID,
			CredentialURL:       c.CredentialURL,
			FileURL:             c.FileURL,
			Filename:            c.Filename,
		})
	}
	return out
}

type StudentResponse struct {
	ID                       uuid.UUID               `json:"id"`
	UserID                   uuid.UUID               `json:"user_id"`
	Name                     string                  `json:"name"`
	Email                    string                  `json:"email"`
	Phone                    string                  `json:"phone"`
	University               string                  `json:"university"`
	Major                    string                  `json:"major"`
	GraduationYear           string                  `json:"graduation_year"`
	Bio                      string                  `json:"bio"`
	Location                 string                  `json:"location"`
	PreferredLocations       []string                `json:"preferred_locations"`
	PreferredLocation        string                  `json:"preferred_location"`
	OpenToRelocate           bool                    `json:"open_to_relocate"`
	InternshipTypePreference string                  `json:"internship_type_preference"`
	GithubURL                string                  `json:"github_url"`
	WebsiteURL               string                  `json:"website_url"`
	LinkedinURL              string                  `json:"linkedin_url"`
	WebsiteURLs              []string                `json:"website_urls"`
	Skills                   []string                `json:"skills"`
	Projects                 []ProjectResponse       `json:"projects"`
	Certifications           []CertificationResponse `json:"certifications"`
	ResumeURL                string                  `json:"resume_url"`
	ResumeFilename           string                  `json:"resume_filename"`
	ProfileViews             int                     `json:"profile_views"`
	LastLoginAt              *time.Time              `json:"last_login_at"`
	UpdatedAt                time.Time               `json:"updated_at"`
}

func NewStudentResponse(p student.Profile) StudentResponse {
	return StudentResponse{
		ID:                       p.ID,
		UserID:                   p.UserID,
		Name:                     p.Name,
		Email:                    p.Email,
		Phone:                    p.Phone,
		University:               p.University,
		Major:                    p.Major,
		GraduationYear:           p.GraduationYear,
		Bio:                      p.Bio,
		Location:                 p.Location,
		PreferredLocations:       nonNil(p.PreferredLocations),
		PreferredLocation:        p.PreferredLocation,
		OpenToRelocate:           p.OpenToRelocate,
		InternshipTypePreference: string(p.InternshipTypePreference),
		GithubURL:                p.GithubURL,
		WebsiteURL:               p.WebsiteURL,
		LinkedinURL:              p.LinkedinURL,
		WebsiteURLs:              nonNil(p.WebsiteURLs),
		Skills:                   nonNil(p.Skills),
		Projects:                 NewProjectResponses(p.Projects),
		Certifications:           NewCertificationResponses(p.Certifications),
		ResumeURL:                p.ResumeURL,
		ResumeFilename:           p.ResumeFilename,
		ProfileViews:             p.ProfileViews,
		LastLoginAt:              p.LastLoginAt,
		UpdatedAt:                p.UpdatedAt,
	}
}

func NewStudentResponses(in []student.Profile) []StudentResponse {
	out := make([]StudentResponse, 0, len(in))
	for _, p := range in {
		out = append(out, NewStudentResponse(p))
	}
	return out
}

type CompletionResponse struct {
	Percentage int      `json:"percentage"`
	Badge      string   `json:"badge"`
	Missing    []string `json:"missing"`
}

type UploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
