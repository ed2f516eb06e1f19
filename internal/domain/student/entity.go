package student

import (
	"time"

	"github.com/google/uuid"
)

type InternshipType string

const (
	InternshipPaid   InternshipType = "paid"
	InternshipUnpaid InternshipType = "unpaid"
	InternshipBoth   InternshipType = "both"
)

// Valid reports whether t is a known preference. The empty value means
// "not set" and is valid.
func (t InternshipType) Valid() bool {
	switch t {
	case "", InternshipPaid, InternshipUnpaid, InternshipBoth:
		return true
	default:
		return false
	}
}

type Project struct {
	ID           uuid.UUID
	StudentID    uuid.UUID
	Title        string
	Description  string
	Technologies []string
	VideoURL     string
	CreatedAt    time.Time
}

type Certification struct {
	ID                  uuid.UUID
	StudentID           uuid.UUID
	Name                string
	IssuingOrganization string
	IssueDate           string
	ExpiryDate          string
	CredentialID        string
	CredentialURL       string
	FileURL             string
	Filename            string
	CreatedAt           time.Time
}

// Profile is a student record as recruiters see it. Empty strings and nil
// slices stand for absent values.
type Profile struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Name       string
	Email      string
	Phone      string
	University string
	Major      string
	Bio        string

	GraduationYear string

	Location           string
	PreferredLocations []string
	// PreferredLocation is the legacy single-location field. It only counts
	// when PreferredLocations is empty.
	PreferredLocation string
	OpenToRelocate    bool

	InternshipTypePreference InternshipType

	GithubURL   string
	WebsiteURL  string
	LinkedinURL string
	WebsiteURLs []string

	Skills         []string
	Projects       []Project
	Certifications []Certification

	ResumeURL      string
	ResumeFilename string
	ProfileViews   int

	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
