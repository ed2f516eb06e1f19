package report

import (
	"bytes"
	"testing"
	"time"

	"lazyintern/internal/domain/student"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generated = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestStudentProfile_Full(t *testing.T) {
	p := student.Profile{
		Name:                     "Zoë Adams",
		Email:                    "zoe@uni.test",
		Phone:                    "555-0100",
		University:               "State University",
		Major:                    "Computer Science",
		GraduationYear:           "2026",
		Location:                 "Boston",
		Bio:                      "Builds realtime systems and likes compilers.",
		Skills:                   []string{"Go", "React", "PostgreSQL"},
		PreferredLocations:       []string{"Remote", "NYC"},
		OpenToRelocate:           true,
		InternshipTypePreference: student.InternshipBoth,
		GithubURL:                "https://github.com/zoe",
		WebsiteURLs:              []string{"https://zoe.dev", " "},
		ProfileViews:             7,
		Projects: []student.Project{
			{Title: "Chat App", Description: "Websocket chat", Technologies: []string{"Go", "Redis"}, VideoURL: "https://cdn/v.mp4"},
		},
		Certifications: []student.Certification{
			{Name: "AWS Cloud Practitioner", IssuingOrganization: "Amazon", IssueDate: "2025-01-10", CredentialID: "ABC"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, StudentProfile(&buf, p, generated))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "%%EOF")
}

func TestStudentProfile_EmptyProfile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, StudentProfile(&buf, student.Profile{}, generated))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestStudentProfile_ManyProjectsPaginate(t *testing.T) {
	p := student.Profile{Name: "Ada"}
	for i := 0; i < 60; i++ {
		p.Projects = append(p.Projects, student.Project{Title: "Project", Description: "A fairly long description that wraps onto another line in the document body."})
	}

	assert.Equal(t, 1, build(student.Profile{Name: "Ada"}, generated).PageCount())

	doc := build(p, generated)
	require.NoError(t, doc.Error())
	assert.Greater(t, doc.PageCount(), 1)
}

func TestProfileFilename(t *testing.T) {
	assert.Equal(t, "Ada_Lovelace_Profile_Summary.pdf", ProfileFilename(" Ada  Lovelace "))
	assert.Equal(t, "Student_Profile_Summary.pdf", ProfileFilename(""))
}

func TestHeadlineAndLabels(t *testing.T) {
	assert.Equal(t, "CS | MIT | Class of 2025", headline(student.Profile{Major: "CS", University: "MIT", GraduationYear: "2025"}))
	assert.Equal(t, "MIT", headline(student.Profile{University: "MIT"}))
	assert.Equal(t, "Paid Only", internshipLabel(student.InternshipPaid))
	assert.Equal(t, "", internshipLabel(""))
}
