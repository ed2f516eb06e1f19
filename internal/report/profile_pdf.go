// Package report renders downloadable documents for recruiters.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"lazyintern/internal/domain/student"

	"github.com/go-pdf/fpdf"
)

const (
	ContentTypePDF = "application/pdf"

	margin   = 20.0
	indent   = 5.0
	fontFace = "Helvetica"
)

type profileDoc struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	width float64
}

// StudentProfile writes a PDF summary of p: header, contact, about,
// internship preferences, skills, projects, certifications and links. Every
// page carries a footer with the generation date, view count and page number.
func StudentProfile(w io.Writer, p student.Profile, generatedAt time.Time) error {
	return build(p, generatedAt).Output(w)
}

func build(p student.Profile, generatedAt time.Time) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetCreationDate(generatedAt)
	pdf.SetTitle(displayName(p)+" - Profile Summary", true)
	pdf.AliasNbPages("")

	pageW, _ := pdf.GetPageSize()
	d := profileDoc{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), width: pageW - 2*margin}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFace, "", 8)
		pdf.SetTextColor(128, 128, 128)
		footer := fmt.Sprintf("Generated on %s | Profile Views: %d", generatedAt.Format("Jan 2, 2006"), p.ProfileViews)
		pdf.CellFormat(d.width/2, 5, d.tr(footer), "", 0, "L", false, 0, "")
		pdf.CellFormat(d.width/2, 5, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFillColor(59, 130, 246)
	pdf.Rect(0, 0, pageW, 30, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont(fontFace, "B", 20)
	pdf.Text(margin, 20, "Student Profile Summary")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(38)

	d.title(displayName(p))
	d.text(12, "", headline(p))
	if p.Location != "" {
		d.text(12, "", "Location: "+p.Location)
	}
	pdf.Ln(4)

	if p.Email != "" || p.Phone != "" {
		d.section("Contact Information")
		d.lineIf("Email: ", p.Email)
		d.lineIf("Phone: ", p.Phone)
		pdf.Ln(4)
	}

	if p.Bio != "" {
		d.section("About")
		d.wrapped(0, p.Bio)
		pdf.Ln(4)
	}

	locations := p.PreferredLocations
	if len(locations) == 0 && p.PreferredLocation != "" {
		locations = []string{p.PreferredLocation}
	}
	if p.InternshipTypePreference != "" || len(locations) > 0 || p.OpenToRelocate {
		d.section("Internship Preferences")
		d.lineIf("Internship Type: ", internshipLabel(p.InternshipTypePreference))
		d.lineIf("Preferred Locations: ", strings.Join(locations, ", "))
		if p.OpenToRelocate {
			d.text(10, "", "Open to Relocate: Yes")
		}
		pdf.Ln(4)
	}

	if len(p.Skills) > 0 {
		d.section("Skills & Technologies")
		d.wrapped(0, strings.Join(p.Skills, ", "))
		pdf.Ln(4)
	}

	if len(p.Projects) > 0 {
		d.section("Projects")
		for i, pr := range p.Projects {
			d.text(12, "B", fmt.Sprintf("%d. %s", i+1, pr.Title))
			if pr.Description != "" {
				d.wrapped(indent, pr.Description)
			}
			if len(pr.Technologies) > 0 {
				d.indented("I", "Technologies: "+strings.Join(pr.Technologies, ", "))
			}
			if pr.VideoURL != "" {
				d.indented("", "- Video demonstration available")
			}
			pdf.Ln(2)
		}
		pdf.Ln(3)
	}

	if len(p.Certifications) > 0 {
		d.section("Certifications")
		for i, c := range p.Certifications {
			d.text(12, "B", fmt.Sprintf("%d. %s", i+1, c.Name))
			if c.IssuingOrganization != "" {
				d.indented("", "Issued by: "+c.IssuingOrganization)
			}
			if c.IssueDate != "" {
				d.indented("", "Issue Date: "+c.IssueDate)
			}
			if c.CredentialID != "" {
				d.indented("", "Credential ID: "+c.CredentialID)
			}
			pdf.Ln(2)
		}
		pdf.Ln(3)
	}

	if p.GithubURL != "" || p.LinkedinURL != "" || p.WebsiteURL != "" || len(p.WebsiteURLs) > 0 {
		d.section("Professional Links")
		d.lineIf("GitHub: ", p.GithubURL)
		d.lineIf("LinkedIn: ", p.LinkedinURL)
		n := 0
		for _, u := range p.WebsiteURLs {
			if u = strings.TrimSpace(u); u != "" {
				n++
				d.text(10, "", fmt.Sprintf("Website %d: %s", n, u))
			}
		}
		d.lineIf("Portfolio: ", p.WebsiteURL)
	}

	return pdf
}

// ProfileFilename is the download name for a student's summary.
func ProfileFilename(name string) string {
	base := strings.Join(strings.Fields(name), "_")
	if base == "" {
		base = "Student"
	}
	return base + "_Profile_Summary.pdf"
}

func (d profileDoc) title(s string) {
	d.pdf.SetFont(fontFace, "B", 18)
	d.pdf.CellFormat(d.width, 9, d.tr(s), "", 1, "L", false, 0, "")
}

func (d profileDoc) section(s string) {
	d.pdf.SetFont(fontFace, "B", 14)
	d.pdf.CellFormat(d.width, 8, d.tr(s), "", 1, "L", false, 0, "")
}

func (d profileDoc) text(size float64, style, s string) {
	d.pdf.SetFont(fontFace, style, size)
	d.pdf.CellFormat(d.width, size*0.5, d.tr(s), "", 1, "L", false, 0, "")
}

func (d profileDoc) lineIf(label, value string) {
	if value != "" {
		d.text(10, "", label+value)
	}
}

func (d profileDoc) indented(style, s string) {
	d.pdf.SetFont(fontFace, style, 10)
	d.pdf.SetX(margin + indent)
	d.pdf.MultiCell(d.width-indent, 5, d.tr(s), "", "L", false)
}

func (d profileDoc) wrapped(offset float64, s string) {
	d.pdf.SetFont(fontFace, "", 10)
	d.pdf.SetX(margin + offset)
	d.pdf.MultiCell(d.width-offset, 5, d.tr(s), "", "L", false)
}

func displayName(p student.Profile) string {
	if strings.TrimSpace(p.Name) == "" {
		return "Student Name"
	}
	return p.Name
}

func headline(p student.Profile) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.Major, p.University} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if p.GraduationYear != "" {
		parts = append(parts, "Class of "+p.GraduationYear)
	}
	return strings.Join(parts, " | ")
}

func internshipLabel(t student.InternshipType) string {
	switch t {
	case student.InternshipPaid:
		return "Paid Only"
	case student.InternshipUnpaid:
		return "Unpaid Only"
	case student.InternshipBoth:
		return "Both Paid & Unpaid"
	default:
		return string(t)
	}
}
