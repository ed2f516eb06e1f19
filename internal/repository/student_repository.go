package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lazyintern/internal/database"
	"lazyintern/internal/domain/student"

	"github.com/google/uuid"
)

var ErrStudentNotFound = errors.New("student not found")

type StudentRepository interface {
	// ListAll returns every student with projects loaded, most recently
	// active first.
	ListAll(ctx context.Context) ([]student.Profile, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]student.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (student.Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (student.Profile, error)
	Upsert(ctx context.Context, p student.Profile) (student.Profile, error)
	ReplaceProjects(ctx context.Context, studentID uuid.UUID, projects []student.Project) ([]student.Project, error)
	ReplaceCertifications(ctx context.Context, studentID uuid.UUID, certs []student.Certification) ([]student.Certification, error)
	UpdateResume(ctx context.Context, studentID uuid.UUID, url, filename string) error
	Count(ctx context.Context) (int, error)
}

type PostgresStudentRepository struct {
	db database.DB
}

func NewPostgresStudentRepository(db database.DB) *PostgresStudentRepository {
	return &PostgresStudentRepository{db: db}
}

const studentSelect = `SELECT sp.id, sp.user_id, u.name, u.email, sp.phone, sp.university, sp.major,
	sp.graduation_year, sp.bio, sp.location, sp.github_url, sp.website_url, sp.linkedin_url,
	sp.multiple_website_urls, sp.internship_type_preference, sp.preferred_internship_location,
	sp.preferred_locations, sp.open_to_relocate, sp.skills, sp.profile_views,
	sp.resume_url, sp.resume_filename, u.last_login_at, sp.created_at, sp.updated_at
	FROM student_profiles sp
	JOIN users u ON u.id = sp.user_id`

const studentOrder = ` ORDER BY u.last_login_at DESC NULLS LAST, sp.created_at DESC`

func (r *PostgresStudentRepository) ListAll(ctx context.Context) ([]student.Profile, error) {
	return r.list(ctx, studentSelect+studentOrder)
}

func (r *PostgresStudentRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]student.Profile, error) {
	if len(ids) == 0 {
		return []student.Profile{}, nil
	}
	q := studentSelect + ` WHERE sp.id IN (` + placeholders(1, len(ids)) + `)` + studentOrder
	return r.list(ctx, q, uuidArgs(ids)...)
}

func (r *PostgresStudentRepository) list(ctx context.Context, q string, args ...any) ([]student.Profile, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]student.Profile, 0)
	for rows.Next() {
		p, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if len(out) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, 0, len(out))
	for _, p := range out {
		ids = append(ids, p.ID)
	}
	projects, err := r.projectsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Projects = projects[out[i].ID]
	}
	return out, nil
}

func (r *PostgresStudentRepository) GetByID(ctx context.Context, id uuid.UUID) (student.Profile, error) {
	return r.getOne(ctx, studentSelect+` WHERE sp.id = $1`, id)
}

func (r *PostgresStudentRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (student.Profile, error) {
	return r.getOne(ctx, studentSelect+` WHERE sp.user_id = $1`, userID)
}

func (r *PostgresStudentRepository) getOne(ctx context.Context, q string, arg any) (student.Profile, error) {
	p, err := scanStudent(r.db.QueryRow(ctx, q, arg))
	if err != nil {
		if database.IsNoRows(err) {
			return student.Profile{}, ErrStudentNotFound
		}
		return student.Profile{}, err
	}

	projects, err := r.projectsFor(ctx, []uuid.UUID{p.ID})
	if err != nil {
		return student.Profile{}, err
	}
	p.Projects = projects[p.ID]

	certs, err := r.certificationsFor(ctx, p.ID)
	if err != nil {
		return student.Profile{}, err
	}
	p.Certifications = certs
	return p, nil
}

// Upsert writes the profile row keyed by user id and, when set, the display
// name on the owning user.
func (r *PostgresStudentRepository) Upsert(ctx context.Context, p student.Profile) (student.Profile, error) {
	skills, err := marshalStrings(p.Skills)
	if err != nil {
		return student.Profile{}, err
	}
	prefs, err := marshalStrings(p.PreferredLocations)
	if err != nil {
		return student.Profile{}, err
	}
	sites, err := marshalStrings(p.WebsiteURLs)
	if err != nil {
		return student.Profile{}, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return student.Profile{}, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if name := strings.TrimSpace(p.Name); name != "" {
		if _, err := tx.Exec(ctx, `UPDATE users SET name = $2, updated_at = now() WHERE id = $1`, p.UserID, name); err != nil {
			return student.Profile{}, err
		}
	}

	var id uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO student_profiles (
			id, user_id, phone, university, major, graduation_year, bio, location,
			github_url, website_url, linkedin_url, multiple_website_urls,
			internship_type_preference, preferred_internship_location, preferred_locations,
			open_to_relocate, skills
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (user_id) DO UPDATE SET
			phone = EXCLUDED.phone,
			university = EXCLUDED.university,
			major = EXCLUDED.major,
			graduation_year = EXCLUDED.graduation_year,
			bio = EXCLUDED.bio,
			location = EXCLUDED.location,
			github_url = EXCLUDED.github_url,
			website_url = EXCLUDED.website_url,
			linkedin_url = EXCLUDED.linkedin_url,
			multiple_website_urls = EXCLUDED.multiple_website_urls,
			internship_type_preference = EXCLUDED.internship_type_preference,
			preferred_internship_location = EXCLUDED.preferred_internship_location,
			preferred_locations = EXCLUDED.preferred_locations,
			open_to_relocate = EXCLUDED.open_to_relocate,
			skills = EXCLUDED.skills,
			updated_at = now()
		RETURNING id`,
		uuid.New(), p.UserID, p.Phone, p.University, p.Major, p.GraduationYear, p.Bio, p.Location,
		p.GithubURL, p.WebsiteURL, p.LinkedinURL, sites,
		string(p.InternshipTypePreference), p.PreferredLocation, prefs,
		p.OpenToRelocate, skills,
	).Scan(&id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return student.Profile{}, ErrStudentNotFound
		}
		return student.Profile{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return student.Profile{}, fmt.Errorf("commit: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *PostgresStudentRepository) ReplaceProjects(ctx context.Context, studentID uuid.UUID, projects []student.Project) ([]student.Project, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM student_projects WHERE student_id = $1`, studentID); err != nil {
		return nil, err
	}

	out := make([]student.Project, 0, len(projects))
	for _, pr := range projects {
		tech, err := marshalStrings(pr.Technologies)
		if err != nil {
			return nil, err
		}
		pr.ID = uuid.New()
		pr.StudentID = studentID
		err = tx.QueryRow(ctx,
			`INSERT INTO student_projects (id, student_id, title, description, technologies, video_url)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING created_at`,
			pr.ID, studentID, pr.Title, pr.Description, tech, pr.VideoURL,
		).Scan(&pr.CreatedAt)
		if err != nil {
			if database.IsForeignKeyViolation(err) {
				return nil, ErrStudentNotFound
			}
			return nil, err
		}
		if pr.Technologies == nil {
			pr.Technologies = []string{}
		}
		out = append(out, pr)
	}

	if _, err := tx.Exec(ctx, `UPDATE student_profiles SET updated_at = now() WHERE id = $1`, studentID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return out, nil
}

func (r *PostgresStudentRepository) ReplaceCertifications(ctx context.Context, studentID uuid.UUID, certs []student.Certification) ([]student.Certification, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM student_certifications WHERE student_id = $1`, studentID); err != nil {
		return nil, err
	}

	out := make([]student.Certification, 0, len(certs))
	for _, c := range certs {
		c.ID = uuid.New()
		c.StudentID = studentID
		err := tx.QueryRow(ctx,
			`INSERT INTO student_certifications (
				id, student_id, certification_name, issuing_organization, issue_date, expiry_date,
				credential_id, credential_url, certificate_file_url, certificate_filename
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING created_at`,
			c.ID, studentID, c.Name, c.IssuingOrganization, c.IssueDate, c.ExpiryDate,
			c.CredentialID, c.CredentialURL, c.FileURL, c.Filename,
		).Scan(&c.CreatedAt)
		if err != nil {
			if database.IsForeignKeyViolation(err) {
				return nil, ErrStudentNotFound
			}
			return nil, err
		}
		out = append(out, c)
	}

	if _, err := tx.Exec(ctx, `UPDATE student_profiles SET updated_at = now() WHERE id = $1`, studentID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return out, nil
}

func (r *PostgresStudentRepository) UpdateResume(ctx context.Context, studentID uuid.UUID, url, filename string) error {
	n, err := r.db.Exec(ctx,
		`UPDATE student_profiles SET resume_url = $2, resume_filename = $3, updated_at = now() WHERE id = $1`,
		studentID, url, filename,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStudentNotFound
	}
	return nil
}

func (r *PostgresStudentRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM student_profiles`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresStudentRepository) projectsFor(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]student.Project, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, student_id, title, description, technologies, video_url, created_at
		 FROM student_projects
		 WHERE student_id IN (`+placeholders(1, len(ids))+`)
		 ORDER BY created_at ASC, id ASC`,
		uuidArgs(ids)...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]student.Project, len(ids))
	for rows.Next() {
		var pr student.Project
		var tech []byte
		if err := rows.Scan(&pr.ID, &pr.StudentID, &pr.Title, &pr.Description, &tech, &pr.VideoURL, &pr.CreatedAt); err != nil {
			return nil, err
		}
		if pr.Technologies, err = unmarshalStrings(tech); err != nil {
			return nil, fmt.Errorf("project %s technologies: %w", pr.ID, err)
		}
		out[pr.StudentID] = append(out[pr.StudentID], pr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresStudentRepository) certificationsFor(ctx context.Context, studentID uuid.UUID) ([]student.Certification, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, student_id, certification_name, issuing_organization, issue_date, expiry_date,
			credential_id, credential_url, certificate_file_url, certificate_filename, created_at
		 FROM student_certifications
		 WHERE student_id = $1
		 ORDER BY created_at ASC, id ASC`,
		studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]student.Certification, 0)
	for rows.Next() {
		var c student.Certification
		if err := rows.Scan(
			&c.ID, &c.StudentID, &c.Name, &c.IssuingOrganization, &c.IssueDate, &c.ExpiryDate,
			&c.CredentialID, &c.CredentialURL, &c.FileURL, &c.Filename, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanStudent(row database.Row) (student.Profile, error) {
	var p student.Profile
	var sites, prefs, skills []byte
	var internship string
	if err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Email, &p.Phone, &p.University, &p.Major,
		&p.GraduationYear, &p.Bio, &p.Location, &p.GithubURL, &p.WebsiteURL, &p.LinkedinURL,
		&sites, &internship, &p.PreferredLocation,
		&prefs, &p.OpenToRelocate, &skills, &p.ProfileViews,
		&p.ResumeURL, &p.ResumeFilename, &p.LastLoginAt, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return student.Profile{}, err
	}

	var err error
	if p.WebsiteURLs, err = unmarshalStrings(sites); err != nil {
		return student.Profile{}, fmt.Errorf("student %s website urls: %w", p.ID, err)
	}
	if p.PreferredLocations, err = unmarshalStrings(prefs); err != nil {
		return student.Profile{}, fmt.Errorf("student %s preferred locations: %w", p.ID, err)
	}
	if p.Skills, err = unmarshalStrings(skills); err != nil {
		return student.Profile{}, fmt.Errorf("student %s skills: %w", p.ID, err)
	}
	p.InternshipTypePreference = student.InternshipType(internship)
	return p, nil
}
