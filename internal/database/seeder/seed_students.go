package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"lazyintern/internal/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type demoProject struct {
	title string
	techs []string
}

type demoStudent struct {
	name           string
	university     string
	major          string
	gradYear       string
	location       string
	preferred      []string
	internshipType string
	skills         []string
	projects       []demoProject
}

var demoStudents = []demoStudent{
	{
		name: "Ayu Lestari", university: "Universitas Indonesia", major: "Computer Science", gradYear: "2025",
		location: "Depok", preferred: []string{"Jakarta", "Remote"}, internshipType: "paid",
		skills:   []string{"Go", "PostgreSQL", "Docker"},
		projects: []demoProject{{"Campus event API", []string{"Go", "Fiber", "PostgreSQL"}}},
	},
	{
		name: "Bima Saputra", university: "Institut Teknologi Bandung", major: "Information Systems", gradYear: "2026",
		location: "Bandung", preferred: []string{"Bandung"}, internshipType: "both",
		skills:   []string{"React", "TypeScript", "Figma"},
		projects: []demoProject{{"Study planner", []string{"React", "Firebase"}}},
	},
	{
		name: "Citra Wulandari", university: "Universitas Gadjah Mada", major: "Data Science", gradYear: "2025",
		location: "Yogyakarta", internshipType: "unpaid",
		skills:   []string{"Python", "Pandas", "Machine Learning"},
		projects: []demoProject{{"Rainfall forecaster", []string{"Python", "scikit-learn"}}},
	},
	{
		name: "Dimas Pratama", university: "Universitas Brawijaya", major: "Computer Engineering", gradYear: "2027",
		location: "Malang", preferred: []string{"Surabaya", "Malang"}, internshipType: "paid",
		skills: []string{"C++", "Embedded Systems", "Go"},
	},
}

type StudentsSeeder struct{}

func (StudentsSeeder) Name() string { return "students" }

func (StudentsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "student_profiles", "user_id", "major", "skills", "preferred_locations"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "student_projects", "student_id", "title", "technologies"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, s := range demoStudents {
		email := strings.ToLower(strings.ReplaceAll(s.name, " ", ".")) + "@students.lazyintern.dev"
		userID, err := upsertUser(ctx, tx, email, s.name, "student")
		if err != nil {
			return err
		}

		skills, _ := json.Marshal(s.skills)
		preferred, _ := json.Marshal(nonNil(s.preferred))

		var profileID uuid.UUID
		err = tx.QueryRow(ctx,
			`INSERT INTO student_profiles (user_id, university, major, graduation_year, location,
				preferred_locations, internship_type_preference, skills)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (user_id) DO UPDATE SET updated_at = student_profiles.updated_at
			RETURNING id`,
			userID, s.university, s.major, s.gradYear, s.location, preferred, s.internshipType, skills,
		).Scan(&profileID)
		if err != nil {
			return fmt.Errorf("student %s: %w", email, err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM student_projects WHERE student_id = $1`, profileID); err != nil {
			return err
		}
		for _, p := range s.projects {
			techs, _ := json.Marshal(p.techs)
			if _, err := tx.Exec(ctx,
				`INSERT INTO student_projects (student_id, title, technologies) VALUES ($1, $2, $3)`,
				profileID, p.title, techs,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

// upsertUser creates a verified account with DemoPassword and returns its id.
func upsertUser(ctx context.Context, tx database.Tx, email, name, role string) (uuid.UUID, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, err
	}
	var id uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, name, role, is_verified, last_login_at)
		VALUES ($1, $2, $3, $4, true, now())
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`,
		email, string(hash), name, role,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("user %s: %w", email, err)
	}
	return id, nil
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
