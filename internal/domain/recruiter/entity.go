package recruiter

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Email       string
	Phone       string
	CompanyName string
	Position    string
	Location    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Bookmark struct {
	ID          uuid.UUID
	RecruiterID uuid.UUID
	StudentID   uuid.UUID
	CreatedAt   time.Time
}

// Stats summarizes a recruiter's dashboard header.
type Stats struct {
	TotalStudents int
	Bookmarks     int
	ProfileViews  int
}
