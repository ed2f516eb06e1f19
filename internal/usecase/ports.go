package usecase

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// Cache is the JSON cache used for student lists.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	Incr(ctx context.Context, key string) (int64, error)
	GetInt(ctx context.Context, key string) (int64, error)
}

type OTPStore interface {
	Save(ctx context.Context, email, code string) error
	Consume(ctx context.Context, email, code string) (bool, error)
}

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type FileStore interface {
	Put(ctx context.Context, folder string, owner uuid.UUID, filename, contentType string, body io.Reader) (key, url string, err error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) (string, bool)
	Available() bool
}

// StudentNotifier tells connected dashboards that student data changed.
type StudentNotifier interface {
	NotifyStudentsUpdated(studentID uuid.UUID)
}

type FilterMetrics interface {
	ObserveFilter(tab string, active bool, matched int)
	ObserveBookmark(op string)
	ObserveProfileView()
}

type nopNotifier struct{}

func (nopNotifier) NotifyStudentsUpdated(uuid.UUID) {}

type nopMetrics struct{}

func (nopMetrics) ObserveFilter(string, bool, int) {}
func (nopMetrics) ObserveBookmark(string)          {}
func (nopMetrics) ObserveProfileView()             {}
