package usecase

import (
	"context"
	"errors"

	"lazyintern/internal/domain/recruiter"
	"lazyintern/internal/domain/student"
	"lazyintern/internal/domain/user"
	"lazyintern/internal/pkg/session"
	"lazyintern/internal/repository"
)

// Me is the signed-in user plus whichever role profile exists.
type Me struct {
	User      user.User
	Student   *student.Profile
	Recruiter *recruiter.Profile
}

type UserUsecase interface {
	GetMe(ctx context.Context, s session.Session) (Me, error)
}

type User struct {
	users      user.Repository
	students   repository.StudentRepository
	recruiters repository.RecruiterRepository
}

func NewUserUsecase(users user.Repository, students repository.StudentRepository, recruiters repository.RecruiterRepository) *User {
	return &User{users: users, students: students, recruiters: recruiters}
}

func (u *User) GetMe(ctx context.Context, s session.Session) (Me, error) {
	usr, err := u.users.GetByID(ctx, s.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Me{}, ErrUnauthorized
		}
		return Me{}, ErrInternal
	}
	usr.PasswordHash = ""
	me := Me{User: usr}

	switch usr.Role {
	case user.RoleStudent:
		p, err := u.students.GetByUserID(ctx, usr.ID)
		if err == nil {
			me.Student = &p
		} else if !errors.Is(err, repository.ErrStudentNotFound) {
			return Me{}, ErrInternal
		}
	case user.RoleRecruiter:
		p, err := u.recruiters.GetByUserID(ctx, usr.ID)
		if err == nil {
			me.Recruiter = &p
		} else if !errors.Is(err, repository.ErrRecruiterNotFound) {
			return Me{}, ErrInternal
		}
	}
	return me, nil
}
