package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookmark_AddIsIdempotent(t *testing.T) {
	marks := newMemBookmarks()
	m := &recordedMetrics{}
	uc := NewBookmarkUsecase(marks, m, nil)
	s := recruiterSession()
	studentID := uuid.New()

	created, err := uc.Add(context.Background(), s, studentID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.Add(context.Background(), s, studentID)
	require.NoError(t, err)
	assert.False(t, created)

	ok, err := uc.IsBookmarked(context.Background(), s, studentID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"add"}, m.bookmarks)
}

func TestBookmark_Remove(t *testing.T) {
	marks := newMemBookmarks()
	uc := NewBookmarkUsecase(marks, nil, nil)
	s := recruiterSession()
	studentID := uuid.New()

	assert.ErrorIs(t, uc.Remove(context.Background(), s, studentID), ErrBookmarkNotFound)

	_, err := uc.Add(context.Background(), s, studentID)
	require.NoError(t, err)
	require.NoError(t, uc.Remove(context.Background(), s, studentID))

	ok, err := uc.IsBookmarked(context.Background(), s, studentID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBookmark_RecruiterOnly(t *testing.T) {
	uc := NewBookmarkUsecase(newMemBookmarks(), nil, nil)
	s := studentSession()

	_, err := uc.Add(context.Background(), s, uuid.New())
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = uc.IsBookmarked(context.Background(), s, uuid.New())
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, uc.Remove(context.Background(), s, uuid.New()), ErrForbidden)

	_, err = uc.Add(context.Background(), recruiterSession(), uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
