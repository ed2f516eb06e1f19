package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"lazyintern/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectAPI struct {
	put     *s3.PutObjectInput
	body    string
	deleted []string
	err     error
}

func (f *fakeObjectAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.put = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3_Put(t *testing.T) {
	api := &fakeObjectAPI{}
	s := New(api, "bucket", "https://cdn.example.com/", nil)
	owner := uuid.New()

	key, url, err := s.Put(context.Background(), "resumes", owner, "CV.PDF", "application/pdf", strings.NewReader("pdf"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "resumes/"+owner.String()+"/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	assert.Equal(t, "https://cdn.example.com/"+key, url)
	assert.Equal(t, "bucket", aws.ToString(api.put.Bucket))
	assert.Equal(t, "application/pdf", aws.ToString(api.put.ContentType))
	assert.Equal(t, "pdf", api.body)

	got, ok := s.KeyFromURL(url)
	assert.True(t, ok)
	assert.Equal(t, key, got)

	_, ok = s.KeyFromURL("https://elsewhere/x")
	assert.False(t, ok)
}

func TestS3_PutError(t *testing.T) {
	s := New(&fakeObjectAPI{err: errors.New("denied")}, "bucket", "https://cdn", nil)
	_, _, err := s.Put(context.Background(), "videos", uuid.New(), "a.mp4", "", strings.NewReader(""))
	assert.ErrorContains(t, err, "denied")
}

func TestS3_Unavailable(t *testing.T) {
	s, err := NewS3(context.Background(), configWithoutBucket(), nil)
	require.NoError(t, err)
	assert.False(t, s.Available())

	_, _, err = s.Put(context.Background(), "x", uuid.New(), "a", "", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, s.Delete(context.Background(), "k"), ErrUnavailable)
}

func TestS3_Delete(t *testing.T) {
	api := &fakeObjectAPI{}
	s := New(api, "bucket", "https://cdn", nil)
	require.NoError(t, s.Delete(context.Background(), "resumes/a.pdf"))
	require.NoError(t, s.Delete(context.Background(), ""))
	assert.Equal(t, []string{"resumes/a.pdf"}, api.deleted)
}

func configWithoutBucket() config.StorageConfig {
	return config.StorageConfig{Region: "us-east-1"}
}
