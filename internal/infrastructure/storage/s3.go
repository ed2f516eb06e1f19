package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"lazyintern/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrUnavailable = errors.New("object storage not configured")

// ObjectAPI is the subset of the S3 client used here.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3 struct {
	api        ObjectAPI
	bucket     string
	publicBase string
	logger     *zap.Logger
}

// NewS3 builds a client for cfg. An empty bucket yields a store whose
// operations return ErrUnavailable. A custom endpoint (R2, MinIO) switches to
// path-style addressing.
func NewS3(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (*S3, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		logger.Warn("S3_BUCKET not set, uploads disabled")
		return &S3{logger: logger}, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		if cfg.Endpoint != "" {
			base = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
		} else {
			base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	return New(client, cfg.Bucket, base, logger), nil
}

func New(api ObjectAPI, bucket, publicBase string, logger *zap.Logger) *S3 {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &S3{api: api, bucket: bucket, publicBase: strings.TrimRight(publicBase, "/"), logger: logger}
}

func (s *S3) Available() bool {
	return s != nil && s.api != nil && s.bucket != ""
}

// Put uploads body under folder/<owner>/<uuid><ext> and returns the key and
// its public URL.
func (s *S3) Put(ctx context.Context, folder string, owner uuid.UUID, filename, contentType string, body io.Reader) (key, url string, err error) {
	if !s.Available() {
		return "", "", ErrUnavailable
	}
	key = ObjectKey(folder, owner, filename)

	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := s.api.PutObject(ctx, in); err != nil {
		return "", "", fmt.Errorf("put object %s: %w", key, err)
	}

	s.logger.Info("object stored", zap.String("key", key), zap.String("content_type", contentType))
	return key, s.URL(key), nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	if !s.Available() {
		return ErrUnavailable
	}
	if key == "" {
		return nil
	}
	_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func (s *S3) URL(key string) string {
	return s.publicBase + "/" + key
}

// KeyFromURL recovers the object key of a URL produced by URL.
func (s *S3) KeyFromURL(u string) (string, bool) {
	if s == nil || s.publicBase == "" {
		return "", false
	}
	prefix := s.publicBase + "/"
	if !strings.HasPrefix(u, prefix) {
		return "", false
	}
	return strings.TrimPrefix(u, prefix), true
}

func ObjectKey(folder string, owner uuid.UUID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join(strings.Trim(folder, "/"), owner.String(), uuid.NewString()+ext)
}
