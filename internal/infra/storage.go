package infra

import (
	"context"
	"fmt"
	"io"
	"strings"

	appconfig "obranza/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Storage is the blob-store collaborator for attachments and documents.
// Put returns the public URL and the pathname used as deletion key; Del
// failures must not block the corresponding database-row deletion (the
// caller logs and continues).
type Storage interface {
	Put(ctx context.Context, pathname string, body io.Reader, contentType string) (url string, err error)
	Del(ctx context.Context, pathname string) error
}

type s3Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewStorage builds an S3-backed Storage from static credentials. A custom
// endpoint allows S3-compatible providers.
func NewStorage(ctx context.Context, cfg *appconfig.Config) (Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := cfg.S3PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &s3Storage{
		client:    client,
		bucket:    cfg.S3Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

func (s *s3Storage) Put(ctx context.Context, pathname string, body io.Reader, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(pathname),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: put %s: %w", pathname, err)
	}
	return s.publicURL + "/" + pathname, nil
}

func (s *s3Storage) Del(ctx context.Context, pathname string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(pathname),
	})
	if err != nil {
		return fmt.Errorf("storage: delete %s: %w", pathname, err)
	}
	return nil
}
