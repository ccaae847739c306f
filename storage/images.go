package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ImageStore is the object-store boundary for post images. Post deletion
// and report moderation cascade into Remove.
type ImageStore interface {
	PresignUpload(ctx context.Context, contentType string) (uploadURL, key string, err error)
	Remove(ctx context.Context, keys []string) error
	PublicURL(key string) string
}

type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Region          string
}

func GetS3Config() *S3Config {
	return &S3Config{
		Endpoint:        os.Getenv("S3_ENDPOINT"),
		AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		BucketName:      os.Getenv("S3_BUCKET_NAME"),
		PublicURL:       os.Getenv("S3_PUBLIC_URL"),
		Region:          "auto",
	}
}

type S3Store struct {
	client *s3.Client
	config *S3Config
}

func NewS3Store() *S3Store {
	cfg := GetS3Config()

	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(cfg.Endpoint),
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
		Region: cfg.Region,
	})

	return &S3Store{client: client, config: cfg}
}

func (s *S3Store) PresignUpload(ctx context.Context, contentType string) (string, string, error) {
	key := fmt.Sprintf("posts/%s", uuid.New().String())

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.config.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presigner := s3.NewPresignClient(s.client)
	req, err := presigner.PresignPutObject(ctx, input, func(opts *s3.PresignOptions) {
		opts.Expires = 15 * time.Minute
	})
	if err != nil {
		return "", "", err
	}

	return req.URL, key, nil
}

func (s *S3Store) Remove(ctx context.Context, keys []string) error {
	for _, key := range keys {
		input := &s3.DeleteObjectInput{
			Bucket: aws.String(s.config.BucketName),
			Key:    aws.String(key),
		}
		if _, err := s.client.DeleteObject(ctx, input); err != nil {
			return err
		}
	}
	return nil
}

func (s *S3Store) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", s.config.PublicURL, key)
}

// NoopStore stands in when no object store is configured (local dev, tests).
type NoopStore struct{}

func (NoopStore) PresignUpload(ctx context.Context, contentType string) (string, string, error) {
	return "", fmt.Sprintf("posts/%s", uuid.New().String()), nil
}

func (NoopStore) Remove(ctx context.Context, keys []string) error { return nil }

func (NoopStore) PublicURL(key string) string { return key }
