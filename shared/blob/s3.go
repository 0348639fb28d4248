package blob

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
)

const presignExpiry = 15 * time.Minute

// Storage hands out presigned URLs against the image bucket. The console
// uploads banner and branding images directly to object storage; this service
// only mints the URLs and stores the resulting keys.
type Storage struct {
	bucket    string
	presigner *s3.PresignClient
}

type storageConfig struct {
	Enabled   bool   `env:"S3_ENABLED"    envDefault:"false"`
	Region    string `env:"S3_REGION"     envDefault:"me-central-1"`
	Endpoint  string `env:"S3_ENDPOINT"`
	Bucket    string `env:"S3_BUCKET"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`
}

// NewStorage creates a Storage from S3_* environment variables. Returns nil
// when object storage is disabled.
func NewStorage(ctx context.Context) (*Storage, error) {
	cfg, err := env.ParseAs[storageConfig]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse storage configuration: %w", err)
	}

	if !cfg.Enabled {
		return nil, nil
	}

	if cfg.Bucket == "" {
		return nil, fmt.Errorf("missing S3_BUCKET environment variable")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Storage{
		bucket:    cfg.Bucket,
		presigner: s3.NewPresignClient(client),
	}, nil
}

// objectKey shards uploads by date so bucket listings stay navigable.
func objectKey(prefix string) string {
	now := time.Now().UTC()
	return fmt.Sprintf("%s/%d/%02d/%02d/%s", prefix, now.Year(), now.Month(), now.Day(), uuid.NewString())
}

// PresignUpload returns a fresh storage key and a presigned PUT URL for it.
func (s *Storage) PresignUpload(ctx context.Context, prefix, contentType string) (string, string, error) {
	key := objectKey(prefix)

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	req, err := s.presigner.PresignPutObject(ctx, input, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// PresignDownload returns a presigned GET URL for an existing storage key.
func (s *Storage) PresignDownload(ctx context.Context, key string) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
